package grammar

import (
	"encoding/json"
	"fmt"
	"io"
)

// Read decodes a grammar description written in JSON.
func Read(r io.Reader) (*Grammar, error) {
	d := json.NewDecoder(r)
	d.DisallowUnknownFields()

	g := &Grammar{}
	err := d.Decode(g)
	if err != nil {
		return nil, fmt.Errorf("invalid grammar description: %w", err)
	}

	for _, nt := range g.Nonterminals {
		if nt == nil {
			return nil, fmt.Errorf("invalid grammar description: a nonterminal must not be null")
		}
		for _, rule := range nt.Rules {
			if rule == nil {
				return nil, fmt.Errorf("invalid grammar description: a rule of '%v' must not be null", nt.Name)
			}
			for _, tok := range rule.Tokens {
				if tok == nil || tok.Name == "" {
					return nil, fmt.Errorf("invalid grammar description: a rule of '%v' has an unnamed token", nt.Name)
				}
			}
		}
	}

	return g, nil
}

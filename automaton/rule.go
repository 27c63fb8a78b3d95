package automaton

import (
	"strings"

	"github.com/nihei9/ptgen/grammar"
	"github.com/nihei9/ptgen/grammar/symbol"
)

// Rule is a rule of the grammar with its symbols resolved to token ids. Index 0 is the synthetic
// start rule `S' → S END_`.
type Rule struct {
	Index int
	LHS   symbol.Symbol

	// Tokens holds symbol.SymbolNil in place of an undeclared token.
	Tokens []symbol.Symbol

	// Prec is the precedence level of the rule. 0 means the rule has no precedence.
	Prec   int
	Assoc  grammar.Associativity
	Action string
	Pos    grammar.Position

	binary      bool
	description string
}

func (r *Rule) Len() int {
	return len(r.Tokens)
}

func (r *Rule) IsEmpty() bool {
	return len(r.Tokens) == 0
}

func (r *Rule) IsBinaryOperation() bool {
	return r.binary
}

// isFinal reports whether rp is the rule-final phase of r.
func (r *Rule) isFinal(rp RulePhase) bool {
	return int(rp.Phase) == len(r.Tokens)
}

func (r *Rule) String() string {
	return r.description
}

func describeRule(lhs string, rhs []string) string {
	var b strings.Builder
	b.WriteString(lhs)
	b.WriteString(" →")
	if len(rhs) == 0 {
		b.WriteString(" ε")
	}
	for _, name := range rhs {
		b.WriteString(" ")
		b.WriteString(name)
	}
	return b.String()
}

// describeItem renders a rule phase like `E → E ・'+' E`.
func describeItem(lhs string, rhs []string, phase int) string {
	var b strings.Builder
	b.WriteString(lhs)
	b.WriteString(" →")
	for i, name := range rhs {
		if i == phase {
			b.WriteString(" ・")
		} else {
			b.WriteString(" ")
		}
		b.WriteString(name)
	}
	if phase == len(rhs) {
		b.WriteString(" ・")
	}
	return b.String()
}

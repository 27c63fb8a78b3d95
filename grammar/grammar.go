package grammar

import (
	"fmt"
	"strings"
)

const (
	// TerminalNameEOF is the name of the end-of-input sentinel.
	TerminalNameEOF = "END_"

	// TerminalNameError is the name of the error-recovery sentinel.
	TerminalNameError = "%error"
)

// Position is a location in a grammar source. The zero value means the position is unknown.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("%v:%v", p.Row, p.Col)
}

func (p Position) IsZero() bool {
	return p.Row == 0 && p.Col == 0
}

type Associativity int

const (
	AssocLeft Associativity = iota
	AssocRight
	AssocNonAssoc
)

func (a Associativity) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	case AssocNonAssoc:
		return "nonassoc"
	}
	return fmt.Sprintf("<invalid associativity: %d>", int(a))
}

func (a Associativity) MarshalText() ([]byte, error) {
	switch a {
	case AssocLeft, AssocRight, AssocNonAssoc:
		return []byte(a.String()), nil
	}
	return nil, fmt.Errorf("invalid associativity: %d", int(a))
}

func (a *Associativity) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "left":
		*a = AssocLeft
	case "right":
		*a = AssocRight
	case "nonassoc":
		*a = AssocNonAssoc
	default:
		return fmt.Errorf("invalid associativity: %q", text)
	}
	return nil
}

// RuleToken is an element of the right-hand side of a rule. Name refers to a terminal or a nonterminal.
// Variable is the name a semantic action binds the element to.
type RuleToken struct {
	Name     string   `json:"name"`
	Variable string   `json:"var,omitempty"`
	Pos      Position `json:"pos"`
}

type Rule struct {
	Tokens []*RuleToken `json:"tokens"`

	// Precedence refers to a declared precedence by its name. When it is empty, the rule
	// inherits the precedence of its right-most terminal that has one.
	Precedence string        `json:"prec,omitempty"`
	Assoc      Associativity `json:"assoc"`

	// Action is the code block attached to the rule. The generator passes it through as is.
	Action string   `json:"action,omitempty"`
	Pos    Position `json:"pos"`
}

// IsBinaryOperation reports whether the rule looks like `A → A op A`.
func (r *Rule) IsBinaryOperation(owner string) bool {
	if len(r.Tokens) != 3 {
		return false
	}
	return r.Tokens[0].Name == owner && r.Tokens[2].Name == owner && r.Tokens[1].Name != owner
}

type Nonterminal struct {
	Name  string   `json:"name"`
	Rules []*Rule  `json:"rules"`
	Pos   Position `json:"pos"`
}

// TokenDecl declares an identifier-style terminal. Single-character terminals such as `'+'` need
// no declaration.
type TokenDecl struct {
	Name string `json:"name"`

	// Type is the semantic value type of the token. The generator doesn't interpret it.
	Type string `json:"type,omitempty"`

	// Pattern is a regular expression used to build a lexer for the grammar. A token without
	// a pattern can still be used in rules, but the generated lexer never produces it.
	Pattern string `json:"pattern,omitempty"`

	// Skip makes the generated lexer drop the token.
	Skip bool     `json:"skip,omitempty"`
	Pos  Position `json:"pos"`
}

type PrecedenceDecl struct {
	Name  string        `json:"name"`
	Assoc Associativity `json:"assoc"`
	Pos   Position      `json:"pos"`
}

type StartDecl struct {
	Name string   `json:"name"`
	Pos  Position `json:"pos"`
}

// Grammar is the input of the generator. It is built once and never modified afterwards.
type Grammar struct {
	Name         string            `json:"name"`
	Start        *StartDecl        `json:"start"`
	Tokens       []*TokenDecl      `json:"tokens"`
	Precedences  []*PrecedenceDecl `json:"precedences"`
	Nonterminals []*Nonterminal    `json:"nonterminals"`
}

// IsCharacterLiteral reports whether name denotes a single-character terminal such as `'+'`.
func IsCharacterLiteral(name string) bool {
	if len(name) < 3 || name[0] != '\'' || name[len(name)-1] != '\'' {
		return false
	}
	return len([]rune(name[1:len(name)-1])) == 1
}

// CharacterOf returns the character a single-character terminal stands for.
func CharacterOf(name string) (string, bool) {
	if !IsCharacterLiteral(name) {
		return "", false
	}
	return name[1 : len(name)-1], true
}

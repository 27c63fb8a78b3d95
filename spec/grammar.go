package spec

import mlspec "github.com/nihei9/maleeni/spec"

type CompiledGrammar struct {
	Name                 string                `json:"name"`
	LexicalSpecification *LexicalSpecification `json:"lexical_specification"`
	ParsingTable         *ParsingTable         `json:"parsing_table"`
}

type LexicalSpecification struct {
	Lexer   string   `json:"lexer"`
	Maleeni *Maleeni `json:"maleeni"`
}

type Maleeni struct {
	Spec           *mlspec.CompiledLexSpec `json:"spec"`
	KindToTerminal []int                   `json:"kind_to_terminal"`
	TerminalToKind []int                   `json:"terminal_to_kind"`
	Skip           []int                   `json:"skip"`
}

// ActionKind is the kind of an entry of the transition table.
type ActionKind int

const (
	ActionKindNil ActionKind = iota
	ActionKindShiftAndPush
	ActionKindPush
	ActionKindReduceByRule
	ActionKindReduceAndAccept
	ActionKindThrowAwayErrorToken
)

func (k ActionKind) String() string {
	switch k {
	case ActionKindNil:
		return "nil"
	case ActionKindShiftAndPush:
		return "shift"
	case ActionKindPush:
		return "push"
	case ActionKindReduceByRule:
		return "reduce"
	case ActionKindReduceAndAccept:
		return "accept"
	case ActionKindThrowAwayErrorToken:
		return "throw-away"
	}
	return "<unknown>"
}

type Rule struct {
	LHS         int    `json:"lhs"`
	TokenCount  int    `json:"token_count"`
	Description string `json:"description"`
}

// State points at the transitions of a state. An offset of 0 means the state has no transition of
// that kind.
type State struct {
	TerminalOffset    int `json:"terminal_offset"`
	TerminalCount     int `json:"terminal_count"`
	DefaultOffset     int `json:"default_offset"`
	NonTerminalOffset int `json:"non_terminal_offset"`
	NonTerminalCount  int `json:"non_terminal_count"`
}

// Transition is an entry of the flat transition table. Data is a state index for shift and push
// entries, a rule index for reduce and accept entries, and 0 otherwise.
type Transition struct {
	Token  int        `json:"token"`
	Action ActionKind `json:"action"`
	Data   int        `json:"data"`
}

type ParsingTable struct {
	Rules  []*Rule  `json:"rules"`
	States []*State `json:"states"`

	// Transitions[0] is a reserved entry that no state refers to.
	Transitions []*Transition `json:"transitions"`

	InitialState          int      `json:"initial_state"`
	StartRule             int      `json:"start_rule"`
	Tokens                []string `json:"tokens"`
	TerminalCount         int      `json:"terminal_count"`
	EOFSymbol             int      `json:"eof_symbol"`
	ErrorSymbol           int      `json:"error_symbol"`
	ShiftReduceConflicts  int      `json:"shift_reduce_conflicts"`
	ReduceReduceConflicts int      `json:"reduce_reduce_conflicts"`
}

// TerminalTransitions returns the terminal transitions of a state.
func (t *ParsingTable) TerminalTransitions(state int) []*Transition {
	s := t.States[state]
	if s.TerminalOffset == 0 {
		return nil
	}
	return t.Transitions[s.TerminalOffset : s.TerminalOffset+s.TerminalCount]
}

// DefaultTransition returns the default transition of a state, or nil.
func (t *ParsingTable) DefaultTransition(state int) *Transition {
	s := t.States[state]
	if s.DefaultOffset == 0 {
		return nil
	}
	return t.Transitions[s.DefaultOffset]
}

func (t *ParsingTable) NonTerminalTransitions(state int) []*Transition {
	s := t.States[state]
	if s.NonTerminalOffset == 0 {
		return nil
	}
	return t.Transitions[s.NonTerminalOffset : s.NonTerminalOffset+s.NonTerminalCount]
}

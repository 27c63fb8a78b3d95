package driver

import (
	"github.com/nihei9/ptgen/spec"
	"golang.org/x/exp/slices"
)

// Grammar is the view of a parsing table the parser runs on.
type Grammar interface {
	InitialState() int
	StartRule() int

	// Action returns the action of a state on a terminal. When the state has no transition on the
	// terminal, Action falls back to the default transition of the state. A negative terminal selects
	// the default transition only.
	Action(state int, terminal int) (spec.ActionKind, int)

	// GoTo returns the state the parser pushes after reducing a rule whose LHS is `lhs`.
	GoTo(state int, lhs int) (int, bool)

	// ErrorTrapperState reports whether a state shifts the error symbol.
	ErrorTrapperState(state int) bool

	// ThrowsAwayErrorTokens reports whether a state discards tokens following the error symbol.
	ThrowsAwayErrorTokens(state int) bool

	// ExpectedTerminals returns the terminals a state has a transition on.
	ExpectedTerminals(state int) []int

	LHS(rule int) int
	TokenCount(rule int) int
	EOF() int
	Error() int
	TokenName(sym int) string
}

var _ Grammar = &grammarImpl{}

type grammarImpl struct {
	g *spec.CompiledGrammar
}

func NewGrammar(g *spec.CompiledGrammar) *grammarImpl {
	return &grammarImpl{
		g: g,
	}
}

func (g *grammarImpl) InitialState() int {
	return g.g.ParsingTable.InitialState
}

func (g *grammarImpl) StartRule() int {
	return g.g.ParsingTable.StartRule
}

func (g *grammarImpl) Action(state int, terminal int) (spec.ActionKind, int) {
	tab := g.g.ParsingTable
	if terminal >= 0 {
		if trans, ok := findTransition(tab.TerminalTransitions(state), terminal); ok {
			return trans.Action, trans.Data
		}
	}
	def := tab.DefaultTransition(state)
	if def == nil {
		return spec.ActionKindNil, 0
	}
	return def.Action, def.Data
}

func (g *grammarImpl) GoTo(state int, lhs int) (int, bool) {
	trans, ok := findTransition(g.g.ParsingTable.NonTerminalTransitions(state), lhs)
	if !ok || trans.Action != spec.ActionKindPush {
		return 0, false
	}
	return trans.Data, true
}

func (g *grammarImpl) ErrorTrapperState(state int) bool {
	trans, ok := findTransition(g.g.ParsingTable.TerminalTransitions(state), g.Error())
	return ok && trans.Action == spec.ActionKindShiftAndPush
}

func (g *grammarImpl) ThrowsAwayErrorTokens(state int) bool {
	trans, ok := findTransition(g.g.ParsingTable.TerminalTransitions(state), g.Error())
	return ok && trans.Action == spec.ActionKindThrowAwayErrorToken
}

func (g *grammarImpl) ExpectedTerminals(state int) []int {
	var terms []int
	for _, trans := range g.g.ParsingTable.TerminalTransitions(state) {
		terms = append(terms, trans.Token)
	}
	return terms
}

func (g *grammarImpl) LHS(rule int) int {
	return g.g.ParsingTable.Rules[rule].LHS
}

func (g *grammarImpl) TokenCount(rule int) int {
	return g.g.ParsingTable.Rules[rule].TokenCount
}

func (g *grammarImpl) EOF() int {
	return g.g.ParsingTable.EOFSymbol
}

func (g *grammarImpl) Error() int {
	return g.g.ParsingTable.ErrorSymbol
}

func (g *grammarImpl) TokenName(sym int) string {
	return g.g.ParsingTable.Tokens[sym]
}

// findTransition looks a token up in the transitions of a state. The transitions of a state are
// sorted by token.
func findTransition(transitions []*spec.Transition, token int) (*spec.Transition, bool) {
	i, ok := slices.BinarySearchFunc(transitions, token, func(trans *spec.Transition, token int) int {
		return trans.Token - token
	})
	if !ok {
		return nil, false
	}
	return transitions[i], true
}

package automaton

import (
	"strconv"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/nihei9/ptgen/grammar/symbol"
)

type stateNum int

const stateNumInitial = stateNum(0)

func (n stateNum) Int() int {
	return int(n)
}

func (n stateNum) String() string {
	return strconv.Itoa(int(n))
}

// transitionSet accumulates the transitions computed by the closure of rule phases.
type transitionSet struct {
	terminals    *treemap.Map // symbol.Symbol (as int) -> *Transition
	nonTerminals *treemap.Map // symbol.Symbol (as int) -> *Transition
	def          *Transition
}

func newTransitionSet() *transitionSet {
	return &transitionSet{
		terminals:    treemap.NewWithIntComparator(),
		nonTerminals: treemap.NewWithIntComparator(),
	}
}

func (ts *transitionSet) terminal(sym symbol.Symbol) (*Transition, bool) {
	v, ok := ts.terminals.Get(sym.Int())
	if !ok {
		return nil, false
	}
	return v.(*Transition), true
}

func (ts *transitionSet) nonTerminal(sym symbol.Symbol) (*Transition, bool) {
	v, ok := ts.nonTerminals.Get(sym.Int())
	if !ok {
		return nil, false
	}
	return v.(*Transition), true
}

func (ts *transitionSet) shiftOn(sym symbol.Symbol) *Transition {
	if t, ok := ts.terminal(sym); ok {
		return t
	}
	t := newTransition(ActionShiftAndPush)
	ts.terminals.Put(sym.Int(), t)
	return t
}

func (ts *transitionSet) pushOn(sym symbol.Symbol) *Transition {
	if t, ok := ts.nonTerminal(sym); ok {
		return t
	}
	t := newTransition(ActionPush)
	ts.nonTerminals.Put(sym.Int(), t)
	return t
}

func symbolsOf(m *treemap.Map) []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, m.Size())
	for _, k := range m.Keys() {
		syms = append(syms, symbol.Symbol(k.(int)))
	}
	return syms
}

// Conflict is a transition that lost a conflict. Terminal is symbol.SymbolNil when the transition
// competed for the default.
type Conflict struct {
	Terminal   symbol.Symbol
	Transition *Transition
}

type State struct {
	*transitionSet
	num       stateNum
	id        *StateIdentifier
	conflicts []*Conflict

	// Offsets into the flat transition table. 0 means the state has no transition of the kind.
	terminalOffset    int
	terminalCount     int
	defaultOffset     int
	nonTerminalOffset int
	nonTerminalCount  int
}

func (s *State) Index() int {
	return s.num.Int()
}

func (s *State) Identifier() *StateIdentifier {
	return s.id
}

// Terminals returns the terminals having a nontrivial transition in ascending order.
func (s *State) Terminals() []symbol.Symbol {
	var syms []symbol.Symbol
	for _, sym := range symbolsOf(s.terminals) {
		t, _ := s.terminal(sym)
		if !t.IsNontrivial() {
			continue
		}
		syms = append(syms, sym)
	}
	return syms
}

// TerminalTransition returns the transition on a terminal. Trivial transitions are not returned.
func (s *State) TerminalTransition(sym symbol.Symbol) (*Transition, bool) {
	t, ok := s.terminal(sym)
	if !ok || !t.IsNontrivial() {
		return nil, false
	}
	return t, true
}

// Default returns the default transition, or nil when the state has none.
func (s *State) Default() *Transition {
	if s.def == nil || !s.def.IsNontrivial() {
		return nil
	}
	return s.def
}

func (s *State) NonTerminals() []symbol.Symbol {
	return symbolsOf(s.nonTerminals)
}

func (s *State) NonTerminalTransition(sym symbol.Symbol) (*Transition, bool) {
	return s.nonTerminal(sym)
}

func (s *State) Conflicts() []*Conflict {
	return s.conflicts
}

func (s *State) addConflict(sym symbol.Symbol, t *Transition) {
	s.conflicts = append(s.conflicts, &Conflict{
		Terminal:   sym,
		Transition: t,
	})
}

// acceptsError reports whether the state has a nontrivial transition on %error.
func (s *State) acceptsError() bool {
	t, ok := s.terminal(symbol.SymbolError)
	return ok && t.IsNontrivial()
}

package automaton

import (
	"fmt"

	"github.com/nihei9/ptgen/grammar/symbol"
	"github.com/nihei9/ptgen/spec"
)

// Tables flattens the automaton into the tables a generated parser runs on.
func (m *StateMachine) Tables() *spec.ParsingTable {
	tab := &spec.ParsingTable{
		Rules:                 make([]*spec.Rule, len(m.rules)),
		States:                make([]*spec.State, len(m.states)),
		Transitions:           make([]*spec.Transition, m.nextSlot),
		InitialState:          stateNumInitial.Int(),
		StartRule:             0,
		Tokens:                m.symTab.Texts(),
		TerminalCount:         m.symTab.TerminalCount(),
		EOFSymbol:             symbol.SymbolEOF.Int(),
		ErrorSymbol:           symbol.SymbolError.Int(),
		ShiftReduceConflicts:  m.diag.ShiftReduceConflicts,
		ReduceReduceConflicts: m.diag.ReduceReduceConflicts,
	}

	for i, r := range m.rules {
		tab.Rules[i] = &spec.Rule{
			LHS:         r.LHS.Int(),
			TokenCount:  r.Len(),
			Description: r.String(),
		}
	}

	tab.Transitions[0] = &spec.Transition{}
	for i, s := range m.states {
		tab.States[i] = &spec.State{
			TerminalOffset:    s.terminalOffset,
			TerminalCount:     s.terminalCount,
			DefaultOffset:     s.defaultOffset,
			NonTerminalOffset: s.nonTerminalOffset,
			NonTerminalCount:  s.nonTerminalCount,
		}

		slot := s.terminalOffset
		for _, sym := range s.Terminals() {
			t, _ := s.TerminalTransition(sym)
			tab.Transitions[slot] = m.flatten(sym, t)
			slot++
		}
		if t := s.Default(); t != nil {
			tab.Transitions[s.defaultOffset] = m.flatten(symbol.SymbolNil, t)
		}
		slot = s.nonTerminalOffset
		for _, sym := range s.NonTerminals() {
			t, _ := s.NonTerminalTransition(sym)
			tab.Transitions[slot] = m.flatten(sym, t)
			slot++
		}
	}

	return tab
}

func (m *StateMachine) flatten(sym symbol.Symbol, t *Transition) *spec.Transition {
	var data int
	switch t.Action {
	case ActionShiftAndPush, ActionPush:
		data = m.StateIndex(t.Target)
	case ActionReduceByRule, ActionReduceAndAccept:
		rp, _ := t.Target.First()
		if !t.Target.IsUnique(rp) {
			panic(fmt.Errorf("a reduction must have exactly one rule: %v", t.Target))
		}
		data = int(rp.Rule)
	}
	return &spec.Transition{
		Token:  sym.Int(),
		Action: t.Action.kind(),
		Data:   data,
	}
}

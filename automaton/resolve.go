package automaton

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/nihei9/ptgen/grammar"
	"github.com/nihei9/ptgen/grammar/symbol"
)

// collapseErrorTokens makes a state whose kernel has just consumed %error throw away lookahead
// tokens it cannot act on.
func (m *StateMachine) collapseErrorTokens(s *State) {
	for _, rp := range s.id.Phases() {
		if rp.Phase == 0 {
			continue
		}
		r := m.ruleOf(rp)
		if r.Tokens[rp.Phase-1] != symbol.SymbolError {
			continue
		}
		if t, ok := s.terminal(symbol.SymbolError); ok && t.IsNontrivial() {
			continue
		}
		s.terminals.Put(symbol.SymbolError.Int(), newTransition(ActionThrowAwayErrorToken))
		tracer().Debugf("state %v: throw away error tokens", s.num)
		return
	}
}

func (m *StateMachine) reduceTransition(rp RulePhase) *Transition {
	action := ActionReduceByRule
	if m.ruleOf(rp).LHS == m.startSym {
		action = ActionReduceAndAccept
	}
	return newTransition(action, rp)
}

// resolveReduceReduce turns competing reductions into reductions on the terminals that can follow
// each rule. When the state also accepts %error, even a single reduction is turned into explicit
// reductions, so that the error handling stays the catch-all of the state.
func (m *StateMachine) resolveReduceReduce(s *State) {
	if s.def == nil {
		return
	}
	acceptsError := s.acceptsError()
	if s.def.Target.Len() <= 1 && !(s.def.Target.Len() == 1 && acceptsError) {
		return
	}

	reductions := s.def.Target.Phases()

	candidates := treemap.NewWithIntComparator() // terminal -> []RulePhase
	for _, rp := range reductions {
		for _, sym := range m.followTerminals(rp) {
			var rps []RulePhase
			if v, ok := candidates.Get(sym.Int()); ok {
				rps = v.([]RulePhase)
			}
			candidates.Put(sym.Int(), append(rps, rp))
		}
	}

	it := candidates.Iterator()
	for it.Next() {
		sym := symbol.Symbol(it.Key().(int))
		rps := it.Value().([]RulePhase)

		if len(rps) > 1 {
			m.diag.ReduceReduceConflicts++
			for _, rp := range rps[1:] {
				s.addConflict(sym, m.reduceTransition(rp))
			}
			tracer().Infof("state %v: reduce/reduce conflict on %v: %v; adopted %v",
				s.num, m.TokenName(sym), rps, m.rules[rps[0].Rule])
		}

		reduce := m.reduceTransition(rps[0])
		if t, ok := s.terminal(sym); ok && t.IsNontrivial() {
			m.diag.ShiftReduceConflicts++
			if acceptsError {
				s.addConflict(sym, reduce)
				tracer().Infof("state %v: shift/reduce conflict on %v: adopted %v", s.num, m.TokenName(sym), t)
				continue
			}
			s.addConflict(sym, t)
			tracer().Infof("state %v: shift/reduce conflict on %v: adopted %v", s.num, m.TokenName(sym), reduce)
		}
		s.terminals.Put(sym.Int(), reduce)
	}

	// The last reduction stays the default unless %error is the catch-all.
	for _, rp := range reductions {
		if s.def.Target.Len() > 1 || acceptsError {
			s.def.Target.Remove(rp)
		}
	}
}

// resolveShiftReduce decides between the default reduction and each shift of a state by precedence
// and associativity.
func (m *StateMachine) resolveShiftReduce(s *State) {
	if s.def == nil || s.def.Target.Len() != 1 {
		return
	}
	defRP, _ := s.def.Target.First()
	defRule := m.ruleOf(defRP)

	for _, sym := range symbolsOf(s.terminals) {
		t, _ := s.terminal(sym)
		if t.Action != ActionShiftAndPush || t.Target.IsEmpty() {
			continue
		}

		cands := t.Target.Phases()
		var order int
		agreed := true
		for i, c := range cands {
			o := compareLevels(m.ruleOf(c).Prec, defRule.Prec)
			if i == 0 {
				order = o
				continue
			}
			if o != order {
				agreed = false
				break
			}
		}
		if !agreed {
			m.diag.addError(semErrPrecLevelMismatch, m.conflictDetail(s, sym, defRule), defRule.Pos)
			continue
		}

		shiftRule := m.ruleOf(cands[0])
		switch {
		case order < 0:
			m.dropShift(s, sym, t, "precedence")
		case order > 0:
			tracer().Debugf("state %v: shift %v (precedence)", s.num, m.TokenName(sym))
		case shiftRule.IsBinaryOperation() && defRule.IsBinaryOperation():
			assoc := shiftRule.Assoc
			agreed := true
			for _, c := range cands[1:] {
				if m.ruleOf(c).Assoc != assoc {
					agreed = false
					break
				}
			}
			if !agreed {
				m.diag.addError(semErrAssocMismatch, m.conflictDetail(s, sym, defRule), defRule.Pos)
				continue
			}
			switch assoc {
			case grammar.AssocLeft:
				m.dropShift(s, sym, t, "left associativity")
			case grammar.AssocRight:
				tracer().Debugf("state %v: shift %v (right associativity)", s.num, m.TokenName(sym))
			case grammar.AssocNonAssoc:
				if defRule.Assoc == grammar.AssocNonAssoc {
					m.diag.addError(semErrNestingOfNonAssoc, m.conflictDetail(s, sym, defRule), defRule.Pos)
				}
			}
		}
	}
}

func (m *StateMachine) dropShift(s *State, sym symbol.Symbol, t *Transition, reason string) {
	tracer().Debugf("state %v: reduce by %v instead of shifting %v (%v)", s.num, s.def.Target, m.TokenName(sym), reason)
	t.Target = NewStateIdentifier()
}

func (m *StateMachine) conflictDetail(s *State, sym symbol.Symbol, defRule *Rule) string {
	return fmt.Sprintf("state %v, terminal %v, rule %v", s.num, m.TokenName(sym), defRule)
}

func compareLevels(l1, l2 int) int {
	switch {
	case l1 < l2:
		return -1
	case l1 > l2:
		return 1
	}
	return 0
}

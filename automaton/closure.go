package automaton

import (
	"fmt"

	"github.com/nihei9/ptgen/grammar/symbol"
)

func (m *StateMachine) ruleOf(rp RulePhase) *Rule {
	if int(rp.Rule) >= len(m.rules) {
		panic(fmt.Errorf("a rule phase refers to an unknown rule: %v", rp))
	}
	r := m.rules[rp.Rule]
	if int(rp.Phase) > r.Len() {
		panic(fmt.Errorf("a phase exceeds the length of the rule: %v, rule: %v", rp, r))
	}
	return r
}

// transitionsFromRulePhase adds the transitions rp contributes to a state into ts. When the dot
// of rp sits before a non-terminal, the rules of the non-terminal are processed recursively at
// phase 0. visited holds the phase-0 items already processed for the state.
func (m *StateMachine) transitionsFromRulePhase(rp RulePhase, ts *transitionSet, visited *StateIdentifier) {
	r := m.ruleOf(rp)
	if r.isFinal(rp) {
		if ts.def == nil {
			action := ActionReduceByRule
			if r.LHS == m.startSym {
				action = ActionReduceAndAccept
			}
			ts.def = newTransition(action)
		}
		ts.def.Target.Insert(rp)
		return
	}

	tok := r.Tokens[rp.Phase]
	switch {
	case tok.IsNil():
		// An undeclared token is reported while the rules are resolved.
		return
	case m.symTab.IsTerminal(tok):
		ts.shiftOn(tok).Target.Insert(rp.Next())
	default:
		if !ts.pushOn(tok).Target.Insert(rp.Next()) {
			return
		}
		spawned := m.rulesOf[tok]
		for _, ri := range spawned {
			s := RulePhase{Rule: ri}
			if !visited.Insert(s) {
				continue
			}
			m.transitionsFromRulePhase(s, ts, visited)
		}
		// A chain of rules starting with non-terminals, like `A → B x` and `B → C y`, needs the
		// push of each link.
		for _, ri := range spawned {
			s := RulePhase{Rule: ri}
			sr := m.rules[ri]
			if sr.isFinal(s) {
				continue
			}
			next := sr.Tokens[0]
			if !m.symTab.IsNonTerminal(next) {
				continue
			}
			ts.pushOn(next).Target.Insert(s.Next())
		}
	}
}

// rightContexts returns the phases right after the occurrences of a non-terminal. An occurrence at
// the end of a rule continues with the occurrences of the owner of that rule.
func (m *StateMachine) rightContexts(nt symbol.Symbol, visited map[symbol.Symbol]struct{}, contexts []RulePhase) []RulePhase {
	if _, ok := visited[nt]; ok {
		return contexts
	}
	visited[nt] = struct{}{}

	for _, occ := range m.occurrences[nt] {
		next := occ.Next()
		r := m.rules[next.Rule]
		if r.isFinal(next) {
			contexts = m.rightContexts(r.LHS, visited, contexts)
			continue
		}
		contexts = append(contexts, next)
	}
	return contexts
}

// followTerminals returns the terminals that can follow a reduction by the rule of rp, looking
// one token past the right context of its owner.
func (m *StateMachine) followTerminals(rp RulePhase) []symbol.Symbol {
	r := m.ruleOf(rp)
	var terms []symbol.Symbol
	seen := map[symbol.Symbol]struct{}{}
	for _, c := range m.rightContexts(r.LHS, map[symbol.Symbol]struct{}{}, nil) {
		ts := newTransitionSet()
		m.transitionsFromRulePhase(c, ts, NewStateIdentifier())
		for _, sym := range symbolsOf(ts.terminals) {
			if _, ok := seen[sym]; ok {
				continue
			}
			seen[sym] = struct{}{}
			terms = append(terms, sym)
		}
	}
	return terms
}

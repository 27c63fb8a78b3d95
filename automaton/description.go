package automaton

import (
	"fmt"
	"io"
	"strings"

	"github.com/nihei9/ptgen/grammar/symbol"
)

// TransitionName renders a transition for humans, e.g. `shift and go to state 3`.
func (m *StateMachine) TransitionName(t *Transition) string {
	switch t.Action {
	case ActionShiftAndPush, ActionPush:
		verb := "shift and go to"
		if t.Action == ActionPush {
			verb = "go to"
		}
		if t.Target.IsEmpty() {
			return fmt.Sprintf("%v nothing", verb)
		}
		if s, ok := m.stateMap[t.Target.key()]; ok {
			return fmt.Sprintf("%v state %v", verb, s.num)
		}
		return fmt.Sprintf("%v %v", verb, m.ItemsOf(t.Target))
	case ActionReduceByRule, ActionReduceAndAccept:
		var rules []string
		for _, rp := range t.Target.Phases() {
			rules = append(rules, fmt.Sprintf("rule %v (%v)", rp.Rule, m.rules[rp.Rule]))
		}
		verb := "reduce by"
		if t.Action == ActionReduceAndAccept {
			verb = "accept by"
		}
		return fmt.Sprintf("%v %v", verb, strings.Join(rules, ", "))
	case ActionThrowAwayErrorToken:
		return "throw away error tokens"
	}
	return t.String()
}

// ItemsOf renders the rule phases of id as dotted rules.
func (m *StateMachine) ItemsOf(id *StateIdentifier) []string {
	var items []string
	for _, rp := range id.Phases() {
		items = append(items, m.Item(rp))
	}
	return items
}

// Item renders a rule phase as a dotted rule.
func (m *StateMachine) Item(rp RulePhase) string {
	r := m.ruleOf(rp)
	names := make([]string, len(r.Tokens))
	for i, sym := range r.Tokens {
		if sym.IsNil() {
			names[i] = "<undefined>"
			continue
		}
		names[i] = m.TokenName(sym)
	}
	return describeItem(m.TokenName(r.LHS), names, int(rp.Phase))
}

// WriteDescription writes the rules and the states of the automaton.
func (m *StateMachine) WriteDescription(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Conflicts\n\n")
	fmt.Fprintf(&b, "%v shift/reduce conflicts, %v reduce/reduce conflicts\n\n", m.diag.ShiftReduceConflicts, m.diag.ReduceReduceConflicts)

	fmt.Fprintf(&b, "# Rules\n\n")
	for _, r := range m.rules {
		fmt.Fprintf(&b, "%4v %v", r.Index, r)
		if r.Prec > 0 {
			fmt.Fprintf(&b, " [prec %v, %v]", r.Prec, r.Assoc)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "\n# States\n")
	for _, s := range m.states {
		fmt.Fprintf(&b, "\n## State %v\n\n", s.num)
		for _, item := range m.ItemsOf(s.id) {
			fmt.Fprintf(&b, "    %v\n", item)
		}
		fmt.Fprintf(&b, "\n")
		for _, sym := range s.Terminals() {
			t, _ := s.TerminalTransition(sym)
			fmt.Fprintf(&b, "    %-12v %v\n", m.TokenName(sym), m.TransitionName(t))
		}
		if t := s.Default(); t != nil {
			fmt.Fprintf(&b, "    %-12v %v\n", "$default", m.TransitionName(t))
		}
		for _, sym := range s.NonTerminals() {
			t, _ := s.NonTerminalTransition(sym)
			fmt.Fprintf(&b, "    %-12v %v\n", m.TokenName(sym), m.TransitionName(t))
		}
		for _, c := range s.conflicts {
			name := "$default"
			if c.Terminal != symbol.SymbolNil {
				name = m.TokenName(c.Terminal)
			}
			fmt.Fprintf(&b, "    %-12v [%v] (conflict)\n", name, m.TransitionName(c.Transition))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

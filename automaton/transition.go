package automaton

import (
	"fmt"

	"github.com/nihei9/ptgen/spec"
)

type Action int

const (
	ActionShiftAndPush Action = iota + 1
	ActionPush
	ActionReduceByRule
	ActionReduceAndAccept
	ActionThrowAwayErrorToken
)

func (a Action) String() string {
	switch a {
	case ActionShiftAndPush:
		return "shift-and-push"
	case ActionPush:
		return "push"
	case ActionReduceByRule:
		return "reduce-by-rule"
	case ActionReduceAndAccept:
		return "reduce-and-accept"
	case ActionThrowAwayErrorToken:
		return "throw-away-error-token"
	}
	return fmt.Sprintf("<invalid action: %d>", int(a))
}

func (a Action) kind() spec.ActionKind {
	switch a {
	case ActionShiftAndPush:
		return spec.ActionKindShiftAndPush
	case ActionPush:
		return spec.ActionKindPush
	case ActionReduceByRule:
		return spec.ActionKindReduceByRule
	case ActionReduceAndAccept:
		return spec.ActionKindReduceAndAccept
	case ActionThrowAwayErrorToken:
		return spec.ActionKindThrowAwayErrorToken
	}
	panic(fmt.Errorf("invalid action: %d", int(a)))
}

// Transition is an action together with its target. Shift and push transitions target the kernel of
// the next state. Reduce and accept transitions target the rule-final phase of the rule to reduce.
type Transition struct {
	Action Action
	Target *StateIdentifier
}

func newTransition(action Action, target ...RulePhase) *Transition {
	return &Transition{
		Action: action,
		Target: NewStateIdentifier(target...),
	}
}

// IsNontrivial reports whether the transition does anything. A transition whose target was cleared
// by conflict resolution is trivial.
func (t *Transition) IsNontrivial() bool {
	return !t.Target.IsEmpty() || t.Action == ActionThrowAwayErrorToken
}

func (t *Transition) isReduce() bool {
	return t.Action == ActionReduceByRule || t.Action == ActionReduceAndAccept
}

// reduceRule returns the rule a reduce transition reduces by.
func (t *Transition) reduceRule() int {
	rp, ok := t.Target.First()
	if !ok || !t.isReduce() {
		panic(fmt.Errorf("not a reduce transition: %v %v", t.Action, t.Target))
	}
	return int(rp.Rule)
}

func (t *Transition) String() string {
	return fmt.Sprintf("%v %v", t.Action, t.Target)
}

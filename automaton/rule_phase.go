package automaton

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// RulePhase is a position within the right-hand side of a rule.
//
// E → E + T
//
//	Phase | Item
//	------+-------------
//	0     | E → ・E + T
//	1     | E → E・+ T
//	2     | E → E +・T
//	3     | E → E + T・   (rule-final)
type RulePhase struct {
	Rule  uint32
	Phase uint32
}

func (rp RulePhase) Next() RulePhase {
	return RulePhase{
		Rule:  rp.Rule,
		Phase: rp.Phase + 1,
	}
}

func (rp RulePhase) String() string {
	return fmt.Sprintf("(%v, %v)", rp.Rule, rp.Phase)
}

func compareRulePhases(a, b interface{}) int {
	rp1 := a.(RulePhase)
	rp2 := b.(RulePhase)
	if c := utils.IntComparator(int(rp1.Rule), int(rp2.Rule)); c != 0 {
		return c
	}
	return utils.IntComparator(int(rp1.Phase), int(rp2.Phase))
}

type stateKey [32]byte

func (k stateKey) String() string {
	return fmt.Sprintf("%x", binary.LittleEndian.Uint32(k[:]))
}

// StateIdentifier is an ordered set of rule phases. A non-empty StateIdentifier identifies a state.
type StateIdentifier struct {
	phases *treeset.Set
}

func NewStateIdentifier(phases ...RulePhase) *StateIdentifier {
	id := &StateIdentifier{
		phases: treeset.NewWith(compareRulePhases),
	}
	for _, rp := range phases {
		id.phases.Add(rp)
	}
	return id
}

// Insert adds rp and reports whether it was not in the set yet.
func (id *StateIdentifier) Insert(rp RulePhase) bool {
	if id.phases.Contains(rp) {
		return false
	}
	id.phases.Add(rp)
	return true
}

func (id *StateIdentifier) Remove(rp RulePhase) {
	id.phases.Remove(rp)
}

func (id *StateIdentifier) Contains(rp RulePhase) bool {
	return id.phases.Contains(rp)
}

// IsUnique reports whether rp is the only element of the set.
func (id *StateIdentifier) IsUnique(rp RulePhase) bool {
	return id.phases.Size() == 1 && id.phases.Contains(rp)
}

// Difference returns the phases of id that other doesn't contain.
func (id *StateIdentifier) Difference(other *StateIdentifier) *StateIdentifier {
	diff := NewStateIdentifier()
	it := id.phases.Iterator()
	for it.Next() {
		rp := it.Value().(RulePhase)
		if other.Contains(rp) {
			continue
		}
		diff.phases.Add(rp)
	}
	return diff
}

func (id *StateIdentifier) Len() int {
	return id.phases.Size()
}

func (id *StateIdentifier) IsEmpty() bool {
	return id.phases.Empty()
}

// Phases returns the elements in ascending order.
func (id *StateIdentifier) Phases() []RulePhase {
	phases := make([]RulePhase, 0, id.phases.Size())
	it := id.phases.Iterator()
	for it.Next() {
		phases = append(phases, it.Value().(RulePhase))
	}
	return phases
}

// First returns the smallest element.
func (id *StateIdentifier) First() (RulePhase, bool) {
	it := id.phases.Iterator()
	if !it.First() {
		return RulePhase{}, false
	}
	return it.Value().(RulePhase), true
}

func (id *StateIdentifier) Clone() *StateIdentifier {
	return NewStateIdentifier(id.Phases()...)
}

func (id *StateIdentifier) Equal(other *StateIdentifier) bool {
	return id.key() == other.key()
}

func (id *StateIdentifier) key() stateKey {
	b := make([]byte, 0, id.phases.Size()*8)
	buf := make([]byte, 4)
	it := id.phases.Iterator()
	for it.Next() {
		rp := it.Value().(RulePhase)
		binary.LittleEndian.PutUint32(buf, rp.Rule)
		b = append(b, buf...)
		binary.LittleEndian.PutUint32(buf, rp.Phase)
		b = append(b, buf...)
	}
	return sha256.Sum256(b)
}

func (id *StateIdentifier) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, rp := range id.Phases() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(rp.String())
	}
	b.WriteString("}")
	return b.String()
}

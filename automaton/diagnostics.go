package automaton

import (
	"fmt"

	verr "github.com/nihei9/ptgen/error"
	"github.com/nihei9/ptgen/grammar"
)

// Diagnostics is the outcome of a generation besides the automaton itself.
type Diagnostics struct {
	// Errors are grammar errors. The tables of a grammar with errors must not be used.
	Errors verr.SpecErrors

	// Conflict counts. Every conflict is resolved, so they don't invalidate the tables.
	ShiftReduceConflicts  int
	ReduceReduceConflicts int
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

func (d *Diagnostics) HasConflicts() bool {
	return d.ShiftReduceConflicts > 0 || d.ReduceReduceConflicts > 0
}

func (d *Diagnostics) addError(cause error, detail string, pos grammar.Position) {
	tracer().Errorf("%v: %v: %v", pos, cause, detail)
	d.Errors = append(d.Errors, &verr.SpecError{
		Cause:  cause,
		Detail: detail,
		Row:    pos.Row,
		Col:    pos.Col,
	})
}

func previouslyDeclared(name string, pos grammar.Position) string {
	if pos.IsZero() {
		return name
	}
	return fmt.Sprintf("%v (previously declared at %v)", name, pos)
}

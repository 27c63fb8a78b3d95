/*
Package automaton builds the pushdown automaton of a table-driven parser from a grammar.

A state is identified by its kernel, a set of rule phases (dotted rules). Starting from the kernel
of the synthetic start rule, Generate computes the closure of each kernel, resolves the
conflicts found there and enqueues the kernels the state shifts or pushes into. Every distinct
kernel is built exactly once, and states are numbered in the order they are built.

Conflicts are resolved in three passes:

  - A state whose kernel has just consumed the %error token throws stale lookahead away.
  - Competing reductions (and a reduction competing with %error) are split up by looking one
    token past the right context of each rule.
  - A remaining reduction competing with shifts is decided by precedence and associativity.

Example:

	b := grammar.NewBuilder("expr")
	b.Token("id", "[0-9]+")
	b.Left("'+'")
	b.Left("'*'")
	b.LHS("expr").Sym("expr", "'+'", "expr").End()
	b.LHS("expr").Sym("expr", "'*'", "expr").End()
	b.LHS("expr").Sym("id").End()

	m, diag := automaton.Generate(b.Grammar())
	if diag.HasErrors() {
		return diag.Errors
	}
	tab := m.Tables()

Generate never stops at the first grammar error. Errors are collected into the Diagnostics so that
a single run reports as many of them as possible, and callers must not use the tables of a
grammar with errors.
*/
package automaton

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ptgen.automaton'.
func tracer() tracing.Trace {
	return tracing.Select("ptgen.automaton")
}

package compiler

import (
	"errors"
	"fmt"
	"io"

	"github.com/nihei9/ptgen/automaton"
	"github.com/nihei9/ptgen/grammar"
	"github.com/nihei9/ptgen/spec"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ptgen.compiler'.
func tracer() tracing.Trace {
	return tracing.Select("ptgen.compiler")
}

// ErrConflicts is returned when FailOnConflicts is enabled and the grammar has conflicts.
var ErrConflicts = errors.New("the grammar has conflicts")

type compileConfig struct {
	failOnConflicts bool
	description     io.Writer
}

type CompileOption func(config *compileConfig)

// FailOnConflicts makes conflicts fatal. By default, conflicts are only counted because they are
// resolved deterministically.
func FailOnConflicts() CompileOption {
	return func(config *compileConfig) {
		config.failOnConflicts = true
	}
}

// WriteDescription makes Compile write a human-readable description of the automaton to w.
func WriteDescription(w io.Writer) CompileOption {
	return func(config *compileConfig) {
		config.description = w
	}
}

// Compile generates the parsing table and the lexical specification of a grammar. When the grammar
// has errors, Compile returns them as verr.SpecErrors together with the Diagnostics.
func Compile(g *grammar.Grammar, opts ...CompileOption) (*spec.CompiledGrammar, *automaton.Diagnostics, error) {
	config := &compileConfig{}
	for _, opt := range opts {
		opt(config)
	}

	m, diag := automaton.Generate(g)
	if diag.HasErrors() {
		diag.Errors.Sort()
		return nil, diag, diag.Errors
	}

	if config.description != nil {
		err := m.WriteDescription(config.description)
		if err != nil {
			return nil, diag, fmt.Errorf("failed to write a description: %w", err)
		}
	}

	if config.failOnConflicts && diag.HasConflicts() {
		return nil, diag, fmt.Errorf("%w: %v shift/reduce, %v reduce/reduce", ErrConflicts, diag.ShiftReduceConflicts, diag.ReduceReduceConflicts)
	}

	lexSpec, err := compileLexicalSpec(g.Name, m)
	if err != nil {
		return nil, diag, err
	}

	tab := m.Tables()
	tracer().Infof("%v: %v states, %v transitions", g.Name, len(tab.States), len(tab.Transitions)-1)

	return &spec.CompiledGrammar{
		Name:                 g.Name,
		LexicalSpecification: lexSpec,
		ParsingTable:         tab,
	}, diag, nil
}

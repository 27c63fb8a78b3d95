package compiler

import (
	"fmt"
	"io"
	"strings"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mlspec "github.com/nihei9/maleeni/spec"
	"github.com/nihei9/ptgen/automaton"
	"github.com/nihei9/ptgen/grammar"
	"github.com/nihei9/ptgen/grammar/symbol"
	"github.com/nihei9/ptgen/spec"
)

// kindName names the lexical kind of a terminal. Terminal names like `'+'` are not valid kind names,
// so every kind is named after the id of its terminal.
func kindName(sym symbol.Symbol) mlspec.LexKindName {
	return mlspec.LexKindName(fmt.Sprintf("x_%v", sym.Int()))
}

// lexSpecName turns a grammar name into a lexical specification name. maleeni only accepts lower-case
// letters, digits, and single underscores between them, starting with a letter.
func lexSpecName(gramName string) string {
	var b strings.Builder
	underscore := false
	for _, c := range strings.ToLower(gramName) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if underscore && b.Len() > 0 {
				b.WriteByte('_')
			}
			underscore = false
			b.WriteRune(c)
			continue
		}
		underscore = true
	}
	name := b.String()
	switch {
	case name == "":
		return "grammar"
	case name[0] >= '0' && name[0] <= '9':
		return "g_" + name
	}
	return name
}

// compileLexicalSpec builds a lexer for the terminals of a grammar. Single-character terminals come
// first so that they take precedence over the patterns of declared terminals.
func compileLexicalSpec(gramName string, m *automaton.StateMachine) (*spec.LexicalSpecification, error) {
	symTab := m.Symbols()

	var literals []*mlspec.LexEntry
	var named []*mlspec.LexEntry
	kind2Sym := map[mlspec.LexKindName]symbol.Symbol{}
	skipKinds := map[mlspec.LexKindName]struct{}{}
	for _, sym := range symTab.TerminalSymbols() {
		if sym == symbol.SymbolEOF || sym == symbol.SymbolError {
			continue
		}
		name := m.TokenName(sym)
		kind := kindName(sym)

		decl, declared := m.TokenDecl(sym)
		switch {
		case declared && decl.Pattern != "":
			named = append(named, &mlspec.LexEntry{
				Kind:    kind,
				Pattern: mlspec.LexPattern(decl.Pattern),
			})
			if decl.Skip {
				skipKinds[kind] = struct{}{}
			}
		case grammar.IsCharacterLiteral(name):
			c, _ := grammar.CharacterOf(name)
			literals = append(literals, &mlspec.LexEntry{
				Kind:    kind,
				Pattern: mlspec.LexPattern(mlspec.EscapePattern(c)),
			})
		default:
			tracer().Infof("terminal %v has no pattern; the lexer never produces it", name)
			continue
		}
		kind2Sym[kind] = sym
	}

	entries := append(literals, named...)
	if len(entries) == 0 {
		tracer().Infof("the grammar has no patterns; no lexer is generated")
		return nil, nil
	}

	clspec, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
		Name:    lexSpecName(gramName),
		Entries: entries,
	}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, m, kind2Sym, cErrs[0])
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, m, kind2Sym, cerr)
			}
			return nil, fmt.Errorf("%v", b.String())
		}
		return nil, err
	}

	kind2Term := make([]int, len(clspec.KindNames))
	term2Kind := make([]int, symTab.TerminalCount())
	skip := make([]int, len(clspec.KindNames))
	for i, k := range clspec.KindNames {
		if k == mlspec.LexKindNameNil {
			kind2Term[mlspec.LexKindIDNil] = symbol.SymbolNil.Int()
			continue
		}

		sym, ok := kind2Sym[k]
		if !ok {
			return nil, fmt.Errorf("a lexical kind '%v' has no terminal", k)
		}
		kind2Term[i] = sym.Int()
		term2Kind[sym.Int()] = i
		if _, ok := skipKinds[k]; ok {
			skip[i] = 1
		}
	}

	return &spec.LexicalSpecification{
		Lexer: "maleeni",
		Maleeni: &spec.Maleeni{
			Spec:           clspec,
			KindToTerminal: kind2Term,
			TerminalToKind: term2Kind,
			Skip:           skip,
		},
	}, nil
}

func writeCompileError(w io.Writer, m *automaton.StateMachine, kind2Sym map[mlspec.LexKindName]symbol.Symbol, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	if sym, ok := kind2Sym[cErr.Kind]; ok {
		fmt.Fprintf(w, "%v: %v", m.TokenName(sym), cErr.Cause)
	} else {
		fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	}
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

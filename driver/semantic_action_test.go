package driver

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type testSemAct struct {
	gram   Grammar
	events []string
}

func (a *testSemAct) Shift(tok VToken, recovered bool) {
	if tok.EOF() {
		a.events = append(a.events, "shift <eof>")
		return
	}
	a.events = append(a.events, fmt.Sprintf("shift %v", string(tok.Lexeme())))
}

func (a *testSemAct) Reduce(rule int, recovered bool) {
	a.events = append(a.events, fmt.Sprintf("reduce %v/%v", a.gram.TokenName(a.gram.LHS(rule)), a.gram.TokenCount(rule)))
}

func (a *testSemAct) Accept() {
	a.events = append(a.events, "accept")
}

func (a *testSemAct) TrapAndShiftError(cause VToken, popped int) {
	a.events = append(a.events, fmt.Sprintf("trap %v %v", string(cause.Lexeme()), popped))
}

func (a *testSemAct) MissError(cause VToken) {
	a.events = append(a.events, "miss")
}

func TestParserWithSemanticAction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ptgen.driver")
	defer teardown()

	tests := []struct {
		caption string
		src     string
		events  []string
	}{
		{
			caption: "the parser calls the actions in the order of the derivation",
			src:     "1+2",
			events: []string{
				"shift 1",
				"reduce expr/1",
				"shift +",
				"shift 2",
				"reduce expr/1",
				"reduce expr/3",
				"shift <eof>",
				"accept",
			},
		},
		{
			caption: "the parser calls MissError when no state traps an error",
			src:     "1 2",
			events: []string{
				"shift 1",
				"reduce expr/1",
				"miss",
			},
		},
	}
	cg := compile(t, genExprGrammar())
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			gram := NewGrammar(cg)
			semAct := &testSemAct{
				gram: gram,
			}
			toks, err := NewTokenStream(cg, strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			p, err := NewParser(toks, gram, SemanticAction(semAct))
			if err != nil {
				t.Fatal(err)
			}
			err = p.Parse()
			if err != nil {
				t.Fatal(err)
			}
			if strings.Join(semAct.events, "\n") != strings.Join(tt.events, "\n") {
				t.Fatalf("unexpected events; want: %v, got: %v", tt.events, semAct.events)
			}
		})
	}

	t.Run("the error symbol replaces the popped frames", func(t *testing.T) {
		cg := compile(t, genStatementGrammar())
		gram := NewGrammar(cg)
		semAct := &testSemAct{
			gram: gram,
		}
		toks, err := NewTokenStream(cg, strings.NewReader("a b;"))
		if err != nil {
			t.Fatal(err)
		}
		p, err := NewParser(toks, gram, SemanticAction(semAct))
		if err != nil {
			t.Fatal(err)
		}
		err = p.Parse()
		if err != nil {
			t.Fatal(err)
		}
		want := []string{
			"shift a",
			"trap b 1",
			"shift ;",
			"reduce stmt/2",
			"reduce stmts/1",
			"shift <eof>",
			"accept",
		}
		if strings.Join(semAct.events, "\n") != strings.Join(want, "\n") {
			t.Fatalf("unexpected events; want: %v, got: %v", want, semAct.events)
		}
	})

	t.Run("MakeCST and SemanticAction are exclusive", func(t *testing.T) {
		_, err := NewParser(nil, NewGrammar(cg), MakeCST(), SemanticAction(&testSemAct{}))
		if err == nil {
			t.Fatal("an error must occur")
		}
	})
}

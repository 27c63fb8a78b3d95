package driver

import (
	"strings"
	"testing"

	"github.com/nihei9/ptgen/compiler"
	"github.com/nihei9/ptgen/grammar"
	"github.com/nihei9/ptgen/spec"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func termNode(kind string, text string) *Node {
	return &Node{
		KindName: kind,
		Text:     text,
	}
}

func errorNode() *Node {
	return &Node{
		KindName: grammar.TerminalNameError,
		Error:    true,
	}
}

func nonTermNode(kind string, children ...*Node) *Node {
	return &Node{
		KindName: kind,
		Children: children,
	}
}

func testTree(t *testing.T, node, expected *Node) {
	t.Helper()

	if node == nil {
		t.Fatalf("unexpected node; want: %v, got: nil", expected.KindName)
	}
	if node.KindName != expected.KindName || node.Text != expected.Text || node.Error != expected.Error {
		t.Fatalf("unexpected node; want: %+v, got: %+v", expected, node)
	}
	if len(node.Children) != len(expected.Children) {
		t.Fatalf("unexpected children of %v; want: %v, got: %v", node.KindName, len(expected.Children), len(node.Children))
	}
	for i, c := range node.Children {
		testTree(t, c, expected.Children[i])
	}
}

func compile(t *testing.T, g *grammar.Grammar) *spec.CompiledGrammar {
	t.Helper()

	cg, _, err := compiler.Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	return cg
}

func parse(t *testing.T, cg *spec.CompiledGrammar, src string) *Parser {
	t.Helper()

	toks, err := NewTokenStream(cg, strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewParser(toks, NewGrammar(cg), MakeCST())
	if err != nil {
		t.Fatal(err)
	}
	err = p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func genExprGrammar() *grammar.Grammar {
	b := grammar.NewBuilder("expr")
	b.Token("id", "[0-9]+")
	b.Skip("ws", "[\\u{0009}\\u{0020}]+")
	b.Left("'+'")
	b.Left("'-'")
	b.Left("'*'")
	b.LHS("expr").Sym("expr", "'+'", "expr").End()
	b.LHS("expr").Sym("expr", "'-'", "expr").End()
	b.LHS("expr").Sym("expr", "'*'", "expr").End()
	b.LHS("expr").Sym("'('", "expr", "')'").End()
	b.LHS("expr").Sym("id").End()
	return b.Grammar()
}

func TestParser_Parse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ptgen.driver")
	defer teardown()

	id := func(text string) *Node {
		return nonTermNode("expr", termNode("id", text))
	}

	tests := []struct {
		caption string
		src     string
		cst     *Node
	}{
		{
			caption: "'*' binds tighter than '+' on the right",
			src:     "1+2*3",
			cst: nonTermNode("expr",
				id("1"),
				termNode("'+'", "+"),
				nonTermNode("expr",
					id("2"),
					termNode("'*'", "*"),
					id("3"),
				),
			),
		},
		{
			caption: "'*' binds tighter than '+' on the left",
			src:     "1*2+3",
			cst: nonTermNode("expr",
				nonTermNode("expr",
					id("1"),
					termNode("'*'", "*"),
					id("2"),
				),
				termNode("'+'", "+"),
				id("3"),
			),
		},
		{
			caption: "a left-associative operator groups to the left",
			src:     "1 - 2 - 3",
			cst: nonTermNode("expr",
				nonTermNode("expr",
					id("1"),
					termNode("'-'", "-"),
					id("2"),
				),
				termNode("'-'", "-"),
				id("3"),
			),
		},
		{
			caption: "parentheses override precedence",
			src:     "(1+2)*3",
			cst: nonTermNode("expr",
				nonTermNode("expr",
					termNode("'('", "("),
					nonTermNode("expr",
						id("1"),
						termNode("'+'", "+"),
						id("2"),
					),
					termNode("')'", ")"),
				),
				termNode("'*'", "*"),
				id("3"),
			),
		},
	}
	cg := compile(t, genExprGrammar())
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			p := parse(t, cg, tt.src)
			if len(p.SyntaxErrors()) > 0 {
				t.Fatalf("unexpected syntax errors: %v", p.SyntaxErrors())
			}
			testTree(t, p.CST(), tt.cst)
		})
	}
}

func TestParser_Parse_EmptyRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ptgen.driver")
	defer teardown()

	b := grammar.NewBuilder("list")
	b.Token("id", "[a-z]+")
	b.Skip("ws", " +")
	b.LHS("list").Sym("'['", "elems", "']'").End()
	b.LHS("elems").Sym("elems", "id").End()
	b.LHS("elems").Sym().End()
	cg := compile(t, b.Grammar())

	p := parse(t, cg, "[a b]")
	if len(p.SyntaxErrors()) > 0 {
		t.Fatalf("unexpected syntax errors: %v", p.SyntaxErrors())
	}
	testTree(t, p.CST(), nonTermNode("list",
		termNode("'['", "["),
		nonTermNode("elems",
			nonTermNode("elems",
				nonTermNode("elems"),
				termNode("id", "a"),
			),
			termNode("id", "b"),
		),
		termNode("']'", "]"),
	))
}

func genStatementGrammar() *grammar.Grammar {
	b := grammar.NewBuilder("stmts")
	b.Token("id", "[a-z]+")
	b.Skip("ws", " +")
	b.LHS("stmts").Sym("stmts", "stmt").End()
	b.LHS("stmts").Sym("stmt").End()
	b.LHS("stmt").Sym("id", "';'").End()
	b.LHS("stmt").Sym("%error", "';'").End()
	return b.Grammar()
}

func TestParser_Parse_ErrorRecovery(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ptgen.driver")
	defer teardown()

	stmt := func(text string) *Node {
		return nonTermNode("stmt", termNode("id", text), termNode("';'", ";"))
	}
	errStmt := nonTermNode("stmt", errorNode(), termNode("';'", ";"))

	tests := []struct {
		caption     string
		src         string
		synErrCount int
		cst         *Node
	}{
		{
			caption:     "the parser discards the tokens following an error until it can shift",
			src:         "a; b c d; e;",
			synErrCount: 1,
			cst: nonTermNode("stmts",
				nonTermNode("stmts",
					nonTermNode("stmts", stmt("a")),
					errStmt,
				),
				stmt("e"),
			),
		},
		{
			caption:     "the parser can trap an error at the beginning of an input",
			src:         "; a;",
			synErrCount: 1,
			cst: nonTermNode("stmts",
				nonTermNode("stmts", errStmt),
				stmt("a"),
			),
		},
		{
			caption:     "an error in the error state is not reported twice",
			src:         "a b; c d; e; f; g;",
			synErrCount: 1,
		},
		{
			caption:     "an error is reported again after the parser leaves the error state",
			src:         "a b; c; d; e; f g;",
			synErrCount: 2,
		},
	}
	cg := compile(t, genStatementGrammar())
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			p := parse(t, cg, tt.src)
			if len(p.SyntaxErrors()) != tt.synErrCount {
				t.Fatalf("unexpected syntax error count; want: %v, got: %v", tt.synErrCount, len(p.SyntaxErrors()))
			}
			if tt.cst != nil {
				testTree(t, p.CST(), tt.cst)
			}
		})
	}
}

func TestParser_Parse_SyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ptgen.driver")
	defer teardown()

	tests := []struct {
		caption  string
		src      string
		cause    string
		expected []string
	}{
		{
			caption:  "the parser reports the terminals a state expects",
			src:      "1+",
			cause:    "",
			expected: []string{"id", "'('"},
		},
		{
			caption:  "the parser reports an invalid token",
			src:      "1+?",
			cause:    "?",
			expected: []string{"id", "'('"},
		},
	}
	cg := compile(t, genExprGrammar())
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			p := parse(t, cg, tt.src)
			synErrs := p.SyntaxErrors()
			if len(synErrs) != 1 {
				t.Fatalf("unexpected syntax error count; want: 1, got: %v", len(synErrs))
			}
			synErr := synErrs[0]
			if string(synErr.Token.Lexeme()) != tt.cause {
				t.Fatalf("unexpected cause; want: %q, got: %q", tt.cause, synErr.Token.Lexeme())
			}
			if len(synErr.ExpectedTerminals) != len(tt.expected) {
				t.Fatalf("unexpected expected terminals; want: %v, got: %v", tt.expected, synErr.ExpectedTerminals)
			}
			want := map[string]bool{}
			for _, e := range tt.expected {
				want[e] = true
			}
			for _, e := range synErr.ExpectedTerminals {
				if !want[e] {
					t.Fatalf("unexpected expected terminals; want: %v, got: %v", tt.expected, synErr.ExpectedTerminals)
				}
			}
			if p.CST() != nil {
				t.Fatal("a CST must not be built when no state traps an error")
			}
		})
	}
}

func TestNewTokenStream(t *testing.T) {
	b := grammar.NewBuilder("abstract")
	b.Token("a", "")
	b.LHS("s").Sym("a").End()
	cg := compile(t, b.Grammar())

	_, err := NewTokenStream(cg, strings.NewReader("a"))
	if err == nil {
		t.Fatal("a grammar without a lexical specification cannot tokenize an input")
	}
}

func TestPrintTree(t *testing.T) {
	var b strings.Builder
	PrintTree(&b, nonTermNode("stmt", errorNode(), termNode("';'", ";")))
	want := `stmt
├─ !%error
└─ ';' ";"
`
	if b.String() != want {
		t.Fatalf("unexpected tree; want:\n%v\ngot:\n%v", want, b.String())
	}
}

package grammar

import (
	"strings"
	"testing"
)

func TestRule_IsBinaryOperation(t *testing.T) {
	tests := []struct {
		caption string
		owner   string
		tokens  []string
		binary  bool
	}{
		{
			caption: "a binary operation",
			owner:   "expr",
			tokens:  []string{"expr", "'+'", "expr"},
			binary:  true,
		},
		{
			caption: "the operator is the owner itself",
			owner:   "expr",
			tokens:  []string{"expr", "expr", "expr"},
		},
		{
			caption: "the right operand is another nonterminal",
			owner:   "expr",
			tokens:  []string{"expr", "'+'", "term"},
		},
		{
			caption: "too short",
			owner:   "expr",
			tokens:  []string{"expr", "'+'"},
		},
		{
			caption: "too long",
			owner:   "expr",
			tokens:  []string{"expr", "'+'", "expr", "'+'"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			r := &Rule{}
			for _, name := range tt.tokens {
				r.Tokens = append(r.Tokens, &RuleToken{Name: name})
			}
			if r.IsBinaryOperation(tt.owner) != tt.binary {
				t.Fatalf("unexpected result; want: %v, got: %v", tt.binary, !tt.binary)
			}
		})
	}
}

func TestIsCharacterLiteral(t *testing.T) {
	tests := []struct {
		name    string
		literal bool
		char    string
	}{
		{name: "'+'", literal: true, char: "+"},
		{name: "'é'", literal: true, char: "é"},
		{name: "'=='"},
		{name: "''"},
		{name: "plus"},
		{name: "'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsCharacterLiteral(tt.name) != tt.literal {
				t.Fatalf("unexpected result; want: %v", tt.literal)
			}
			c, ok := CharacterOf(tt.name)
			if ok != tt.literal || c != tt.char {
				t.Fatalf("unexpected character; want: %q, got: %q", tt.char, c)
			}
		})
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder("test")
	b.Token("id", "[a-z]+")
	b.Left("'+'")
	b.Left("'-'")
	b.LHS("expr").Sym("expr", "'+'", "expr").End()
	b.LHS("expr").Var("id", "x").Action("$$ = x").End()
	b.LHS("empty").End()
	g := b.Grammar()

	if g.Start == nil || g.Start.Name != "expr" {
		t.Fatalf("the first nonterminal must become the start symbol; got: %+v", g.Start)
	}
	if len(g.Nonterminals) != 2 {
		t.Fatalf("unexpected nonterminal count; want: 2, got: %v", len(g.Nonterminals))
	}
	expr := g.Nonterminals[0]
	if len(expr.Rules) != 2 {
		t.Fatalf("unexpected rule count; want: 2, got: %v", len(expr.Rules))
	}
	if !expr.Rules[0].IsBinaryOperation("expr") {
		t.Fatalf("the first rule must be a binary operation")
	}
	if v := expr.Rules[1].Tokens[0].Variable; v != "x" {
		t.Fatalf("unexpected variable; want: x, got: %v", v)
	}
	if len(g.Nonterminals[1].Rules[0].Tokens) != 0 {
		t.Fatalf("an empty rule must have no tokens")
	}

	if len(g.Precedences) != 2 {
		t.Fatalf("unexpected precedence count; want: 2, got: %v", len(g.Precedences))
	}
	if g.Precedences[0].Pos.Row >= g.Precedences[1].Pos.Row {
		t.Fatalf("precedences must be numbered in declaration order")
	}
	if g.Tokens[0].Pos.Row >= g.Precedences[0].Pos.Row {
		t.Fatalf("declarations must be numbered in order; token: %v, precedence: %v", g.Tokens[0].Pos, g.Precedences[0].Pos)
	}
}

func TestRead(t *testing.T) {
	src := `
{
  "name": "test",
  "start": {"name": "expr", "pos": {"row": 1, "col": 1}},
  "tokens": [
    {"name": "id", "pattern": "[a-z]+", "pos": {"row": 2, "col": 1}},
    {"name": "ws", "pattern": "[ ]+", "skip": true}
  ],
  "precedences": [
    {"name": "'='", "assoc": "nonassoc"},
    {"name": "'+'", "assoc": "left"},
    {"name": "'^'", "assoc": "right"}
  ],
  "nonterminals": [
    {
      "name": "expr",
      "rules": [
        {"tokens": [{"name": "expr"}, {"name": "'+'"}, {"name": "expr"}], "action": "add"},
        {"tokens": [{"name": "id", "var": "v"}]}
      ]
    }
  ]
}
`
	g, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "test" || g.Start.Name != "expr" || g.Start.Pos.Row != 1 {
		t.Fatalf("unexpected header: %v %+v", g.Name, g.Start)
	}
	if !g.Tokens[1].Skip || g.Tokens[0].Pos.Row != 2 {
		t.Fatalf("unexpected tokens: %+v %+v", g.Tokens[0], g.Tokens[1])
	}
	wantAssoc := []Associativity{AssocNonAssoc, AssocLeft, AssocRight}
	for i, p := range g.Precedences {
		if p.Assoc != wantAssoc[i] {
			t.Fatalf("unexpected associativity of %v; want: %v, got: %v", p.Name, wantAssoc[i], p.Assoc)
		}
	}
	rules := g.Nonterminals[0].Rules
	if rules[0].Action != "add" || rules[0].Assoc != AssocLeft || rules[1].Tokens[0].Variable != "v" {
		t.Fatalf("unexpected rules: %+v %+v", rules[0], rules[1])
	}

	t.Run("invalid associativity", func(t *testing.T) {
		_, err := Read(strings.NewReader(`{"precedences": [{"name": "x", "assoc": "up"}]}`))
		if err == nil {
			t.Fatal("an error must be returned")
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Read(strings.NewReader(`{"nonterminal": []}`))
		if err == nil {
			t.Fatal("an error must be returned")
		}
	})

	t.Run("unnamed token", func(t *testing.T) {
		_, err := Read(strings.NewReader(`{"nonterminals": [{"name": "a", "rules": [{"tokens": [{}]}]}]}`))
		if err == nil {
			t.Fatal("an error must be returned")
		}
	})
}

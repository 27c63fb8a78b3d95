package symbol

import "testing"

func TestSymbol(t *testing.T) {
	tab := NewSymbolTable("END_", "%error")
	w := tab.Writer()
	_, _ = w.RegisterTerminalSymbol("id")
	_, _ = w.RegisterTerminalSymbol("'+'")
	_, _ = w.RegisterTerminalSymbol("'*'")
	_, _ = w.RegisterStartSymbol("expr'")
	_, _ = w.RegisterNonTerminalSymbol("expr")
	_, _ = w.RegisterNonTerminalSymbol("term")

	texts := []string{
		"END_",
		"%error",
		"id",
		"'+'",
		"'*'",
		"expr'",
		"expr",
		"term",
	}

	tests := []struct {
		text          string
		sym           Symbol
		isTerminal    bool
		isNonTerminal bool
	}{
		{text: "END_", sym: SymbolEOF, isTerminal: true},
		{text: "%error", sym: SymbolError, isTerminal: true},
		{text: "id", sym: 2, isTerminal: true},
		{text: "'+'", sym: 3, isTerminal: true},
		{text: "'*'", sym: 4, isTerminal: true},
		{text: "expr'", sym: 5, isNonTerminal: true},
		{text: "expr", sym: 6, isNonTerminal: true},
		{text: "term", sym: 7, isNonTerminal: true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r := tab.Reader()
			sym, ok := r.ToSymbol(tt.text)
			if !ok {
				t.Fatalf("symbol was not found")
			}
			if sym != tt.sym {
				t.Fatalf("unexpected symbol; want: %v, got: %v", tt.sym, sym)
			}
			if r.IsTerminal(sym) != tt.isTerminal {
				t.Fatalf("unexpected terminal flag; want: %v", tt.isTerminal)
			}
			if r.IsNonTerminal(sym) != tt.isNonTerminal {
				t.Fatalf("unexpected non-terminal flag; want: %v", tt.isNonTerminal)
			}
			text, ok := r.ToText(sym)
			if !ok {
				t.Fatalf("text was not found")
			}
			if text != tt.text {
				t.Fatalf("unexpected text; want: %v, got: %v", tt.text, text)
			}
		})
	}

	t.Run("texts", func(t *testing.T) {
		r := tab.Reader()
		if r.StartSymbol() != 5 {
			t.Fatalf("unexpected start symbol; want: 5, got: %v", r.StartSymbol())
		}
		if r.TerminalCount() != 5 {
			t.Fatalf("unexpected terminal count; want: 5, got: %v", r.TerminalCount())
		}
		got := r.Texts()
		if len(got) != len(texts) {
			t.Fatalf("unexpected texts; want: %v, got: %v", texts, got)
		}
		for i, text := range texts {
			if got[i] != text {
				t.Fatalf("unexpected text; want: %v, got: %v", text, got[i])
			}
		}
		if len(r.TerminalSymbols()) != 5 || len(r.NonTerminalSymbols()) != 3 {
			t.Fatalf("unexpected symbol lists; terminals: %v, non-terminals: %v", r.TerminalSymbols(), r.NonTerminalSymbols())
		}
	})

	t.Run("registering a symbol twice returns the same id", func(t *testing.T) {
		sym, err := w.RegisterNonTerminalSymbol("expr")
		if err != nil {
			t.Fatal(err)
		}
		if sym != 6 {
			t.Fatalf("unexpected symbol; want: 6, got: %v", sym)
		}
		sym, err = w.RegisterTerminalSymbol("id")
		if err != nil {
			t.Fatal(err)
		}
		if sym != 2 {
			t.Fatalf("unexpected symbol; want: 2, got: %v", sym)
		}
	})

	t.Run("a terminal after non-terminals is rejected", func(t *testing.T) {
		_, err := w.RegisterTerminalSymbol("'-'")
		if err == nil {
			t.Fatal("an error must occur")
		}
	})

	t.Run("a kind clash is rejected", func(t *testing.T) {
		_, err := w.RegisterNonTerminalSymbol("id")
		if err == nil {
			t.Fatal("an error must occur")
		}
	})

	t.Run("unknown symbols", func(t *testing.T) {
		r := tab.Reader()
		if _, ok := r.ToSymbol("unknown"); ok {
			t.Fatal("an unknown symbol must not be found")
		}
		if _, ok := r.ToText(SymbolNil); ok {
			t.Fatal("the nil symbol has no text")
		}
		if r.IsTerminal(SymbolNil) || r.IsNonTerminal(SymbolNil) {
			t.Fatal("the nil symbol has no kind")
		}
	})
}

package symbol

import (
	"fmt"
	"strconv"
)

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
)

func (t symbolKind) String() string {
	return string(t)
}

// Symbol is a token id. Terminals and non-terminals share one dense id space: all terminals come
// first, so a generated parser can tell them apart by comparing an id with the terminal count.
type Symbol int

const (
	SymbolNil   = Symbol(-1)
	SymbolEOF   = Symbol(0)
	SymbolError = Symbol(1)

	symbolNumMax = Symbol(0xffff)
)

func (s Symbol) Int() int {
	return int(s)
}

func (s Symbol) IsNil() bool {
	return s < 0
}

func (s Symbol) String() string {
	if s.IsNil() {
		return "<nil>"
	}
	return strconv.Itoa(int(s))
}

// SymbolTable assigns token ids. The end-of-input and the error symbols are registered from the start.
type SymbolTable struct {
	text2Sym map[string]Symbol
	texts    []string
	kinds    []symbolKind
	termNum  int
	start    Symbol
}

type SymbolTableWriter struct {
	*SymbolTable
}

type SymbolTableReader struct {
	*SymbolTable
}

func NewSymbolTable(eofText string, errorText string) *SymbolTable {
	return &SymbolTable{
		text2Sym: map[string]Symbol{
			eofText:   SymbolEOF,
			errorText: SymbolError,
		},
		texts: []string{
			eofText,
			errorText,
		},
		kinds: []symbolKind{
			symbolKindTerminal,
			symbolKindTerminal,
		},
		termNum: 2,
		start:   SymbolNil,
	}
}

func (t *SymbolTable) Writer() *SymbolTableWriter {
	return &SymbolTableWriter{
		SymbolTable: t,
	}
}

func (t *SymbolTable) Reader() *SymbolTableReader {
	return &SymbolTableReader{
		SymbolTable: t,
	}
}

func (w *SymbolTableWriter) register(text string, kind symbolKind) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok {
		if w.kinds[sym] != kind {
			return SymbolNil, fmt.Errorf("'%v' is already registered as a %v", text, w.kinds[sym])
		}
		return sym, nil
	}
	sym := Symbol(len(w.texts))
	if sym > symbolNumMax {
		return SymbolNil, fmt.Errorf("a symbol number exceeds the limit; limit: %v, passed: %v", symbolNumMax, sym)
	}
	w.text2Sym[text] = sym
	w.texts = append(w.texts, text)
	w.kinds = append(w.kinds, kind)
	return sym, nil
}

// RegisterTerminalSymbol returns the id of a terminal, registering it when it is new. All terminals
// must be registered before the first non-terminal.
func (w *SymbolTableWriter) RegisterTerminalSymbol(text string) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok && w.kinds[sym] == symbolKindTerminal {
		return sym, nil
	}
	if len(w.texts) > w.termNum {
		return SymbolNil, fmt.Errorf("a terminal cannot be registered after non-terminals: %v", text)
	}
	sym, err := w.register(text, symbolKindTerminal)
	if err != nil {
		return SymbolNil, err
	}
	w.termNum++
	return sym, nil
}

// RegisterStartSymbol registers the augmented start symbol. It must be the first non-terminal.
func (w *SymbolTableWriter) RegisterStartSymbol(text string) (Symbol, error) {
	if !w.start.IsNil() {
		return SymbolNil, fmt.Errorf("a start symbol is already registered: %v", w.texts[w.start])
	}
	if len(w.texts) > w.termNum {
		return SymbolNil, fmt.Errorf("a start symbol must be registered before other non-terminals")
	}
	sym, err := w.register(text, symbolKindNonTerminal)
	if err != nil {
		return SymbolNil, err
	}
	w.start = sym
	return sym, nil
}

func (w *SymbolTableWriter) RegisterNonTerminalSymbol(text string) (Symbol, error) {
	return w.register(text, symbolKindNonTerminal)
}

func (r *SymbolTableReader) ToSymbol(text string) (Symbol, bool) {
	if sym, ok := r.text2Sym[text]; ok {
		return sym, true
	}
	return SymbolNil, false
}

func (r *SymbolTableReader) ToText(sym Symbol) (string, bool) {
	if sym < 0 || sym.Int() >= len(r.texts) {
		return "", false
	}
	return r.texts[sym], true
}

func (r *SymbolTableReader) IsTerminal(sym Symbol) bool {
	return sym >= 0 && sym.Int() < r.termNum
}

func (r *SymbolTableReader) IsNonTerminal(sym Symbol) bool {
	return sym.Int() >= r.termNum && sym.Int() < len(r.texts)
}

func (r *SymbolTableReader) StartSymbol() Symbol {
	return r.start
}

func (r *SymbolTableReader) TerminalCount() int {
	return r.termNum
}

func (r *SymbolTableReader) SymbolCount() int {
	return len(r.texts)
}

func (r *SymbolTableReader) TerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, r.termNum)
	for sym := 0; sym < r.termNum; sym++ {
		syms = append(syms, Symbol(sym))
	}
	return syms
}

func (r *SymbolTableReader) NonTerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, len(r.texts)-r.termNum)
	for sym := r.termNum; sym < len(r.texts); sym++ {
		syms = append(syms, Symbol(sym))
	}
	return syms
}

// Texts returns the names of all symbols indexed by their ids.
func (r *SymbolTableReader) Texts() []string {
	texts := make([]string, len(r.texts))
	copy(texts, r.texts)
	return texts
}

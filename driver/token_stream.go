package driver

import (
	"fmt"
	"io"

	mldriver "github.com/nihei9/maleeni/driver"
	"github.com/nihei9/ptgen/spec"
)

type VToken interface {
	// TerminalID returns a terminal ID. An invalid token has no terminal and returns -1.
	TerminalID() int

	// Lexeme returns a lexeme.
	Lexeme() []byte

	// EOF returns true when a token represents EOF.
	EOF() bool

	// Invalid returns true when a token is invalid.
	Invalid() bool

	// Position returns (row, column) pair.
	Position() (int, int)
}

type TokenStream interface {
	Next() (VToken, error)
}

type vToken struct {
	terminalID int
	tok        *mldriver.Token
}

func (t *vToken) TerminalID() int {
	return t.terminalID
}

func (t *vToken) Lexeme() []byte {
	return t.tok.Lexeme
}

func (t *vToken) EOF() bool {
	return t.tok.EOF
}

func (t *vToken) Invalid() bool {
	return t.tok.Invalid
}

func (t *vToken) Position() (int, int) {
	return t.tok.Row, t.tok.Col
}

type tokenStream struct {
	lex            *mldriver.Lexer
	kindToTerminal []int
	skip           []int
	eof            int
}

// NewTokenStream tokenizes a source with the lexical specification of a compiled grammar. Tokens of
// skip kinds never reach the parser.
func NewTokenStream(g *spec.CompiledGrammar, src io.Reader) (TokenStream, error) {
	if g.LexicalSpecification == nil || g.LexicalSpecification.Maleeni == nil {
		return nil, fmt.Errorf("%v has no lexical specification", g.Name)
	}
	ml := g.LexicalSpecification.Maleeni

	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(ml.Spec), src)
	if err != nil {
		return nil, err
	}

	return &tokenStream{
		lex:            lex,
		kindToTerminal: ml.KindToTerminal,
		skip:           ml.Skip,
		eof:            g.ParsingTable.EOFSymbol,
	}, nil
}

func (l *tokenStream) Next() (VToken, error) {
	for {
		tok, err := l.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return &vToken{
				terminalID: l.eof,
				tok:        tok,
			}, nil
		}
		if l.skip[tok.KindID] > 0 {
			continue
		}

		// The kind ID of an invalid token is 0, and it maps to no terminal.
		return &vToken{
			terminalID: l.kindToTerminal[tok.KindID],
			tok:        tok,
		}, nil
	}
}

package driver

import (
	"fmt"

	"github.com/nihei9/ptgen/spec"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ptgen.driver'.
func tracer() tracing.Trace {
	return tracing.Select("ptgen.driver")
}

type SyntaxError struct {
	Row               int
	Col               int
	Message           string
	Token             VToken
	ExpectedTerminals []string
}

type ParserOption func(p *Parser) error

// SemanticAction registers a semantic action set the parser calls on every shift, reduction and error.
func SemanticAction(semAct SemanticActionSet) ParserOption {
	return func(p *Parser) error {
		p.semAct = semAct
		return nil
	}
}

// MakeCST makes the parser build a concrete syntax tree that CST returns.
func MakeCST() ParserOption {
	return func(p *Parser) error {
		p.makeCST = true
		return nil
	}
}

// recoveryShiftCount is the number of shifts the parser needs to leave the error state.
const recoveryShiftCount = 3

type Parser struct {
	toks       TokenStream
	gram       Grammar
	stateStack *stateStack
	semAct     SemanticActionSet
	treeAct    *SyntaxTreeActionSet
	makeCST    bool
	onError    bool
	shiftCount int
	synErrs    []*SyntaxError
}

func NewParser(toks TokenStream, gram Grammar, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		toks:       toks,
		gram:       gram,
		stateStack: &stateStack{},
	}

	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}

	if p.makeCST {
		if p.semAct != nil {
			return nil, fmt.Errorf("MakeCST and SemanticAction cannot be used together")
		}
		p.treeAct = NewSyntaxTreeActionSet(gram)
		p.semAct = p.treeAct
	}

	return p, nil
}

// Parse runs the parser until it accepts the input or it fails to recover from a syntax error.
// Syntax errors don't make Parse fail; SyntaxErrors returns them.
func (p *Parser) Parse() error {
	p.stateStack.push(p.gram.InitialState())
	tok, err := p.nextToken()
	if err != nil {
		return err
	}

	// The parser shifts the end of input without reading past it, so `tok` is nil afterwards and
	// only default transitions apply.
ACTION_LOOP:
	for {
		kind, data := p.gram.Action(p.stateStack.top(), p.terminalOf(tok))
		switch kind {
		case spec.ActionKindShiftAndPush:
			if p.onError {
				// When the parser performs shift three times, the parser recovers from the error state.
				if p.shiftCount < recoveryShiftCount {
					p.shiftCount++
				} else {
					p.onError = false
					p.shiftCount = 0
				}
			}

			p.stateStack.push(data)
			if p.semAct != nil {
				p.semAct.Shift(tok, p.onError)
			}

			if tok.EOF() {
				tok = nil
				continue ACTION_LOOP
			}
			tok, err = p.nextToken()
			if err != nil {
				return err
			}
		case spec.ActionKindReduceByRule:
			err := p.reduce(data)
			if err != nil {
				return err
			}
		case spec.ActionKindReduceAndAccept:
			p.stateStack.pop(p.gram.TokenCount(data))
			if p.semAct != nil {
				p.semAct.Accept()
			}
			return nil
		default:
			if tok == nil {
				return fmt.Errorf("state %v has no transition after the end of input", p.stateStack.top())
			}

			// A state that has just shifted the error symbol and the error state both discard the
			// tokens they cannot act on.
			if p.onError || p.gram.ThrowsAwayErrorTokens(p.stateStack.top()) {
				if tok.EOF() {
					tracer().Debugf("the input ended while recovering from an error")
					return nil
				}
				tracer().Debugf("throw away %q", tok.Lexeme())
				tok, err = p.nextToken()
				if err != nil {
					return err
				}
				continue ACTION_LOOP
			}

			row, col := tok.Position()
			p.synErrs = append(p.synErrs, &SyntaxError{
				Row:               row,
				Col:               col,
				Message:           "unexpected token",
				Token:             tok,
				ExpectedTerminals: p.searchLookahead(p.stateStack.top()),
			})

			popped, ok := p.trapError()
			if !ok {
				tracer().Debugf("no state traps the error at %v:%v", row, col)
				if p.semAct != nil {
					p.semAct.MissError(tok)
				}
				return nil
			}

			p.onError = true
			p.shiftCount = 0

			next, ok := p.lookupActionOnError()
			if !ok {
				return fmt.Errorf("state %v must shift the error symbol", p.stateStack.top())
			}
			p.stateStack.push(next)
			if p.semAct != nil {
				p.semAct.TrapAndShiftError(tok, popped)
			}
		}
	}
}

func (p *Parser) nextToken() (VToken, error) {
	return p.toks.Next()
}

func (p *Parser) terminalOf(tok VToken) int {
	if tok == nil {
		return -1
	}
	if tok.EOF() {
		return p.gram.EOF()
	}
	return tok.TerminalID()
}

func (p *Parser) reduce(rule int) error {
	p.stateStack.pop(p.gram.TokenCount(rule))
	lhs := p.gram.LHS(rule)
	next, ok := p.gram.GoTo(p.stateStack.top(), lhs)
	if !ok {
		return fmt.Errorf("state %v has no transition on %v", p.stateStack.top(), p.gram.TokenName(lhs))
	}
	p.stateStack.push(next)
	if p.semAct != nil {
		p.semAct.Reduce(rule, p.onError)
	}
	return nil
}

// trapError pops states until a state shifts the error symbol. It returns the number of popped states.
func (p *Parser) trapError() (int, bool) {
	popped := 0
	for {
		if p.gram.ErrorTrapperState(p.stateStack.top()) {
			return popped, true
		}

		if p.stateStack.len() <= 1 {
			return popped, false
		}
		p.stateStack.pop(1)
		popped++
	}
}

func (p *Parser) lookupActionOnError() (int, bool) {
	kind, data := p.gram.Action(p.stateStack.top(), p.gram.Error())
	if kind != spec.ActionKindShiftAndPush {
		return 0, false
	}
	return data, true
}

func (p *Parser) CST() *Node {
	if p.treeAct == nil {
		return nil
	}
	return p.treeAct.CST()
}

func (p *Parser) SyntaxErrors() []*SyntaxError {
	return p.synErrs
}

func (p *Parser) searchLookahead(state int) []string {
	var names []string
	for _, term := range p.gram.ExpectedTerminals(state) {
		// We don't add the error symbol to the look-ahead symbols because users cannot input the error symbol
		// intentionally.
		if term == p.gram.Error() {
			continue
		}

		if term == p.gram.EOF() {
			names = append(names, "<eof>")
			continue
		}

		names = append(names, p.gram.TokenName(term))
	}

	return names
}

type stateStack struct {
	items []int
}

func (s *stateStack) top() int {
	return s.items[len(s.items)-1]
}

func (s *stateStack) push(state int) {
	s.items = append(s.items, state)
}

func (s *stateStack) pop(n int) {
	s.items = s.items[:len(s.items)-n]
}

func (s *stateStack) len() int {
	return len(s.items)
}

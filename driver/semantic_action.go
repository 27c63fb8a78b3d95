package driver

import (
	"fmt"
	"io"
)

type SemanticActionSet interface {
	// Shift runs when the driver shifts a symbol onto the state stack. `tok` is a token corresponding to
	// the symbol. When the driver shifts the token while it recovers from an error, `recovered` is true.
	Shift(tok VToken, recovered bool)

	// Reduce runs when the driver reduces the tokens of a rule to its LHS. `rule` is the index of the
	// rule. When the driver reduces the rule while it recovers from an error, `recovered` is true.
	Reduce(rule int, recovered bool)

	// Accept runs when the driver accepts an input.
	Accept()

	// TrapAndShiftError runs when the driver traps a syntax error and shifts the error symbol onto the
	// state stack. `cause` is a token that caused a syntax error. `popped` is the number of frames that
	// the driver discards from the state stack.
	TrapAndShiftError(cause VToken, popped int)

	// MissError runs when the driver fails to trap a syntax error. `cause` is a token that caused a syntax error.
	MissError(cause VToken)
}

var _ SemanticActionSet = &SyntaxTreeActionSet{}

type Node struct {
	KindName string
	Text     string
	Row      int
	Col      int
	Children []*Node
	Error    bool
}

func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	switch {
	case node.Error:
		fmt.Fprintf(w, "%v!%v\n", ruledLine, node.KindName)
	case node.Text != "":
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.KindName, node.Text)
	default:
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.KindName)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}

// SyntaxTreeActionSet builds a concrete syntax tree. The tree of an accepted input is rooted at the
// start symbol; the end of input shifted by the augmented rule is not part of the tree.
type SyntaxTreeActionSet struct {
	gram     Grammar
	cst      *Node
	semStack *semanticStack
}

func NewSyntaxTreeActionSet(gram Grammar) *SyntaxTreeActionSet {
	return &SyntaxTreeActionSet{
		gram:     gram,
		semStack: newSemanticStack(),
	}
}

func (a *SyntaxTreeActionSet) Shift(tok VToken, recovered bool) {
	row, col := tok.Position()
	a.semStack.push(&Node{
		KindName: a.gram.TokenName(a.tokenToTerminal(tok)),
		Text:     string(tok.Lexeme()),
		Row:      row,
		Col:      col,
	})
}

func (a *SyntaxTreeActionSet) Reduce(rule int, recovered bool) {
	// When a rule is empty, `handle` will be an empty slice.
	handle := a.semStack.pop(a.gram.TokenCount(rule))

	children := make([]*Node, len(handle))
	copy(children, handle)
	node := &Node{
		KindName: a.gram.TokenName(a.gram.LHS(rule)),
		Children: children,
	}
	if len(children) > 0 {
		node.Row = children[0].Row
		node.Col = children[0].Col
	}
	a.semStack.push(node)
}

func (a *SyntaxTreeActionSet) Accept() {
	handle := a.semStack.pop(a.gram.TokenCount(a.gram.StartRule()))
	a.cst = handle[0]
}

func (a *SyntaxTreeActionSet) TrapAndShiftError(cause VToken, popped int) {
	a.semStack.pop(popped)

	node := &Node{
		KindName: a.gram.TokenName(a.gram.Error()),
		Error:    true,
	}
	node.Row, node.Col = cause.Position()
	a.semStack.push(node)
}

func (a *SyntaxTreeActionSet) MissError(cause VToken) {
}

func (a *SyntaxTreeActionSet) CST() *Node {
	return a.cst
}

func (a *SyntaxTreeActionSet) tokenToTerminal(tok VToken) int {
	if tok.EOF() {
		return a.gram.EOF()
	}

	return tok.TerminalID()
}

type semanticStack struct {
	frames []*Node
}

func newSemanticStack() *semanticStack {
	return &semanticStack{}
}

func (s *semanticStack) push(f *Node) {
	s.frames = append(s.frames, f)
}

func (s *semanticStack) pop(n int) []*Node {
	fs := s.frames[len(s.frames)-n:]
	s.frames = s.frames[:len(s.frames)-n]

	return fs
}

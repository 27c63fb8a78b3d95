package grammar

// Builder assembles a Grammar programmatically. Every declaration gets its own line number in
// the order it is made, so diagnostics can refer to declarations the same way they refer to
// lines of a grammar file.
//
//	b := grammar.NewBuilder("expr")
//	b.Token("id", "[0-9]+")
//	b.Left("'+'")
//	b.Left("'*'")
//	b.LHS("expr").Sym("expr", "'+'", "expr").End()
//	b.LHS("expr").Sym("expr", "'*'", "expr").End()
//	b.LHS("expr").Sym("id").End()
//	g := b.Grammar()
type Builder struct {
	g     *Grammar
	row   int
	start bool
}

func NewBuilder(name string) *Builder {
	return &Builder{
		g: &Grammar{
			Name: name,
		},
	}
}

func (b *Builder) nextPos() Position {
	b.row++
	return Position{
		Row: b.row,
		Col: 1,
	}
}

// Start designates the start nonterminal. When Start is never called, the first nonterminal
// passed to LHS becomes the start symbol.
func (b *Builder) Start(name string) *Builder {
	b.g.Start = &StartDecl{
		Name: name,
		Pos:  b.nextPos(),
	}
	b.start = true
	return b
}

// Token declares an identifier-style terminal. pattern may be empty.
func (b *Builder) Token(name string, pattern string) *Builder {
	b.g.Tokens = append(b.g.Tokens, &TokenDecl{
		Name:    name,
		Pattern: pattern,
		Pos:     b.nextPos(),
	})
	return b
}

// Skip declares a terminal the generated lexer drops, e.g. white spaces.
func (b *Builder) Skip(name string, pattern string) *Builder {
	b.g.Tokens = append(b.g.Tokens, &TokenDecl{
		Name:    name,
		Pattern: pattern,
		Skip:    true,
		Pos:     b.nextPos(),
	})
	return b
}

// Left declares a left-associative precedence. Every declaration gets the next higher level.
func (b *Builder) Left(name string) *Builder {
	return b.precedence(AssocLeft, name)
}

func (b *Builder) Right(name string) *Builder {
	return b.precedence(AssocRight, name)
}

func (b *Builder) NonAssoc(name string) *Builder {
	return b.precedence(AssocNonAssoc, name)
}

func (b *Builder) precedence(assoc Associativity, name string) *Builder {
	b.g.Precedences = append(b.g.Precedences, &PrecedenceDecl{
		Name:  name,
		Assoc: assoc,
		Pos:   b.nextPos(),
	})
	return b
}

// LHS starts a new rule for the nonterminal name. Rules of one nonterminal keep the order in
// which they were started.
func (b *Builder) LHS(name string) *RuleBuilder {
	pos := b.nextPos()
	var nt *Nonterminal
	for _, n := range b.g.Nonterminals {
		if n.Name == name {
			nt = n
			break
		}
	}
	if nt == nil {
		nt = &Nonterminal{
			Name: name,
			Pos:  pos,
		}
		b.g.Nonterminals = append(b.g.Nonterminals, nt)
		if !b.start {
			b.g.Start = &StartDecl{
				Name: name,
				Pos:  pos,
			}
			b.start = true
		}
	}
	return &RuleBuilder{
		b:  b,
		nt: nt,
		rule: &Rule{
			Pos: pos,
		},
	}
}

// Grammar returns the grammar built so far.
func (b *Builder) Grammar() *Grammar {
	return b.g
}

type RuleBuilder struct {
	b    *Builder
	nt   *Nonterminal
	rule *Rule
}

// Sym appends terminals or nonterminals to the right-hand side.
func (rb *RuleBuilder) Sym(names ...string) *RuleBuilder {
	for _, name := range names {
		rb.rule.Tokens = append(rb.rule.Tokens, &RuleToken{
			Name: name,
			Pos: Position{
				Row: rb.rule.Pos.Row,
				Col: len(rb.rule.Tokens) + 2,
			},
		})
	}
	return rb
}

// Var appends a single element bound to a variable name.
func (rb *RuleBuilder) Var(name string, variable string) *RuleBuilder {
	rb.Sym(name)
	rb.rule.Tokens[len(rb.rule.Tokens)-1].Variable = variable
	return rb
}

// Prec overrides the precedence the rule would inherit from its terminals.
func (rb *RuleBuilder) Prec(name string) *RuleBuilder {
	rb.rule.Precedence = name
	return rb
}

func (rb *RuleBuilder) Assoc(assoc Associativity) *RuleBuilder {
	rb.rule.Assoc = assoc
	return rb
}

func (rb *RuleBuilder) Action(code string) *RuleBuilder {
	rb.rule.Action = code
	return rb
}

// End completes the rule. A rule ended without any symbol is an empty rule.
func (rb *RuleBuilder) End() *Builder {
	rb.nt.Rules = append(rb.nt.Rules, rb.rule)
	return rb.b
}

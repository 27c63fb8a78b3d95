package automaton

import (
	"fmt"

	"github.com/nihei9/ptgen/grammar"
	"github.com/nihei9/ptgen/grammar/symbol"
)

type precedence struct {
	level int
	assoc grammar.Associativity
	pos   grammar.Position
}

// StateMachine is the automaton generated from a grammar.
type StateMachine struct {
	g      *grammar.Grammar
	diag   *Diagnostics
	symTab *symbol.SymbolTableReader

	startSym     symbol.Symbol
	validStart   bool
	precs        map[string]*precedence
	termDecls    map[symbol.Symbol]*grammar.TokenDecl
	termPos      map[string]grammar.Position
	nonTermDecls map[symbol.Symbol]*grammar.Nonterminal
	rules        []*Rule

	// Side tables of the non-terminals: their rules, and the phases where they appear right of the dot.
	rulesOf     map[symbol.Symbol][]uint32
	occurrences map[symbol.Symbol][]RulePhase

	states   []*State
	stateMap map[stateKey]*State
	known    map[stateKey]struct{}
	worklist []*StateIdentifier

	// nextSlot is the next free entry of the flat transition table. Entry 0 is reserved.
	nextSlot int
}

// Generate builds the automaton of a grammar. Grammar errors don't stop the generation; they are
// collected into the returned Diagnostics. When the Diagnostics has errors, the StateMachine is
// incomplete and its tables must not be used.
func Generate(g *grammar.Grammar) (*StateMachine, *Diagnostics) {
	m := &StateMachine{
		g:            g,
		diag:         &Diagnostics{},
		precs:        map[string]*precedence{},
		termDecls:    map[symbol.Symbol]*grammar.TokenDecl{},
		termPos:      map[string]grammar.Position{},
		nonTermDecls: map[symbol.Symbol]*grammar.Nonterminal{},
		rulesOf:      map[symbol.Symbol][]uint32{},
		occurrences:  map[symbol.Symbol][]RulePhase{},
		stateMap:     map[stateKey]*State{},
		known:        map[stateKey]struct{}{},
		nextSlot:     1,
	}

	symTab := symbol.NewSymbolTable(grammar.TerminalNameEOF, grammar.TerminalNameError)
	m.symTab = symTab.Reader()

	m.buildPrecedenceMap()
	err := m.buildTerminalMap(symTab.Writer())
	if err == nil {
		err = m.buildNonTerminalMap(symTab.Writer())
	}
	if err != nil {
		m.diag.addError(semErrTooManySymbols, err.Error(), grammar.Position{})
		return m, m.diag
	}
	m.buildRuleVector()

	if !m.validStart {
		return m, m.diag
	}

	m.generateStates()

	tracer().Infof("%v: %v rules, %v states, %v transitions, %v shift/reduce conflicts, %v reduce/reduce conflicts",
		g.Name, len(m.rules), len(m.states), m.nextSlot-1, m.diag.ShiftReduceConflicts, m.diag.ReduceReduceConflicts)

	return m, m.diag
}

func (m *StateMachine) buildPrecedenceMap() {
	for _, decl := range m.g.Precedences {
		if decl == nil {
			continue
		}
		if decl.Name == "" {
			m.diag.addError(semErrInvalidName, "a precedence needs a name", decl.Pos)
			continue
		}
		if prev, ok := m.precs[decl.Name]; ok {
			m.diag.addError(semErrDuplicatePrec, previouslyDeclared(decl.Name, prev.pos), decl.Pos)
			continue
		}
		m.precs[decl.Name] = &precedence{
			level: len(m.precs) + 1,
			assoc: decl.Assoc,
			pos:   decl.Pos,
		}
	}
}

func (m *StateMachine) buildTerminalMap(w *symbol.SymbolTableWriter) error {
	for _, decl := range m.g.Tokens {
		if decl == nil {
			continue
		}
		switch decl.Name {
		case "":
			m.diag.addError(semErrInvalidName, "a terminal needs a name", decl.Pos)
			continue
		case grammar.TerminalNameEOF, grammar.TerminalNameError:
			m.diag.addError(semErrReservedName, decl.Name, decl.Pos)
			continue
		}
		if pos, ok := m.termPos[decl.Name]; ok {
			m.diag.addError(semErrDuplicateTerminal, previouslyDeclared(decl.Name, pos), decl.Pos)
			continue
		}
		sym, err := w.RegisterTerminalSymbol(decl.Name)
		if err != nil {
			return err
		}
		m.termPos[decl.Name] = decl.Pos
		m.termDecls[sym] = decl
	}

	// Single-character terminals are declared by their first use.
	for _, nt := range m.g.Nonterminals {
		for _, rule := range nt.Rules {
			for _, tok := range rule.Tokens {
				if !grammar.IsCharacterLiteral(tok.Name) {
					continue
				}
				if _, ok := m.termPos[tok.Name]; ok {
					continue
				}
				_, err := w.RegisterTerminalSymbol(tok.Name)
				if err != nil {
					return err
				}
				m.termPos[tok.Name] = grammar.Position{}
			}
		}
	}

	return nil
}

func (m *StateMachine) buildNonTerminalMap(w *symbol.SymbolTableWriter) error {
	var startName string
	if m.g.Start == nil || m.g.Start.Name == "" {
		m.diag.addError(semErrNoStartSymbol, "", grammar.Position{})
		startName = "start"
	} else {
		startName = m.g.Start.Name
	}

	augmented := startName + "'"
	for m.isDeclaredName(augmented) {
		augmented += "'"
	}
	sym, err := w.RegisterStartSymbol(augmented)
	if err != nil {
		return err
	}
	m.startSym = sym

	for _, nt := range m.g.Nonterminals {
		switch {
		case nt.Name == "":
			m.diag.addError(semErrInvalidName, "a non-terminal needs a name", nt.Pos)
			continue
		case nt.Name == grammar.TerminalNameEOF || nt.Name == grammar.TerminalNameError:
			m.diag.addError(semErrReservedName, nt.Name, nt.Pos)
			continue
		}
		if pos, ok := m.termPos[nt.Name]; ok {
			m.diag.addError(semErrDuplicateName, previouslyDeclared(nt.Name, pos), nt.Pos)
			continue
		}
		if sym, ok := m.symTab.ToSymbol(nt.Name); ok {
			m.diag.addError(semErrDuplicateNonTerminal, previouslyDeclared(nt.Name, m.nonTermDecls[sym].Pos), nt.Pos)
			continue
		}
		sym, err := w.RegisterNonTerminalSymbol(nt.Name)
		if err != nil {
			return err
		}
		m.nonTermDecls[sym] = nt
		if len(nt.Rules) == 0 {
			m.diag.addError(semErrNoRule, nt.Name, nt.Pos)
		}
	}

	if m.g.Start != nil && m.g.Start.Name != "" {
		sym, ok := m.symTab.ToSymbol(m.g.Start.Name)
		if !ok || !m.symTab.IsNonTerminal(sym) {
			m.diag.addError(semErrUndefinedStartSymbol, m.g.Start.Name, m.g.Start.Pos)
		} else {
			m.validStart = true
		}
	}

	return nil
}

func (m *StateMachine) isDeclaredName(name string) bool {
	if _, ok := m.termPos[name]; ok {
		return true
	}
	for _, nt := range m.g.Nonterminals {
		if nt.Name == name {
			return true
		}
	}
	return false
}

// buildRuleVector numbers the rules: the synthetic start rule comes first, then the rules of each
// non-terminal in declaration order.
func (m *StateMachine) buildRuleVector() {
	{
		startName, _ := m.symTab.ToText(m.startSym)
		userStart := symbol.SymbolNil
		userStartName := "<undefined>"
		if m.validStart {
			userStart, _ = m.symTab.ToSymbol(m.g.Start.Name)
			userStartName = m.g.Start.Name
		}
		m.addRule(&Rule{
			LHS:         m.startSym,
			Tokens:      []symbol.Symbol{userStart, symbol.SymbolEOF},
			description: describeRule(startName, []string{userStartName, grammar.TerminalNameEOF}),
		})
	}

	for _, sym := range m.symTab.NonTerminalSymbols() {
		nt, ok := m.nonTermDecls[sym]
		if !ok {
			continue
		}
		for _, src := range nt.Rules {
			m.addRule(m.resolveRule(sym, nt, src))
		}
	}
}

func (m *StateMachine) resolveRule(lhs symbol.Symbol, nt *grammar.Nonterminal, src *grammar.Rule) *Rule {
	names := make([]string, len(src.Tokens))
	toks := make([]symbol.Symbol, len(src.Tokens))
	var prec *precedence
	for i, tok := range src.Tokens {
		names[i] = tok.Name
		sym, ok := m.symTab.ToSymbol(tok.Name)
		if !ok || sym == m.startSym {
			m.diag.addError(semErrUndefinedSym, tok.Name, tok.Pos)
			toks[i] = symbol.SymbolNil
			continue
		}
		// Only the start rule may refer to the end of input.
		if sym == symbol.SymbolEOF {
			m.diag.addError(semErrReservedName, tok.Name, tok.Pos)
			toks[i] = symbol.SymbolNil
			continue
		}
		toks[i] = sym

		if sym == symbol.SymbolError && i > 0 && toks[i-1] == symbol.SymbolError {
			m.diag.addError(semErrAdjacentErrorTokens, describeRule(nt.Name, names[:i+1]), tok.Pos)
		}

		if m.symTab.IsTerminal(sym) {
			if p, ok := m.precs[tok.Name]; ok {
				prec = p
			}
		}
	}

	if src.Precedence != "" {
		p, ok := m.precs[src.Precedence]
		if ok {
			prec = p
		} else {
			m.diag.addError(semErrUndefinedPrec, src.Precedence, src.Pos)
		}
	}

	r := &Rule{
		LHS:         lhs,
		Tokens:      toks,
		Assoc:       src.Assoc,
		Action:      src.Action,
		Pos:         src.Pos,
		binary:      src.IsBinaryOperation(nt.Name),
		description: describeRule(nt.Name, names),
	}
	if prec != nil {
		r.Prec = prec.level
		r.Assoc = prec.assoc
	}
	return r
}

func (m *StateMachine) addRule(r *Rule) {
	r.Index = len(m.rules)
	m.rules = append(m.rules, r)
	m.rulesOf[r.LHS] = append(m.rulesOf[r.LHS], uint32(r.Index))
	for i, sym := range r.Tokens {
		if !m.symTab.IsNonTerminal(sym) {
			continue
		}
		m.occurrences[sym] = append(m.occurrences[sym], RulePhase{
			Rule:  uint32(r.Index),
			Phase: uint32(i),
		})
	}
}

func (m *StateMachine) generateStates() {
	m.enqueue(NewStateIdentifier(RulePhase{Rule: 0, Phase: 0}))
	for len(m.worklist) > 0 {
		id := m.worklist[0]
		m.worklist = m.worklist[1:]

		state := m.buildState(id)
		m.states = append(m.states, state)
		m.stateMap[id.key()] = state

		for _, sym := range symbolsOf(state.terminals) {
			t, _ := state.terminal(sym)
			if t.Action == ActionShiftAndPush && t.IsNontrivial() {
				m.enqueue(t.Target)
			}
		}
		for _, sym := range symbolsOf(state.nonTerminals) {
			t, _ := state.nonTerminal(sym)
			if t.IsNontrivial() {
				m.enqueue(t.Target)
			}
		}
	}
}

// enqueue requests a state for id unless it is already built or requested.
func (m *StateMachine) enqueue(id *StateIdentifier) {
	k := id.key()
	if _, ok := m.known[k]; ok {
		return
	}
	m.known[k] = struct{}{}
	m.worklist = append(m.worklist, id)
}

func (m *StateMachine) buildState(id *StateIdentifier) *State {
	s := &State{
		transitionSet: newTransitionSet(),
		num:           stateNum(len(m.states)),
		id:            id,
	}

	tracer().Debugf("--- state %03d %v", s.num, id)

	visited := NewStateIdentifier()
	for _, rp := range id.Phases() {
		m.transitionsFromRulePhase(rp, s.transitionSet, visited)
	}

	m.collapseErrorTokens(s)
	m.resolveReduceReduce(s)
	m.resolveShiftReduce(s)
	m.assignOffsets(s)

	return s
}

// assignOffsets reserves the entries of the flat transition table for a state: terminal
// transitions first, then the default transition, then the non-terminal transitions.
func (m *StateMachine) assignOffsets(s *State) {
	if n := len(s.Terminals()); n > 0 {
		s.terminalOffset = m.nextSlot
		s.terminalCount = n
		m.nextSlot += n
	}
	if s.Default() != nil {
		s.defaultOffset = m.nextSlot
		m.nextSlot++
	}
	if n := s.nonTerminals.Size(); n > 0 {
		s.nonTerminalOffset = m.nextSlot
		s.nonTerminalCount = n
		m.nextSlot += n
	}
}

// Rule returns the rule with index i.
func (m *StateMachine) Rule(i int) *Rule {
	return m.rules[i]
}

func (m *StateMachine) RuleCount() int {
	return len(m.rules)
}

func (m *StateMachine) State(i int) *State {
	return m.states[i]
}

func (m *StateMachine) StateCount() int {
	return len(m.states)
}

// StateIndex returns the index of the state identified by id. Every target of a shift or a push
// is built during the generation, so a missing state is a bug of the generator.
func (m *StateMachine) StateIndex(id *StateIdentifier) int {
	s, ok := m.stateMap[id.key()]
	if !ok {
		panic(fmt.Errorf("a state was not found: %v", id))
	}
	return s.Index()
}

// StartSymbol returns the non-terminal of the synthetic start rule.
func (m *StateMachine) StartSymbol() symbol.Symbol {
	return m.startSym
}

func (m *StateMachine) Symbols() *symbol.SymbolTableReader {
	return m.symTab
}

func (m *StateMachine) TokenName(sym symbol.Symbol) string {
	text, ok := m.symTab.ToText(sym)
	if !ok {
		return fmt.Sprintf("<unknown symbol: %v>", sym)
	}
	return text
}

// TokenDecl returns the declaration of an identifier-style terminal.
func (m *StateMachine) TokenDecl(sym symbol.Symbol) (*grammar.TokenDecl, bool) {
	decl, ok := m.termDecls[sym]
	return decl, ok
}

// Diagnostics returns the diagnostics the generation produced.
func (m *StateMachine) Diagnostics() *Diagnostics {
	return m.diag
}

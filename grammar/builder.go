package grammar

import "github.com/corvidtools/parsegen/parseerr"

// ProdSpec describes a single production to be interned by Builder.Build:
// a head non-terminal name and an ordered body of symbol references. Each
// body element names either a previously-declared terminal or non-terminal.
// Precedence and Assoc are optional inert annotations (see
// Production.Precedence); the zero value means "unset" and carries no
// effect on table generation either way.
type ProdSpec struct {
	Head       string
	Body       []string
	Precedence int
	Assoc      Associativity
}

// Builder interns terminal and non-terminal names into the dense,
// insertion-ordered ids the rest of the core operates on. It is the
// "Symbolic Grammar" stage's construction entry point; it does not parse any
// surface grammar syntax, it only assigns ids to names a caller already
// extracted.
type Builder struct {
	terminals    []string
	nonTerminals []string
	terminalID   map[string]int
	nonTermID    map[string]int
	start        string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		terminalID: map[string]int{},
		nonTermID:  map[string]int{},
	}
}

// DeclareTerminal interns name as a terminal and returns its id. Declaring
// the same name twice is a build-time error.
func (b *Builder) DeclareTerminal(name string) (int, error) {
	if _, ok := b.terminalID[name]; ok {
		return 0, parseerr.DuplicateSymbol(name)
	}
	id := len(b.terminals)
	b.terminals = append(b.terminals, name)
	b.terminalID[name] = id
	return id, nil
}

// DeclareNonTerminal interns name as a non-terminal and returns its id.
// Declaring the same name twice is a build-time error.
func (b *Builder) DeclareNonTerminal(name string) (int, error) {
	if _, ok := b.nonTermID[name]; ok {
		return 0, parseerr.DuplicateSymbol(name)
	}
	id := len(b.nonTerminals)
	b.nonTerminals = append(b.nonTerminals, name)
	b.nonTermID[name] = id
	return id, nil
}

// SetStart designates the start non-terminal by name.
func (b *Builder) SetStart(name string) {
	b.start = name
}

func (b *Builder) resolve(name string) (Symbol, bool) {
	if id, ok := b.terminalID[name]; ok {
		return Terminal(id), true
	}
	if id, ok := b.nonTermID[name]; ok {
		return NonTerminal(id), true
	}
	return Symbol{}, false
}

// Build interns the given productions and assembles the final Grammar.
// Productions are assigned ids in the order given. Returns the build-time,
// fail-fast errors described in the error-handling design: an undeclared
// start symbol, an empty production list, EndOfInput inside a body, or a
// reference to a name that was never declared via DeclareTerminal /
// DeclareNonTerminal.
func (b *Builder) Build(specs []ProdSpec) (Grammar, error) {
	if len(specs) == 0 {
		return Grammar{}, parseerr.EmptyGrammar()
	}

	startID, ok := b.nonTermID[b.start]
	if !ok {
		return Grammar{}, parseerr.UndeclaredStart(-1)
	}

	productions := make([]Production, len(specs))
	byHead := map[int][]int{}

	for i, spec := range specs {
		headID, ok := b.nonTermID[spec.Head]
		if !ok {
			return Grammar{}, parseerr.SymbolOutOfRange(i, -1, true)
		}

		body := make([]Symbol, len(spec.Body))
		for j, name := range spec.Body {
			sym, ok := b.resolve(name)
			if !ok && name == EndOfInput.String() {
				sym, ok = EndOfInput, true
			}
			if !ok {
				return Grammar{}, parseerr.SymbolOutOfRange(i, j, false)
			}
			if sym.IsEndOfInput() {
				return Grammar{}, parseerr.EndOfInputInBody(i)
			}
			body[j] = sym
		}

		productions[i] = Production{
			ID:         i,
			Head:       headID,
			Body:       body,
			Precedence: spec.Precedence,
			Assoc:      spec.Assoc,
		}
		byHead[headID] = append(byHead[headID], i)
	}

	g := Grammar{
		terminalCount:    len(b.terminals),
		nonTerminalCount: len(b.nonTerminals),
		start:            startID,
		productions:      productions,
		byHead:           byHead,
		terminalNames:    b.terminals,
		nonTerminalNames: b.nonTerminals,
		augmenting: Production{
			ID:   AugmentedProductionID,
			Head: AugmentedHeadID,
			Body: []Symbol{NonTerminal(startID)},
		},
	}

	return g, nil
}

package grammar

import (
	"github.com/corvidtools/parsegen/internal/util"
	"github.com/corvidtools/parsegen/parseerr"
)

// Grammar is the immutable, fully-interned symbolic grammar: a terminal and
// non-terminal count, a start non-terminal id, the distinguished augmenting
// production, and the productions ordered by id.
type Grammar struct {
	terminalCount    int
	nonTerminalCount int
	start            int
	augmenting       Production
	productions      []Production
	byHead           map[int][]int // non-terminal id -> indices into productions

	terminalNames    []string
	nonTerminalNames []string
}

// Production returns the production with the given id. The sentinel
// AugmentedProductionID resolves to the augmenting production S' -> S.
func (g Grammar) Production(id int) (*Production, error) {
	if id == AugmentedProductionID {
		p := g.augmenting
		return &p, nil
	}
	if id < 0 || id >= len(g.productions) {
		return nil, parseerr.SymbolOutOfRange(id, id, false)
	}
	p := g.productions[id]
	return &p, nil
}

// ProductionsWithHead returns every production whose head is the given
// non-terminal id, in declaration order.
func (g Grammar) ProductionsWithHead(nid int) []Production {
	idxs := g.byHead[nid]
	out := make([]Production, len(idxs))
	for i, idx := range idxs {
		out[i] = g.productions[idx]
	}
	return out
}

// Augmented returns the augmenting production S' -> S.
func (g Grammar) Augmented() Production {
	return g.augmenting
}

// StartSymbol returns the id of the declared start non-terminal.
func (g Grammar) StartSymbol() int {
	return g.start
}

// TerminalCount returns the number of interned terminals.
func (g Grammar) TerminalCount() int {
	return g.terminalCount
}

// NonTerminalCount returns the number of interned non-terminals.
func (g Grammar) NonTerminalCount() int {
	return g.nonTerminalCount
}

// ProductionCount returns the number of (non-augmenting) productions.
func (g Grammar) ProductionCount() int {
	return len(g.productions)
}

// TerminalName returns the human-readable name of a terminal id, or "" if
// the grammar was built without names (e.g. in tests constructed directly
// from ids).
func (g Grammar) TerminalName(id int) string {
	if id < 0 || id >= len(g.terminalNames) {
		return ""
	}
	return g.terminalNames[id]
}

// NonTerminalName returns the human-readable name of a non-terminal id.
func (g Grammar) NonTerminalName(id int) string {
	if id < 0 || id >= len(g.nonTerminalNames) {
		return ""
	}
	return g.nonTerminalNames[id]
}

// TerminalID returns the id a terminal name was declared with, and
// whether it was found. Used by tooling that resolves a token name a
// caller typed or read against the grammar's declared terminals, the
// reverse of TerminalName.
func (g Grammar) TerminalID(name string) (int, bool) {
	for i, n := range g.terminalNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// FirstSet is the result of a FIRST(beta) computation: the terminals that
// can begin a derivation of beta, plus whether beta itself is nullable.
type FirstSet struct {
	Terminals util.IntSet
	Nullable  bool
}

// First computes FIRST(beta) per the core's FIRST semantics (spec §4.1): a
// terminal contributes itself and ends the scan; a non-terminal contributes
// the union of FIRST(body) over its productions and, if every such body is
// nullable, the scan continues to the next symbol. EndOfInput must never
// appear in beta. A visited set of production ids guards against infinite
// recursion on left-recursive or mutually-recursive non-terminals.
func (g Grammar) First(beta []Symbol) FirstSet {
	return g.firstHelper(beta, map[int]bool{})
}

func (g Grammar) firstHelper(beta []Symbol, visited map[int]bool) FirstSet {
	if len(beta) == 0 {
		return FirstSet{Terminals: util.NewIntSet(), Nullable: true}
	}

	res := FirstSet{Terminals: util.NewIntSet(), Nullable: false}

	for _, sym := range beta {
		switch {
		case sym.IsEndOfInput():
			panic("grammar: EndOfInput symbol encountered inside a production body")
		case sym.IsTerminal():
			res.Terminals.Add(sym.ID)
			return res
		default: // non-terminal
			allNullable := true
			for _, prodIdx := range g.byHead[sym.ID] {
				prod := g.productions[prodIdx]
				if visited[prod.ID] {
					continue
				}
				visited[prod.ID] = true
				sub := g.firstHelper(prod.Body, visited)
				res.Terminals.AddAll(sub.Terminals)
				if !sub.Nullable {
					allNullable = false
				}
			}
			if !allNullable {
				// Some production's body cannot derive empty, so N is
				// not skipped: the scan of beta stops here.
				return res
			}
			// Every production of N turned out nullable: N may derive
			// empty, so the scan continues to the next symbol of beta.
		}
	}

	res.Nullable = true
	return res
}

// Package table walks a built automaton and produces the action and goto
// tables the parse driver executes: a token-action table, an end-of-input
// action table, and a non-terminal goto table, backed by sparse integer
// matrices since most cells of a real grammar's tables are empty.
package table

import (
	"fmt"

	"github.com/npillmayer/gorgo/lr/sparse"

	"github.com/corvidtools/parsegen/automaton"
	"github.com/corvidtools/parsegen/grammar"
	"github.com/corvidtools/parsegen/lookahead"
)

// Tables is the immutable, queryable output of table generation.
type Tables struct {
	TokenTable *sparse.IntMatrix // [state][terminal] -> Shift/Reduce/none
	EofTable   *sparse.IntMatrix // [state][0] -> Reduce/Accept/none
	GotoTable  *sparse.IntMatrix // [state][non-terminal] -> target state

	StateCount    int
	TerminalCount int
	NonTermCount  int

	terminalNames []string
}

// TokensInState returns the human-readable names of every terminal with a
// non-empty action cell in the given state, for use in diagnostics such as
// "after X, expected one of Y".
func (t *Tables) TokensInState(state int) []string {
	var names []string
	for term := 0; term < t.TerminalCount; term++ {
		if decodeAction(t.TokenTable.Value(state, term)).Kind != ActionNone {
			name := ""
			if term < len(t.terminalNames) {
				name = t.terminalNames[term]
			}
			if name == "" {
				name = fmt.Sprintf("terminal %d", term)
			}
			names = append(names, name)
		}
	}
	return names
}

// TokenAction returns the decoded action for shifting or reducing terminal
// t from state s.
func (t *Tables) TokenAction(s, term int) Action {
	return decodeAction(t.TokenTable.Value(s, term))
}

// EofAction returns the decoded action for end-of-input from state s.
func (t *Tables) EofAction(s int) Action {
	return decodeAction(t.EofTable.Value(s, 0))
}

// Goto returns the successor state for a non-terminal n from state s, or
// ok=false if there is none.
func (t *Tables) Goto(s, nt int) (int, bool) {
	v := t.GotoTable.Value(s, nt)
	if v == nullValue {
		return 0, false
	}
	return int(v), true
}

// Generator produces Tables from a built Automaton, optionally reporting
// progress through an attached trace sink.
type Generator struct {
	OnTrace func(msg string)
}

// NewGenerator returns a Generator with no trace sink attached.
func NewGenerator() *Generator {
	return &Generator{}
}

func (gen *Generator) trace(msg string) {
	if gen.OnTrace != nil {
		gen.OnTrace(msg)
	}
}

// Generate walks every state of aut and produces its action and goto
// tables, using a Generator with no trace sink attached. See
// Generator.Generate.
func Generate(aut *automaton.Automaton, g grammar.Grammar) (*Tables, []Conflict, error) {
	return NewGenerator().Generate(aut, g)
}

// Generate walks every state of aut and produces its action and goto
// tables, per the core's table-generation rules (reductions first, then
// shifts, then gotos; a write over a non-empty cell is a conflict that is
// recorded but never halts generation).
func (gen *Generator) Generate(aut *automaton.Automaton, g grammar.Grammar) (*Tables, []Conflict, error) {
	nStates := len(aut.States)
	nTerm := g.TerminalCount()
	nNonTerm := g.NonTerminalCount()

	names := make([]string, nTerm)
	for i := range names {
		names[i] = g.TerminalName(i)
	}

	t := &Tables{
		TokenTable:    sparse.NewIntMatrix(nStates, nTerm, nullValue),
		EofTable:      sparse.NewIntMatrix(nStates, 1, nullValue),
		GotoTable:     sparse.NewIntMatrix(nStates, nNonTerm, nullValue),
		StateCount:    nStates,
		TerminalCount: nTerm,
		NonTermCount:  nNonTerm,
		terminalNames: names,
	}

	var conflicts []Conflict

	for _, state := range aut.States {
		reducing := reducingItems(g, state)

		for _, item := range reducing {
			resolved := aut.Lookahead(item)
			if c := gen.writeReductions(t, g, state.ID, item.Production, resolved); len(c) > 0 {
				conflicts = append(conflicts, c...)
			}
		}

		for term, target := range state.TokenTargets() {
			if c := gen.writeShift(t, state.ID, term, target); c != nil {
				conflicts = append(conflicts, *c)
			}
		}

		for nt, target := range state.NonTerminalTargets() {
			t.GotoTable.Set(state.ID, nt, int32(target))
		}

		gen.trace("generated table row")
	}

	return t, conflicts, nil
}

// reducingItems returns every kernel item whose marker has reached the end
// of its production, plus every epsilon item recorded for the state — the
// two sources of reductions the spec's table generation rule names.
func reducingItems(g grammar.Grammar, s automaton.State) []automaton.Item {
	var out []automaton.Item
	for _, it := range s.Kernel {
		prod, err := g.Production(it.Production)
		if err != nil {
			continue
		}
		if it.Marker >= len(prod.Body) {
			out = append(out, it)
		}
	}
	out = append(out, s.Epsilon...)
	return out
}

// writeReductions installs the reduce (or accept) action for production p
// at every terminal in resolved, and at the EOF cell if resolved allows
// end-of-input.
func (gen *Generator) writeReductions(t *Tables, g grammar.Grammar, state int, production int, resolved lookahead.Set) []Conflict {
	var conflicts []Conflict

	for _, term := range resolved.Terminals.Sorted() {
		if c := gen.writeReduce(t, state, term, production); c != nil {
			conflicts = append(conflicts, *c)
		}
	}

	if resolved.EOF {
		if c := gen.writeEofReduce(t, state, production); c != nil {
			conflicts = append(conflicts, *c)
		}
	}

	return conflicts
}

func (gen *Generator) writeReduce(t *Tables, state, term, production int) *Conflict {
	existing := decodeAction(t.TokenTable.Value(state, term))

	switch existing.Kind {
	case ActionNone:
		t.TokenTable.Set(state, term, encodeReduce(production))
		return nil
	case ActionShift:
		// Shift beats reduce unconditionally; the existing shift stays.
		return &Conflict{Kind: ShiftReduce, State: state, Terminal: term, Existing: existing, Written: existing}
	default: // ActionReduce
		winner := production
		if existing.Operand < production {
			winner = existing.Operand
		}
		t.TokenTable.Set(state, term, encodeReduce(winner))
		return &Conflict{Kind: ReduceReduce, State: state, Terminal: term, Existing: existing, Written: Action{Kind: ActionReduce, Operand: winner}}
	}
}

// effectiveOperand returns the production id a.Operand is compared against
// under the "lower production id wins" rule, treating Accept as if it were
// a reduce of the augmenting production: grammar.AugmentedProductionID is
// the sentinel lowest id of any production, so Accept always outranks a
// real reduce no matter which one is written to the cell first.
func effectiveOperand(a Action) int {
	if a.Kind == ActionAccept {
		return grammar.AugmentedProductionID
	}
	return a.Operand
}

func (gen *Generator) writeEofReduce(t *Tables, state, production int) *Conflict {
	action := Action{Kind: ActionReduce, Operand: production}
	encoded := encodeReduce(production)
	if production == grammar.AugmentedProductionID {
		action = Action{Kind: ActionAccept}
		encoded = acceptValue
	}

	existing := decodeAction(t.EofTable.Value(state, 0))
	switch existing.Kind {
	case ActionNone:
		t.EofTable.Set(state, 0, encoded)
		return nil
	default:
		winner := action
		winnerEncoded := encoded
		if effectiveOperand(existing) < effectiveOperand(action) {
			winner = existing
			winnerEncoded = t.EofTable.Value(state, 0)
		}
		t.EofTable.Set(state, 0, winnerEncoded)
		return &Conflict{Kind: ReduceReduce, State: state, OnEOF: true, Existing: existing, Written: winner}
	}
}

func (gen *Generator) writeShift(t *Tables, state, term, target int) *Conflict {
	existing := decodeAction(t.TokenTable.Value(state, term))
	t.TokenTable.Set(state, term, encodeShift(target))
	if existing.Kind == ActionReduce {
		return &Conflict{Kind: ShiftReduce, State: state, Terminal: term, Existing: existing, Written: Action{Kind: ActionShift, Operand: target}}
	}
	return nil
}

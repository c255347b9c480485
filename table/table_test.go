package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidtools/parsegen/automaton"
	"github.com/corvidtools/parsegen/grammar"
	"github.com/corvidtools/parsegen/internal/fixtures"
	"github.com/corvidtools/parsegen/table"
)

func TestGenerate_BalancedParens_NoConflicts(t *testing.T) {
	g, ids, err := fixtures.BalancedParens()
	require.NoError(t, err)

	aut, err := automaton.NewBuilder().Build(g)
	require.NoError(t, err)

	tabs, conflicts, err := table.Generate(aut, g)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// Shifting "a" from the start state must be possible.
	startAction := tabs.TokenAction(0, ids.Terminals["a"])
	assert.Equal(t, table.ActionShift, startAction.Kind)
}

func TestGenerate_DanglingElse_ShiftReduceConflict_PrefersShift(t *testing.T) {
	g, ids, err := fixtures.DanglingElse()
	require.NoError(t, err)

	aut, err := automaton.NewBuilder().Build(g)
	require.NoError(t, err)

	tabs, conflicts, err := table.Generate(aut, g)
	require.NoError(t, err)
	require.NotEmpty(t, conflicts, "dangling-else grammar must report a shift/reduce conflict")

	var found bool
	for _, c := range conflicts {
		if c.Kind == table.ShiftReduce {
			found = true
		}
	}
	assert.True(t, found)

	// Find the state reached after "if b S" (the dangling-else decision
	// point) and confirm the installed action on "else" is Shift, not
	// Reduce: the conflict policy prefers shift.
	var danglingState = -1
	for _, s := range aut.States {
		for _, it := range s.Kernel {
			prod, _ := g.Production(it.Production)
			if prod.Head == ids.NonTerminals["S"] && it.Marker == 3 && len(prod.Body) == 3 {
				danglingState = s.ID
			}
		}
	}
	require.GreaterOrEqual(t, danglingState, 0, "expected to find the post-\"if b S\" state")

	action := tabs.TokenAction(danglingState, ids.Terminals["else"])
	assert.Equal(t, table.ActionShift, action.Kind)
}

// TestGenerate_SelfRecursiveStart_AcceptSurvivesReduceOnSameCell builds a
// grammar whose start symbol is directly left-recursive (S -> S | b): the
// state reached by a goto on S merges the augmenting item's end-of-input
// accept together with S -> S .'s own end-of-input reduce in one kernel.
// Per the documented conflict policy (the lower production id wins, and
// the augmenting production's sentinel id is the lowest possible), accept
// must win regardless of which of the two reducing items is processed
// first.
func TestGenerate_SelfRecursiveStart_AcceptSurvivesReduceOnSameCell(t *testing.T) {
	g, ids, err := fixtures.SelfRecursiveStart()
	require.NoError(t, err)

	aut, err := automaton.NewBuilder().Build(g)
	require.NoError(t, err)

	mergedState, ok := aut.States[0].NonTerminalTarget(ids.NonTerminals["S"])
	require.True(t, ok, "expected state 0 to have a goto on S")

	var sawAugmented, sawRealReduce bool
	for _, it := range aut.States[mergedState].Kernel {
		if it.Production == grammar.AugmentedProductionID {
			sawAugmented = true
		} else {
			sawRealReduce = true
		}
	}
	require.True(t, sawAugmented && sawRealReduce,
		"expected the merged state to contain both the augmented item and a real reducing item")

	tabs, conflicts, err := table.Generate(aut, g)
	require.NoError(t, err)
	require.NotEmpty(t, conflicts, "accept colliding with a real reduce on the same cell must be reported")

	action := tabs.EofAction(mergedState)
	assert.Equal(t, table.ActionAccept, action.Kind,
		"accept must win over an ordinary reduce on end-of-input regardless of write order")
}

func TestGenerate_BalancedParens_AcceptOnEof(t *testing.T) {
	g, ids, err := fixtures.BalancedParens()
	require.NoError(t, err)
	_ = ids

	aut, err := automaton.NewBuilder().Build(g)
	require.NoError(t, err)

	tabs, _, err := table.Generate(aut, g)
	require.NoError(t, err)

	// Walk the automaton by hand for the empty string: S -> ε must
	// reduce immediately on EOF in state 0, and the goto on S from state 0
	// must lead to a state that accepts on EOF.
	first := tabs.EofAction(0)
	assert.Equal(t, table.ActionReduce, first.Kind)

	target, ok := tabs.Goto(0, ids.NonTerminals["S"])
	require.True(t, ok, "expected state 0 to have a goto on S")
	assert.Equal(t, table.ActionAccept, tabs.EofAction(target).Kind)
}

package automaton_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidtools/parsegen/automaton"
	"github.com/corvidtools/parsegen/internal/fixtures"
)

func TestBuild_BalancedParens_KernelUniqueness(t *testing.T) {
	g, _, err := fixtures.BalancedParens()
	require.NoError(t, err)

	aut, err := automaton.NewBuilder().Build(g)
	require.NoError(t, err)
	require.NotEmpty(t, aut.States)

	seen := map[string]bool{}
	for _, s := range aut.States {
		key := ""
		for _, it := range s.Kernel {
			key += kernelItemKey(it)
		}
		assert.False(t, seen[key], "duplicate kernel found across states")
		seen[key] = true
	}
}

func TestBuild_BalancedParens_AllStatesMarked(t *testing.T) {
	g, _, err := fixtures.BalancedParens()
	require.NoError(t, err)

	aut, err := automaton.NewBuilder().Build(g)
	require.NoError(t, err)

	for _, s := range aut.States {
		assert.True(t, s.Marked, "state %d was left unmarked", s.ID)
	}
}

func TestBuild_StartState_LookaheadIsEOF(t *testing.T) {
	g, _, err := fixtures.BalancedParens()
	require.NoError(t, err)

	aut, err := automaton.NewBuilder().Build(g)
	require.NoError(t, err)

	start := aut.States[0]
	require.Len(t, start.Kernel, 1)

	resolved := aut.Lookahead(start.Kernel[0])
	assert.True(t, resolved.EOF)
	assert.Equal(t, 0, resolved.Terminals.Len())
}

func TestBuild_DanglingElse_HasStates(t *testing.T) {
	g, _, err := fixtures.DanglingElse()
	require.NoError(t, err)

	aut, err := automaton.NewBuilder().Build(g)
	require.NoError(t, err)
	assert.Greater(t, len(aut.States), 1)
}

func kernelItemKey(it automaton.Item) string {
	k := it.Key()
	return fmt.Sprintf("%d:%d;", k.Production, k.Marker)
}

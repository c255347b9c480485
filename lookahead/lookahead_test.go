package lookahead_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidtools/parsegen/lookahead"
)

func TestResolve_SingleNode_ReturnsNaturalSet(t *testing.T) {
	g := lookahead.NewGraph()
	n := g.NewNode(lookahead.NewSet(false, 1, 2))

	got := g.Resolve(n)
	assert.False(t, got.EOF)
	assert.Equal(t, 2, got.Terminals.Len())
	assert.True(t, got.Terminals.Has(1))
	assert.True(t, got.Terminals.Has(2))
}

func TestResolve_FollowsDependencyChain(t *testing.T) {
	g := lookahead.NewGraph()
	c := g.NewNode(lookahead.NewSet(true, 3))
	b := g.NewNode(lookahead.NewSet(false, 2), c)
	a := g.NewNode(lookahead.NewSet(false, 1), b)

	got := g.Resolve(a)
	assert.True(t, got.EOF, "EOF reachable transitively through b -> c must be unioned in")
	assert.Equal(t, 3, got.Terminals.Len())
	for _, term := range []int{1, 2, 3} {
		assert.True(t, got.Terminals.Has(term), "missing terminal %d", term)
	}
}

// TestResolve_DirectCycle_Terminates exercises a node that depends on
// itself: without a visited set, Resolve would recurse forever.
func TestResolve_DirectCycle_Terminates(t *testing.T) {
	g := lookahead.NewGraph()
	n := g.NewNode(lookahead.NewSet(false, 1))
	g.AddDependency(n, n)

	done := make(chan lookahead.Set, 1)
	go func() { done <- g.Resolve(n) }()

	select {
	case got := <-done:
		assert.Equal(t, 1, got.Terminals.Len())
		assert.True(t, got.Terminals.Has(1))
	case <-time.After(2 * time.Second):
		t.Fatal("Resolve did not terminate on a direct self-cycle")
	}
}

// TestResolve_MutualCycle_UnionsAcrossTheCycle exercises a > b > a: the
// resolved set of either node must include both natural sets even though
// neither can be evaluated to completion before the other.
func TestResolve_MutualCycle_UnionsAcrossTheCycle(t *testing.T) {
	g := lookahead.NewGraph()
	a := g.NewNode(lookahead.NewSet(false, 1))
	b := g.NewNode(lookahead.NewSet(true, 2), a)
	g.AddDependency(a, b)

	gotA := g.Resolve(a)
	gotB := g.Resolve(b)

	require.True(t, gotA.EOF)
	require.True(t, gotB.EOF)
	for _, got := range []lookahead.Set{gotA, gotB} {
		assert.Equal(t, 2, got.Terminals.Len())
		assert.True(t, got.Terminals.Has(1))
		assert.True(t, got.Terminals.Has(2))
	}
}

// TestResolve_DiamondDependency_MergesBothBranchesOnce confirms that a
// diamond (a depends on b and c, both of which depend on d) resolves d's
// contribution correctly despite being reachable along two paths.
func TestResolve_DiamondDependency_MergesBothBranchesOnce(t *testing.T) {
	g := lookahead.NewGraph()
	d := g.NewNode(lookahead.NewSet(false, 4))
	b := g.NewNode(lookahead.NewSet(false, 2), d)
	c := g.NewNode(lookahead.NewSet(false, 3), d)
	a := g.NewNode(lookahead.NewSet(false, 1), b, c)

	got := g.Resolve(a)
	assert.Equal(t, 4, got.Terminals.Len())
	for _, term := range []int{1, 2, 3, 4} {
		assert.True(t, got.Terminals.Has(term), "missing terminal %d", term)
	}
}

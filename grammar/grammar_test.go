package grammar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBalancedParens builds S -> a S b | ε, the aⁿbⁿ grammar used
// throughout the concrete test scenarios.
func buildBalancedParens(t *testing.T) (Grammar, map[string]int, map[string]int) {
	t.Helper()
	b := NewBuilder()

	a, err := b.DeclareTerminal("a")
	require.NoError(t, err)
	bt, err := b.DeclareTerminal("b")
	require.NoError(t, err)
	s, err := b.DeclareNonTerminal("S")
	require.NoError(t, err)
	b.SetStart("S")

	g, err := b.Build([]ProdSpec{
		{Head: "S", Body: []string{"a", "S", "b"}},
		{Head: "S", Body: nil},
	})
	require.NoError(t, err)

	return g, map[string]int{"a": a, "b": bt}, map[string]int{"S": s}
}

func TestBuilder_DuplicateTerminal(t *testing.T) {
	b := NewBuilder()
	_, err := b.DeclareTerminal("a")
	require.NoError(t, err)
	_, err = b.DeclareTerminal("a")
	assert.Error(t, err)
}

func TestBuilder_UndeclaredStart(t *testing.T) {
	b := NewBuilder()
	_, err := b.DeclareNonTerminal("S")
	require.NoError(t, err)
	_, err = b.Build([]ProdSpec{{Head: "S", Body: nil}})
	assert.Error(t, err)
}

func TestBuilder_EmptyGrammar(t *testing.T) {
	b := NewBuilder()
	b.SetStart("S")
	_, err := b.Build(nil)
	assert.Error(t, err)
}

func TestBuilder_EndOfInputInBody(t *testing.T) {
	b := NewBuilder()
	_, err := b.DeclareNonTerminal("S")
	require.NoError(t, err)
	b.SetStart("S")
	_, err = b.Build([]ProdSpec{{Head: "S", Body: []string{"$"}}})
	assert.Error(t, err)
}

func TestGrammar_Augmented(t *testing.T) {
	g, _, nt := buildBalancedParens(t)
	aug := g.Augmented()
	assert.Equal(t, AugmentedProductionID, aug.ID)
	assert.Equal(t, []Symbol{NonTerminal(nt["S"])}, aug.Body)

	got, err := g.Production(AugmentedProductionID)
	require.NoError(t, err)
	assert.Equal(t, aug, *got)
}

func TestGrammar_ProductionsWithHead(t *testing.T) {
	g, _, nt := buildBalancedParens(t)
	prods := g.ProductionsWithHead(nt["S"])
	require.Len(t, prods, 2)
	assert.Equal(t, 0, prods[0].ID)
	assert.Equal(t, 1, prods[1].ID)
}

func TestBuilder_Build_CarriesPrecedenceAndAssocAnnotations(t *testing.T) {
	b := NewBuilder()
	_, err := b.DeclareTerminal("+")
	require.NoError(t, err)
	_, err = b.DeclareTerminal("n")
	require.NoError(t, err)
	_, err = b.DeclareNonTerminal("E")
	require.NoError(t, err)
	b.SetStart("E")

	g, err := b.Build([]ProdSpec{
		{Head: "E", Body: []string{"E", "+", "n"}, Precedence: 1, Assoc: AssocLeft},
		{Head: "E", Body: []string{"n"}},
	})
	require.NoError(t, err)

	plus, err := g.Production(0)
	require.NoError(t, err)
	assert.Equal(t, 1, plus.Precedence)
	assert.Equal(t, AssocLeft, plus.Assoc)

	n, err := g.Production(1)
	require.NoError(t, err)
	assert.Equal(t, 0, n.Precedence)
	assert.Equal(t, AssocNone, n.Assoc)
}

func TestGrammar_First_SimpleTerminal(t *testing.T) {
	g, term, _ := buildBalancedParens(t)
	fs := g.First([]Symbol{Terminal(term["a"])})
	assert.False(t, fs.Nullable)
	assert.True(t, fs.Terminals.Has(term["a"]))
	assert.Equal(t, 1, fs.Terminals.Len())
}

func TestGrammar_First_NullableNonTerminal(t *testing.T) {
	g, term, nt := buildBalancedParens(t)
	// FIRST(S) = {a}. S -> ε is one of its productions, but S -> a S b is
	// not nullable, so the scan stops at S and the result is not nullable.
	fs := g.First([]Symbol{NonTerminal(nt["S"])})
	assert.False(t, fs.Nullable)
	assert.True(t, fs.Terminals.Has(term["a"]))
}

func TestGrammar_First_EmptyBeta(t *testing.T) {
	g, _, _ := buildBalancedParens(t)
	fs := g.First(nil)
	assert.True(t, fs.Nullable)
	assert.Equal(t, 0, fs.Terminals.Len())
}

// TestGrammar_First_LeftRecursion guards against infinite recursion on a
// left-recursive non-terminal: E -> E + n | n.
func TestGrammar_First_LeftRecursion(t *testing.T) {
	b := NewBuilder()
	plus, _ := b.DeclareTerminal("+")
	n, _ := b.DeclareTerminal("n")
	_, err := b.DeclareNonTerminal("E")
	require.NoError(t, err)
	b.SetStart("E")

	g, err := b.Build([]ProdSpec{
		{Head: "E", Body: []string{"E", "+", "n"}},
		{Head: "E", Body: []string{"n"}},
	})
	require.NoError(t, err)

	done := make(chan FirstSet, 1)
	go func() {
		done <- g.First([]Symbol{NonTerminal(0)})
	}()

	select {
	case fs := <-done:
		assert.False(t, fs.Nullable)
		assert.True(t, fs.Terminals.Has(n))
		assert.False(t, fs.Terminals.Has(plus))
	case <-time.After(time.Second):
		t.Fatal("First did not terminate on left-recursive grammar")
	}
}

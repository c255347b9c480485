package deferred_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidtools/parsegen/deferred"
)

func TestDeferred_OnSet_FiresAfterSet(t *testing.T) {
	d := deferred.New[int]()
	var got int
	d.OnSet(func(v int) { got = v })

	assert.False(t, d.IsResolved())
	d.Set(42)
	assert.True(t, d.IsResolved())
	assert.Equal(t, 42, got)
}

func TestDeferred_OnSet_FiresImmediatelyIfAlreadyResolved(t *testing.T) {
	d := deferred.Resolved("hi")
	var got string
	d.OnSet(func(v string) { got = v })
	assert.Equal(t, "hi", got)
}

func TestDeferred_Set_Twice_Panics(t *testing.T) {
	d := deferred.New[int]()
	d.Set(1)
	assert.Panics(t, func() { d.Set(2) })
}

func TestDeferred_Unwrap_BeforeSet_Panics(t *testing.T) {
	d := deferred.New[int]()
	assert.Panics(t, func() { d.Unwrap() })
}

func TestMap_TransformsResolvedValue(t *testing.T) {
	d := deferred.New[int]()
	out := deferred.Map(d, func(v int) string {
		if v > 0 {
			return "positive"
		}
		return "non-positive"
	})

	d.Set(5)
	assert.True(t, out.IsResolved())
	assert.Equal(t, "positive", out.Unwrap())
}

func TestChain_PropagatesSourceValueToDestination(t *testing.T) {
	src := deferred.New[int]()
	dst := deferred.New[int]()
	deferred.Chain(src, dst)

	src.Set(7)
	assert.Equal(t, 7, dst.Unwrap())
}

func TestInherited_Broadcast_FansOutToEveryDescendant(t *testing.T) {
	inh := deferred.NewInherited[int]()
	a := deferred.New[int]()
	b := deferred.New[int]()
	c := deferred.New[int]()

	inh.Broadcast(func(v int) int { return v }, a, b, c)
	inh.Set(3)

	assert.Equal(t, 3, a.Unwrap())
	assert.Equal(t, 3, b.Unwrap())
	assert.Equal(t, 3, c.Unwrap())
}

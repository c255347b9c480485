// Package automaton builds the canonical collection of LALR(1) item sets:
// it computes closures, merges LR(0)-equal kernels by wiring lookahead
// dependency edges instead of duplicating items, and records the shift and
// goto transitions the table generator later walks.
package automaton

import "github.com/corvidtools/parsegen/lookahead"

// ItemKey is the closure-set lookup key for an Item: its core identity,
// deliberately excluding the lookahead node. Two items with the same
// (Production, Marker) are the same core item; when they collide during
// closure or merge, their lookahead information is combined by adding a
// dependency edge rather than by inserting a second item.
type ItemKey struct {
	Production int
	Marker     int
}

// Item is a single LALR item: a production, how far its body has been
// matched, and a pointer to the lookahead graph node that (once resolved)
// gives its lookahead set.
type Item struct {
	Production int
	Marker     int
	Lookahead  lookahead.NodeID
}

// Key returns the item's core identity.
func (it Item) Key() ItemKey {
	return ItemKey{Production: it.Production, Marker: it.Marker}
}

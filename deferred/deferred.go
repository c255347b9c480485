// Package deferred is a small attribute-propagation library for wiring
// values across an annotated parse tree once translation-time values
// become available in some order other than the order they're needed in
// — the Go rendition of the Rust original's Inherited<T>/Deferred<T>
// channel pair. It is deliberately standalone: nothing in grammar,
// lookahead, automaton, table, driver, or lex imports it, matching the
// core's stated Non-goal of not shipping a semantic-action or
// attribute-propagation mini-library as part of the parsing core itself.
// A caller's own Reducer implementation may use it to stitch inherited
// attributes through a parse without the core ever knowing about it.
package deferred

import "fmt"

// Deferred is a write-once value cell with callbacks that fire the
// moment the value becomes available, whether that's before or after a
// callback is registered.
type Deferred[T any] struct {
	value *T
	subs  []func(T)
}

// New returns an unresolved Deferred.
func New[T any]() *Deferred[T] {
	return &Deferred[T]{}
}

// Resolved returns a Deferred already holding val.
func Resolved[T any](val T) *Deferred[T] {
	d := &Deferred[T]{}
	d.Set(val)
	return d
}

// Set resolves the value exactly once. Calling Set on an already-resolved
// Deferred panics, matching the original's "Value set twice!" invariant:
// a second set almost always indicates a translation rule firing on the
// same attribute slot more than once.
func (d *Deferred[T]) Set(val T) {
	if d.value != nil {
		panic(fmt.Sprintf("deferred: value already set to %v", *d.value))
	}
	d.value = &val

	subs := d.subs
	d.subs = nil
	for _, sub := range subs {
		sub(val)
	}
}

// IsResolved reports whether the value has been set.
func (d *Deferred[T]) IsResolved() bool {
	return d.value != nil
}

// Unwrap returns the resolved value, panicking if it has not yet been
// set. Use OnSet or IsResolved to avoid the panic when resolution order
// isn't guaranteed.
func (d *Deferred[T]) Unwrap() T {
	if d.value == nil {
		panic("deferred: value not yet resolved")
	}
	return *d.value
}

// OnSet registers a callback to run with the value the moment it's
// available. If the value is already resolved, cb runs immediately,
// inline, before OnSet returns.
func (d *Deferred[T]) OnSet(cb func(T)) {
	if d.value != nil {
		cb(*d.value)
		return
	}
	d.subs = append(d.subs, cb)
}

// Map returns a Deferred that resolves to f(v) the moment d resolves to
// v. f runs at most once.
func Map[T, U any](d *Deferred[T], f func(T) U) *Deferred[U] {
	out := New[U]()
	d.OnSet(func(v T) {
		out.Set(f(v))
	})
	return out
}

// Chain wires src's eventual value into dst, as if dst had been set
// directly from src. Use it to pass an inherited attribute computed by
// one tree node on to the descendant that actually consumes it.
func Chain[T any](src *Deferred[T], dst *Deferred[T]) {
	src.OnSet(func(v T) {
		dst.Set(v)
	})
}

// Inherited is a Deferred that also knows how to fan a single resolved
// value out to every descendant that inherits it, mirroring the
// original's Inherited::inherit_multiple: many nodes in an annotated
// parse tree can all depend on one ancestor's inherited attribute.
type Inherited[T any] struct {
	*Deferred[T]
}

// NewInherited returns an unresolved Inherited attribute cell.
func NewInherited[T any]() Inherited[T] {
	return Inherited[T]{Deferred: New[T]()}
}

// Broadcast wires this Inherited's eventual value into every one of dsts,
// each receiving its own copy via cp (identity if T is safe to share
// as-is, e.g. any immutable or value type).
func (inh Inherited[T]) Broadcast(cp func(T) T, dsts ...*Deferred[T]) {
	inh.OnSet(func(v T) {
		for _, dst := range dsts {
			dst.Set(cp(v))
		}
	})
}

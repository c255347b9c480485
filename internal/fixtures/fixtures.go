// Package fixtures builds the small concrete grammars exercised
// throughout the core's package tests: the aⁿbⁿ balanced-parens grammar,
// a left-recursive addition grammar, a two-precedence-level arithmetic
// grammar, a grammar whose start symbol is itself left-recursive, and the
// dangling-else grammar used to exercise the shift/reduce conflict policy.
// Each builder follows the teacher's shared-fixture-file convention
// (parse/test_fixtures.go) of keeping grammar construction out of
// individual _test.go files.
package fixtures

import "github.com/corvidtools/parsegen/grammar"

// Ids names the interned ids a fixture assigned to its terminals and
// non-terminals, so tests can refer to them by name instead of by
// declaration order.
type Ids struct {
	Terminals    map[string]int
	NonTerminals map[string]int
}

// BalancedParens builds S -> a S b | ε.
func BalancedParens() (grammar.Grammar, Ids, error) {
	b := grammar.NewBuilder()
	ids := Ids{Terminals: map[string]int{}, NonTerminals: map[string]int{}}

	var err error
	if ids.Terminals["a"], err = b.DeclareTerminal("a"); err != nil {
		return grammar.Grammar{}, ids, err
	}
	if ids.Terminals["b"], err = b.DeclareTerminal("b"); err != nil {
		return grammar.Grammar{}, ids, err
	}
	if ids.NonTerminals["S"], err = b.DeclareNonTerminal("S"); err != nil {
		return grammar.Grammar{}, ids, err
	}
	b.SetStart("S")

	g, err := b.Build([]grammar.ProdSpec{
		{Head: "S", Body: []string{"a", "S", "b"}},
		{Head: "S", Body: nil},
	})
	return g, ids, err
}

// LeftRecursiveAddition builds E -> E + n | n.
func LeftRecursiveAddition() (grammar.Grammar, Ids, error) {
	b := grammar.NewBuilder()
	ids := Ids{Terminals: map[string]int{}, NonTerminals: map[string]int{}}

	var err error
	if ids.Terminals["+"], err = b.DeclareTerminal("+"); err != nil {
		return grammar.Grammar{}, ids, err
	}
	if ids.Terminals["n"], err = b.DeclareTerminal("n"); err != nil {
		return grammar.Grammar{}, ids, err
	}
	if ids.NonTerminals["E"], err = b.DeclareNonTerminal("E"); err != nil {
		return grammar.Grammar{}, ids, err
	}
	b.SetStart("E")

	g, err := b.Build([]grammar.ProdSpec{
		{Head: "E", Body: []string{"E", "+", "n"}},
		{Head: "E", Body: []string{"n"}},
	})
	return g, ids, err
}

// ParenthesizedArithmetic builds the classic two-precedence-level
// arithmetic grammar:
//
//	E -> E + T | T
//	T -> T * F | F
//	F -> ( E ) | n
func ParenthesizedArithmetic() (grammar.Grammar, Ids, error) {
	b := grammar.NewBuilder()
	ids := Ids{Terminals: map[string]int{}, NonTerminals: map[string]int{}}

	var err error
	for _, t := range []string{"+", "*", "(", ")", "n"} {
		if ids.Terminals[t], err = b.DeclareTerminal(t); err != nil {
			return grammar.Grammar{}, ids, err
		}
	}
	for _, nt := range []string{"E", "T", "F"} {
		if ids.NonTerminals[nt], err = b.DeclareNonTerminal(nt); err != nil {
			return grammar.Grammar{}, ids, err
		}
	}
	b.SetStart("E")

	g, err := b.Build([]grammar.ProdSpec{
		{Head: "E", Body: []string{"E", "+", "T"}, Precedence: 1, Assoc: grammar.AssocLeft},
		{Head: "E", Body: []string{"T"}},
		{Head: "T", Body: []string{"T", "*", "F"}, Precedence: 2, Assoc: grammar.AssocLeft},
		{Head: "T", Body: []string{"F"}},
		{Head: "F", Body: []string{"(", "E", ")"}},
		{Head: "F", Body: []string{"n"}},
	})
	return g, ids, err
}

// SelfRecursiveStart builds a grammar whose start symbol is itself
// directly left-recursive with no intervening symbols:
//
//	S -> S | b
//
// The state reached by goto(state0, S) merges the augmenting item's
// reduction (S' -> S ., accept on end-of-input) together with S -> S .'s
// own end-of-input reduction in the very same kernel, since both items
// advance on S from state 0 in lockstep. It exists to exercise the
// accept-vs-reduce write-order edge case in the table's conflict policy.
func SelfRecursiveStart() (grammar.Grammar, Ids, error) {
	b := grammar.NewBuilder()
	ids := Ids{Terminals: map[string]int{}, NonTerminals: map[string]int{}}

	var err error
	if ids.Terminals["b"], err = b.DeclareTerminal("b"); err != nil {
		return grammar.Grammar{}, ids, err
	}
	if ids.NonTerminals["S"], err = b.DeclareNonTerminal("S"); err != nil {
		return grammar.Grammar{}, ids, err
	}
	b.SetStart("S")

	g, err := b.Build([]grammar.ProdSpec{
		{Head: "S", Body: []string{"S"}},
		{Head: "S", Body: []string{"b"}},
	})
	return g, ids, err
}

// DanglingElse builds the classic shift/reduce conflict grammar:
//
//	S -> if B S | if B S else S | skip
func DanglingElse() (grammar.Grammar, Ids, error) {
	b := grammar.NewBuilder()
	ids := Ids{Terminals: map[string]int{}, NonTerminals: map[string]int{}}

	var err error
	for _, t := range []string{"if", "else", "skip", "b"} {
		if ids.Terminals[t], err = b.DeclareTerminal(t); err != nil {
			return grammar.Grammar{}, ids, err
		}
	}
	if ids.NonTerminals["S"], err = b.DeclareNonTerminal("S"); err != nil {
		return grammar.Grammar{}, ids, err
	}
	b.SetStart("S")

	g, err := b.Build([]grammar.ProdSpec{
		{Head: "S", Body: []string{"if", "b", "S"}},
		{Head: "S", Body: []string{"if", "b", "S", "else", "S"}},
		{Head: "S", Body: []string{"skip"}},
	})
	return g, ids, err
}

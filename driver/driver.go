// Package driver implements the table-driven shift-reduce parse loop: two
// stacks, a user reducer, and a threaded context value, executed against
// an action/goto table built by the table package. It is grounded on the
// teacher's parse/lr.go shift-reduce loop and trace-listener idiom, but
// its table lookups go through the Tables interface rather than a
// concrete struct so generated code (dense arrays, match trees, or the
// table package's sparse-matrix implementation) can all serve it.
package driver

import (
	"github.com/corvidtools/parsegen/grammar"
	"github.com/corvidtools/parsegen/internal/util"
	"github.com/corvidtools/parsegen/lex"
	"github.com/corvidtools/parsegen/parseerr"
	"github.com/corvidtools/parsegen/table"
)

// Tables is the read-only query surface the driver needs from a generated
// table set. *table.Tables satisfies it directly.
type Tables interface {
	TokenAction(state, term int) table.Action
	EofAction(state int) table.Action
	Goto(state, nonTerminal int) (int, bool)
	TokensInState(state int) []string
}

// Reducer applies a grammar production's semantic action: given the
// mutable context and the payloads of its body symbols in grammar order,
// it produces the payload for the production's head non-terminal. The
// driver selects which production's reducer to invoke by the production
// id carried in a Reduce action.
type Reducer interface {
	Reduce(ctx any, production int, payloads []any) any
}

// symbol is a tagged-union stack entry: either a terminal carrying a raw
// token payload, or a non-terminal carrying a reducer's result.
type symbol struct {
	terminal  bool
	termID    int
	nonTermID int
	payload   any
}

// Stacks is the driver's mutable parse state: the state stack, the
// symbol stack, and the threaded context. It is exposed on every
// parse-time error so a caller can build diagnostics from the point of
// failure.
type Stacks struct {
	States  util.Stack[int]
	Symbols util.Stack[symbol]
	Ctx     any
}

// NewStacks returns parse state initialized per the core's parse-driver
// state: a state stack containing only the start state, and an empty
// symbol stack.
func NewStacks(ctx any) *Stacks {
	s := &Stacks{Ctx: ctx}
	s.States.Push(0)
	return s
}

// Driver runs the shift-reduce loop for one grammar's tables against one
// reducer, optionally reporting its progress through an attached trace
// sink. It consults Grammar only for a production's arity and head
// non-terminal id; all action/goto decisions go through Tables.
type Driver struct {
	Grammar grammar.Grammar
	Tables  Tables
	Reducer Reducer
	OnTrace func(msg string)
}

// New returns a Driver for the given grammar, tables, and reducer.
func New(g grammar.Grammar, t Tables, r Reducer) *Driver {
	return &Driver{Grammar: g, Tables: t, Reducer: r}
}

func (d *Driver) trace(msg string) {
	if d.OnTrace != nil {
		d.OnTrace(msg)
	}
}

// stepResult is the outcome of a single table lookup-and-apply, private to
// the driver's internal loop.
type stepResult int

const (
	stepShifted stepResult = iota
	stepReduced
	stepAccepted
)

// parseToken performs parse_token: look up the current state's action for
// tok, and either shift it, reduce and re-offer it, or fail.
func (d *Driver) parseToken(s *Stacks, tok lex.Token) (stepResult, error) {
	state := s.States.Peek()
	action := d.Tables.TokenAction(state, tok.ID())

	switch action.Kind {
	case table.ActionShift:
		s.States.Push(action.Operand)
		s.Symbols.Push(symbol{terminal: true, termID: tok.ID(), payload: tok.Lexeme()})
		d.trace("shift")
		return stepShifted, nil

	case table.ActionReduce:
		if err := d.reduce(s, action.Operand); err != nil {
			return 0, err
		}
		return stepReduced, nil

	default:
		return 0, &ParseError{
			Kind:    parseerr.KindUnexpectedToken,
			State:   state,
			Token:   tok,
			Partial: s,
		}
	}
}

// parseEof performs parse_eof: look up the current state's end-of-input
// action, and either reduce, accept, or fail.
func (d *Driver) parseEof(s *Stacks) (stepResult, error) {
	state := s.States.Peek()
	action := d.Tables.EofAction(state)

	switch action.Kind {
	case table.ActionReduce:
		if err := d.reduce(s, action.Operand); err != nil {
			return 0, err
		}
		return stepReduced, nil

	case table.ActionAccept:
		d.trace("accept")
		return stepAccepted, nil

	default:
		return 0, &ParseError{
			Kind:    parseerr.KindUnexpectedEof,
			State:   state,
			Partial: s,
		}
	}
}

// reduce pops a production's arity from both stacks, invokes the reducer
// with the popped payloads in grammar order, and pushes the resulting
// non-terminal via the goto table.
func (d *Driver) reduce(s *Stacks, production int) error {
	prod, err := d.Grammar.Production(production)
	if err != nil {
		return &ParseError{Kind: parseerr.KindMissingGoto, State: s.States.Peek(), Partial: s, Cause: err}
	}
	arity := prod.Arity()

	popped := s.Symbols.PopN(arity)
	s.States.PopN(arity)

	payloads := make([]any, len(popped))
	for i, sym := range popped {
		payloads[i] = sym.payload
	}

	head := d.Reducer.Reduce(s.Ctx, production, payloads)

	s2 := s.States.Peek()
	headID := prod.Head

	target, ok := d.Tables.Goto(s2, headID)
	if !ok {
		return &ParseError{Kind: parseerr.KindMissingGoto, State: s2, NonTerminal: headID, Partial: s}
	}

	s.States.Push(target)
	s.Symbols.Push(symbol{terminal: false, nonTermID: headID, payload: head})
	d.trace("reduce")
	return nil
}

// Parse runs the outer loop: feeding tokens from stream through
// parseToken until each is consumed (re-offering it across reductions),
// then draining parseEof until accepted. On success it returns the single
// remaining symbol-stack payload, the start symbol's payload, as an
// untyped any; no type assertion to the start symbol's payload type is
// made.
func (d *Driver) Parse(ctx any, stream lex.Stream) (any, error) {
	s := NewStacks(ctx)

	for {
		tok, ok, err := stream.Next()
		if err != nil {
			return nil, &ParseError{Kind: parseerr.KindLexerFailure, State: s.States.Peek(), Partial: s, Cause: err}
		}
		if !ok {
			break
		}

		for {
			res, err := d.parseToken(s, tok)
			if err != nil {
				return nil, err
			}
			if res == stepShifted {
				break
			}
			// stepReduced: re-offer the same token.
		}
	}

	for {
		res, err := d.parseEof(s)
		if err != nil {
			return nil, err
		}
		if res == stepAccepted {
			break
		}
	}

	final := s.Symbols.Pop()
	return final.payload, nil
}

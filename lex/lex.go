// Package lex defines the external lexer contract the parse driver
// consumes. The core never implements a lexer itself; it only specifies
// the interface a caller's lexer must satisfy, grounded on the teacher's
// types.Token/types.TokenStream shape but adapted to the core's dense
// integer terminal ids and widened to let the stream itself carry a lex
// failure instead of assuming lexing cannot fail.
package lex

// Token is a single lexeme paired with the terminal id it was classified
// as. ID must match one of the terminal ids a grammar.Builder interned.
type Token interface {
	ID() int
	Lexeme() string
}

// Stream yields Tokens one at a time. Unlike a stream that is guaranteed
// to always have a well-formed token ready, Next may fail: a real lexer
// can encounter input it cannot classify, and the parse driver surfaces
// that as a LexerFailure carrying its partial state rather than panicking
// or silently stopping.
type Stream interface {
	// Next returns the next token, or ok=false once the stream is
	// exhausted. A non-nil error means lexing failed partway and the
	// returned token and ok are meaningless.
	Next() (tok Token, ok bool, err error)
}

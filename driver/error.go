package driver

import (
	"fmt"

	"github.com/corvidtools/parsegen/lex"
	"github.com/corvidtools/parsegen/parseerr"
)

// ParseError is the common shape of every parse-time failure: the
// taxonomy kind, enough context to build a diagnostic (the offending
// state, token, or non-terminal), the partial parser state at the moment
// of failure, and, for LexerFailure, the underlying lexer error.
type ParseError struct {
	Kind        parseerr.Kind
	State       int
	Token       lex.Token
	NonTerminal int
	Partial     *Stacks
	Cause       error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case parseerr.KindUnexpectedToken:
		return fmt.Sprintf("unexpected token %q in state %d", e.Token.Lexeme(), e.State)
	case parseerr.KindMissingGoto:
		return fmt.Sprintf("no goto for non-terminal %d from state %d", e.NonTerminal, e.State)
	case parseerr.KindUnexpectedEof:
		return fmt.Sprintf("unexpected end of input in state %d", e.State)
	case parseerr.KindLexerFailure:
		return fmt.Sprintf("lexer failure: %v", e.Cause)
	default:
		return e.Kind.String()
	}
}

// Unwrap gives the underlying lexer error, if this is a LexerFailure.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// PartialState returns the parser's stacks and context at the moment of
// failure, so a caller can build a diagnostic such as "after X, expected
// one of Y" using Tables.TokensInState.
func (e *ParseError) PartialState() *Stacks {
	return e.Partial
}

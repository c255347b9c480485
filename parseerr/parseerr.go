// Package parseerr implements the error taxonomy described in the core's
// error-handling design: a small set of typed errors with a constructor per
// class, grounded on the teacher's internal/tqerrors package (a technical
// message plus a distinguishing accessor and an Unwrap).
package parseerr

import "fmt"

// Kind distinguishes which class of error a Error value belongs to.
type Kind int

const (
	// Build-time, programmer-error, fail-fast kinds.

	KindUndeclaredStart Kind = iota
	KindDuplicateSymbol
	KindEmptyGrammar
	KindEndOfInputInBody
	KindSymbolOutOfRange

	// Parse-time kinds.

	KindUnexpectedToken
	KindMissingGoto
	KindUnexpectedEof
	KindLexerFailure
)

func (k Kind) String() string {
	switch k {
	case KindUndeclaredStart:
		return "undeclared start symbol"
	case KindDuplicateSymbol:
		return "duplicate symbol"
	case KindEmptyGrammar:
		return "empty grammar"
	case KindEndOfInputInBody:
		return "end-of-input in production body"
	case KindSymbolOutOfRange:
		return "symbol id out of range"
	case KindUnexpectedToken:
		return "unexpected token"
	case KindMissingGoto:
		return "missing goto"
	case KindUnexpectedEof:
		return "unexpected end of input"
	case KindLexerFailure:
		return "lexer failure"
	default:
		return "unknown error"
	}
}

// Error is the common shape for every error this module returns: a Kind for
// programmatic dispatch, a human message, and an optional wrapped cause.
type Error struct {
	kind Kind
	msg  string
	wrap error
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.kind.String()
	}
	return e.msg
}

// Kind returns the taxonomy class of the error.
func (e *Error) Kind() Kind {
	return e.kind
}

// Unwrap gives the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.wrap
}

func newErr(k Kind, format string, a ...interface{}) error {
	return &Error{kind: k, msg: fmt.Sprintf(format, a...)}
}

// UndeclaredStart reports that a grammar was built without designating a
// start non-terminal, or with a start id outside the declared range.
func UndeclaredStart(start int) error {
	return newErr(KindUndeclaredStart, "start symbol %d was never declared as a non-terminal", start)
}

// DuplicateSymbol reports that name was declared more than once within the
// same symbol class (terminal or non-terminal).
func DuplicateSymbol(name string) error {
	return newErr(KindDuplicateSymbol, "symbol %q declared more than once", name)
}

// EmptyGrammar reports that a grammar has no productions.
func EmptyGrammar() error {
	return newErr(KindEmptyGrammar, "grammar has no productions")
}

// EndOfInputInBody reports that EndOfInput was found inside a production
// body, which is always a programmer error.
func EndOfInputInBody(productionID int) error {
	return newErr(KindEndOfInputInBody, "production %d: end-of-input symbol is not allowed inside a production body", productionID)
}

// SymbolOutOfRange reports that a referenced symbol id falls outside the
// declared terminal or non-terminal count.
func SymbolOutOfRange(productionID, id int, nonTerminal bool) error {
	class := "terminal"
	if nonTerminal {
		class = "non-terminal"
	}
	return newErr(KindSymbolOutOfRange, "production %d: %s id %d is out of range", productionID, class, id)
}

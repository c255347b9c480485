// Package diag renders the diagnostics the rest of the core only collects
// as data — table.Conflict, *driver.ParseError, and automaton/table build
// summaries — into the human-readable messages a CLI or log line wants,
// the way the teacher's parse package formats its own table dumps for
// display.
package diag

import (
	"fmt"

	"github.com/dekarrin/rosed"
	"github.com/dustin/go-humanize/english"

	"github.com/corvidtools/parsegen/automaton"
	"github.com/corvidtools/parsegen/driver"
	"github.com/corvidtools/parsegen/grammar"
	"github.com/corvidtools/parsegen/parseerr"
	"github.com/corvidtools/parsegen/table"
)

// tableOpts matches the column formatting the teacher's own LALR/SLR/CLR1
// table dumps use (parse/lalr.go, parse/slr.go, parse/clr1.go): bordered
// columns, header row, no trailing separators.
var tableOpts = rosed.Options{
	TableHeaders:             true,
	NoTrailingLineSeparators: true,
}

// symbolName resolves a conflict's symbol to a human name, falling back
// to "end-of-input" or a bare terminal id if the grammar has no name for
// it (e.g. a grammar built directly from ids in a test).
func symbolName(g grammar.Grammar, c table.Conflict) string {
	if c.OnEOF {
		return "end-of-input"
	}
	name := g.TerminalName(c.Terminal)
	if name == "" {
		name = fmt.Sprintf("terminal %d", c.Terminal)
	}
	return name
}

// Conflicts renders a conflict list as a table: one row per conflict,
// state, symbol, the action that was kept, and the action the cell held
// before the write (the same as the kept one when that action won).
// Returns "" for an empty conflict list, since the usual caller only
// calls this when len(conflicts) > 0.
func Conflicts(g grammar.Grammar, conflicts []table.Conflict) string {
	if len(conflicts) == 0 {
		return ""
	}

	data := [][]string{{"state", "symbol", "kind", "resolved to", "overwrote"}}
	for _, c := range conflicts {
		data = append(data, []string{
			fmt.Sprintf("%d", c.State),
			symbolName(g, c),
			c.Kind.String(),
			describeAction(g, c.Written),
			describeAction(g, c.Existing),
		})
	}

	return rosed.Edit("").InsertTableOpts(0, data, 100, tableOpts).String()
}

func describeAction(g grammar.Grammar, a table.Action) string {
	switch a.Kind {
	case table.ActionShift:
		return fmt.Sprintf("shift -> state %d", a.Operand)
	case table.ActionReduce:
		return fmt.Sprintf("reduce (production %d)", a.Operand)
	case table.ActionAccept:
		return "accept"
	default:
		return "none"
	}
}

// Summary describes a built automaton and its generated tables in one
// line, e.g. "14 states, 2 conflicts (shift/reduce: 2, reduce/reduce: 0)".
func Summary(aut *automaton.Automaton, conflicts []table.Conflict) string {
	var sr, rr int
	for _, c := range conflicts {
		if c.Kind == table.ShiftReduce {
			sr++
		} else {
			rr++
		}
	}

	return fmt.Sprintf(
		"%s, %s (shift/reduce: %d, reduce/reduce: %d)",
		english.Plural(len(aut.States), "state", "states"),
		english.Plural(len(conflicts), "conflict", "conflicts"),
		sr, rr,
	)
}

// ExpectedTokens renders the set of terminals a state would have
// accepted, for use in an UnexpectedToken message: "expected one of 'a',
// 'b', or 'c'". Falls back to "nothing (end-of-input only)" for a state
// whose only legal continuation is end-of-input.
func ExpectedTokens(tabs *table.Tables, state int) string {
	names := tabs.TokensInState(state)
	if len(names) == 0 {
		return "nothing (end-of-input only)"
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return "one of " + english.OxfordWordSeries(quoted, "or")
}

// ParseError renders a *driver.ParseError as a single human-readable
// line, naming the offending token or non-terminal and, where useful,
// what would have been accepted instead.
func ParseError(g grammar.Grammar, tabs *table.Tables, err *driver.ParseError) string {
	switch err.Kind {
	case parseerr.KindUnexpectedToken:
		return fmt.Sprintf(
			"unexpected token %q in state %d: expected %s",
			err.Token.Lexeme(), err.State, ExpectedTokens(tabs, err.State),
		)
	case parseerr.KindUnexpectedEof:
		return fmt.Sprintf(
			"unexpected end of input in state %d: expected %s",
			err.State, ExpectedTokens(tabs, err.State),
		)
	case parseerr.KindMissingGoto:
		return fmt.Sprintf(
			"no goto entry for %s from state %d (grammar or automaton is malformed)",
			g.NonTerminalName(err.NonTerminal), err.State,
		)
	case parseerr.KindLexerFailure:
		return fmt.Sprintf("lexer failure in state %d: %v", err.State, err.Cause)
	default:
		return err.Error()
	}
}

package main

import (
	"fmt"
	"io"
	"strconv"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/corvidtools/parsegen/automaton"
	"github.com/corvidtools/parsegen/diag"
	"github.com/corvidtools/parsegen/grammar"
	"github.com/corvidtools/parsegen/table"
)

// session is the state a REPL command operates on: the loaded grammar and
// its built automaton/tables, kept around so repeated commands (stats,
// state, conflicts) don't have to rebuild anything.
type session struct {
	g         grammar.Grammar
	aut       *automaton.Automaton
	tabs      *table.Tables
	conflicts []table.Conflict
}

// dispatch tokenizes line with shellquote (so a state's token names or a
// future file-path argument can be quoted) and runs the named command.
// Returns quit=true when the REPL should stop reading further commands.
func (s *session) dispatch(line string, out io.Writer) (quit bool) {
	if line == "" {
		return false
	}

	args, err := shellquote.Split(line)
	if err != nil {
		fmt.Fprintf(out, "parse error: %v\n", err)
		return false
	}
	if len(args) == 0 {
		return false
	}

	switch args[0] {
	case "quit", "exit":
		return true
	case "stats":
		fmt.Fprintln(out, diag.Summary(s.aut, s.conflicts))
	case "conflicts":
		if len(s.conflicts) == 0 {
			fmt.Fprintln(out, "no conflicts")
			return false
		}
		fmt.Fprintln(out, diag.Conflicts(s.g, s.conflicts))
	case "state":
		s.cmdState(args[1:], out)
	case "run":
		s.cmdRun(args[1:], out)
	case "help":
		fmt.Fprintln(out, "commands: stats, conflicts, state <n>, run <token...>, quit")
	default:
		fmt.Fprintf(out, "unknown command %q (try \"help\")\n", args[0])
	}
	return false
}

func (s *session) cmdState(args []string, out io.Writer) {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: state <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n >= len(s.aut.States) {
		fmt.Fprintf(out, "no such state %q\n", args[0])
		return
	}
	fmt.Fprintf(out, "state %d: expected %s\n", n, diag.ExpectedTokens(s.tabs, n))
}

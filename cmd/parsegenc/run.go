package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/corvidtools/parsegen/diag"
	"github.com/corvidtools/parsegen/driver"
	"github.com/corvidtools/parsegen/grammar"
	"github.com/corvidtools/parsegen/lex"
)

// replToken adapts a shellquote-split REPL word into a lex.Token: the word
// itself is both the terminal name (resolved against the grammar via
// grammar.Grammar.TerminalID) and its own lexeme, since the REPL has no
// real lexer behind it.
type replToken struct {
	id     int
	lexeme string
}

func (t replToken) ID() int        { return t.id }
func (t replToken) Lexeme() string { return t.lexeme }

// tokenSliceStream serves a fixed slice of tokens as a lex.Stream.
type tokenSliceStream struct {
	toks []lex.Token
	pos  int
}

func (s *tokenSliceStream) Next() (lex.Token, bool, error) {
	if s.pos >= len(s.toks) {
		return nil, false, nil
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok, true, nil
}

// traceReducer builds a parenthesized string representation of the parse
// tree as reductions fire, e.g. "(S a (S) b)". The run command has no
// semantic domain to evaluate — it exists to exercise the driver against
// an arbitrary loaded grammar — so it reports shape, not a computed value.
type traceReducer struct {
	g grammar.Grammar
}

func (r traceReducer) Reduce(ctx any, production int, payloads []any) any {
	prod, err := r.g.Production(production)
	if err != nil {
		return fmt.Sprintf("(?%d)", production)
	}

	name := r.g.NonTerminalName(prod.Head)
	if len(payloads) == 0 {
		return fmt.Sprintf("(%s)", name)
	}

	parts := make([]string, len(payloads))
	for i, p := range payloads {
		parts[i] = fmt.Sprintf("%v", p)
	}
	return fmt.Sprintf("(%s %s)", name, strings.Join(parts, " "))
}

// cmdRun tokenizes args as a sequence of terminal names, drives a parse
// over them with the session's loaded grammar and tables, and prints the
// resulting parse-tree trace or the parse-time diagnostic that stopped it.
func (s *session) cmdRun(args []string, out io.Writer) {
	if len(args) == 0 {
		fmt.Fprintln(out, "usage: run <token> [token...]")
		return
	}

	toks := make([]lex.Token, 0, len(args))
	for _, name := range args {
		id, ok := s.g.TerminalID(name)
		if !ok {
			fmt.Fprintf(out, "unknown terminal %q\n", name)
			return
		}
		toks = append(toks, replToken{id: id, lexeme: name})
	}

	d := driver.New(s.g, s.tabs, traceReducer{g: s.g})
	result, err := d.Parse(nil, &tokenSliceStream{toks: toks})
	if err != nil {
		if perr, ok := err.(*driver.ParseError); ok {
			fmt.Fprintln(out, diag.ParseError(s.g, s.tabs, perr))
			return
		}
		fmt.Fprintf(out, "parse error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "%v\n", result)
}

/*
Parsegenc builds an LALR(1) action/goto table set from a TOML grammar
description, reports conflicts and automaton statistics, writes the
compiled tables to disk, and (unless piped input or -d forces direct
reading) drops into an interactive REPL for inspecting the result and, via
the "run" command, driving an actual parse of a token sequence typed at
the prompt.

Usage:

	parsegenc [flags]

The flags are:

	-v, --version
		Print the version and exit.

	-g, --grammar FILE
		The TOML grammar description to build. Defaults to "grammar.toml".

	-o, --out FILE
		Where to write the compiled table blob. Defaults to "grammar.tab".

	-d, --direct
		Force reading REPL input directly from stdin instead of through
		GNU readline, even when attached to a real terminal.
*/
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/corvidtools/parsegen/automaton"
	"github.com/corvidtools/parsegen/diag"
	"github.com/corvidtools/parsegen/table"
)

const version = "0.1.0"

const (
	exitSuccess = iota
	exitBuildError
	exitWriteError
)

var (
	returnCode  = exitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "print the version and exit")
	grammarFlag = pflag.StringP("grammar", "g", "grammar.toml", "TOML grammar description to build")
	outFlag     = pflag.StringP("out", "o", "grammar.tab", "where to write the compiled table blob")
	forceDirect = pflag.BoolP("direct", "d", false, "force direct stdin reading instead of GNU readline")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("parsegenc %s\n", version)
		return
	}

	g, err := loadGrammarFile(*grammarFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: load grammar: %v\n", err)
		returnCode = exitBuildError
		return
	}

	aut, err := automaton.NewBuilder().Build(g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: build automaton: %v\n", err)
		returnCode = exitBuildError
		return
	}

	tabs, conflicts, err := table.Generate(aut, g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: generate tables: %v\n", err)
		returnCode = exitBuildError
		return
	}

	fmt.Println(diag.Summary(aut, conflicts))
	if len(conflicts) > 0 {
		fmt.Println(diag.Conflicts(g, conflicts))
	}

	compiled, err := table.NewCompiled(tabs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: stamp compiled tables: %v\n", err)
		returnCode = exitWriteError
		return
	}
	if err := os.WriteFile(*outFlag, table.Save(compiled), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: write %s: %v\n", *outFlag, err)
		returnCode = exitWriteError
		return
	}

	sess := &session{g: g, aut: aut, tabs: tabs, conflicts: conflicts}
	runREPL(sess)
}

func runREPL(sess *session) {
	var reader commandReader
	if !*forceDirect && isatty.IsTerminal(os.Stdin.Fd()) {
		rl, err := newInteractiveReader("parsegenc> ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: start readline: %v\n", err)
			reader = newDirectReader(os.Stdin)
		} else {
			reader = rl
		}
	} else {
		reader = newDirectReader(os.Stdin)
	}
	defer reader.Close()

	for {
		line, err := reader.ReadCommand()
		if err != nil {
			return
		}
		if sess.dispatch(line, os.Stdout) {
			return
		}
	}
}

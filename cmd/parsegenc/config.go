package main

import (
	"github.com/BurntSushi/toml"

	"github.com/corvidtools/parsegen/grammar"
)

// grammarFile is the TOML shape a grammar is loaded from: flat lists of
// terminal and non-terminal names (declaration order fixes their ids) plus
// a start symbol and a production list. It is a data format for
// describing an already-decided grammar, not a surface grammar syntax
// parser — building one of those remains out of the core's scope.
type grammarFile struct {
	Start        string          `toml:"start"`
	Terminals    []string        `toml:"terminals"`
	NonTerminals []string        `toml:"non_terminals"`
	Productions  []productionDef `toml:"productions"`
}

type productionDef struct {
	Head       string   `toml:"head"`
	Body       []string `toml:"body"`
	Precedence int      `toml:"precedence"`
	Assoc      string   `toml:"assoc"` // "left", "right", "nonassoc", or "" (unset)
}

func (p productionDef) associativity() grammar.Associativity {
	switch p.Assoc {
	case "left":
		return grammar.AssocLeft
	case "right":
		return grammar.AssocRight
	case "nonassoc":
		return grammar.AssocNonAssoc
	default:
		return grammar.AssocNone
	}
}

// loadGrammarFile decodes path and interns it into a grammar.Grammar via
// grammar.Builder, in the same declare-then-Build two-step the core's own
// fixtures use.
func loadGrammarFile(path string) (grammar.Grammar, error) {
	var gf grammarFile
	if _, err := toml.DecodeFile(path, &gf); err != nil {
		return grammar.Grammar{}, err
	}

	b := grammar.NewBuilder()
	for _, name := range gf.Terminals {
		if _, err := b.DeclareTerminal(name); err != nil {
			return grammar.Grammar{}, err
		}
	}
	for _, name := range gf.NonTerminals {
		if _, err := b.DeclareNonTerminal(name); err != nil {
			return grammar.Grammar{}, err
		}
	}
	b.SetStart(gf.Start)

	specs := make([]grammar.ProdSpec, len(gf.Productions))
	for i, p := range gf.Productions {
		specs[i] = grammar.ProdSpec{
			Head:       p.Head,
			Body:       p.Body,
			Precedence: p.Precedence,
			Assoc:      p.associativity(),
		}
	}

	return b.Build(specs)
}

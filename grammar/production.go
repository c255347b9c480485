package grammar

import (
	"fmt"
	"strings"
)

// AugmentedProductionID is the out-of-band sentinel id for the augmenting
// production S' -> S. It is deliberately outside the range of any real
// production id so that it can never collide with one; per the design
// notes, it is never placed in the productions slice and is special-cased
// by Grammar.Production.
const AugmentedProductionID = -1

// AugmentedHeadID is the sentinel head id of the augmenting production.
const AugmentedHeadID = -1

// Associativity names the associativity a surface-syntax front end may
// attach to a production to help a human resolve a shift/reduce conflict
// by hand. Per spec §9's Open Question decision, the core recognizes
// this annotation as part of the data model but table.Generate never
// consults it: conflicts are always reported and resolved only by a fixed
// rule that does not depend on write order (shift beats reduce; lower
// production id wins among reduces).
type Associativity int

const (
	AssocNone Associativity = iota
	AssocLeft
	AssocRight
	AssocNonAssoc
)

func (a Associativity) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	case AssocNonAssoc:
		return "nonassoc"
	default:
		return "none"
	}
}

// Production is a single rewriting rule head -> body.
type Production struct {
	ID   int
	Head int
	Body []Symbol

	// Precedence and Assoc are inert annotations: a surface-syntax front
	// end may attach them, but no component in this core reads them when
	// resolving a table conflict. See Associativity's doc comment.
	Precedence int
	Assoc      Associativity
}

// Arity returns the length of the production's body.
func (p Production) Arity() int {
	return len(p.Body)
}

// String gives a debug representation, e.g. "3: N0 -> t1 N2".
func (p Production) String() string {
	parts := make([]string, len(p.Body))
	for i, s := range p.Body {
		parts[i] = s.String()
	}
	body := strings.Join(parts, " ")
	if body == "" {
		body = "ε"
	}
	return fmt.Sprintf("%d: N%d -> %s", p.ID, p.Head, body)
}

package table

import (
	"fmt"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

// Compiled is a Tables value paired with a build identifier, suitable for
// writing to and reading back from disk so a generated grammar's tables
// need not be recomputed on every run of a consuming parser.
type Compiled struct {
	BuildID uuid.UUID
	Tables  *Tables
}

// NewCompiled stamps t with a fresh random build id.
func NewCompiled(t *Tables) (Compiled, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Compiled{}, fmt.Errorf("generate build id: %w", err)
	}
	return Compiled{BuildID: id, Tables: t}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler so that Compiled can be
// passed to rezi.EncBinary.
func (c Compiled) MarshalBinary() ([]byte, error) {
	idBytes, err := c.BuildID.MarshalBinary()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, 16+4*3)
	buf = append(buf, idBytes...)
	buf = appendInt32(buf, int32(c.Tables.StateCount))
	buf = appendInt32(buf, int32(c.Tables.TerminalCount))
	buf = appendInt32(buf, int32(c.Tables.NonTermCount))

	buf = appendMatrix(buf, c.Tables.TokenTable, c.Tables.StateCount, c.Tables.TerminalCount)
	buf = appendMatrix(buf, c.Tables.EofTable, c.Tables.StateCount, 1)
	buf = appendMatrix(buf, c.Tables.GotoTable, c.Tables.StateCount, c.Tables.NonTermCount)

	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler so that Compiled
// can be passed to rezi.DecBinary.
func (c *Compiled) UnmarshalBinary(data []byte) error {
	if len(data) < 16+12 {
		return fmt.Errorf("table: truncated compiled data")
	}

	if err := c.BuildID.UnmarshalBinary(data[:16]); err != nil {
		return fmt.Errorf("table: build id: %w", err)
	}
	data = data[16:]

	states := int(readInt32(data))
	data = data[4:]
	terms := int(readInt32(data))
	data = data[4:]
	nonterms := int(readInt32(data))
	data = data[4:]

	tokenTable, data, err := readMatrix(data, states, terms)
	if err != nil {
		return err
	}
	eofTable, data, err := readMatrix(data, states, 1)
	if err != nil {
		return err
	}
	gotoTable, _, err := readMatrix(data, states, nonterms)
	if err != nil {
		return err
	}

	c.Tables = &Tables{
		TokenTable:    tokenTable,
		EofTable:      eofTable,
		GotoTable:     gotoTable,
		StateCount:    states,
		TerminalCount: terms,
		NonTermCount:  nonterms,
	}
	return nil
}

// Save serializes c with rezi's binary encoding.
func Save(c Compiled) []byte {
	return rezi.EncBinary(c)
}

// Load deserializes compiled table data produced by Save.
func Load(data []byte) (Compiled, error) {
	var c Compiled
	if _, err := rezi.DecBinary(data, &c); err != nil {
		return Compiled{}, fmt.Errorf("table: decode compiled tables: %w", err)
	}
	return c, nil
}

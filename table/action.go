package table

import "github.com/npillmayer/gorgo/lr/sparse"

// nullValue is the sparse matrix sentinel for "no action here".
const nullValue = sparse.DefaultNullValue

// acceptValue marks the distinguished Accept action: reducing by the
// augmenting production on end-of-input.
const acceptValue = nullValue + 1

// ActionKind distinguishes the three things a cell in the token/EOF action
// tables can hold.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionShift
	ActionReduce
	ActionAccept
)

// Action is a decoded action-table cell: a kind plus its operand (the
// target state for Shift, the production id for Reduce).
type Action struct {
	Kind    ActionKind
	Operand int
}

// encodeShift packs a target state id into the matrix's int32 domain.
// Shift values are always >= 1 (state ids are non-negative), which keeps
// them disjoint from reduce values (always <= -2) and from the two
// negative sentinels.
func encodeShift(state int) int32 {
	return int32(state) + 1
}

// encodeReduce packs a production id. Production ids are non-negative, so
// -(id+2) is always <= -2, disjoint from shift encodings and sentinels.
func encodeReduce(production int) int32 {
	return -(int32(production) + 2)
}

func decodeAction(v int32) Action {
	switch {
	case v == nullValue:
		return Action{Kind: ActionNone}
	case v == acceptValue:
		return Action{Kind: ActionAccept}
	case v >= 1:
		return Action{Kind: ActionShift, Operand: int(v - 1)}
	default:
		return Action{Kind: ActionReduce, Operand: int(-v - 2)}
	}
}

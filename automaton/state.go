package automaton

// State is a single node of the LALR automaton: a kernel of core items, a
// construction-time marked flag, and the set of closure items whose
// production has arity zero (they reduce without consuming a symbol and
// must be consulted, alongside the kernel's own reducing items, when the
// table generator resolves reductions for this state).
type State struct {
	ID      int
	Kernel  []Item
	Marked  bool
	Epsilon []Item

	// tokenTarget/ntTarget record this state's outgoing shift and goto
	// transitions, keyed by terminal/non-terminal id, populated during
	// successor-state construction.
	tokenTarget map[int]int
	ntTarget    map[int]int
}

// TokenTarget returns the state reached by shifting terminal t from this
// state, if any.
func (s State) TokenTarget(t int) (int, bool) {
	id, ok := s.tokenTarget[t]
	return id, ok
}

// NonTerminalTarget returns the state reached by a goto on non-terminal n
// from this state, if any.
func (s State) NonTerminalTarget(n int) (int, bool) {
	id, ok := s.ntTarget[n]
	return id, ok
}

// TokenTargets returns this state's full terminal-id -> target-state shift
// map.
func (s State) TokenTargets() map[int]int {
	return s.tokenTarget
}

// NonTerminalTargets returns this state's full non-terminal-id ->
// target-state goto map.
func (s State) NonTerminalTargets() map[int]int {
	return s.ntTarget
}

// kernelKey is the order-independent identity of a state's kernel, used to
// detect LR(0)-equal kernels during successor-state construction.
type kernelKey string

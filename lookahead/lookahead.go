// Package lookahead implements the lookahead dependency graph: a directed
// graph of nodes, each with a frozen natural lookahead set and an
// appendable list of dependency edges to other nodes. Resolving a node
// computes the union of its natural set with every transitively reachable
// node's natural set, cycle-safe.
//
// The graph exists because the canonical LALR(1) construction needs to
// solve a fixpoint of lookahead sets across item merges and transitions.
// Representing that fixpoint explicitly as a graph defers evaluation to
// table-generation time, where each reducing item is resolved exactly
// once, and makes every merge operation O(1) (append an edge) rather than
// an eager set union.
package lookahead

import "github.com/corvidtools/parsegen/internal/util"

// NodeID identifies a node within a single Graph. Ids are assigned from a
// monotonically increasing counter owned by the Graph and are never reused.
type NodeID int

// Set is the resolved or natural lookahead of a node: a set of terminal
// ids plus whether end-of-input may follow.
type Set struct {
	Terminals util.IntSet
	EOF       bool
}

// NewSet builds a Set from the given terminal ids and eof flag.
func NewSet(eof bool, terminals ...int) Set {
	return Set{Terminals: util.NewIntSet(terminals...), EOF: eof}
}

func (s Set) union(o Set) Set {
	out := Set{Terminals: s.Terminals.Copy(), EOF: s.EOF || o.EOF}
	out.Terminals.AddAll(o.Terminals)
	return out
}

type node struct {
	id      NodeID
	natural Set
	deps    []NodeID
}

// Graph owns a single build's lookahead nodes. It must not be shared
// across independent automaton builds; a fresh Graph is created per call
// to automaton.Builder.Build.
type Graph struct {
	nodes []node
}

// NewGraph returns an empty lookahead graph.
func NewGraph() *Graph {
	return &Graph{}
}

// NewNode allocates a fresh node with the given frozen natural set and
// initial dependency edges, and returns its id. The natural set is frozen
// at creation; only dependencies may be appended afterward, via
// AddDependency.
func (g *Graph) NewNode(natural Set, deps ...NodeID) NodeID {
	id := NodeID(len(g.nodes))
	depsCopy := make([]NodeID, len(deps))
	copy(depsCopy, deps)
	g.nodes = append(g.nodes, node{id: id, natural: natural, deps: depsCopy})
	return id
}

// NewInitialNode allocates the node for the augmenting item's kernel: a
// natural set that allows only end-of-input, with no dependencies.
func (g *Graph) NewInitialNode() NodeID {
	return g.NewNode(Set{Terminals: util.NewIntSet(), EOF: true})
}

// AddDependency appends other as a dependency edge of node. Cycles are
// permitted; Resolve is cycle-safe.
func (g *Graph) AddDependency(node, other NodeID) {
	g.nodes[node].deps = append(g.nodes[node].deps, other)
}

// Resolve computes the lookahead of a node: the union of its natural set
// with the sets of every node transitively reachable through dependency
// edges. It performs a DFS with a visited set over node ids; a node
// contributes its natural set on first visit only, which is sound because
// the fixed point being computed is a plain set union and revisiting a
// node can only ever re-derive sets it has already contributed.
func (g *Graph) Resolve(n NodeID) Set {
	visited := make(map[NodeID]bool)
	return g.resolveHelper(n, visited)
}

func (g *Graph) resolveHelper(n NodeID, visited map[NodeID]bool) Set {
	if visited[n] {
		return Set{Terminals: util.NewIntSet()}
	}
	visited[n] = true

	nd := g.nodes[n]
	res := Set{Terminals: nd.natural.Terminals.Copy(), EOF: nd.natural.EOF}

	for _, dep := range nd.deps {
		res = res.union(g.resolveHelper(dep, visited))
	}

	return res
}

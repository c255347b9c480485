package automaton

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/corvidtools/parsegen/grammar"
	"github.com/corvidtools/parsegen/lookahead"
)

// Automaton is the canonical collection of LALR(1) item sets: the states
// indexed by id, and the lookahead graph every item's lookahead node lives
// in. The graph's lifetime is the automaton's: resolving any item's
// lookahead after the automaton is built is done by calling
// Automaton.Lookahead.
type Automaton struct {
	States []State
	graph  *lookahead.Graph
}

// Lookahead resolves the lookahead set of a single item's lookahead node.
func (a *Automaton) Lookahead(it Item) lookahead.Set {
	return a.graph.Resolve(it.Lookahead)
}

// Builder constructs an Automaton for a grammar, optionally reporting its
// progress through an attached trace sink.
type Builder struct {
	OnTrace func(msg string)
}

// NewBuilder returns a Builder with no trace sink attached.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) trace(msg string) {
	if b.OnTrace != nil {
		b.OnTrace(msg)
	}
}

// Build runs the canonical LALR(1) state-set construction over g: starting
// from the augmenting item's kernel, it repeatedly closes and advances
// unmarked states, merging LR(0)-equal kernels by adding lookahead
// dependency edges rather than duplicating items, until every state is
// marked.
func (b *Builder) Build(g grammar.Grammar) (*Automaton, error) {
	graph := lookahead.NewGraph()

	startNode := graph.NewInitialNode()
	startItem := Item{Production: grammar.AugmentedProductionID, Marker: 0, Lookahead: startNode}

	a := &Automaton{graph: graph}
	a.States = append(a.States, State{ID: 0, Kernel: []Item{startItem}})

	unmarked := treeset.NewWith(utils.IntComparator)
	unmarked.Add(0)

	// kernels indexes existing states by their order-independent kernel
	// identity, so successor construction can detect LR(0)-equal kernels
	// in O(1) instead of scanning every state.
	kernels := map[kernelKey]int{keyOf(a.States[0].Kernel): 0}

	for unmarked.Size() > 0 {
		sid := unmarked.Values()[0].(int)
		unmarked.Remove(sid)

		if a.States[sid].Marked {
			continue
		}
		a.States[sid].Marked = true
		b.trace(fmt.Sprintf("marking state %d", sid))

		closureItems, err := b.closure(g, graph, a.States[sid].Kernel)
		if err != nil {
			return nil, err
		}

		if err := b.successors(g, graph, a, sid, closureItems, kernels, unmarked); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// closure expands a kernel by repeatedly adding [B -> . gamma, L] items for
// every non-terminal B appearing after a marker, per the core's closure
// algorithm (§4.3): a fresh lookahead node is allocated for every item
// whose marker precedes a non-terminal, and shared by all the items that
// item adds; items that already exist absorb that node via a dependency
// edge instead of being duplicated.
func (b *Builder) closure(g grammar.Grammar, graph *lookahead.Graph, kernel []Item) ([]Item, error) {
	keyed := map[ItemKey]int{} // item key -> index into items
	items := make([]Item, 0, len(kernel))

	worklist := arraylist.New()
	for _, it := range kernel {
		idx := len(items)
		items = append(items, it)
		keyed[it.Key()] = idx
		worklist.Add(it)
	}

	for worklist.Size() > 0 {
		last := worklist.Size() - 1
		v, _ := worklist.Get(last)
		worklist.Remove(last)
		it := v.(Item)

		prod, err := g.Production(it.Production)
		if err != nil {
			return nil, err
		}
		if it.Marker >= len(prod.Body) {
			continue // reducing, nothing to close over
		}

		sym := prod.Body[it.Marker]
		if sym.IsTerminal() || sym.IsEndOfInput() {
			continue
		}

		beta := prod.Body[it.Marker+1:]
		betaFirst := g.First(beta)

		var deps []lookahead.NodeID
		if betaFirst.Nullable {
			deps = []lookahead.NodeID{it.Lookahead}
		}
		freshNode := graph.NewNode(lookahead.Set{Terminals: betaFirst.Terminals, EOF: false}, deps...)

		for _, subProd := range g.ProductionsWithHead(sym.ID) {
			newItem := Item{Production: subProd.ID, Marker: 0, Lookahead: freshNode}
			key := newItem.Key()

			if existingIdx, ok := keyed[key]; ok {
				graph.AddDependency(items[existingIdx].Lookahead, freshNode)
				continue
			}

			idx := len(items)
			items = append(items, newItem)
			keyed[key] = idx
			worklist.Add(newItem)
		}
	}

	return items, nil
}

// successors groups the non-reducing closure items of state sid by the
// symbol at the marker, advances the marker in each group to form a
// candidate kernel, and either merges it into an existing LR(0)-equal
// state or allocates a new unmarked one. It also records every arity-zero
// closure item of sid as an epsilon item.
func (b *Builder) successors(
	g grammar.Grammar,
	graph *lookahead.Graph,
	a *Automaton,
	sid int,
	closureItems []Item,
	kernels map[kernelKey]int,
	unmarked *treeset.Set,
) error {
	groups := map[grammar.Symbol][]Item{}
	var order []grammar.Symbol

	for _, it := range closureItems {
		prod, err := g.Production(it.Production)
		if err != nil {
			return err
		}

		if it.Marker >= len(prod.Body) {
			if prod.Arity() == 0 {
				a.States[sid].Epsilon = append(a.States[sid].Epsilon, it)
			}
			continue
		}

		sym := prod.Body[it.Marker]
		if _, seen := groups[sym]; !seen {
			order = append(order, sym)
		}
		groups[sym] = append(groups[sym], it)
	}

	if a.States[sid].tokenTarget == nil {
		a.States[sid].tokenTarget = map[int]int{}
	}
	if a.States[sid].ntTarget == nil {
		a.States[sid].ntTarget = map[int]int{}
	}

	for _, sym := range order {
		group := groups[sym]

		candidate := make([]Item, len(group))
		for i, it := range group {
			candidate[i] = Item{Production: it.Production, Marker: it.Marker + 1, Lookahead: it.Lookahead}
		}
		key := keyOf(candidate)

		var targetID int
		if existingID, ok := kernels[key]; ok {
			targetID = existingID
			// Merge step: wire the existing state's per-core-item
			// lookahead node to the new source, rather than treating
			// this as a distinct state. This is the step that
			// collapses canonical LR(1) into LALR(1).
			existing := a.States[existingID]
			for _, it := range candidate {
				for _, ex := range existing.Kernel {
					if ex.Key() == it.Key() {
						graph.AddDependency(ex.Lookahead, it.Lookahead)
						break
					}
				}
			}
		} else {
			targetID = len(a.States)
			a.States = append(a.States, State{ID: targetID, Kernel: candidate})
			kernels[key] = targetID
			unmarked.Add(targetID)
		}

		if sym.IsTerminal() {
			a.States[sid].tokenTarget[sym.ID] = targetID
		} else {
			a.States[sid].ntTarget[sym.ID] = targetID
		}
	}

	return nil
}

// keyOf computes the order-independent kernel identity used to detect
// LR(0)-equal kernels: the sorted set of (production, marker) core item
// keys, ignoring lookahead entirely.
func keyOf(items []Item) kernelKey {
	keys := make([]ItemKey, len(items))
	for i, it := range items {
		keys[i] = it.Key()
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Production != keys[j].Production {
			return keys[i].Production < keys[j].Production
		}
		return keys[i].Marker < keys[j].Marker
	})

	var sb []byte
	for _, k := range keys {
		sb = append(sb, []byte(fmt.Sprintf("%d:%d;", k.Production, k.Marker))...)
	}
	return kernelKey(sb)
}

package searcher

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"patchwork/game"
)

// NodeID is a stable handle into an arena. The generation tag invalidates
// every handle at once when the arena is reset or rebased, so a stale id
// can never silently read a recycled slot.
type NodeID struct {
	index      int32
	generation uint32
}

var noNode = NodeID{index: -1}

// arena owns every node of one search tree in a single slice. Parent and
// child links are NodeIDs instead of pointers: nodes never move once
// allocated (ids index the slice), cycles are impossible because children
// are only appended, and dropping the whole tree is one reset.
type arena struct {
	nodes      []node
	generation uint32
	rng        *rand.Rand
}

func newArena(rng *rand.Rand) *arena {
	return &arena{rng: rng}
}

func (a *arena) len() int {
	return len(a.nodes)
}

// allocate creates a node for state with zeroed statistics and hands back
// its id. The expandable actions are shuffled here, which makes the
// expansion order deterministic for a fixed arena seed. A non-terminal
// state with no legal actions is a broken game implementation, not a
// terminal node, and is rejected loudly.
func (a *arena) allocate(state game.State, parent NodeID, action game.Action, legal []game.Action) NodeID {
	terminal := state.IsTerminal()
	if !terminal && len(legal) == 0 {
		panic("searcher: game produced no legal actions for a non-terminal state")
	}

	expandable := make([]game.Action, len(legal))
	copy(expandable, legal)
	a.rng.Shuffle(len(expandable), func(i, j int) {
		expandable[i], expandable[j] = expandable[j], expandable[i]
	})

	id := NodeID{index: int32(len(a.nodes)), generation: a.generation}
	a.nodes = append(a.nodes, node{
		id:         id,
		state:      state,
		parent:     parent,
		action:     action,
		expandable: expandable,
		terminal:   terminal,
		maxScore:   math.Inf(-1),
		minScore:   math.Inf(1),
	})

	if parent != noNode {
		p := a.node(parent)
		p.children = append(p.children, id)
	}
	return id
}

// node dereferences an id. Out-of-range indices and ids from a discarded
// generation are contract violations.
func (a *arena) node(id NodeID) *node {
	if id.generation != a.generation {
		panic(fmt.Sprintf("searcher: node id from discarded generation %d (arena at %d)", id.generation, a.generation))
	}
	if id.index < 0 || int(id.index) >= len(a.nodes) {
		panic(fmt.Sprintf("searcher: node id %d out of range (%d nodes)", id.index, len(a.nodes)))
	}
	return &a.nodes[id.index]
}

// reset discards every node and invalidates all outstanding ids.
func (a *arena) reset() {
	a.nodes = a.nodes[:0]
	a.generation++
}

// rebase keeps only the subtree rooted at newRoot, compacts it to the
// front of the slice and bumps the generation, so ids into the discarded
// part cannot be confused with ids into the kept part. Returns the new id
// of the kept root. This is the tree-reuse path after a real move.
func (a *arena) rebase(newRoot NodeID) NodeID {
	keep := make([]bool, len(a.nodes))
	queue := []NodeID{newRoot}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		keep[id.index] = true
		queue = append(queue, a.node(id).children...)
	}

	remap := make([]int32, len(a.nodes))
	kept := a.nodes[:0]
	for i := range a.nodes {
		if keep[i] {
			remap[i] = int32(len(kept))
			kept = append(kept, a.nodes[i])
		} else {
			remap[i] = -1
		}
	}
	a.nodes = kept
	a.generation++

	for i := range a.nodes {
		n := &a.nodes[i]
		n.id = NodeID{index: int32(i), generation: a.generation}
		if n.parent != noNode {
			n.parent = NodeID{index: remap[n.parent.index], generation: a.generation}
		}
		for c := range n.children {
			n.children[c] = NodeID{index: remap[n.children[c].index], generation: a.generation}
		}
	}

	rootID := NodeID{index: remap[newRoot.index], generation: a.generation}
	root := a.node(rootID)
	root.parent = noNode
	root.action = game.Action{}
	return rootID
}

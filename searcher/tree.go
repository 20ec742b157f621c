package searcher

import (
	"golang.org/x/exp/rand"

	"patchwork/game"
)

// SearchTree runs the four-phase playout loop over one arena: walk down
// with the tree policy while nodes are fully expanded, expand one action,
// evaluate the leaf, push the value back up to the root. One SearchTree is
// owned by exactly one goroutine; root parallelism runs several
// independent trees and merges their root statistics.
type SearchTree struct {
	arena  *arena
	root   NodeID
	policy TreePolicy
	eval   Evaluator
	rng    *rand.Rand

	playouts int
	maxDepth int

	// A terminal root never grows a tree: its value is computed once and
	// every playout returns it unchanged.
	terminalRoot  bool
	terminalValue float64
}

// NewSearchTree builds a search session for state. The seed fixes both the
// expansion order and every rollout, so equal seeds give equal searches.
func NewSearchTree(state game.State, policy TreePolicy, eval Evaluator, seed uint64) *SearchTree {
	rng := rand.New(rand.NewSource(seed))
	t := &SearchTree{
		arena:  newArena(rng),
		root:   noNode,
		policy: policy,
		eval:   eval,
		rng:    rng,
	}

	if state.IsTerminal() {
		t.terminalRoot = true
		t.terminalValue = eval.EvaluateTerminal(state)
		return t
	}

	t.root = t.arena.allocate(state, noNode, game.Action{}, state.LegalActions())
	return t
}

// Playout runs one selection, expansion, evaluation, backpropagation
// cycle and returns the backpropagated neutral value.
func (t *SearchTree) Playout() float64 {
	t.playouts++
	if t.terminalRoot {
		return t.terminalValue
	}

	// Selection: descend while the node has nothing left to expand and
	// the game is not over there.
	current := t.root
	depth := 0
	for {
		n := t.arena.node(current)
		if n.terminal || !n.fullyExpanded() {
			break
		}
		current = n.children[t.selectChild(n)]
		depth++
	}
	if depth > t.maxDepth {
		t.maxDepth = depth
	}

	var value float64
	if t.arena.node(current).terminal {
		value = t.eval.EvaluateTerminal(t.arena.node(current).state)
	} else {
		current = t.expand(current)
		leaf := t.arena.node(current).state
		if leaf.IsTerminal() {
			value = t.eval.EvaluateTerminal(leaf)
		} else {
			value = t.eval.EvaluateIntermediate(leaf, t.rng)
		}
	}

	t.backpropagate(current, value)
	return value
}

func (t *SearchTree) selectChild(n *node) int {
	parent := n.view()
	children := make([]NodeView, len(n.children))
	for i, id := range n.children {
		children[i] = t.arena.node(id).view()
	}
	return t.policy.Select(parent, children)
}

// expand grows one child from the node's expandable actions. The
// expandable list was shuffled at allocation, so taking the front is a
// seeded-random pick.
func (t *SearchTree) expand(id NodeID) NodeID {
	n := t.arena.node(id)
	if n.fullyExpanded() {
		panic("searcher: expand called on a fully expanded node")
	}

	action := n.expandable[0]
	n.expandable = n.expandable[1:]
	successor := n.state.Apply(action)
	// allocate may grow the arena slice; n is stale after this call.
	return t.arena.allocate(successor, id, action, successor.LegalActions())
}

// backpropagate applies the neutral value to the leaf and every ancestor
// up to the root: the same update everywhere, perspective is a read-time
// concern. Win attribution follows from each node's stored mover, never
// from tree depth, because Patchwork turns do not alternate.
func (t *SearchTree) backpropagate(id NodeID, value float64) {
	for id != noNode {
		n := t.arena.node(id)
		n.visits++
		n.scoreSum += value
		if value > n.maxScore {
			n.maxScore = value
		}
		if value < n.minScore {
			n.minScore = value
		}
		if value > 0 {
			n.wins++
		} else if value < 0 {
			n.wins--
		}
		id = n.parent
	}
}

// ActionStat is one root child's contribution to the search diagnostics.
type ActionStat struct {
	Action game.Action
	Visits int
	// Mean is the average value from the root mover's perspective.
	Mean float64
}

// RootStats lists every expanded root child with its visit count and mean
// value, ordered as expanded.
func (t *SearchTree) RootStats() []ActionStat {
	if t.terminalRoot {
		return nil
	}

	root := t.arena.node(t.root)
	mover := root.state.Player1ToMove()
	stats := make([]ActionStat, 0, len(root.children))
	for _, id := range root.children {
		child := t.arena.node(id)
		stats = append(stats, ActionStat{
			Action: child.action,
			Visits: child.visits,
			Mean:   child.view().MeanFor(mover),
		})
	}
	return stats
}

// BestAction picks the robustness child: most visits, ties broken by the
// higher mean value for the root mover. False when nothing was expanded.
func (t *SearchTree) BestAction() (game.Action, bool) {
	stats := t.RootStats()
	if len(stats) == 0 {
		return game.Action{}, false
	}

	best := stats[0]
	for _, s := range stats[1:] {
		if s.Visits > best.Visits || (s.Visits == best.Visits && s.Mean > best.Mean) {
			best = s
		}
	}
	return best.Action, true
}

// Playouts is the number of completed playout cycles.
func (t *SearchTree) Playouts() int {
	return t.playouts
}

// MaxDepth is the deepest selection path seen so far.
func (t *SearchTree) MaxDepth() int {
	return t.maxDepth
}

// Nodes is the current arena size.
func (t *SearchTree) Nodes() int {
	return t.arena.len()
}

// AdvanceRoot moves the root to the child reached by action and prunes
// everything else, invalidating all prior NodeIDs. It reports whether the
// child existed; when it does not (the move was never expanded) the tree
// is unusable for reuse and the caller should start fresh.
func (t *SearchTree) AdvanceRoot(action game.Action) bool {
	if t.terminalRoot {
		return false
	}

	root := t.arena.node(t.root)
	for _, id := range root.children {
		if t.arena.node(id).action == action {
			t.root = t.arena.rebase(id)
			return true
		}
	}
	return false
}

// RootHash is the fingerprint of the state the tree is currently rooted
// at, used to validate tree reuse.
func (t *SearchTree) RootHash() (uint64, bool) {
	if t.terminalRoot {
		return 0, false
	}
	return t.arena.node(t.root).state.Hash(), true
}

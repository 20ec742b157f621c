package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"patchwork/game"
)

func TestSearchTreeTerminalRoot(t *testing.T) {
	tree := NewSearchTree(mockWin(false), NewUCTPolicy(), WinLossEvaluator{}, 1)

	require.Equal(t, 0, tree.Nodes(), "A terminal root should never allocate a node")

	for i := 0; i < 3; i++ {
		require.Equal(t, -1.0, tree.Playout(), "Every playout should return the terminal value")
	}
	require.Equal(t, 3, tree.Playouts())
	require.Equal(t, 0, tree.Nodes())
	require.Nil(t, tree.RootStats())

	_, ok := tree.BestAction()
	require.False(t, ok, "There is no action to recommend in a finished game")
	_, ok = tree.RootHash()
	require.False(t, ok)
	require.False(t, tree.AdvanceRoot(mockAction(0)))
}

func TestSearchTreeVisitInvariants(t *testing.T) {
	// Three terminal children: after three expansions the tree stops
	// growing and every further playout revisits a child.
	state := mockBranch(true, mockWin(true), mockWin(false), mockWin(true))
	tree := NewSearchTree(state, NewUCTPolicy(), WinLossEvaluator{}, 42)

	const playouts = 10
	for i := 0; i < playouts; i++ {
		tree.Playout()
	}

	require.Equal(t, 4, tree.Nodes(), "Root plus one node per legal action")
	require.Equal(t, playouts, tree.Playouts())
	require.Equal(t, 1, tree.MaxDepth())

	stats := tree.RootStats()
	require.Len(t, stats, 3)
	total := 0
	for _, s := range stats {
		require.Positive(t, s.Visits, "Every child should be visited at least once")
		total += s.Visits
	}
	require.Equal(t, playouts, total, "Each playout should pass through exactly one root child")
}

func TestSearchTreeSubtreeVisitInvariant(t *testing.T) {
	// root (p1) -> mid (p2) -> two terminals. mid absorbed one visit as a
	// leaf before its children existed, so its count leads theirs by one.
	mid := mockBranch(false, mockWin(true), mockWin(false))
	root := mockBranch(true, mid)

	tree := NewSearchTree(root, NewUCTPolicy(), WinLossEvaluator{}, 21)
	const playouts = 12
	for i := 0; i < playouts; i++ {
		tree.Playout()
	}
	require.Equal(t, 4, tree.Nodes())

	for i := range tree.arena.nodes {
		n := &tree.arena.nodes[i]
		if n.terminal || !n.fullyExpanded() || n.parent == noNode {
			continue
		}
		sum := 0
		for _, id := range n.children {
			sum += tree.arena.node(id).visits
		}
		require.Equal(t, 1+sum, n.visits,
			"An internal node keeps the visit it got as a leaf on top of its children's")
	}

	midNode := tree.arena.node(tree.arena.node(tree.root).children[0])
	require.Equal(t, playouts, midNode.visits, "Every playout passes through the only root child")
}

func TestSearchTreeScoreExtremesWiden(t *testing.T) {
	big := &mockState{
		terminal: true,
		outcome:  game.Termination{Winner: 0, Score1: 20, Score2: 2},
	}
	state := mockBranch(true, mockWin(false), mockWin(true), big)
	tree := NewSearchTree(state, NewScoredUCTPolicy(), ScoreEvaluator{}, 3)

	prevMax := math.Inf(-1)
	prevMin := math.Inf(1)
	for i := 0; i < 15; i++ {
		tree.Playout()
		n := tree.arena.node(tree.root)
		require.GreaterOrEqual(t, n.maxScore, prevMax, "The observed maximum never shrinks")
		require.LessOrEqual(t, n.minScore, prevMin, "The observed minimum never shrinks")
		prevMax, prevMin = n.maxScore, n.minScore
	}

	n := tree.arena.node(tree.root)
	require.Equal(t, 18.0, n.maxScore, "The root should have seen the widest win")
	require.Equal(t, -5.0, n.minScore, "The root should have seen the loss")
}

func TestSearchTreeConsecutiveMoverAttribution(t *testing.T) {
	// Player 1 moves twice in a row, as happens whenever a move leaves the
	// mover still behind the opponent. A won line must read as a win at
	// both levels: attribution follows each node's stored mover, never the
	// tree depth.
	inner := mockBranch(true, mockWin(true), mockWin(false))
	state := mockBranch(true, inner, mockWin(false))
	tree := NewSearchTree(state, NewUCTPolicy(), WinLossEvaluator{}, 19)

	for i := 0; i < 60; i++ {
		tree.Playout()
	}

	action, ok := tree.BestAction()
	require.True(t, ok)
	require.Equal(t, mockAction(0), action,
		"The double-move branch holds the only win and should dominate")

	innerNode := tree.arena.node(tree.arena.node(tree.root).children[0])
	require.True(t, innerNode.state.Player1ToMove(), "Both levels belong to player 1")

	var winVisits, lossVisits int
	for _, id := range innerNode.children {
		c := tree.arena.node(id)
		if c.action == mockAction(0) {
			winVisits = c.visits
			require.Equal(t, c.visits, c.view().WinsFor(true),
				"Every value through the winning leaf counts for player 1")
		} else {
			lossVisits = c.visits
		}
	}
	require.Greater(t, winVisits, lossVisits,
		"Selection at the second player 1 node in a row still maximizes for player 1")
}

func TestSearchTreeFindsForcedWin(t *testing.T) {
	t.Run("for player 1", func(t *testing.T) {
		winning := mockWin(true)
		losing := mockWin(false)
		state := mockBranch(true, winning, losing)
		tree := NewSearchTree(state, NewUCTPolicy(), WinLossEvaluator{}, 7)

		for i := 0; i < 50; i++ {
			tree.Playout()
		}

		action, ok := tree.BestAction()
		require.True(t, ok)
		require.Equal(t, mockAction(0), action, "The child leading to the win should dominate visits")
	})

	t.Run("for player 2", func(t *testing.T) {
		state := mockBranch(false, mockWin(true), mockWin(false))
		tree := NewSearchTree(state, NewUCTPolicy(), WinLossEvaluator{}, 7)

		for i := 0; i < 50; i++ {
			tree.Playout()
		}

		action, ok := tree.BestAction()
		require.True(t, ok)
		require.Equal(t, mockAction(1), action,
			"Player 2 should steer toward the child player 1 loses in")
	})
}

func TestSearchTreeDeterminism(t *testing.T) {
	build := func(seed uint64) *SearchTree {
		state := game.NewGameState(11)
		tree := NewSearchTree(state, NewScoredUCTPolicy(), ScoreEvaluator{}, seed)
		for i := 0; i < 30; i++ {
			tree.Playout()
		}
		return tree
	}

	a, b := build(5), build(5)
	require.Equal(t, a.RootStats(), b.RootStats(), "Equal seeds should reproduce the search exactly")

	actionA, _ := a.BestAction()
	actionB, _ := b.BestAction()
	require.Equal(t, actionA, actionB)
}

func TestSearchTreeAdvanceRoot(t *testing.T) {
	leafA := mockWin(true)
	leafB := mockWin(false)
	mid := mockBranch(false, leafA, leafB)
	mid.hash = 99
	state := mockBranch(true, mid, mockWin(false))
	state.hash = 1

	tree := NewSearchTree(state, NewUCTPolicy(), WinLossEvaluator{}, 13)
	for i := 0; i < 40; i++ {
		tree.Playout()
	}

	var midVisits int
	for _, s := range tree.RootStats() {
		if s.Action == mockAction(0) {
			midVisits = s.Visits
		}
	}
	require.Positive(t, midVisits)

	t.Run("advancing to an expanded child", func(t *testing.T) {
		require.True(t, tree.AdvanceRoot(mockAction(0)))

		hash, ok := tree.RootHash()
		require.True(t, ok)
		require.Equal(t, uint64(99), hash, "The new root should be the reached state")
		require.Equal(t, 3, tree.Nodes(), "Only the reached subtree should survive")

		// The subtree keeps working after the rebase.
		before := tree.Playouts()
		tree.Playout()
		require.Equal(t, before+1, tree.Playouts())
	})

	t.Run("advancing along an unexpanded action", func(t *testing.T) {
		require.False(t, tree.AdvanceRoot(mockAction(9)),
			"An action never expanded cannot become the root")
	})
}

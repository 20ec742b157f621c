package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"patchwork/game"
)

func testArena() *arena {
	return newArena(rand.New(rand.NewSource(1)))
}

func TestArenaAllocate(t *testing.T) {
	t.Run("allocating a root node", func(t *testing.T) {
		a := testArena()
		state := mockBranch(true, mockWin(true), mockWin(false))

		id := a.allocate(state, noNode, game.Action{}, state.LegalActions())

		n := a.node(id)
		require.Equal(t, 1, a.len())
		require.Equal(t, noNode, n.parent, "Root should have no parent")
		require.False(t, n.terminal)
		require.Len(t, n.expandable, 2, "All legal actions should start expandable")
		require.Empty(t, n.children)
		require.Equal(t, 0, n.visits, "Statistics should start zeroed")
		require.ElementsMatch(t, state.LegalActions(), n.expandable,
			"Shuffling should permute the actions, not change them")
	})

	t.Run("allocating a child links it to its parent", func(t *testing.T) {
		a := testArena()
		child := mockWin(true)
		state := mockBranch(true, child)
		parent := a.allocate(state, noNode, game.Action{}, state.LegalActions())

		action := mockAction(0)
		id := a.allocate(child, parent, action, nil)

		require.Equal(t, []NodeID{id}, a.node(parent).children)
		require.Equal(t, parent, a.node(id).parent)
		require.Equal(t, action, a.node(id).action)
		require.True(t, a.node(id).terminal)
	})

	t.Run("rejecting a non-terminal state without actions", func(t *testing.T) {
		a := testArena()
		broken := &mockState{player1: true}

		require.Panics(t, func() {
			a.allocate(broken, noNode, game.Action{}, nil)
		}, "A non-terminal state with no legal actions is a game bug")
	})
}

func TestArenaStaleIDs(t *testing.T) {
	t.Run("dereferencing an id after reset", func(t *testing.T) {
		a := testArena()
		state := mockBranch(true, mockWin(true))
		id := a.allocate(state, noNode, game.Action{}, state.LegalActions())

		a.reset()

		require.Equal(t, 0, a.len())
		require.Panics(t, func() { a.node(id) },
			"Ids from a discarded generation should not resolve")
	})

	t.Run("dereferencing an out-of-range id", func(t *testing.T) {
		a := testArena()
		require.Panics(t, func() { a.node(NodeID{index: 3}) })
	})
}

func TestArenaRebase(t *testing.T) {
	// root -> {keepRoot -> {leaf}, dropped}
	a := testArena()
	leaf := mockWin(true)
	keep := mockBranch(false, leaf)
	drop := mockWin(false)
	rootState := mockBranch(true, keep, drop)

	rootID := a.allocate(rootState, noNode, game.Action{}, rootState.LegalActions())
	keepID := a.allocate(keep, rootID, mockAction(0), keep.LegalActions())
	a.allocate(drop, rootID, mockAction(1), nil)
	leafID := a.allocate(leaf, keepID, mockAction(0), nil)
	a.node(keepID).visits = 7

	newRoot := a.rebase(keepID)

	require.Equal(t, 2, a.len(), "Only the kept subtree should survive")
	require.Equal(t, noNode, a.node(newRoot).parent, "The kept root should forget its parent")
	require.Equal(t, game.Action{}, a.node(newRoot).action)
	require.Equal(t, 7, a.node(newRoot).visits, "Statistics should survive the rebase")
	require.Len(t, a.node(newRoot).children, 1)

	child := a.node(a.node(newRoot).children[0])
	require.Equal(t, newRoot, child.parent, "Child links should be remapped to the new ids")
	require.Same(t, leaf, child.state.(*mockState))

	require.Panics(t, func() { a.node(rootID) }, "Pre-rebase ids should be invalidated")
	require.Panics(t, func() { a.node(leafID) }, "Even kept nodes should reject their old ids")
}

package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"patchwork/game"
)

func TestNewMCTS(t *testing.T) {
	t.Run("rejecting a missing search budget", func(t *testing.T) {
		require.Panics(t, func() { NewMCTS(1) })
	})

	t.Run("rejecting zero goroutines", func(t *testing.T) {
		require.Panics(t, func() { NewMCTS(0, WithIterations(10)) })
	})

	t.Run("disabling tree reuse under root parallelism", func(t *testing.T) {
		state := mockBranch(true, mockWin(true), mockWin(false))
		m := NewMCTS(4, WithIterations(40), WithTreeReuse(), WithSeed(1), WithMetrics())

		_, stats, err := m.FindAction(state)
		require.NoError(t, err)
		require.False(t, stats.TreeReused)

		_, stats, err = m.FindAction(state)
		require.NoError(t, err)
		require.False(t, stats.TreeReused, "Merged trees cannot be carried to the next move")
	})
}

func TestFindActionErrors(t *testing.T) {
	m := NewMCTS(1, WithIterations(10), WithSeed(1))

	t.Run("terminal state", func(t *testing.T) {
		_, _, err := m.FindAction(mockWin(true))
		require.ErrorIs(t, err, ErrTerminalState)
	})

	t.Run("non-terminal state without actions", func(t *testing.T) {
		_, _, err := m.FindAction(&mockState{player1: true})
		require.ErrorIs(t, err, ErrNoLegalActions)
	})
}

func TestFindAction(t *testing.T) {
	t.Run("finding a forced win", func(t *testing.T) {
		state := mockBranch(true, mockWin(false), mockWin(true))
		m := NewMCTS(1, WithIterations(60), WithSeed(2))

		action, stats, err := m.FindAction(state)

		require.NoError(t, err)
		require.Equal(t, mockAction(1), action)
		require.Len(t, stats.Actions, 2)
	})

	t.Run("running the full iteration budget", func(t *testing.T) {
		state := mockBranch(true, mockWin(true), mockWin(false), mockWin(true))
		m := NewMCTS(1, WithIterations(25), WithSeed(3), WithMetrics())

		_, stats, err := m.FindAction(state)

		require.NoError(t, err)
		require.Equal(t, int64(25), stats.Playouts)
		total := 0
		for _, s := range stats.Actions {
			total += s.Visits
		}
		require.Equal(t, 25, total, "Every playout should land in exactly one root child")
	})

	t.Run("reproducing a seeded search", func(t *testing.T) {
		find := func() (game.Action, SearchStats) {
			state := game.NewGameState(17)
			m := NewMCTS(1, WithIterations(30), WithSeed(9))
			action, stats, err := m.FindAction(state)
			require.NoError(t, err)
			return action, stats
		}

		actionA, statsA := find()
		actionB, statsB := find()

		require.Equal(t, actionA, actionB)
		require.Equal(t, statsA.Actions, statsB.Actions)
	})

	t.Run("merging root statistics across goroutines", func(t *testing.T) {
		state := mockBranch(true, mockWin(false), mockWin(true))
		m := NewMCTS(4, WithIterations(48), WithSeed(4), WithMetrics())

		action, stats, err := m.FindAction(state)

		require.NoError(t, err)
		require.Equal(t, int64(48), stats.Playouts)
		require.Equal(t, mockAction(1), action)
		total := 0
		for _, s := range stats.Actions {
			total += s.Visits
		}
		require.Equal(t, 48, total, "Merged visits should cover every tree's playouts")
	})

	t.Run("searching on a time budget", func(t *testing.T) {
		state := mockBranch(true, mockWin(false), mockWin(true))
		m := NewMCTS(2, WithDuration(10*time.Millisecond), WithSeed(5), WithMetrics())

		_, stats, err := m.FindAction(state)

		require.NoError(t, err)
		require.Positive(t, stats.Playouts)
	})
}

func TestFindActionTreeReuse(t *testing.T) {
	// root (p1) -> mid (p2) -> terminals. The retained tree is advanced
	// past our own move at the end of the first call and past the
	// opponent's reply at the start of the second.
	leafA := mockWin(true)
	deep := mockBranch(true, mockWin(true), mockWin(true))
	deep.hash = 77
	mid := mockBranch(false, leafA, deep)
	mid.hash = 50
	lose := mockWin(false)
	root := mockBranch(true, mid, lose)
	root.hash = 10

	m := NewMCTS(1, WithIterations(200), WithSeed(6), WithTreeReuse(), WithMetrics())

	action, stats, err := m.FindAction(root)
	require.NoError(t, err)
	require.Equal(t, mockAction(0), action, "The branch with a winning line should beat the immediate loss")
	require.False(t, stats.TreeReused, "The first search starts cold")

	// Opponent replies toward deep; search again from there.
	next := root.Apply(action).Apply(mockAction(1))
	require.Same(t, deep, next.(*mockState))

	_, stats, err = m.FindAction(next, mockAction(1))
	require.NoError(t, err)
	require.True(t, stats.TreeReused, "The retained subtree matches the played line")

	t.Run("discarding the tree on an unexpected line", func(t *testing.T) {
		_, stats, err := m.FindAction(deep, mockAction(42))
		require.NoError(t, err)
		require.False(t, stats.TreeReused, "An unknown reply should force a cold start")
	})
}

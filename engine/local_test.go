package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"patchwork/player"
	"patchwork/searcher"
)

func TestLocalRun(t *testing.T) {
	t.Run("a random match runs to completion", func(t *testing.T) {
		e := NewLocal(player.NewRandom(1), player.NewRandom(2), 3)

		outcome, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.True(t, e.State().IsTerminal())
		require.Contains(t, []int{0, 1}, outcome.Winner)
		require.Equal(t, outcome.Winner, gameMetric.Winner)
		require.Equal(t, len(moveMetrics), gameMetric.Moves)
		require.Equal(t, "random", gameMetric.Player1)

		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
			require.Contains(t, []int{0, 1}, mm.Player)
			require.NotEmpty(t, mm.Action)
		}
	})

	t.Run("search players report their metrics", func(t *testing.T) {
		mcts := player.NewMCTS(1,
			searcher.WithIterations(20), searcher.WithSeed(1))
		e := NewLocal(mcts, player.NewGreedy(), 4)

		_, _, moveMetrics, err := e.Run()

		require.NoError(t, err)
		sawSearch := false
		for _, mm := range moveMetrics {
			if mm.Player == 0 {
				require.Equal(t, int64(20), mm.Playouts)
				sawSearch = true
			} else {
				require.Zero(t, mm.Playouts, "Non-search players have no search columns")
			}
		}
		require.True(t, sawSearch)
	})

	t.Run("a seeded match is reproducible", func(t *testing.T) {
		run := func() (int, int) {
			e := NewLocal(player.NewRandom(5), player.NewRandom(6), 7)
			outcome, _, moves, err := e.Run()
			require.NoError(t, err)
			return outcome.Winner, len(moves)
		}

		winnerA, movesA := run()
		winnerB, movesB := run()
		require.Equal(t, winnerA, winnerB)
		require.Equal(t, movesA, movesB)
	})
}

package nn

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"patchwork/game"
)

func TestFeatures(t *testing.T) {
	gs := game.NewGameState(1)
	f := Features(gs)

	require.Len(t, f, FeatureCount)
	for i, v := range f {
		require.GreaterOrEqual(t, v, 0.0, "feature %d", i)
		require.LessOrEqual(t, v, 1.0, "feature %d", i)
	}

	t.Run("the mover flag tracks the turn", func(t *testing.T) {
		next := gs.Apply(game.Advance()).(*game.GameState)
		require.NotEqual(t, Features(gs), Features(next))
	})
}

func TestValueNetwork(t *testing.T) {
	t.Run("forward pass stays in the value range", func(t *testing.T) {
		net := NewValueNetwork(1, 16, 8)
		require.Equal(t, 3, net.Layers())

		v := net.Forward(Features(game.NewGameState(2)))
		require.Greater(t, v, -1.0)
		require.Less(t, v, 1.0)
	})

	t.Run("equal seeds build equal networks", func(t *testing.T) {
		features := Features(game.NewGameState(3))
		a := NewValueNetwork(5, 8).Forward(features)
		b := NewValueNetwork(5, 8).Forward(features)
		require.Equal(t, a, b)
	})

	t.Run("rejecting a wrong feature length", func(t *testing.T) {
		net := NewValueNetwork(1)
		require.Panics(t, func() { net.Forward([]float64{1, 2, 3}) })
	})
}

func TestEvaluator(t *testing.T) {
	eval := NewEvaluator(NewValueNetwork(1, 8))

	t.Run("terminal states use the outcome, not the network", func(t *testing.T) {
		gs := &game.GameState{Market: []uint8{25}, FirstAtEnd: 0}
		gs.Players[0].Position = game.MaxPosition
		gs.Players[0].Buttons = 20
		gs.Players[1].Position = game.MaxPosition

		require.Equal(t, 1.0, eval.EvaluateTerminal(gs))

		gs.Players[1].Buttons = 40
		require.Equal(t, -1.0, eval.EvaluateTerminal(gs))
	})

	t.Run("intermediate states never roll out", func(t *testing.T) {
		gs := game.NewGameState(4)
		v := eval.EvaluateIntermediate(gs, rand.New(rand.NewSource(1)))
		require.Equal(t, eval.net.Forward(Features(gs)), v,
			"The value must come straight from the network")
	})
}

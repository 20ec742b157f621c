package nn

import (
	"golang.org/x/exp/rand"

	"patchwork/game"
)

// Evaluator backs leaf evaluation with the value network instead of
// rollouts. Terminal states are still valued exactly from their outcome,
// so a finished game never depends on the network's opinion.
type Evaluator struct {
	net *ValueNetwork
}

func NewEvaluator(net *ValueNetwork) Evaluator {
	return Evaluator{net: net}
}

func (e Evaluator) EvaluateTerminal(state game.State) float64 {
	if state.Outcome().Winner == 0 {
		return 1
	}
	return -1
}

func (e Evaluator) EvaluateIntermediate(state game.State, _ *rand.Rand) float64 {
	gs, ok := state.(*game.GameState)
	if !ok {
		panic("nn: evaluator needs a Patchwork game state")
	}
	return e.net.Forward(Features(gs))
}

package searcher

import (
	"golang.org/x/exp/rand"

	"patchwork/game"
)

// Evaluator assigns a leaf state a value on the neutral scale (positive
// favors player 1). Terminal states are always valued directly from their
// outcome; intermediate values may come from random rollouts or from a
// learned estimate, and the two must be interchangeable at the call site.
//
// The rng is owned by the calling search tree and is the only source of
// randomness in a search; evaluators that do not roll out ignore it.
type Evaluator interface {
	EvaluateTerminal(state game.State) float64
	EvaluateIntermediate(state game.State, rng *rand.Rand) float64
}

// Rollout plays uniform-random legal actions until the game ends and
// returns the terminal state. Shared by every rollout-based evaluator.
func Rollout(state game.State, rng *rand.Rand) game.State {
	for !state.IsTerminal() {
		actions := state.LegalActions()
		if len(actions) == 0 {
			panic("searcher: game produced no legal actions for a non-terminal state")
		}
		state = state.Apply(actions[rng.Intn(len(actions))])
	}
	return state
}

// WinLossEvaluator values a game purely by who won: +1 for player 1, -1
// for player 2. Intermediate states are rolled out.
type WinLossEvaluator struct{}

func (WinLossEvaluator) EvaluateTerminal(state game.State) float64 {
	if state.Outcome().Winner == 0 {
		return 1
	}
	return -1
}

func (e WinLossEvaluator) EvaluateIntermediate(state game.State, rng *rand.Rand) float64 {
	return e.EvaluateTerminal(Rollout(state, rng))
}

// ScoreEvaluator values a game by the final score difference, which
// rewards winning big over winning barely. Intermediate states are rolled
// out.
type ScoreEvaluator struct{}

func (ScoreEvaluator) EvaluateTerminal(state game.State) float64 {
	return float64(state.Outcome().Score())
}

func (e ScoreEvaluator) EvaluateIntermediate(state game.State, rng *rand.Rand) float64 {
	return e.EvaluateTerminal(Rollout(state, rng))
}

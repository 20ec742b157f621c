package player

import (
	"patchwork/game"
)

// Greedy plays the action whose immediate successor scores best for the
// mover under the static evaluation, looking exactly one move ahead.
type Greedy struct{}

func NewGreedy() *Greedy { return &Greedy{} }

func (p *Greedy) Name() string { return "greedy" }

func (p *Greedy) FindAction(state game.State, _ ...game.Action) (game.Action, error) {
	if state.IsTerminal() {
		return game.Action{}, ErrGameOver
	}

	mover1 := state.Player1ToMove()
	actions := state.LegalActions()
	best := actions[0]
	bestValue := evaluate(state.Apply(actions[0]), mover1)
	for _, action := range actions[1:] {
		if value := evaluate(state.Apply(action), mover1); value > bestValue {
			best = action
			bestValue = value
		}
	}
	return best, nil
}

// evaluate scores a state for one player: the exact score difference when
// the game is over, the static estimate otherwise.
func evaluate(state game.State, player1 bool) int {
	var value int
	if state.IsTerminal() {
		value = state.Outcome().Score()
	} else if gs, ok := state.(*game.GameState); ok {
		value = gs.Evaluation()
	}
	if !player1 {
		value = -value
	}
	return value
}

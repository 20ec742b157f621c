package player

import (
	"errors"

	"golang.org/x/exp/rand"

	"patchwork/game"
)

// Player picks one action per turn. The played actions are the opponent
// moves made since the player's previous turn, in order; strategies that
// keep state between turns use them, the rest ignore them.
type Player interface {
	Name() string
	FindAction(state game.State, played ...game.Action) (game.Action, error)
}

// ErrGameOver is returned when a player is asked to move in a finished
// game.
var ErrGameOver = errors.New("player: the game is already over")

// Random plays a uniformly random legal action. The weakest possible
// baseline, useful to sanity-check that anything else actually helps.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (p *Random) Name() string { return "random" }

func (p *Random) FindAction(state game.State, _ ...game.Action) (game.Action, error) {
	if state.IsTerminal() {
		return game.Action{}, ErrGameOver
	}
	actions := state.LegalActions()
	return actions[p.rng.Intn(len(actions))], nil
}

package engine

import (
	"patchwork/experiments/metrics"
	"patchwork/game"
)

// MaxMoves caps a single game. Patchwork ends well under a hundred moves,
// so reaching the cap means a player or the rules are broken.
const MaxMoves = 1000

type Engine interface {
	// Run plays a game to the end and returns its outcome together with
	// the metrics collected per game and per move.
	Run() (game.Termination, metrics.GameMetric, []metrics.MoveMetric, error)
}

package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"patchwork/experiments/metrics"
	"patchwork/game"
	"patchwork/player"
	"patchwork/searcher"
)

// statsReporter is the optional player side channel for search
// diagnostics. Players without one get empty search columns.
type statsReporter interface {
	LastStats() searcher.SearchStats
}

// Local runs one game between two in-process players.
type Local struct {
	state   game.State
	players [2]player.Player
	// pending holds, per player, the opponent actions played since that
	// player's own last move. Players with retained search trees consume
	// them to follow the game.
	pending [2][]game.Action
}

func NewLocal(player1, player2 player.Player, seed uint64) *Local {
	if player1 == nil || player2 == nil {
		panic("engine: need two players")
	}
	return &Local{
		state:   game.NewGameState(seed),
		players: [2]player.Player{player1, player2},
	}
}

// Run plays the game to termination. Turn order comes entirely from the
// state: the player furthest behind moves, so the same player may move
// several times in a row.
func (e *Local) Run() (game.Termination, metrics.GameMetric, []metrics.MoveMetric, error) {
	start := time.Now()
	log.Info().
		Str("player1", e.players[0].Name()).
		Str("player2", e.players[1].Name()).
		Msg("game starting")

	var moveMetrics []metrics.MoveMetric
	step := 0
	for !e.state.IsTerminal() {
		if step >= MaxMoves {
			return game.Termination{}, metrics.GameMetric{}, moveMetrics,
				fmt.Errorf("engine: game exceeded %d moves", MaxMoves)
		}
		step++

		mover := 0
		if !e.state.Player1ToMove() {
			mover = 1
		}

		action, err := e.players[mover].FindAction(e.state, e.pending[mover]...)
		if err != nil {
			return game.Termination{}, metrics.GameMetric{}, moveMetrics,
				fmt.Errorf("engine: %s failed to move: %w", e.players[mover].Name(), err)
		}

		metric := metrics.MoveMetric{
			Step:   step,
			Player: mover,
			Action: action.String(),
		}
		if reporter, ok := e.players[mover].(statsReporter); ok {
			metric.SearchMetric = metrics.FromSearchStats(reporter.LastStats())
		}
		moveMetrics = append(moveMetrics, metric)

		log.Debug().
			Int("step", step).
			Int("player", mover+1).
			Msgf("plays %s", action)

		e.state = e.state.Apply(action)
		e.pending[mover] = e.pending[mover][:0]
		e.pending[1-mover] = append(e.pending[1-mover], action)
	}

	outcome := e.state.Outcome()
	gameMetric := metrics.NewGameMetric(
		e.players[0].Name(), e.players[1].Name(), outcome, start, step)

	log.Info().
		Int("winner", outcome.Winner+1).
		Int("score1", outcome.Score1).
		Int("score2", outcome.Score2).
		Int("moves", step).
		Msg("game over")
	return outcome, gameMetric, moveMetrics, nil
}

// State exposes the current position, mainly for rendering.
func (e *Local) State() game.State {
	return e.state
}

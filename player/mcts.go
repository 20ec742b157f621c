package player

import (
	"patchwork/game"
	"patchwork/searcher"
)

// MCTS wraps the searcher behind the Player interface with sensible
// Patchwork defaults: scored UCT over score-difference rollouts. Extra
// searcher options pass through untouched.
type MCTS struct {
	name   string
	search *searcher.MCTS
	// stats of the last search, for logging and experiments.
	stats searcher.SearchStats
}

func NewMCTS(goroutines int, options ...searcher.Option) *MCTS {
	defaults := []searcher.Option{
		searcher.WithTreePolicy(searcher.NewScoredUCTPolicy()),
		searcher.WithEvaluator(searcher.ScoreEvaluator{}),
		searcher.WithMetrics(),
	}
	return &MCTS{
		name:   "mcts",
		search: searcher.NewMCTS(goroutines, append(defaults, options...)...),
	}
}

func (p *MCTS) Name() string { return p.name }

// LastStats reports the diagnostics of the most recent FindAction call.
func (p *MCTS) LastStats() searcher.SearchStats { return p.stats }

func (p *MCTS) FindAction(state game.State, played ...game.Action) (game.Action, error) {
	action, stats, err := p.search.FindAction(state, played...)
	if err != nil {
		return game.Action{}, err
	}
	p.stats = stats
	return action, nil
}

package player

import (
	"patchwork/game"
	"patchwork/nn"
	"patchwork/searcher"
)

// AlphaZero is the search-plus-value-network player: PUCT selection with
// the network estimating every leaf, no rollouts at all. Extra searcher
// options pass through untouched.
type AlphaZero struct {
	search *searcher.MCTS
	stats  searcher.SearchStats
}

func NewAlphaZero(net *nn.ValueNetwork, goroutines int, options ...searcher.Option) *AlphaZero {
	defaults := []searcher.Option{
		searcher.WithTreePolicy(searcher.NewPUCTPolicy()),
		searcher.WithEvaluator(nn.NewEvaluator(net)),
		searcher.WithMetrics(),
	}
	return &AlphaZero{
		search: searcher.NewMCTS(goroutines, append(defaults, options...)...),
	}
}

func (p *AlphaZero) Name() string { return "alphazero" }

// LastStats reports the diagnostics of the most recent FindAction call.
func (p *AlphaZero) LastStats() searcher.SearchStats { return p.stats }

func (p *AlphaZero) FindAction(state game.State, played ...game.Action) (game.Action, error) {
	action, stats, err := p.search.FindAction(state, played...)
	if err != nil {
		return game.Action{}, err
	}
	p.stats = stats
	return action, nil
}

package player

import (
	"fmt"
	"time"

	"patchwork/nn"
	"patchwork/searcher"
)

// Config describes one player declaratively, for match configs and
// experiment tables. Zero fields fall back to per-kind defaults.
type Config struct {
	ID   int    `yaml:"id"`
	Kind string `yaml:"kind"` // random, greedy, minimax, mcts, alphazero
	Seed uint64 `yaml:"seed"`

	// Search players.
	Goroutines int           `yaml:"goroutines"`
	Iterations int           `yaml:"iterations"`
	Duration   time.Duration `yaml:"duration"`
	TreeReuse  bool          `yaml:"tree_reuse"`

	// Minimax.
	Depth int `yaml:"depth"`

	// AlphaZero hidden layer widths.
	Hidden []int `yaml:"hidden"`
}

// New builds the player a config describes.
func New(config Config) (Player, error) {
	switch config.Kind {
	case "random":
		return NewRandom(config.Seed), nil
	case "greedy":
		return NewGreedy(), nil
	case "minimax":
		depth := config.Depth
		if depth == 0 {
			depth = 4
		}
		return NewMinimax(depth), nil
	case "mcts":
		return NewMCTS(goroutinesOf(config), searchOptions(config)...), nil
	case "alphazero":
		hidden := config.Hidden
		if len(hidden) == 0 {
			hidden = []int{32, 16}
		}
		net := nn.NewValueNetwork(config.Seed, hidden...)
		return NewAlphaZero(net, goroutinesOf(config), searchOptions(config)...), nil
	default:
		return nil, fmt.Errorf("player: unknown kind %q", config.Kind)
	}
}

func goroutinesOf(config Config) int {
	if config.Goroutines > 0 {
		return config.Goroutines
	}
	return 1
}

func searchOptions(config Config) []searcher.Option {
	options := []searcher.Option{
		searcher.WithSeed(config.Seed),
	}
	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Iterations <= 0 && config.Duration <= 0 {
		options = append(options, searcher.WithIterations(1000))
	}
	if config.TreeReuse {
		options = append(options, searcher.WithTreeReuse())
	}
	return options
}

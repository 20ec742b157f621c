package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"patchwork/player"
)

// Config is the YAML match configuration.
type Config struct {
	// Seed deals the patch market; game i of a multi-game match uses
	// Seed+i so the deals differ across repetitions.
	Seed    uint64          `yaml:"seed"`
	Games   int             `yaml:"games"`
	Verbose bool            `yaml:"verbose"`
	Players []player.Config `yaml:"players"`
}

// DefaultConfig is a quick mcts-versus-greedy match.
func DefaultConfig() Config {
	return Config{
		Seed:  1,
		Games: 1,
		Players: []player.Config{
			{Kind: "mcts", Goroutines: 4, Iterations: 5000, Seed: 1},
			{Kind: "greedy"},
		},
	}
}

// LoadConfig reads a match configuration, filling omitted fields from the
// defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(config.Players) != 2 {
		return Config{}, fmt.Errorf("config needs exactly 2 players, got %d", len(config.Players))
	}
	if config.Games < 1 {
		config.Games = 1
	}
	return config, nil
}

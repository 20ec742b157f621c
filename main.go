package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"patchwork/engine"
	"patchwork/experiments"
	"patchwork/game"
	"patchwork/player"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML match config")
	experiment := flag.String("experiment", "", "run an experiment instead of a match: baselines, parallelization, tree-reuse, throughput")
	verbose := flag.Bool("v", false, "log every move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if *experiment != "" {
		runExperiment(*experiment)
		return
	}

	config := DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid config")
		}
	}
	if *verbose || config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := runMatch(config); err != nil {
		log.Fatal().Err(err).Msg("match failed")
	}
}

func runExperiment(name string) {
	switch name {
	case "baselines":
		experiments.RunBaselineExperiment()
	case "parallelization":
		experiments.RunParallelizationExperiment()
	case "tree-reuse":
		experiments.RunTreeReuseExperiment()
	case "throughput":
		experiments.RunThroughputExperiment()
	default:
		log.Fatal().Msgf("unknown experiment %q", name)
	}
}

func runMatch(config Config) error {
	wins := [2]int{}
	for i := 0; i < config.Games; i++ {
		player1, err := player.New(config.Players[0])
		if err != nil {
			return fmt.Errorf("player 1: %w", err)
		}
		player2, err := player.New(config.Players[1])
		if err != nil {
			return fmt.Errorf("player 2: %w", err)
		}

		seed := config.Seed + uint64(i)
		e := engine.NewLocal(player1, player2, seed)
		outcome, _, _, err := e.Run()
		if err != nil {
			return err
		}
		wins[outcome.Winner]++

		fmt.Println(renderState(e.State().(*game.GameState)))
		fmt.Printf("game %d: player %d wins %d to %d\n",
			i+1, outcome.Winner+1, winnerScore(outcome), loserScore(outcome))
	}

	fmt.Printf("\n%s %d - %d %s\n",
		config.Players[0].Kind, wins[0], wins[1], config.Players[1].Kind)
	return nil
}

func winnerScore(outcome game.Termination) int {
	if outcome.Winner == 0 {
		return outcome.Score1
	}
	return outcome.Score2
}

func loserScore(outcome game.Termination) int {
	if outcome.Winner == 0 {
		return outcome.Score2
	}
	return outcome.Score1
}

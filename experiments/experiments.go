package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"patchwork/engine"
	"patchwork/experiments/metrics"
	"patchwork/game"
	"patchwork/player"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 100 * time.Millisecond
)

// RunBaselineExperiment pits a fixed-budget search player against the
// non-searching baselines to calibrate playing strength.
func RunBaselineExperiment() {
	mcts := player.Config{ID: 0, Kind: "mcts", Goroutines: 4, Duration: TimeBudget, Seed: 1}
	baselines := []player.Config{
		{ID: 1, Kind: "random", Seed: 2},
		{ID: 2, Kind: "greedy"},
		{ID: 3, Kind: "minimax", Depth: 4},
		{ID: 4, Kind: "alphazero", Goroutines: 4, Duration: TimeBudget, Seed: 3},
	}

	matchUps := [][2]player.Config{}
	for _, baseline := range baselines {
		matchUps = append(matchUps, [2]player.Config{mcts, baseline})
	}

	runExperiment("baselines", append([]player.Config{mcts}, baselines...), matchUps)
}

// RunParallelizationExperiment pairs root-parallel searchers of growing
// width against the sequential searcher on the same time budget.
func RunParallelizationExperiment() {
	baseline := player.Config{ID: 0, Kind: "mcts", Goroutines: 1, Duration: TimeBudget, Seed: 1}
	configs := []player.Config{
		{ID: 1, Kind: "mcts", Goroutines: 2, Duration: TimeBudget, Seed: 2},
		{ID: 2, Kind: "mcts", Goroutines: 4, Duration: TimeBudget, Seed: 3},
		{ID: 3, Kind: "mcts", Goroutines: 8, Duration: TimeBudget, Seed: 4},
		{ID: 4, Kind: "mcts", Goroutines: 16, Duration: TimeBudget, Seed: 5},
	}

	matchUps := [][2]player.Config{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]player.Config{baseline, config})
	}

	runExperiment("parallelization", append([]player.Config{baseline}, configs...), matchUps)
}

// RunTreeReuseExperiment compares a sequential searcher that carries its
// tree between moves with one that starts cold every move.
func RunTreeReuseExperiment() {
	cold := player.Config{ID: 0, Kind: "mcts", Goroutines: 1, Duration: TimeBudget, Seed: 1}
	warm := player.Config{ID: 1, Kind: "mcts", Goroutines: 1, Duration: TimeBudget, Seed: 2, TreeReuse: true}

	runExperiment("tree_reuse", []player.Config{cold, warm}, [][2]player.Config{{cold, warm}})
}

func runExperiment(name string, configs []player.Config, matchUps [][2]player.Config) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1, config2 := matchup[0], matchup[1]

		log.Info().Msgf("starting matchup %d of %d between player1=%+v and player2=%+v...",
			mi+1, len(matchUps), config1, config2)

		for i := 0; i < NumGames; i++ {
			outcome, gameMetric, moveMetrics := runGame(config1, config2, uint64(count))
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner player %d",
				mi+1, len(matchUps), i+1, NumGames, outcome.Winner+1)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(name)
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}
	if err := writer.WritePlayerConfigs(configs); err != nil {
		panic(fmt.Sprintf("failed to store player configs: %v", err))
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		panic(fmt.Sprintf("failed to write game records: %v", err))
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		panic(fmt.Sprintf("failed to write move records: %v", err))
	}
	log.Info().Msgf("stored results under %s", writer.Dir())
}

// runGame plays a single game between two configured players. The game
// seed varies per game so the market deals differ across repetitions.
func runGame(config1, config2 player.Config, gameSeed uint64) (game.Termination, metrics.GameMetric, []metrics.MoveMetric) {
	player1, err := player.New(config1)
	if err != nil {
		panic(fmt.Sprintf("failed to build player 1: %v", err))
	}
	player2, err := player.New(config2)
	if err != nil {
		panic(fmt.Sprintf("failed to build player 2: %v", err))
	}

	e := engine.NewLocal(player1, player2, gameSeed)
	outcome, gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		panic(fmt.Sprintf("game failed: %v", err))
	}
	return outcome, gameMetric, moveMetrics
}

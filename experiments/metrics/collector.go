package metrics

import (
	"time"

	"patchwork/game"
	"patchwork/searcher"
)

// SearchMetric is one search summarized for the experiment tables.
type SearchMetric struct {
	Playouts   int64
	Nodes      int64
	MaxDepth   int64
	Duration   time.Duration
	TreeReused bool
}

// FromSearchStats flattens the searcher's diagnostics into a record.
func FromSearchStats(stats searcher.SearchStats) SearchMetric {
	return SearchMetric{
		Playouts:   stats.Playouts,
		Nodes:      stats.Nodes,
		MaxDepth:   stats.MaxDepth,
		Duration:   stats.Duration,
		TreeReused: stats.TreeReused,
	}
}

// MoveMetric is one move of one game.
type MoveMetric struct {
	Step   int
	Player int // 0 or 1
	Action string
	SearchMetric
}

// GameMetric is one finished game.
type GameMetric struct {
	Player1   string
	Player2   string
	Winner    int // 0 or 1
	Score1    int
	Score2    int
	StartTime time.Time
	Duration  time.Duration
	Moves     int
}

// NewGameMetric seeds a game record from its outcome.
func NewGameMetric(player1, player2 string, outcome game.Termination, start time.Time, moves int) GameMetric {
	return GameMetric{
		Player1:   player1,
		Player2:   player2,
		Winner:    outcome.Winner,
		Score1:    outcome.Score1,
		Score2:    outcome.Score2,
		StartTime: start,
		Duration:  time.Since(start),
		Moves:     moves,
	}
}

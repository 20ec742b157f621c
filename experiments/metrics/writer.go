package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"patchwork/player"
)

// GameRecord is one game row, numbered within the experiment.
type GameRecord struct {
	ID int
	GameMetric
}

// MoveRecord is one move row, keyed to its game.
type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Writer dumps experiment results as CSV files under a timestamped
// directory, one run per directory.
type Writer struct {
	baseDir string
}

func NewWriter(name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", name, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// Dir is the directory this writer's files land in.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WritePlayerConfigs(configs []player.Config) error {
	f, err := os.Create(filepath.Join(w.baseDir, "player_configs.csv"))
	if err != nil {
		return fmt.Errorf("failed to create player configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "kind", "seed", "goroutines", "iterations", "duration", "depth"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write player configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.FormatUint(config.Seed, 10),
			strconv.Itoa(config.Goroutines),
			strconv.Itoa(config.Iterations),
			config.Duration.String(),
			strconv.Itoa(config.Depth),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write player config row: %w", err)
		}
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	f, err := os.Create(filepath.Join(w.baseDir, "game_records.csv"))
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "player1", "player2", "winner", "score1", "score2", "start_time", "duration", "moves"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			record.Player1,
			record.Player2,
			strconv.Itoa(record.Winner + 1),
			strconv.Itoa(record.Score1),
			strconv.Itoa(record.Score2),
			record.StartTime.UTC().Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.Moves),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	f, err := os.Create(filepath.Join(w.baseDir, "move_records.csv"))
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "step", "player", "action", "playouts", "nodes", "max_depth", "duration", "tree_reused"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player + 1),
			record.Action,
			strconv.FormatInt(record.Playouts, 10),
			strconv.FormatInt(record.Nodes, 10),
			strconv.FormatInt(record.MaxDepth, 10),
			record.Duration.String(),
			strconv.FormatBool(record.TreeReused),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}
	return nil
}

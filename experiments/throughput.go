package experiments

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"patchwork/game"
	"patchwork/searcher"
)

// RunThroughputExperiment measures raw playouts per second of the root
// parallel searcher on the opening position, across goroutine counts.
func RunThroughputExperiment() {
	const duration = time.Second
	goroutineCounts := []int{1, 2, 4, 8, 16, 32}

	writer, err := metricsWriterFor("throughput")
	if err != nil {
		panic(fmt.Sprintf("failed to create throughput writer: %v", err))
	}
	defer writer.close()

	if err := writer.write([]string{"goroutines", "duration", "playouts", "playouts_per_second"}); err != nil {
		panic(fmt.Sprintf("failed to write throughput header: %v", err))
	}

	state := game.NewGameState(1)
	for _, goroutines := range goroutineCounts {
		m := searcher.NewMCTS(goroutines,
			searcher.WithDuration(duration),
			searcher.WithSeed(uint64(goroutines)),
			searcher.WithMetrics(),
		)

		_, stats, err := m.FindAction(state)
		if err != nil {
			panic(fmt.Sprintf("throughput search failed: %v", err))
		}

		perSecond := float64(stats.Playouts) / stats.Duration.Seconds()
		log.Info().Msgf("%d goroutines: %d playouts in %s (%.0f/s)",
			goroutines, stats.Playouts, stats.Duration, perSecond)

		row := []string{
			strconv.Itoa(goroutines),
			stats.Duration.String(),
			strconv.FormatInt(stats.Playouts, 10),
			strconv.FormatFloat(perSecond, 'f', 0, 64),
		}
		if err := writer.write(row); err != nil {
			panic(fmt.Sprintf("failed to write throughput row: %v", err))
		}
	}
}

type csvFile struct {
	f *os.File
	w *csv.Writer
}

func metricsWriterFor(name string) (*csvFile, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	dir := filepath.Join("experiments", name, timestamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, name+".csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s file: %w", name, err)
	}
	return &csvFile{f: f, w: csv.NewWriter(f)}, nil
}

func (c *csvFile) write(row []string) error {
	return c.w.Write(row)
}

func (c *csvFile) close() {
	c.w.Flush()
	c.f.Close()
}

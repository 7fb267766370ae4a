package report

import (
	"io"
	"time"

	"github.com/nao1215/othello/internal/model"
)

// timeRounding keeps durations readable in rendered output.
const timeRounding = time.Millisecond

// Writer defines the interface for report output.
// Implementations render benchmark results and game history in various
// formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// WriteBenchmark outputs a benchmark report.
	// Returns the number of bytes written and any error encountered.
	WriteBenchmark(report *model.BenchmarkReport) (int, error)

	// WriteGames outputs a list of recorded games, newest first.
	WriteGames(games []model.GameRecord) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteBenchmark outputs the benchmark report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteBenchmark(report *model.BenchmarkReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteBenchmark(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteGames outputs the game list to all configured Writers.
func (m *MultiWriter) WriteGames(games []model.GameRecord) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteGames(games)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/othello/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. The interactive board renderer already handles colored output
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// WriteBenchmark outputs the benchmark report in human-readable format.
func (w *SimpleWriter) WriteBenchmark(report *model.BenchmarkReport) (int, error) {
	var sb strings.Builder

	w.writeRule(&sb, "=")
	sb.WriteString("                      OTHELLO BENCHMARK REPORT\n")
	w.writeRule(&sb, "=")
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Run Date:    %s\n", report.RunAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Elapsed:     %s\n", report.Elapsed.Round(timeRounding)))
	sb.WriteString(fmt.Sprintf("Pairings:    %d\n", len(report.Results)))
	sb.WriteString(fmt.Sprintf("Total Games: %d\n", report.TotalGames()))
	sb.WriteString("\n")

	for _, res := range report.Results {
		w.writeRule(&sb, "-")
		sb.WriteString(res.Config.Label())
		sb.WriteString("\n")
		w.writeRule(&sb, "-")
		sb.WriteString("\n")

		sb.WriteString(fmt.Sprintf("  Games:        %d\n", res.Games()))
		sb.WriteString(fmt.Sprintf("  Black Wins:   %d (%.0f%%)\n", res.BlackWins, res.BlackWinRate()*100))
		sb.WriteString(fmt.Sprintf("  White Wins:   %d\n", res.WhiteWins))
		sb.WriteString(fmt.Sprintf("  Draws:        %d\n", res.Draws))
		sb.WriteString(fmt.Sprintf("  Avg Moves:    %.1f\n", res.AvgMoves))
		if res.AvgNodes > 0 {
			sb.WriteString(fmt.Sprintf("  Avg Nodes:    %.0f\n", res.AvgNodes))
			sb.WriteString(fmt.Sprintf("  Avg Search:   %s\n", res.AvgMoveTime.Round(timeRounding)))
		}
		sb.WriteString("\n")
	}

	w.writeRule(&sb, "=")
	return w.output.Write([]byte(sb.String()))
}

// WriteGames outputs the game list in human-readable format.
func (w *SimpleWriter) WriteGames(games []model.GameRecord) (int, error) {
	var sb strings.Builder

	w.writeRule(&sb, "=")
	sb.WriteString("                        OTHELLO GAME HISTORY\n")
	w.writeRule(&sb, "=")
	sb.WriteString("\n")

	if len(games) == 0 {
		sb.WriteString("No games recorded.\n")
		return w.output.Write([]byte(sb.String()))
	}

	for _, g := range games {
		sb.WriteString(fmt.Sprintf("[%d] %s  %dx%d %s\n",
			g.ID, g.PlayedAt.Format("2006-01-02 15:04"), g.BoardSize, g.BoardSize, g.Mode))
		sb.WriteString(fmt.Sprintf("    %s (X) vs %s (O)\n", g.BlackPlayer, g.WhitePlayer))
		outcome := fmt.Sprintf("    %s wins %d-%d", g.Winner, g.BlackScore, g.WhiteScore)
		if g.Winner == model.WinnerDraw {
			outcome = fmt.Sprintf("    draw %d-%d", g.BlackScore, g.WhiteScore)
		}
		if g.TimedOut {
			outcome += " (on time)"
		}
		sb.WriteString(outcome + "\n")
		sb.WriteString(fmt.Sprintf("    %d moves in %s\n", g.Moves, g.Duration.Round(timeRounding)))
		sb.WriteString("\n")
	}

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeRule(sb *strings.Builder, ch string) {
	sb.WriteString(strings.Repeat(ch, 70))
	sb.WriteString("\n")
}

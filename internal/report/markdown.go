package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/othello/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteBenchmark outputs the benchmark report in Markdown format.
func (w *MarkdownWriter) WriteBenchmark(report *model.BenchmarkReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Othello Benchmark Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run Date", report.RunAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", report.Elapsed.Round(timeRounding).String()},
			{"Pairings", strconv.Itoa(len(report.Results))},
			{"Total Games", strconv.Itoa(report.TotalGames())},
		},
	})
	md.PlainText("")

	w.writeResultsTable(md, report)
	w.writeWinChart(md, report)
	w.writeVerdict(md, report)

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeResultsTable writes one row per pairing.
func (w *MarkdownWriter) writeResultsTable(md *markdown.Markdown, report *model.BenchmarkReport) {
	md.H2("Results")
	md.PlainText("")

	rows := make([][]string, len(report.Results))
	for i, res := range report.Results {
		avgSearch := "-"
		avgNodes := "-"
		if res.AvgNodes > 0 {
			avgSearch = res.AvgMoveTime.Round(timeRounding).String()
			avgNodes = fmt.Sprintf("%.0f", res.AvgNodes)
		}
		rows[i] = []string{
			res.Config.Label(),
			strconv.Itoa(res.Games()),
			fmt.Sprintf("%d (%.0f%%)", res.BlackWins, res.BlackWinRate()*100),
			strconv.Itoa(res.WhiteWins),
			strconv.Itoa(res.Draws),
			fmt.Sprintf("%.1f", res.AvgMoves),
			avgNodes,
			avgSearch,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Pairing", "Games", "Black Wins", "White Wins", "Draws", "Avg Moves", "Avg Nodes", "Avg Search"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeWinChart writes a mermaid pie chart of the overall outcome
// distribution across every game in the run.
func (w *MarkdownWriter) writeWinChart(md *markdown.Markdown, report *model.BenchmarkReport) {
	blackWins, whiteWins, draws := 0, 0, 0
	for _, res := range report.Results {
		blackWins += res.BlackWins
		whiteWins += res.WhiteWins
		draws += res.Draws
	}
	if blackWins+whiteWins+draws == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Outcome Distribution"),
		piechart.WithShowData(true),
	)
	if blackWins > 0 {
		chart.LabelAndIntValue("Black wins", uint64(blackWins))
	}
	if whiteWins > 0 {
		chart.LabelAndIntValue("White wins", uint64(whiteWins))
	}
	if draws > 0 {
		chart.LabelAndIntValue("Draws", uint64(draws))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeVerdict writes an alert summarizing how the engines fared
// against their baselines.
func (w *MarkdownWriter) writeVerdict(md *markdown.Markdown, report *model.BenchmarkReport) {
	weakest := 1.0
	for _, res := range report.Results {
		if !res.Config.Black.IsAI() || res.Games() == 0 {
			continue
		}
		if rate := res.BlackWinRate(); rate < weakest {
			weakest = rate
		}
	}

	switch {
	case weakest < 0.5:
		md.Warningf(
			"At least one engine configuration won only %.0f%% of its games. Check the pairing table for regressions.",
			weakest*100,
		)
	case weakest < 0.8:
		md.Note("Every engine configuration beat its baseline in most games.")
	default:
		md.Tip("All engine configurations dominated their baselines.")
	}
	md.PlainText("")
}

// WriteGames outputs the game list in Markdown format.
func (w *MarkdownWriter) WriteGames(games []model.GameRecord) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Othello Game History")
	md.PlainText("")

	if len(games) == 0 {
		md.PlainText("No games recorded.")
		md.PlainText("")
		w.writeFooter(md)
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(games))
	for i, g := range games {
		score := fmt.Sprintf("%d-%d", g.BlackScore, g.WhiteScore)
		winner := g.Winner
		if g.TimedOut {
			winner += " (on time)"
		}
		rows[i] = []string{
			strconv.FormatInt(g.ID, 10),
			g.PlayedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%dx%d", g.BoardSize, g.BoardSize),
			g.Mode,
			g.BlackPlayer,
			g.WhitePlayer,
			winner,
			score,
			strconv.Itoa(g.Moves),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Played", "Board", "Mode", "Black", "White", "Winner", "Score", "Moves"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [othello](https://github.com/nao1215/othello)*")
}

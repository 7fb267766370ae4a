package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/nao1215/othello/internal/config"
	"github.com/nao1215/othello/internal/database"
	"github.com/nao1215/othello/internal/model"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded games and benchmark runs",
		Long: `History lists the finished games recorded in the database.

Games are stored automatically after every completed match unless
--no-save was given to the play command. Benchmark runs are stored the
same way by the benchmark command.

Examples:
  # Last 20 games
  othello history

  # All games as JSON
  othello history --limit 0 --json

  # One game with its final position
  othello history --id 3

  # Export a recorded game as a save file and resume it
  othello history --id 3 --export resumed.save
  othello play --load resumed.save

  # Recorded benchmark runs
  othello history --benchmarks

  # A stored benchmark report as Markdown
  othello history --benchmarks --id 2 --markdown`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 20,
		"Maximum number of entries to show (0 for all)")
	cmd.Flags().Int64P("id", "i", 0,
		"Show a single entry by ID")
	cmd.Flags().BoolP("benchmarks", "B", false,
		"Show benchmark runs instead of games")
	cmd.Flags().StringP("export", "e", "",
		"Write the game selected with --id to a save file at this path")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to specified file path (creates directories if needed)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()

	var err error
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit < 0 {
		return fmt.Errorf("invalid limit %d", limit)
	}
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	benchmarks, err := cmd.Flags().GetBool("benchmarks")
	if err != nil {
		return err
	}
	exportPath, err := cmd.Flags().GetString("export")
	if err != nil {
		return err
	}
	if exportPath != "" && (id == 0 || benchmarks) {
		return fmt.Errorf("--export requires --id of a recorded game")
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	switch {
	case benchmarks && id > 0:
		return showBenchmarkRun(ctx, cfg, db, id)
	case benchmarks:
		return listBenchmarkRuns(ctx, db, limit, cmd.OutOrStdout())
	case exportPath != "":
		return exportGame(ctx, db, id, exportPath, cmd.OutOrStdout())
	case id > 0:
		return showGame(ctx, cfg, db, id)
	default:
		return listGameHistory(ctx, cfg, db, limit)
	}
}

// listGameHistory writes the recorded games in the requested format.
func listGameHistory(ctx context.Context, cfg *config.Config, db *database.GameDB, limit int) error {
	games, err := db.ListGames(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}
	return outputGames(cfg, games)
}

// showGame writes one recorded game, including its final position.
func showGame(ctx context.Context, cfg *config.Config, db *database.GameDB, id int64) error {
	game, err := db.GetGame(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return fmt.Errorf("game with ID %d not found", id)
	}

	output, closer, err := reportDestination(cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closer()

	writer := newReportWriter(cfg, output)
	if _, err := writer.WriteGames([]model.GameRecord{*game}); err != nil {
		return err
	}

	// The machine-readable formats already carry the save data.
	if !cfg.JSONReport && !cfg.MarkdownReport && game.SaveData != "" {
		fmt.Fprintf(output, "Final position:\n%s\n", game.SaveData)
	}
	return nil
}

// exportGame writes a recorded game's save data to a file that the
// play command can load with --load.
func exportGame(ctx context.Context, db *database.GameDB, id int64, path string, out io.Writer) error {
	game, err := db.GetGame(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return fmt.Errorf("game with ID %d not found", id)
	}
	if game.SaveData == "" {
		return fmt.Errorf("game with ID %d has no save data", id)
	}
	if err := os.WriteFile(path, []byte(game.SaveData), 0600); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	fmt.Fprintf(out, "Game %d exported to %s\n", id, path)
	return nil
}

// outputGames writes game records in the requested format.
func outputGames(cfg *config.Config, games []model.GameRecord) error {
	output, closer, err := reportDestination(cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closer()

	writer := newReportWriter(cfg, output)
	_, err = writer.WriteGames(games)
	return err
}

// showBenchmarkRun writes one stored benchmark report.
func showBenchmarkRun(ctx context.Context, cfg *config.Config, db *database.GameDB, id int64) error {
	run, err := db.GetBenchmark(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get benchmark run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("benchmark run with ID %d not found", id)
	}
	return outputBenchmark(cfg, run)
}

// listBenchmarkRuns prints a one-line summary per stored benchmark run.
func listBenchmarkRuns(ctx context.Context, db *database.GameDB, limit int, out io.Writer) error {
	runs, err := db.ListBenchmarks(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list benchmark runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No benchmark runs recorded.")
		fmt.Fprintln(out, "\nUse 'othello benchmark' to run one.")
		return nil
	}

	fmt.Fprintf(out, "Benchmark runs (%d):\n\n", len(runs))
	for _, run := range runs {
		fmt.Fprintf(out, "  [%d] %s  %d pairings, %d games, %s\n",
			run.ID,
			run.RunAt.Format("2006-01-02 15:04"),
			len(run.Results),
			run.TotalGames(),
			run.Elapsed.Round(time.Millisecond),
		)
	}
	fmt.Fprintln(out, "\nUse 'othello history --benchmarks --id <id>' to see a full report.")
	return nil
}

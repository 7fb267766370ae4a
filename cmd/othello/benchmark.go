package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/nao1215/othello/internal/benchmark"
	"github.com/nao1215/othello/internal/config"
	"github.com/nao1215/othello/internal/database"
	"github.com/nao1215/othello/internal/model"
	"github.com/nao1215/othello/internal/report"
	"github.com/spf13/cobra"
)

// NewBenchmarkCmd creates the benchmark command.
func NewBenchmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Benchmark search engines against a random player",
		Long: `Benchmark plays engine configurations against a random opponent and
aggregates win rates, game lengths, and search statistics.

Every combination of the requested sizes, depths, algorithms, and
heuristics becomes one pairing, and each pairing plays the requested
number of games concurrently.

Examples:
  # Default sweep: every algorithm and heuristic at depth 3 on 8x8
  othello benchmark

  # Compare depths on two board sizes
  othello benchmark --sizes 6,8 --depths 1,2,3 --games 20

  # Markdown report written to a file
  othello benchmark --markdown --output reports/engines.md

  # Reproducible run
  othello benchmark --seed 42`,
		Args: cobra.NoArgs,
		RunE: runBenchmarkCmd,
	}

	// Grid flags
	cmd.Flags().IntSlice("sizes", []int{config.DefaultBoardSize},
		"Board sizes to benchmark")
	cmd.Flags().IntSlice("depths", []int{config.DefaultAIDepth},
		"Search depths to benchmark")
	cmd.Flags().StringSlice("algorithms", []string{"minimax", "ab"},
		"Search algorithms to benchmark")
	cmd.Flags().StringSlice("heuristics", []string{"coin_parity", "corners_captured", "mobility", "all_in_one"},
		"Evaluations to benchmark")

	// Run flags
	cmd.Flags().IntP("games", "g", config.DefaultBenchmarkGames,
		"Games per pairing")
	cmd.Flags().IntP("concurrency", "n", config.DefaultBenchmarkConcurrency,
		"Number of games played in parallel")
	cmd.Flags().Int64("seed", 0,
		"Random seed for reproducible runs (0 uses the current time)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Persistence flags
	cmd.Flags().Bool("no-save", false,
		"Do not record the benchmark run in the database")

	return cmd
}

// runBenchmarkCmd executes the benchmark command.
func runBenchmarkCmd(cmd *cobra.Command, _ []string) error {
	cfg, configs, seed, err := buildBenchmarkConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	var db *database.GameDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
	}

	return runBenchmark(ctx, cfg, configs, seed, db, cmd.OutOrStdout(), logger)
}

// buildBenchmarkConfig creates the config and pairing grid from flags.
func buildBenchmarkConfig(cmd *cobra.Command) (*config.Config, []model.MatchConfig, int64, error) {
	cfg := config.NewConfig()

	var err error
	if cfg.BenchmarkGames, err = cmd.Flags().GetInt("games"); err != nil {
		return nil, nil, 0, err
	}
	if cfg.BenchmarkConcurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
		return nil, nil, 0, err
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, nil, 0, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, nil, 0, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, nil, 0, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, nil, 0, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	sizes, err := cmd.Flags().GetIntSlice("sizes")
	if err != nil {
		return nil, nil, 0, err
	}
	for _, size := range sizes {
		if !config.ValidBoardSize(size) {
			return nil, nil, 0, fmt.Errorf("invalid board size %d: %w", size, config.ErrInvalidBoardSize)
		}
	}

	depths, err := cmd.Flags().GetIntSlice("depths")
	if err != nil {
		return nil, nil, 0, err
	}
	algorithms, err := cmd.Flags().GetStringSlice("algorithms")
	if err != nil {
		return nil, nil, 0, err
	}
	heuristics, err := cmd.Flags().GetStringSlice("heuristics")
	if err != nil {
		return nil, nil, 0, err
	}
	seed, err := cmd.Flags().GetInt64("seed")
	if err != nil {
		return nil, nil, 0, err
	}

	configs := benchmark.Grid(sizes, depths, algorithms, heuristics, cfg.BenchmarkGames)
	return cfg, configs, seed, nil
}

// runBenchmark runs the pairing grid and reports the results.
func runBenchmark(ctx context.Context, cfg *config.Config, configs []model.MatchConfig, seed int64, db *database.GameDB, out io.Writer, logger *slog.Logger) error {
	totalGames := 0
	for _, c := range configs {
		totalGames += c.Games
	}
	fmt.Fprintf(out, "Benchmarking %d pairings, %d games (concurrency: %d)...\n\n",
		len(configs), totalGames, cfg.BenchmarkConcurrency)

	opts := []benchmark.Option{
		benchmark.WithConcurrency(cfg.BenchmarkConcurrency),
		benchmark.WithLogger(logger),
	}
	if seed != 0 {
		opts = append(opts, benchmark.WithSeed(seed))
	}
	runner := benchmark.NewRunner(opts...)

	start := time.Now()
	var mu sync.Mutex
	result, err := runner.RunWithCallback(ctx, configs, func(i, completed int) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "[%d/%d] %s: %d/%d games done\n",
			i+1, len(configs), configs[i].Label(), completed, configs[i].Games)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nBenchmark completed in %s\n\n", time.Since(start).Round(time.Millisecond))

	if cfg.SaveToDB {
		if id, err := db.SaveBenchmark(ctx, result); err != nil {
			logger.Error("failed to save benchmark run", "error", err)
		} else {
			logger.Info("benchmark run recorded", "id", id)
		}
	}

	return outputBenchmark(cfg, result)
}

// outputBenchmark writes the benchmark report in the requested format.
func outputBenchmark(cfg *config.Config, result *model.BenchmarkReport) error {
	output, closer, err := reportDestination(cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closer()

	writer := newReportWriter(cfg, output)
	_, err = writer.WriteBenchmark(result)
	return err
}

// newReportWriter selects the report writer for the requested format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	if cfg.JSONReport {
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	}
	if cfg.MarkdownReport {
		return report.NewMarkdownWriter(output)
	}
	return report.NewSimpleWriter(output)
}

// reportDestination resolves the report output, creating directories
// and the file when a path is configured. The returned closer is a
// no-op for stdout.
func reportDestination(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

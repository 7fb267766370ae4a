package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/othello/internal/config"
	"github.com/nao1215/othello/internal/parser"
	"github.com/spf13/cobra"
)

// NewContestCmd creates the contest command.
func NewContestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contest [position-file]",
		Short: "Compute the best move for a contest position",
		Long: `Contest reads a position file and prints the engine's move.

The position file format is one line with the board size, one line with
the side to move (X or O), and the piece grid:

  6
  O
  _ _ _ _ _ _
  _ _ _ _ _ _
  _ _ X O _ _
  _ _ O X _ _
  _ _ _ _ _ _
  _ _ _ _ _ _

The chosen move is printed in algebraic notation, or -1-1 when the
side to move has no legal move.

Examples:
  # Best move at the default depth
  othello contest position.txt

  # Deep alpha-beta search bounded to two seconds
  othello contest --depth 8 --algorithm ab --ai-time 2s position.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runContestCmd,
	}

	cmd.Flags().IntP("depth", "d", config.DefaultAIDepth,
		"Search depth in plies")
	cmd.Flags().StringP("algorithm", "a", config.DefaultAlgorithm,
		"Search algorithm: minimax or ab")
	cmd.Flags().String("heuristic", config.DefaultHeuristic,
		"Evaluation: coin_parity, corners_captured, mobility, or all_in_one")
	cmd.Flags().DurationP("ai-time", "t", config.DefaultAIMoveTimeout,
		"Search deadline (0 for no limit; the best move so far is printed on timeout)")

	return cmd
}

// runContestCmd executes the contest command.
func runContestCmd(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()

	var err error
	if cfg.AIDepth, err = cmd.Flags().GetInt("depth"); err != nil {
		return err
	}
	if cfg.Algorithm, err = cmd.Flags().GetString("algorithm"); err != nil {
		return err
	}
	if cfg.Heuristic, err = cmd.Flags().GetString("heuristic"); err != nil {
		return err
	}
	if cfg.AIMoveTimeout, err = cmd.Flags().GetDuration("ai-time"); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	f, err := os.Open(args[0]) //nolint:gosec // User-provided position path is intentional
	if err != nil {
		return fmt.Errorf("failed to open position file: %w", err)
	}
	defer f.Close()

	b, err := parser.ParseContest(f)
	if err != nil {
		return fmt.Errorf("failed to parse position file %s: %w", args[0], err)
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if cfg.AIMoveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.AIMoveTimeout)
		defer cancel()
	}

	move, stats, err := engine.BestMove(ctx, b)
	if err != nil {
		return err
	}
	logger.Debug("search finished",
		"move", move.String(), "nodes", stats.Nodes, "elapsed", stats.Elapsed)

	fmt.Fprintln(cmd.OutOrStdout(), move)
	return nil
}

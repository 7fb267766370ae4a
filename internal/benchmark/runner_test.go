package benchmark

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/nao1215/othello/internal/ai"
	"github.com/nao1215/othello/internal/model"
)

func TestGrid(t *testing.T) {
	t.Parallel()

	configs := Grid(
		[]int{6, 8},
		[]int{1, 2},
		[]string{"minimax", "ab"},
		[]string{"coin_parity"},
		5,
	)
	if len(configs) != 8 {
		t.Fatalf("expected 8 pairings, got %d", len(configs))
	}
	for _, cfg := range configs {
		if cfg.Games != 5 {
			t.Errorf("expected 5 games, got %d", cfg.Games)
		}
		if !cfg.Black.IsAI() {
			t.Errorf("expected AI black player, got %+v", cfg.Black)
		}
		if cfg.White.Kind != "random" {
			t.Errorf("expected random white player, got %+v", cfg.White)
		}
	}
	// First pairing follows the nesting order: size, depth, algorithm.
	first := configs[0]
	if first.BoardSize != 6 || first.Black.Depth != 1 || first.Black.Algorithm != "minimax" {
		t.Errorf("unexpected first pairing: %s", first.Label())
	}
}

func TestEngineForSpec(t *testing.T) {
	t.Parallel()

	engine, err := EngineForSpec(model.PlayerSpec{
		Kind: "ai", Depth: 2, Algorithm: "ab", Heuristic: "mobility",
	})
	if err != nil {
		t.Fatal(err)
	}
	if engine.Depth != 2 || engine.Algorithm != ai.AlphaBeta || engine.Heuristic.Name != "mobility" {
		t.Errorf("unexpected engine: %+v", engine)
	}

	if _, err := EngineForSpec(model.PlayerSpec{Kind: "ai", Depth: 2, Algorithm: "mcts", Heuristic: "mobility"}); !errors.Is(err, ai.ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
	if _, err := EngineForSpec(model.PlayerSpec{Kind: "ai", Depth: 2, Algorithm: "ab", Heuristic: "nope"}); !errors.Is(err, ai.ErrUnknownHeuristic) {
		t.Errorf("expected ErrUnknownHeuristic, got %v", err)
	}
	if _, err := EngineForSpec(model.PlayerSpec{Kind: "ai", Depth: 0, Algorithm: "ab", Heuristic: "mobility"}); err == nil {
		t.Error("expected error for zero depth")
	}
}

func TestRunnerRun(t *testing.T) {
	t.Parallel()

	configs := []model.MatchConfig{
		{
			BoardSize: 6,
			Games:     4,
			Black:     model.PlayerSpec{Kind: "ai", Depth: 1, Algorithm: "ab", Heuristic: "coin_parity"},
			White:     model.PlayerSpec{Kind: "random"},
		},
		{
			BoardSize: 6,
			Games:     2,
			Black:     model.PlayerSpec{Kind: "random"},
			White:     model.PlayerSpec{Kind: "random"},
		},
	}

	r := NewRunner(WithConcurrency(2), WithSeed(7))
	report, err := r.Run(context.Background(), configs)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if got := report.Results[0].Games(); got != 4 {
		t.Errorf("expected 4 games for first pairing, got %d", got)
	}
	if got := report.Results[1].Games(); got != 2 {
		t.Errorf("expected 2 games for second pairing, got %d", got)
	}
	if report.TotalGames() != 6 {
		t.Errorf("expected 6 total games, got %d", report.TotalGames())
	}
	if report.Results[0].AvgMoves <= 0 {
		t.Error("expected positive average game length")
	}
	// Only the first pairing fields an engine, so only it has search stats.
	if report.Results[0].AvgNodes <= 0 {
		t.Error("expected search statistics for the AI pairing")
	}
	if report.Results[1].AvgNodes != 0 {
		t.Errorf("expected no search statistics for random vs random, got %f", report.Results[1].AvgNodes)
	}
	if report.Elapsed <= 0 {
		t.Error("expected positive elapsed time")
	}
}

func TestRunnerRunWithCallback(t *testing.T) {
	t.Parallel()

	configs := []model.MatchConfig{
		{
			BoardSize: 6,
			Games:     3,
			Black:     model.PlayerSpec{Kind: "random"},
			White:     model.PlayerSpec{Kind: "random"},
		},
	}

	var mu sync.Mutex
	calls := 0
	r := NewRunner(WithConcurrency(2), WithSeed(11))
	_, err := r.RunWithCallback(context.Background(), configs, func(pairing, done int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if pairing != 0 {
			t.Errorf("expected pairing index 0, got %d", pairing)
		}
		if done < 1 || done > 3 {
			t.Errorf("unexpected completion count %d", done)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 3 {
		t.Errorf("expected 3 callback calls, got %d", calls)
	}
}

func TestGameSeed(t *testing.T) {
	t.Parallel()

	// Both players of every game must draw from their own random
	// stream: no seed may repeat across pairings, games, or colors.
	seen := make(map[int64]string)
	for pairing := 0; pairing < 4; pairing++ {
		for game := 0; game < 100; game++ {
			black := gameSeed(42, pairing, game)
			white := black + 1
			for color, seed := range map[string]int64{"black": black, "white": white} {
				if prev, ok := seen[seed]; ok {
					t.Fatalf("seed %d for pairing %d game %d %s already used by %s",
						seed, pairing, game, color, prev)
				}
				seen[seed] = fmt.Sprintf("pairing %d game %d %s", pairing, game, color)
			}
		}
	}
}

func TestRunnerRunInvalidSpec(t *testing.T) {
	t.Parallel()

	configs := []model.MatchConfig{
		{
			BoardSize: 6,
			Games:     1,
			Black:     model.PlayerSpec{Kind: "ai", Depth: 1, Algorithm: "bogus", Heuristic: "coin_parity"},
			White:     model.PlayerSpec{Kind: "random"},
		},
	}
	if _, err := NewRunner().Run(context.Background(), configs); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestRunnerRunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	configs := Grid([]int{6}, []int{1}, []string{"ab"}, []string{"coin_parity"}, 2)
	if _, err := NewRunner().Run(ctx, configs); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/othello/internal/config"
	"github.com/nao1215/othello/internal/database"
	"github.com/nao1215/othello/internal/model"
)

// openHistoryTestDB creates a database with one game and one benchmark
// run recorded.
func openHistoryTestDB(t *testing.T) *database.GameDB {
	t.Helper()

	db, err := database.Open(t.TempDir(), database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	game := &model.GameRecord{
		PlayedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		BoardSize:   8,
		Mode:        model.ModeHumanVsAI,
		BlackPlayer: "human",
		WhitePlayer: "ab/all_in_one@3",
		Winner:      model.WinnerWhite,
		BlackScore:  20,
		WhiteScore:  44,
		Moves:       60,
		Duration:    4 * time.Minute,
		SaveData:    "O\n_ _\n_ _\n",
	}
	if _, err := db.SaveGame(ctx, game); err != nil {
		t.Fatalf("failed to save game: %v", err)
	}

	run := &model.BenchmarkReport{
		RunAt:   time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		Elapsed: 30 * time.Second,
		Results: []model.MatchResult{
			{
				Config: model.MatchConfig{
					BoardSize: 8,
					Games:     10,
					Black:     model.PlayerSpec{Kind: "ai", Depth: 3, Algorithm: "ab", Heuristic: "all_in_one"},
					White:     model.PlayerSpec{Kind: "random"},
				},
				BlackWins: 9,
				WhiteWins: 1,
			},
		},
	}
	if _, err := db.SaveBenchmark(ctx, run); err != nil {
		t.Fatalf("failed to save benchmark run: %v", err)
	}

	return db
}

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	if cmd.Use != "history" {
		t.Errorf("unexpected Use: got %q", cmd.Use)
	}

	flagsWithShort := map[string]string{
		"limit":      "l",
		"id":         "i",
		"benchmarks": "B",
		"export":     "e",
		"json":       "j",
		"markdown":   "m",
		"output":     "o",
	}
	for flag, shorthand := range flagsWithShort {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			t.Errorf("expected flag %q to exist", flag)
			continue
		}
		if f.Shorthand != shorthand {
			t.Errorf("flag %q: expected shorthand %q, got %q", flag, shorthand, f.Shorthand)
		}
	}
}

// TestRunHistoryCmdConflictingFormats tests report format validation.
func TestRunHistoryCmdConflictingFormats(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()
	cmd.SetArgs([]string{"-j", "-m"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "configuration error") {
		t.Errorf("expected a configuration error, got %v", err)
	}
}

// TestListGameHistory tests the game listing output.
func TestListGameHistory(t *testing.T) {
	db := openHistoryTestDB(t)

	outputPath := filepath.Join(t.TempDir(), "history.txt")
	cfg := config.NewConfig()
	cfg.ReportFile = outputPath

	if err := listGameHistory(context.Background(), cfg, db, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	out := string(content)
	if !strings.Contains(out, "OTHELLO GAME HISTORY") {
		t.Errorf("expected history banner, got:\n%s", out)
	}
	if !strings.Contains(out, "ab/all_in_one@3") {
		t.Errorf("expected the AI player name, got:\n%s", out)
	}
}

// TestShowGame tests single-game output.
func TestShowGame(t *testing.T) {
	db := openHistoryTestDB(t)
	ctx := context.Background()

	t.Run("JSON output round trips", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), "game.json")
		cfg := config.NewConfig()
		cfg.JSONReport = true
		cfg.ReportFile = outputPath

		if err := showGame(ctx, cfg, db, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		var games []model.GameRecord
		if err := json.Unmarshal(data, &games); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(games) != 1 || games[0].Winner != model.WinnerWhite {
			t.Errorf("unexpected decoded games: %+v", games)
		}
	})

	t.Run("missing ID is an error", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.ReportFile = filepath.Join(t.TempDir(), "game.txt")

		err := showGame(ctx, cfg, db, 999)
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected a not found error, got %v", err)
		}
	})
}

// TestExportGame tests save-file export.
func TestExportGame(t *testing.T) {
	db := openHistoryTestDB(t)
	ctx := context.Background()

	t.Run("writes the save data", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "resumed.save")
		var buf bytes.Buffer

		if err := exportGame(ctx, db, 1, path, &buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read save file: %v", err)
		}
		if !strings.HasPrefix(string(content), "O\n") {
			t.Errorf("unexpected save data: %q", content)
		}
		if !strings.Contains(buf.String(), "exported to") {
			t.Errorf("expected an export announcement, got %q", buf.String())
		}
	})

	t.Run("missing ID is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "resumed.save")
		err := exportGame(ctx, db, 999, path, &bytes.Buffer{})
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected a not found error, got %v", err)
		}
	})
}

// TestListBenchmarkRuns tests the benchmark run listing.
func TestListBenchmarkRuns(t *testing.T) {
	t.Run("lists recorded runs", func(t *testing.T) {
		db := openHistoryTestDB(t)

		var buf bytes.Buffer
		if err := listBenchmarkRuns(context.Background(), db, 0, &buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "Benchmark runs (1):") {
			t.Errorf("expected one recorded run, got:\n%s", out)
		}
		if !strings.Contains(out, "10 games") {
			t.Errorf("expected the game count, got:\n%s", out)
		}
	})

	t.Run("reports an empty database", func(t *testing.T) {
		db, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		t.Cleanup(func() { db.Close() })

		var buf bytes.Buffer
		if err := listBenchmarkRuns(context.Background(), db, 0, &buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No benchmark runs recorded.") {
			t.Errorf("expected empty notice, got:\n%s", buf.String())
		}
	})
}

// TestShowBenchmarkRun tests stored report output.
func TestShowBenchmarkRun(t *testing.T) {
	db := openHistoryTestDB(t)
	ctx := context.Background()

	t.Run("writes the stored report", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), "run.txt")
		cfg := config.NewConfig()
		cfg.ReportFile = outputPath

		if err := showBenchmarkRun(ctx, cfg, db, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if !strings.Contains(string(content), "OTHELLO BENCHMARK REPORT") {
			t.Errorf("expected report banner, got:\n%s", content)
		}
	})

	t.Run("missing ID is an error", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.ReportFile = filepath.Join(t.TempDir(), "run.txt")

		err := showBenchmarkRun(ctx, cfg, db, 999)
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected a not found error, got %v", err)
		}
	})
}

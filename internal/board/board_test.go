package board

import (
	"errors"
	"strings"
	"testing"
)

func newTestBoard(t *testing.T, size int) *Board {
	t.Helper()
	b, err := New(size)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestNewBoard(t *testing.T) {
	t.Parallel()

	t.Run("starting position on 8x8", func(t *testing.T) {
		t.Parallel()
		b := newTestBoard(t, 8)

		black, white := b.Score()
		if black != 2 || white != 2 {
			t.Errorf("expected 2-2 starting score, got %d-%d", black, white)
		}
		if b.Current() != Black {
			t.Errorf("expected black to move first, got %s", b.Current())
		}

		wantPieces := map[Move]Color{
			{3, 3}: White,
			{4, 4}: White,
			{3, 4}: Black,
			{4, 3}: Black,
		}
		for m, want := range wantPieces {
			got, err := b.Cell(m.X, m.Y)
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Errorf("cell %s: expected %s, got %s", m, want, got)
			}
		}
	})

	t.Run("invalid sizes rejected", func(t *testing.T) {
		t.Parallel()
		for _, size := range []int{0, 4, 7, 9, 14} {
			if _, err := New(size); !errors.Is(err, ErrInvalidBoardSize) {
				t.Errorf("size %d: expected ErrInvalidBoardSize, got %v", size, err)
			}
		}
	})

	t.Run("all valid sizes accepted", func(t *testing.T) {
		t.Parallel()
		for _, size := range ValidSizes {
			b, err := New(size)
			if err != nil {
				t.Fatalf("size %d: %v", size, err)
			}
			if b.Size() != size {
				t.Errorf("expected size %d, got %d", size, b.Size())
			}
		}
	})
}

func TestNewPosition(t *testing.T) {
	t.Parallel()

	t.Run("overlapping pieces rejected", func(t *testing.T) {
		t.Parallel()
		black, _ := NewBitboard(8)
		white, _ := NewBitboard(8)
		_ = black.Set(0, 0, true)
		_ = white.Set(0, 0, true)
		if _, err := NewPosition(8, black, white, Black); !errors.Is(err, ErrOverlappingPieces) {
			t.Errorf("expected ErrOverlappingPieces, got %v", err)
		}
	})

	t.Run("side to move preserved", func(t *testing.T) {
		t.Parallel()
		black, _ := NewBitboard(6)
		white, _ := NewBitboard(6)
		_ = black.Set(2, 2, true)
		_ = white.Set(3, 3, true)
		b, err := NewPosition(6, black, white, White)
		if err != nil {
			t.Fatal(err)
		}
		if b.Current() != White {
			t.Errorf("expected white to move, got %s", b.Current())
		}
	})
}

func TestLegalMovesStartingPosition(t *testing.T) {
	t.Parallel()

	b := newTestBoard(t, 8)
	got := b.LegalMoves(Black).Coordinates()

	// Black's classic four opening squares.
	want := []Move{{3, 2}, {2, 3}, {5, 4}, {4, 5}}
	if len(got) != len(want) {
		t.Fatalf("expected %d legal moves, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("move %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestPlay(t *testing.T) {
	t.Parallel()

	t.Run("capture flips the run", func(t *testing.T) {
		t.Parallel()
		b := newTestBoard(t, 8)

		// d3 captures the white piece on d4.
		if err := b.Play(Move{3, 2}); err != nil {
			t.Fatal(err)
		}
		c, err := b.Cell(3, 3)
		if err != nil {
			t.Fatal(err)
		}
		if c != Black {
			t.Errorf("expected d4 flipped to black, got %s", c)
		}
		black, white := b.Score()
		if black != 4 || white != 1 {
			t.Errorf("expected 4-1 after d3, got %d-%d", black, white)
		}
		if b.Current() != White {
			t.Errorf("expected white to move after d3, got %s", b.Current())
		}
	})

	t.Run("illegal move rejected", func(t *testing.T) {
		t.Parallel()
		b := newTestBoard(t, 8)

		err := b.Play(Move{0, 0})
		var illegal *IllegalMoveError
		if !errors.As(err, &illegal) {
			t.Fatalf("expected IllegalMoveError, got %v", err)
		}
		if illegal.Move != (Move{0, 0}) || illegal.Color != Black {
			t.Errorf("unexpected error detail: %v", illegal)
		}
		// The board must be untouched after a rejected move.
		black, white := b.Score()
		if black != 2 || white != 2 {
			t.Errorf("board changed after illegal move: %d-%d", black, white)
		}
	})

	t.Run("occupied square rejected", func(t *testing.T) {
		t.Parallel()
		b := newTestBoard(t, 8)
		var illegal *IllegalMoveError
		if err := b.Play(Move{3, 3}); !errors.As(err, &illegal) {
			t.Fatalf("expected IllegalMoveError on occupied square, got %v", err)
		}
	})

	t.Run("history records plays", func(t *testing.T) {
		t.Parallel()
		b := newTestBoard(t, 8)
		if err := b.Play(Move{3, 2}); err != nil {
			t.Fatal(err)
		}
		if err := b.Play(Move{2, 2}); err != nil {
			t.Fatal(err)
		}
		history := b.History()
		if len(history) != 2 {
			t.Fatalf("expected 2 plays, got %d", len(history))
		}
		if history[0] != (Play{Black, Move{3, 2}}) {
			t.Errorf("unexpected first play: %+v", history[0])
		}
		if history[1] != (Play{White, Move{2, 2}}) {
			t.Errorf("unexpected second play: %+v", history[1])
		}
	})
}

func TestUndo(t *testing.T) {
	t.Parallel()

	t.Run("restores previous state", func(t *testing.T) {
		t.Parallel()
		b := newTestBoard(t, 8)
		before := b.Export()

		if err := b.Play(Move{3, 2}); err != nil {
			t.Fatal(err)
		}
		if err := b.Undo(); err != nil {
			t.Fatal(err)
		}
		if got := b.Export(); got != before {
			t.Errorf("undo did not restore the board:\ngot:\n%s\nwant:\n%s", got, before)
		}
	})

	t.Run("initial board cannot undo", func(t *testing.T) {
		t.Parallel()
		b := newTestBoard(t, 8)
		if err := b.Undo(); !errors.Is(err, ErrNoHistory) {
			t.Errorf("expected ErrNoHistory, got %v", err)
		}
	})
}

// TestPassRecording drives a 6x6 game into a position where white has no
// reply and verifies the automatic pass is recorded.
func TestPassRecording(t *testing.T) {
	t.Parallel()

	b := newTestBoard(t, 6)
	// With black repeatedly capturing along the top-left region, white
	// eventually runs out of moves in small games; instead of scripting
	// a fixed line we let black greedily pick the first legal move for
	// both sides until a pass shows up or the game ends.
	for !b.IsGameOver() {
		moves := b.LegalMoves(b.Current()).Coordinates()
		if len(moves) == 0 {
			t.Fatal("side to move has no legal move outside game over")
		}
		if err := b.Play(moves[0]); err != nil {
			t.Fatal(err)
		}
	}

	history := b.History()
	if len(history) == 0 {
		t.Fatal("expected recorded plays")
	}
	// Plays must strictly alternate colors, passes included.
	for i := 1; i < len(history); i++ {
		if history[i].Color == history[i-1].Color {
			t.Fatalf("plays %d and %d are both %s", i-1, i, history[i].Color)
		}
	}
}

func TestRestart(t *testing.T) {
	t.Parallel()

	b := newTestBoard(t, 8)
	if err := b.Play(Move{3, 2}); err != nil {
		t.Fatal(err)
	}
	b.Restart()

	black, white := b.Score()
	if black != 2 || white != 2 {
		t.Errorf("expected starting score after restart, got %d-%d", black, white)
	}
	if b.Current() != Black {
		t.Errorf("expected black to move after restart, got %s", b.Current())
	}
	if len(b.History()) != 0 {
		t.Error("expected empty history after restart")
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	b := newTestBoard(t, 8)
	clone := b.Clone()
	if err := clone.Play(Move{3, 2}); err != nil {
		t.Fatal(err)
	}

	black, _ := b.Score()
	if black != 2 {
		t.Error("playing on the clone mutated the original board")
	}
	cloneBlack, _ := clone.Score()
	if cloneBlack != 4 {
		t.Errorf("expected 4 black pieces on clone, got %d", cloneBlack)
	}
}

func TestTurnNumber(t *testing.T) {
	t.Parallel()

	b := newTestBoard(t, 8)
	if got := b.TurnNumber(); got != 1 {
		t.Errorf("expected turn 1 at start, got %d", got)
	}
	if err := b.Play(Move{3, 2}); err != nil {
		t.Fatal(err)
	}
	// Black moved, white to reply: still turn 1.
	if got := b.TurnNumber(); got != 1 {
		t.Errorf("expected turn 1 after black's move, got %d", got)
	}
	if err := b.Play(Move{2, 2}); err != nil {
		t.Fatal(err)
	}
	if got := b.TurnNumber(); got != 2 {
		t.Errorf("expected turn 2 after a full turn, got %d", got)
	}
}

func TestExport(t *testing.T) {
	t.Parallel()

	b := newTestBoard(t, 8)
	if err := b.Play(Move{3, 2}); err != nil {
		t.Fatal(err)
	}
	if err := b.Play(Move{2, 2}); err != nil {
		t.Fatal(err)
	}

	out := b.Export()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "X" {
		t.Errorf("expected side to move X on first line, got %q", lines[0])
	}
	if len(lines) != 1+8+1 {
		t.Fatalf("expected color, 8 grid rows and 1 history line, got %d lines", len(lines))
	}
	if lines[len(lines)-1] != "1. X d3 O c3" {
		t.Errorf("unexpected history line: %q", lines[len(lines)-1])
	}
}

func TestBoardString(t *testing.T) {
	t.Parallel()

	b := newTestBoard(t, 6)
	out := b.String()
	if !strings.HasPrefix(out, "  a b c d e f") {
		t.Errorf("expected column header, got %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, "3 _ _ O X _ _") {
		t.Errorf("expected starting row 3 in output, got:\n%s", out)
	}
}

func TestIsGameOverFullBoard(t *testing.T) {
	t.Parallel()

	// Fill a 6x6 board completely with one extra empty square that no
	// side can play into; simplest is to play a full random game.
	b := newTestBoard(t, 6)
	for !b.IsGameOver() {
		moves := b.LegalMoves(b.Current()).Coordinates()
		if err := b.Play(moves[0]); err != nil {
			t.Fatal(err)
		}
	}
	if !b.IsGameOver() {
		t.Error("expected game over")
	}
	black, white := b.Score()
	winner := b.Winner()
	switch {
	case black > white && winner != Black:
		t.Errorf("expected black winner with %d-%d, got %s", black, white, winner)
	case white > black && winner != White:
		t.Errorf("expected white winner with %d-%d, got %s", black, white, winner)
	case black == white && winner != Empty:
		t.Errorf("expected draw with %d-%d, got %s", black, white, winner)
	}
}

func TestParseMove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		size    int
		want    Move
		wantErr bool
	}{
		{name: "top left", input: "a1", size: 8, want: Move{0, 0}},
		{name: "center", input: "d3", size: 8, want: Move{3, 2}},
		{name: "two digit row", input: "j10", size: 10, want: Move{9, 9}},
		{name: "pass literal", input: "-1-1", size: 8, want: Pass},
		{name: "column out of range", input: "i1", size: 8, wantErr: true},
		{name: "row out of range", input: "a9", size: 8, wantErr: true},
		{name: "garbage", input: "zz", size: 8, wantErr: true},
		{name: "empty", input: "", size: 8, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMove(tt.input, tt.size)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMoveNotation) {
					t.Errorf("expected ErrInvalidMoveNotation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMoveString(t *testing.T) {
	t.Parallel()

	if got := (Move{3, 2}).String(); got != "d3" {
		t.Errorf("expected d3, got %s", got)
	}
	if got := Pass.String(); got != "-1-1" {
		t.Errorf("expected -1-1, got %s", got)
	}
}

package board

import (
	"fmt"
	"strconv"
)

// Move is a square on the board identified by zero-based coordinates.
// Column 0 is "a" and row 0 is "1" in algebraic notation, so Move{3, 2}
// renders as "d3".
type Move struct {
	X int
	Y int
}

// Pass is the move recorded for a side that had no legal square to play.
// It is written as "-1-1" in save files, matching the history format.
var Pass = Move{X: -1, Y: -1}

// IsPass reports whether the move is the pass sentinel.
func (m Move) IsPass() bool {
	return m == Pass
}

// String returns the move in algebraic notation ("d3"), or "-1-1" for a
// pass.
func (m Move) String() string {
	if m.IsPass() {
		return "-1-1"
	}
	return fmt.Sprintf("%c%d", 'a'+rune(m.X), m.Y+1)
}

// ParseMove parses algebraic notation ("d3") into a Move for a board of
// the given size. The literal "-1-1" parses as Pass.
func ParseMove(s string, size int) (Move, error) {
	if s == "-1-1" {
		return Pass, nil
	}
	if len(s) < 2 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMoveNotation, s)
	}
	col := s[0]
	if col < 'a' || col > byte('a'+size-1) {
		return Move{}, fmt.Errorf("%w: %q (column out of range)", ErrInvalidMoveNotation, s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 || row > size {
		return Move{}, fmt.Errorf("%w: %q (row out of range)", ErrInvalidMoveNotation, s)
	}
	return Move{X: int(col - 'a'), Y: row - 1}, nil
}

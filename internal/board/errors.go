package board

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the board package. Callers can match them
// with errors.Is to distinguish rule violations from programming errors.
var (
	// ErrInvalidBoardSize is returned when a board or bitboard is
	// requested with an unsupported edge length. Games are played on
	// 6x6, 8x8, 10x10, or 12x12 boards only.
	ErrInvalidBoardSize = errors.New("invalid board size")

	// ErrCoordinateOutOfRange is returned when a coordinate pair does
	// not address a square on the board.
	ErrCoordinateOutOfRange = errors.New("coordinate out of range")

	// ErrGameOver is returned by Play when neither side has a legal
	// move left.
	ErrGameOver = errors.New("game is over")

	// ErrNoHistory is returned by Undo when the board is in its
	// initial state and there is nothing to take back.
	ErrNoHistory = errors.New("no move to undo")

	// ErrInvalidMoveNotation is returned when algebraic notation
	// cannot be parsed into a square.
	ErrInvalidMoveNotation = errors.New("invalid move notation")

	// ErrOverlappingPieces is returned when a position is constructed
	// with a square occupied by both colors.
	ErrOverlappingPieces = errors.New("black and white pieces overlap")
)

// IllegalMoveError reports an attempt to play on a square that is not a
// legal capture for the side to move. It carries the offending move and
// color so interactive front ends can show a precise message.
type IllegalMoveError struct {
	Move  Move
	Color Color
}

// Error implements the error interface.
func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("move %s by %s is illegal", e.Move, e.Color)
}

package board

import (
	"fmt"
	"strings"
)

// Color identifies the contents of a square or the side to move.
type Color int8

// Square states. Empty is the zero value so an unoccupied square needs no
// initialization.
const (
	Empty Color = iota
	Black
	White
)

// ValidSizes lists the board edge lengths the game supports.
var ValidSizes = []int{6, 8, 10, 12}

// Opponent returns the other color. The opponent of Empty is Empty.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// Symbol returns the save-format character for the color: "X" for black,
// "O" for white, "_" for an empty square.
func (c Color) Symbol() string {
	switch c {
	case Black:
		return "X"
	case White:
		return "O"
	default:
		return "_"
	}
}

// String returns the lowercase color name.
func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Play is one entry in the game record: the side that moved and the
// square it played, or Pass when its turn was skipped.
type Play struct {
	Color Color
	Move  Move
}

// snapshot captures the board state before a move so Undo can restore it.
type snapshot struct {
	black   Bitboard
	white   Bitboard
	current Color
	plays   int
}

// Board is a full Othello game state: piece positions, the side to move,
// and the move history. All rule enforcement lives here; players and
// front ends never mutate bitboards directly.
type Board struct {
	size    int
	black   Bitboard
	white   Bitboard
	current Color
	history []snapshot
	plays   []Play
}

// New returns a board of the given size set up in the standard starting
// position: two pieces of each color crossed in the center, black to
// move. The size must be one of ValidSizes.
func New(size int) (*Board, error) {
	if !validSize(size) {
		return nil, fmt.Errorf("%w: %d (valid sizes: %v)", ErrInvalidBoardSize, size, ValidSizes)
	}
	b := &Board{
		size:    size,
		black:   Bitboard{size: size},
		white:   Bitboard{size: size},
		current: Black,
	}
	b.placeStartingPieces()
	return b, nil
}

// NewPosition returns a board holding an arbitrary position, used when
// loading saved games. The piece sets must not overlap.
func NewPosition(size int, black, white Bitboard, current Color) (*Board, error) {
	if !validSize(size) {
		return nil, fmt.Errorf("%w: %d (valid sizes: %v)", ErrInvalidBoardSize, size, ValidSizes)
	}
	if !black.And(white).IsZero() {
		return nil, ErrOverlappingPieces
	}
	if current != Black && current != White {
		return nil, fmt.Errorf("side to move must be black or white, got %s", current)
	}
	return &Board{
		size:    size,
		black:   black,
		white:   white,
		current: current,
	}, nil
}

func validSize(size int) bool {
	for _, s := range ValidSizes {
		if s == size {
			return true
		}
	}
	return false
}

// placeStartingPieces sets the four center pieces: white on the main
// diagonal, black on the anti-diagonal.
func (b *Board) placeStartingPieces() {
	half := b.size / 2
	b.white.setBit((half-1)*b.size + (half - 1))
	b.white.setBit(half*b.size + half)
	b.black.setBit(half*b.size + (half - 1))
	b.black.setBit((half-1)*b.size + half)
}

// Size returns the board edge length.
func (b *Board) Size() int {
	return b.size
}

// Current returns the side to move.
func (b *Board) Current() Color {
	return b.current
}

// Cell returns the contents of the square at column x, row y.
func (b *Board) Cell(x, y int) (Color, error) {
	hasBlack, err := b.black.Get(x, y)
	if err != nil {
		return Empty, err
	}
	if hasBlack {
		return Black, nil
	}
	hasWhite, _ := b.white.Get(x, y)
	if hasWhite {
		return White, nil
	}
	return Empty, nil
}

// Score returns the piece counts for black and white.
func (b *Board) Score() (black, white int) {
	return b.black.PopCount(), b.white.PopCount()
}

// Pieces returns a copy of the piece bitboard for the given color.
func (b *Board) Pieces(c Color) Bitboard {
	if c == Black {
		return b.black
	}
	return b.white
}

// emptyMask returns a bitboard of all unoccupied squares.
func (b *Board) emptyMask() Bitboard {
	return b.black.Or(b.white).Xor(masksBySize[b.size].full)
}

// LegalMoves computes the squares the given color may play, using the
// line-capture algorithm: for each direction, runs of opponent pieces
// adjacent to one of the player's pieces are followed outward, and the
// empty square past the end of each run is a legal move.
func (b *Board) LegalMoves(c Color) Bitboard {
	own, opp := b.sides(c)
	empty := b.emptyMask()
	moves := Bitboard{size: b.size}
	for _, d := range Directions {
		candidates := opp.And(own.Shift(d))
		for !candidates.IsZero() {
			moves = moves.Or(empty.And(candidates.Shift(d)))
			candidates = opp.And(candidates.Shift(d))
		}
	}
	return moves
}

// captureMask returns the pieces flipped by playing at (x, y), including
// the played square itself. Legality is not checked here; Play does that
// first.
func (b *Board) captureMask(x, y int, c Color) Bitboard {
	own, opp := b.sides(c)
	pos := Bitboard{size: b.size}
	pos.setBit(y*b.size + x)
	capture := pos
	for _, d := range Directions {
		dirMask := pos
		ptr := pos
		for !ptr.IsZero() {
			ptr = ptr.Shift(d)
			switch {
			case !ptr.And(opp).IsZero():
				dirMask = dirMask.Or(ptr)
			case !ptr.And(own).IsZero():
				capture = capture.Or(dirMask)
				ptr = Bitboard{size: b.size}
			default:
				ptr = Bitboard{size: b.size}
			}
		}
	}
	return capture
}

// sides returns the bitboards for the given color and its opponent.
func (b *Board) sides(c Color) (own, opp Bitboard) {
	if c == Black {
		return b.black, b.white
	}
	return b.white, b.black
}

// Play places a piece for the side to move on the given square, flips
// the captured pieces, and advances the turn. If the opponent then has
// no legal move, a Pass is recorded for them and the same side moves
// again. Playing on a square that is not a legal capture returns an
// IllegalMoveError; playing on a finished board returns ErrGameOver.
func (b *Board) Play(m Move) error {
	if b.IsGameOver() {
		return ErrGameOver
	}
	legal := b.LegalMoves(b.current)
	on, err := legal.Get(m.X, m.Y)
	if err != nil || !on {
		return &IllegalMoveError{Move: m, Color: b.current}
	}

	b.history = append(b.history, snapshot{
		black:   b.black,
		white:   b.white,
		current: b.current,
		plays:   len(b.plays),
	})

	capture := b.captureMask(m.X, m.Y, b.current)
	if b.current == Black {
		b.black = b.black.Or(capture)
		b.white = b.white.AndNot(capture)
	} else {
		b.white = b.white.Or(capture)
		b.black = b.black.AndNot(capture)
	}
	b.plays = append(b.plays, Play{Color: b.current, Move: m})

	next := b.current.Opponent()
	switch {
	case !b.LegalMoves(next).IsZero():
		b.current = next
	case !b.LegalMoves(b.current).IsZero():
		// Opponent must pass; the same side moves again.
		b.plays = append(b.plays, Play{Color: next, Move: Pass})
	default:
		// Neither side can move: the game is over. The side to move
		// is left unchanged; IsGameOver reports the terminal state.
	}
	return nil
}

// Undo takes back the most recent Play call, restoring the position,
// the side to move, and the recorded history, including any pass that
// the move caused.
func (b *Board) Undo() error {
	if len(b.history) == 0 {
		return ErrNoHistory
	}
	s := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.black = s.black
	b.white = s.white
	b.current = s.current
	b.plays = b.plays[:s.plays]
	return nil
}

// Restart resets the board to the starting position and clears the
// history.
func (b *Board) Restart() {
	b.black = Bitboard{size: b.size}
	b.white = Bitboard{size: b.size}
	b.current = Black
	b.history = b.history[:0]
	b.plays = b.plays[:0]
	b.placeStartingPieces()
}

// Clone returns a deep copy of the board. AI search mutates clones so
// the caller's board is never disturbed.
func (b *Board) Clone() *Board {
	c := &Board{
		size:    b.size,
		black:   b.black,
		white:   b.white,
		current: b.current,
		history: make([]snapshot, len(b.history)),
		plays:   make([]Play, len(b.plays)),
	}
	copy(c.history, b.history)
	copy(c.plays, b.plays)
	return c
}

// IsGameOver reports whether neither side has a legal move.
func (b *Board) IsGameOver() bool {
	return b.LegalMoves(Black).IsZero() && b.LegalMoves(White).IsZero()
}

// Winner returns the color with more pieces, or Empty on a draw. Only
// meaningful once IsGameOver reports true.
func (b *Board) Winner() Color {
	black, white := b.Score()
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	default:
		return Empty
	}
}

// History returns a copy of the game record, passes included.
func (b *Board) History() []Play {
	plays := make([]Play, len(b.plays))
	copy(plays, b.plays)
	return plays
}

// TurnNumber returns the one-based number of the turn about to be
// played. A turn is one black move (or pass) followed by one white move
// (or pass).
func (b *Board) TurnNumber() int {
	blackPlays := 0
	for _, p := range b.plays {
		if p.Color == Black {
			blackPlays++
		}
	}
	if b.current == Black {
		return blackPlays + 1
	}
	return blackPlays
}

// Export serializes the board in the save-file format: the side to move
// on the first line, the piece grid, then the numbered move history.
// The history is only written when the recorded game started with a
// black move, since the format pairs moves as "N. X <move> O <move>".
func (b *Board) Export() string {
	var sb strings.Builder
	sb.WriteString(b.ExportPosition())
	if len(b.plays) == 0 || b.plays[0].Color != Black {
		return sb.String()
	}
	turn := 1
	for i := 0; i < len(b.plays); {
		sb.WriteString(fmt.Sprintf("%d. X %s", turn, b.plays[i].Move))
		i++
		if i < len(b.plays) && b.plays[i].Color == White {
			sb.WriteString(fmt.Sprintf(" O %s", b.plays[i].Move))
			i++
		}
		sb.WriteByte('\n')
		turn++
	}
	return sb.String()
}

// ExportPosition serializes only the side to move and the piece grid,
// without the move history. A position saved this way loads fine but
// cannot be undone past the point it was saved at.
func (b *Board) ExportPosition() string {
	var sb strings.Builder
	sb.WriteString(b.current.Symbol())
	sb.WriteByte('\n')
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			c, _ := b.Cell(x, y)
			sb.WriteString(c.Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String renders the board with column letters and row numbers, using
// the save-format symbols for the pieces.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  ")
	for x := 0; x < b.size; x++ {
		if x > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte('a' + x))
	}
	for y := 0; y < b.size; y++ {
		sb.WriteByte('\n')
		sb.WriteString(fmt.Sprintf("%d ", y+1))
		for x := 0; x < b.size; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			c, _ := b.Cell(x, y)
			sb.WriteString(c.Symbol())
		}
	}
	return sb.String()
}

package board

import (
	"fmt"
	"math/bits"
	"strings"
)

// Direction identifies one of the eight directions a bitboard can be
// shifted in. North is toward row 0, West is toward column 0.
type Direction int

// The eight shift directions.
const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

// Directions lists all eight shift directions in a stable order.
// Move generation and capture resolution iterate over this slice.
var Directions = [...]Direction{
	North, South, East, West,
	NorthEast, NorthWest, SouthEast, SouthWest,
}

// String returns the direction name for logging.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	case NorthEast:
		return "north-east"
	case NorthWest:
		return "north-west"
	case SouthEast:
		return "south-east"
	case SouthWest:
		return "south-west"
	default:
		return "unknown"
	}
}

const (
	// MaxBitboardSize is the largest edge length a Bitboard can represent.
	// Three 64-bit words hold 192 bits, enough for a 12x12 board (144
	// squares), which is the largest size the game supports.
	MaxBitboardSize = 12

	// bitboardWords is the number of 64-bit words backing a Bitboard.
	bitboardWords = 3
)

// Bitboard is a fixed-capacity bit set over the squares of a size x size
// board. The bit at index y*size+x represents the square at column x,
// row y (row 0 is the top of the board).
//
// Bitboard is a value type: all operations except Set return a new
// bitboard and leave the receiver untouched. This makes search code safe
// to write without defensive copies.
//
// Design decision: we use a fixed [3]uint64 array rather than math/big or
// a slice because the board size is bounded (12x12 = 144 bits), the array
// keeps bitboards allocation-free, and move generation sits on the hot
// path of the AI search.
type Bitboard struct {
	size  int
	words [bitboardWords]uint64
}

// boardMasks caches the wrap-prevention masks for one board size.
type boardMasks struct {
	// full has a bit set for every square on the board.
	full Bitboard
	// west has a bit set for every square except those in column 0.
	// It clears pieces that would wrap around after an eastward shift.
	west Bitboard
	// east has a bit set for every square except those in the last
	// column. It clears wrap-around after a westward shift.
	east Bitboard
}

// masksBySize holds precomputed masks for every representable size.
// Indexed by board size; entry 0 is unused.
var masksBySize [MaxBitboardSize + 1]boardMasks

func init() {
	for size := 1; size <= MaxBitboardSize; size++ {
		m := boardMasks{
			full: Bitboard{size: size},
			west: Bitboard{size: size},
			east: Bitboard{size: size},
		}
		for i := 0; i < size*size; i++ {
			m.full.setBit(i)
			if i%size != 0 {
				m.west.setBit(i)
			}
			if i%size != size-1 {
				m.east.setBit(i)
			}
		}
		masksBySize[size] = m
	}
}

// NewBitboard returns an empty bitboard for a size x size board.
// The size must be between 1 and MaxBitboardSize.
func NewBitboard(size int) (Bitboard, error) {
	if size < 1 || size > MaxBitboardSize {
		return Bitboard{}, fmt.Errorf("%w: %d", ErrInvalidBoardSize, size)
	}
	return Bitboard{size: size}, nil
}

// Size returns the edge length of the board this bitboard covers.
func (b Bitboard) Size() int {
	return b.size
}

// Set sets (value true) or clears (value false) the bit at column x, row y.
// Coordinates outside the board are rejected.
func (b *Bitboard) Set(x, y int, value bool) error {
	idx, err := b.index(x, y)
	if err != nil {
		return err
	}
	if value {
		b.setBit(idx)
	} else {
		b.clearBit(idx)
	}
	return nil
}

// Get reports whether the bit at column x, row y is set.
// Coordinates outside the board are rejected.
func (b Bitboard) Get(x, y int) (bool, error) {
	idx, err := b.index(x, y)
	if err != nil {
		return false, err
	}
	return b.getBit(idx), nil
}

// index converts board coordinates to a bit index, validating bounds.
func (b Bitboard) index(x, y int) (int, error) {
	if x < 0 || x >= b.size || y < 0 || y >= b.size {
		return 0, fmt.Errorf("%w: (%d, %d) on %dx%d board",
			ErrCoordinateOutOfRange, x, y, b.size, b.size)
	}
	return y*b.size + x, nil
}

func (b *Bitboard) setBit(idx int) {
	b.words[idx/64] |= 1 << (idx % 64)
}

func (b *Bitboard) clearBit(idx int) {
	b.words[idx/64] &^= 1 << (idx % 64)
}

func (b Bitboard) getBit(idx int) bool {
	return b.words[idx/64]&(1<<(idx%64)) != 0
}

// And returns the intersection of two bitboards.
func (b Bitboard) And(o Bitboard) Bitboard {
	r := Bitboard{size: b.size}
	for i := range b.words {
		r.words[i] = b.words[i] & o.words[i]
	}
	return r
}

// AndNot returns the bits of b that are not set in o.
func (b Bitboard) AndNot(o Bitboard) Bitboard {
	r := Bitboard{size: b.size}
	for i := range b.words {
		r.words[i] = b.words[i] &^ o.words[i]
	}
	return r
}

// Or returns the union of two bitboards.
func (b Bitboard) Or(o Bitboard) Bitboard {
	r := Bitboard{size: b.size}
	for i := range b.words {
		r.words[i] = b.words[i] | o.words[i]
	}
	return r
}

// Xor returns the symmetric difference of two bitboards.
func (b Bitboard) Xor(o Bitboard) Bitboard {
	r := Bitboard{size: b.size}
	for i := range b.words {
		r.words[i] = b.words[i] ^ o.words[i]
	}
	return r
}

// IsZero reports whether no bit is set.
func (b Bitboard) IsZero() bool {
	return b.words[0] == 0 && b.words[1] == 0 && b.words[2] == 0
}

// Equal reports whether both bitboards have the same size and bits.
func (b Bitboard) Equal(o Bitboard) bool {
	return b.size == o.size && b.words == o.words
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Shift returns the bitboard with every bit moved one square in the
// given direction. Bits shifted off the board, or wrapped onto the
// opposite edge, are cleared.
func (b Bitboard) Shift(d Direction) Bitboard {
	m := masksBySize[b.size]
	size := uint(b.size)
	var r Bitboard
	switch d {
	case North:
		r = b.shiftDown(size)
	case South:
		r = b.shiftUp(size)
	case East:
		r = b.shiftUp(1).And(m.west)
	case West:
		r = b.shiftDown(1).And(m.east)
	case NorthEast:
		r = b.shiftDown(size - 1).And(m.west)
	case NorthWest:
		r = b.shiftDown(size + 1).And(m.east)
	case SouthEast:
		r = b.shiftUp(size + 1).And(m.west)
	case SouthWest:
		r = b.shiftUp(size - 1).And(m.east)
	}
	return r.And(m.full)
}

// shiftUp moves every bit toward higher indices (visually: south).
func (b Bitboard) shiftUp(n uint) Bitboard {
	r := Bitboard{size: b.size}
	wordShift := int(n / 64)
	bitShift := n % 64
	for i := bitboardWords - 1; i >= 0; i-- {
		src := i - wordShift
		if src < 0 {
			continue
		}
		w := b.words[src] << bitShift
		if bitShift > 0 && src > 0 {
			w |= b.words[src-1] >> (64 - bitShift)
		}
		r.words[i] = w
	}
	return r
}

// shiftDown moves every bit toward lower indices (visually: north).
func (b Bitboard) shiftDown(n uint) Bitboard {
	r := Bitboard{size: b.size}
	wordShift := int(n / 64)
	bitShift := n % 64
	for i := 0; i < bitboardWords; i++ {
		src := i + wordShift
		if src >= bitboardWords {
			continue
		}
		w := b.words[src] >> bitShift
		if bitShift > 0 && src+1 < bitboardWords {
			w |= b.words[src+1] << (64 - bitShift)
		}
		r.words[i] = w
	}
	return r
}

// Coordinates returns the coordinates of every set bit in index order.
// The order is deterministic, which keeps AI search results reproducible.
func (b Bitboard) Coordinates() []Move {
	moves := make([]Move, 0, b.PopCount())
	for wi, w := range b.words {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			idx := wi*64 + bit
			moves = append(moves, Move{X: idx % b.size, Y: idx / b.size})
			w &= w - 1
		}
	}
	return moves
}

// String renders the bitboard as a grid of cells, a dot for a set bit and
// a space for a clear one. Intended for debugging and log output.
func (b Bitboard) String() string {
	var sb strings.Builder
	for y := 0; y < b.size; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte('|')
		for x := 0; x < b.size; x++ {
			if b.getBit(y*b.size + x) {
				sb.WriteString("·")
			} else {
				sb.WriteByte(' ')
			}
			sb.WriteByte('|')
		}
	}
	return sb.String()
}

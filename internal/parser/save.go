package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/othello/internal/board"
)

// ParseError reports a syntactic or semantic problem in an input file,
// with the one-based line number it was found on.
type ParseError struct {
	Line int
	Msg  string
}

// Error returns the message with its line number.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d", e.Msg, e.Line)
}

func errorf(line int, format string, args ...any) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// ParseSave reads a saved game: the side to move on the first line, the
// piece grid, then an optional numbered move history.
//
// When a history is present the game is replayed from the starting
// position, so the returned board supports undo; the grid then serves
// as a checksum and a mismatch is an error. Without a history the grid
// alone defines the position.
func ParseSave(r io.Reader) (*board.Board, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errorf(1, "empty save file")
	}

	current, err := parseColorSymbol(lines[0], 1)
	if err != nil {
		return nil, err
	}

	position, gridEnd, err := parseGrid(lines, 1, current)
	if err != nil {
		return nil, err
	}
	if gridEnd == len(lines) {
		return position, nil
	}

	replayed, err := replayHistory(position.Size(), lines, gridEnd)
	if err != nil {
		return nil, err
	}
	if replayed.Current() != position.Current() ||
		!replayed.Pieces(board.Black).Equal(position.Pieces(board.Black)) ||
		!replayed.Pieces(board.White).Equal(position.Pieces(board.White)) {
		return nil, errorf(gridEnd+1, "move history does not reproduce the saved position")
	}
	return replayed, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		// A # starts a comment that runs to the end of the line.
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimRight(line, " \t\r")
		if line == "" && len(lines) == 0 {
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read save data: %w", err)
	}
	return lines, nil
}

func parseColorSymbol(s string, line int) (board.Color, error) {
	switch strings.TrimSpace(s) {
	case board.Black.Symbol():
		return board.Black, nil
	case board.White.Symbol():
		return board.White, nil
	default:
		return board.Empty, errorf(line, "side to move must be %s or %s, got %q",
			board.Black.Symbol(), board.White.Symbol(), s)
	}
}

// parseGrid reads the piece grid starting at lines[start]. The board
// size is inferred from the first row's cell count. It returns the
// position and the index of the first line past the grid.
func parseGrid(lines []string, start int, current board.Color) (*board.Board, int, error) {
	if start >= len(lines) {
		return nil, 0, errorf(start+1, "missing piece grid")
	}
	size := len(strings.Fields(lines[start]))
	black, err := board.NewBitboard(size)
	if err != nil {
		return nil, 0, errorf(start+1, "unsupported board size %d (valid sizes: %v)", size, board.ValidSizes)
	}
	white, err := board.NewBitboard(size)
	if err != nil {
		return nil, 0, errorf(start+1, "unsupported board size %d (valid sizes: %v)", size, board.ValidSizes)
	}

	for y := 0; y < size; y++ {
		lineNo := start + y + 1
		if start+y >= len(lines) {
			return nil, 0, errorf(lineNo, "expected %d grid rows, got %d", size, y)
		}
		cells := strings.Fields(lines[start+y])
		if len(cells) != size {
			return nil, 0, errorf(lineNo, "expected %d cells, got %d", size, len(cells))
		}
		for x, cell := range cells {
			switch cell {
			case board.Black.Symbol():
				if err := black.Set(x, y, true); err != nil {
					return nil, 0, errorf(lineNo, "set cell %d: %v", x, err)
				}
			case board.White.Symbol():
				if err := white.Set(x, y, true); err != nil {
					return nil, 0, errorf(lineNo, "set cell %d: %v", x, err)
				}
			case board.Empty.Symbol():
			default:
				return nil, 0, errorf(lineNo, "invalid cell %q", cell)
			}
		}
	}

	position, err := board.NewPosition(size, black, white, current)
	if err != nil {
		return nil, 0, errorf(start+1, "invalid position: %v", err)
	}
	return position, start + size, nil
}

// replayHistory replays numbered history lines of the form
// "1. X d3 O c5" on a fresh board. Passes recorded as "-1-1" are
// skipped: the board records them on its own.
func replayHistory(size int, lines []string, start int) (*board.Board, error) {
	b, err := board.New(size)
	if err != nil {
		return nil, err
	}
	for i := start; i < len(lines); i++ {
		lineNo := i + 1
		fields := strings.Fields(lines[i])
		if len(fields) < 3 || !strings.HasSuffix(fields[0], ".") {
			return nil, errorf(lineNo, "malformed history entry %q", lines[i])
		}
		turn, err := strconv.Atoi(strings.TrimSuffix(fields[0], "."))
		if err != nil {
			return nil, errorf(lineNo, "malformed history entry %q", lines[i])
		}
		if turn != b.TurnNumber() {
			return nil, errorf(lineNo, "incorrect turn number %d, expected %d", turn, b.TurnNumber())
		}
		for j := 1; j+1 < len(fields); j += 2 {
			sym, notation := fields[j], fields[j+1]
			color, err := parseColorSymbol(sym, lineNo)
			if err != nil {
				return nil, err
			}
			move, err := board.ParseMove(notation, size)
			if err != nil {
				return nil, errorf(lineNo, "invalid move %q: %v", notation, err)
			}
			if move.IsPass() {
				continue
			}
			if b.Current() != color {
				return nil, errorf(lineNo, "move %s played out of turn", notation)
			}
			if err := b.Play(move); err != nil {
				var illegal *board.IllegalMoveError
				if errors.As(err, &illegal) {
					return nil, errorf(lineNo, "illegal move %s", notation)
				}
				return nil, errorf(lineNo, "replay move %s: %v", notation, err)
			}
		}
	}
	return b, nil
}

package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/othello/internal/board"
)

// ParseContest reads a contest position file: the board size on the
// first line, the side to move on the second, then the piece grid.
// Contest files carry no history, so the returned board cannot undo
// past the loaded position.
func ParseContest(r io.Reader) (*board.Board, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, errorf(1, "contest file needs a size line and a color line")
	}

	size, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, errorf(1, "invalid board size %q", lines[0])
	}

	current, err := parseColorSymbol(lines[1], 2)
	if err != nil {
		return nil, err
	}

	position, gridEnd, err := parseGrid(lines, 2, current)
	if err != nil {
		return nil, err
	}
	if position.Size() != size {
		return nil, errorf(3, "size line says %d but the grid is %dx%d", size, position.Size(), position.Size())
	}
	if gridEnd != len(lines) {
		return nil, errorf(gridEnd+1, "unexpected content after the grid")
	}
	return position, nil
}

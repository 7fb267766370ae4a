package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/nao1215/othello/internal/board"
)

// Renderer draws the board state for a terminal. Black pieces, white
// pieces, and legal-move hints each get their own color unless colors
// are disabled.
type Renderer struct {
	out       io.Writer
	showHints bool

	black *color.Color
	white *color.Color
	hint  *color.Color
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithNoColor disables ANSI colors, for terminals or pipes that cannot
// render them.
func WithNoColor() RendererOption {
	return func(r *Renderer) {
		r.black.DisableColor()
		r.white.DisableColor()
		r.hint.DisableColor()
	}
}

// WithHints marks the legal moves of the side to move with "*".
func WithHints() RendererOption {
	return func(r *Renderer) {
		r.showHints = true
	}
}

// NewRenderer creates a Renderer writing to out.
func NewRenderer(out io.Writer, opts ...RendererOption) *Renderer {
	r := &Renderer{
		out:   out,
		black: color.New(color.FgRed, color.Bold),
		white: color.New(color.FgCyan, color.Bold),
		hint:  color.New(color.FgYellow),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws the board grid with column letters and row numbers.
func (r *Renderer) Render(b *board.Board) error {
	var sb strings.Builder

	size := b.Size()
	sb.WriteString("   ")
	for x := 0; x < size; x++ {
		if x > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte('a' + x))
	}
	sb.WriteByte('\n')

	var hints board.Bitboard
	if r.showHints {
		hints = b.LegalMoves(b.Current())
	}

	for y := 0; y < size; y++ {
		sb.WriteString(fmt.Sprintf("%2d ", y+1))
		for x := 0; x < size; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			cell, err := b.Cell(x, y)
			if err != nil {
				return err
			}
			switch cell {
			case board.Black:
				sb.WriteString(r.black.Sprint("X"))
			case board.White:
				sb.WriteString(r.white.Sprint("O"))
			default:
				if r.showHints {
					if on, _ := hints.Get(x, y); on {
						sb.WriteString(r.hint.Sprint("*"))
						continue
					}
				}
				sb.WriteByte('_')
			}
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(r.out, sb.String())
	return err
}

// RenderStatus draws the turn number, the score, and whose move it is.
func (r *Renderer) RenderStatus(b *board.Board) error {
	black, white := b.Score()
	line := fmt.Sprintf("Turn %d  %s %d - %d %s  (%s to move)\n",
		b.TurnNumber(),
		r.black.Sprint("X"), black,
		white, r.white.Sprint("O"),
		b.Current(),
	)
	_, err := io.WriteString(r.out, line)
	return err
}

// RenderResult draws the final score line once the game is over.
func (r *Renderer) RenderResult(b *board.Board) error {
	black, white := b.Score()
	var verdict string
	switch b.Winner() {
	case board.Black:
		verdict = "black wins"
	case board.White:
		verdict = "white wins"
	default:
		verdict = "draw"
	}
	line := fmt.Sprintf("Game over: %s (%d-%d)\n", verdict, black, white)
	_, err := io.WriteString(r.out, line)
	return err
}

package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/othello/internal/board"
)

// Result describes a finished match.
type Result struct {
	// Winner is the winning color, or Empty on a draw.
	Winner board.Color

	// BlackScore and WhiteScore are the final piece counts.
	BlackScore int
	WhiteScore int

	// Moves is the number of plays made, passes included.
	Moves int

	// TimedOut names the side that ran out of blitz time, or Empty when
	// the game ended on the board.
	TimedOut board.Color

	// Elapsed is the wall-clock duration of the match.
	Elapsed time.Duration
}

// Controller runs a match between two players on one board.
type Controller struct {
	board  *board.Board
	black  Player
	white  Player
	clock  *Clock
	logger *slog.Logger
	onMove func(c board.Color, m board.Move, b *board.Board)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithClock attaches a blitz clock. A side whose budget runs out loses
// immediately.
func WithClock(clock *Clock) ControllerOption {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithLogger sets the logger used for per-move debug output.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithMoveCallback registers a function called after every applied
// move with the move and the resulting position. Front ends use it to
// redraw the board.
func WithMoveCallback(fn func(c board.Color, m board.Move, b *board.Board)) ControllerOption {
	return func(c *Controller) {
		c.onMove = fn
	}
}

// NewController returns a controller that plays black and white on the
// given board.
func NewController(b *board.Board, black, white Player, opts ...ControllerOption) *Controller {
	c := &Controller{
		board:  b,
		black:  black,
		white:  white,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run plays the match to completion and returns the result. The match
// ends when neither side can move, when a side's blitz budget expires,
// or when the context is cancelled (which returns the context error).
func (c *Controller) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	if c.clock != nil {
		c.clock.Start(c.board.Current())
	}

	for !c.board.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if c.clock != nil {
			if expired := c.clock.Expired(); expired != board.Empty {
				return c.timeoutResult(expired, start), nil
			}
		}

		side := c.board.Current()
		player := c.black
		if side == board.White {
			player = c.white
		}

		move, err := player.NextMove(ctx, c.board)
		if err != nil {
			return nil, fmt.Errorf("%s (%s): %w", player.Name(), side, err)
		}
		if move.IsPass() {
			break
		}
		if err := c.board.Play(move); err != nil {
			return nil, fmt.Errorf("%s (%s): %w", player.Name(), side, err)
		}
		c.logger.Debug("move applied",
			"player", player.Name(), "color", side.String(), "move", move.String())

		if c.clock != nil {
			if expired := c.clock.Expired(); expired != board.Empty {
				return c.timeoutResult(expired, start), nil
			}
			if c.board.Current() != side {
				c.clock.Switch()
			}
		}
		if c.onMove != nil {
			c.onMove(side, move, c.board)
		}
	}

	if c.clock != nil {
		c.clock.Pause()
	}
	black, white := c.board.Score()
	return &Result{
		Winner:     c.board.Winner(),
		BlackScore: black,
		WhiteScore: white,
		Moves:      len(c.board.History()),
		Elapsed:    time.Since(start),
	}, nil
}

// timeoutResult builds the result for a blitz loss on time. The
// opponent wins regardless of the piece counts.
func (c *Controller) timeoutResult(expired board.Color, start time.Time) *Result {
	if c.clock != nil {
		c.clock.Pause()
	}
	black, white := c.board.Score()
	return &Result{
		Winner:     expired.Opponent(),
		BlackScore: black,
		WhiteScore: white,
		Moves:      len(c.board.History()),
		TimedOut:   expired,
		Elapsed:    time.Since(start),
	}
}

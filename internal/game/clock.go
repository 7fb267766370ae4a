package game

import (
	"fmt"
	"time"

	"github.com/nao1215/othello/internal/board"
)

// Clock is a two-sided countdown clock for blitz games. Each side gets
// the same initial budget; the running side's budget drains until
// Switch hands the clock to the opponent. The clock never mutates
// state on reads, so Remaining and Expired can be polled freely.
type Clock struct {
	limit   time.Duration
	used    map[board.Color]time.Duration
	running board.Color
	since   time.Time
	now     func() time.Time
}

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithNow replaces the clock's time source. Tests use it to drive the
// clock deterministically.
func WithNow(now func() time.Time) ClockOption {
	return func(c *Clock) {
		c.now = now
	}
}

// NewClock returns a stopped clock giving each side the same budget.
func NewClock(limit time.Duration, opts ...ClockOption) *Clock {
	c := &Clock{
		limit: limit,
		used: map[board.Color]time.Duration{
			board.Black: 0,
			board.White: 0,
		},
		running: board.Empty,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins draining the given side's budget.
func (c *Clock) Start(side board.Color) {
	c.running = side
	c.since = c.now()
}

// Pause stops the clock, charging the running side for the elapsed
// time. Pausing a stopped clock is a no-op.
func (c *Clock) Pause() {
	if c.running == board.Empty {
		return
	}
	c.used[c.running] += c.now().Sub(c.since)
	c.running = board.Empty
}

// Switch charges the running side and hands the clock to its opponent.
func (c *Clock) Switch() {
	if c.running == board.Empty {
		return
	}
	next := c.running.Opponent()
	c.Pause()
	c.Start(next)
}

// Remaining returns the given side's unused budget. It never returns a
// negative duration.
func (c *Clock) Remaining(side board.Color) time.Duration {
	used := c.used[side]
	if c.running == side {
		used += c.now().Sub(c.since)
	}
	if used >= c.limit {
		return 0
	}
	return c.limit - used
}

// Expired returns the first side whose budget ran out, or Empty when
// both sides still have time.
func (c *Clock) Expired() board.Color {
	if c.Remaining(board.Black) == 0 {
		return board.Black
	}
	if c.Remaining(board.White) == 0 {
		return board.White
	}
	return board.Empty
}

// String renders both remaining budgets in MM:SS form.
func (c *Clock) String() string {
	return fmt.Sprintf("Black Time: %s\nWhite Time: %s",
		formatClock(c.Remaining(board.Black)), formatClock(c.Remaining(board.White)))
}

func formatClock(d time.Duration) string {
	seconds := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

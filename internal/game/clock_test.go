package game

import (
	"testing"
	"time"

	"github.com/nao1215/othello/internal/board"
)

// fakeTime drives a Clock deterministically.
type fakeTime struct {
	current time.Time
}

func (f *fakeTime) now() time.Time {
	return f.current
}

func (f *fakeTime) advance(d time.Duration) {
	f.current = f.current.Add(d)
}

func TestClockCountsRunningSideOnly(t *testing.T) {
	t.Parallel()

	ft := &fakeTime{current: time.Unix(0, 0)}
	c := NewClock(time.Minute, WithNow(ft.now))

	c.Start(board.Black)
	ft.advance(10 * time.Second)

	if got := c.Remaining(board.Black); got != 50*time.Second {
		t.Errorf("expected 50s for black, got %s", got)
	}
	if got := c.Remaining(board.White); got != time.Minute {
		t.Errorf("expected full budget for white, got %s", got)
	}
	// Reads must not consume time.
	if got := c.Remaining(board.Black); got != 50*time.Second {
		t.Errorf("second read changed the budget: %s", got)
	}
}

func TestClockSwitch(t *testing.T) {
	t.Parallel()

	ft := &fakeTime{current: time.Unix(0, 0)}
	c := NewClock(time.Minute, WithNow(ft.now))

	c.Start(board.Black)
	ft.advance(10 * time.Second)
	c.Switch()
	ft.advance(30 * time.Second)

	if got := c.Remaining(board.Black); got != 50*time.Second {
		t.Errorf("expected black frozen at 50s, got %s", got)
	}
	if got := c.Remaining(board.White); got != 30*time.Second {
		t.Errorf("expected 30s for white, got %s", got)
	}
}

func TestClockPause(t *testing.T) {
	t.Parallel()

	ft := &fakeTime{current: time.Unix(0, 0)}
	c := NewClock(time.Minute, WithNow(ft.now))

	c.Start(board.White)
	ft.advance(5 * time.Second)
	c.Pause()
	ft.advance(time.Hour)

	if got := c.Remaining(board.White); got != 55*time.Second {
		t.Errorf("expected paused clock to stay at 55s, got %s", got)
	}
	c.Pause() // no-op on a stopped clock
	if got := c.Remaining(board.White); got != 55*time.Second {
		t.Errorf("expected double pause to be harmless, got %s", got)
	}
}

func TestClockExpired(t *testing.T) {
	t.Parallel()

	ft := &fakeTime{current: time.Unix(0, 0)}
	c := NewClock(time.Minute, WithNow(ft.now))

	if got := c.Expired(); got != board.Empty {
		t.Errorf("expected no expiry on a fresh clock, got %s", got)
	}
	c.Start(board.White)
	ft.advance(61 * time.Second)
	if got := c.Expired(); got != board.White {
		t.Errorf("expected white to flag, got %s", got)
	}
	if got := c.Remaining(board.White); got != 0 {
		t.Errorf("expected zero remaining, got %s", got)
	}
}

func TestClockString(t *testing.T) {
	t.Parallel()

	ft := &fakeTime{current: time.Unix(0, 0)}
	c := NewClock(30*time.Minute, WithNow(ft.now))

	c.Start(board.Black)
	ft.advance(90 * time.Second)
	c.Pause()

	want := "Black Time: 28:30\nWhite Time: 30:00"
	if got := c.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

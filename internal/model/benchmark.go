package model

import (
	"fmt"
	"time"
)

// PlayerSpec describes one benchmark participant. Random players leave
// the engine fields empty.
type PlayerSpec struct {
	// Kind is "ai" or "random".
	Kind string `json:"kind"`

	// Depth is the search depth in plies for AI players.
	Depth int `json:"depth,omitempty"`

	// Algorithm is "minimax" or "ab" for AI players.
	Algorithm string `json:"algorithm,omitempty"`

	// Heuristic names the position evaluation for AI players.
	Heuristic string `json:"heuristic,omitempty"`
}

// IsAI reports whether the spec describes a search engine.
func (s PlayerSpec) IsAI() bool {
	return s.Kind == "ai"
}

// String returns a compact identifier such as "ab/all_in_one@3" or
// "random".
func (s PlayerSpec) String() string {
	if !s.IsAI() {
		return s.Kind
	}
	return fmt.Sprintf("%s/%s@%d", s.Algorithm, s.Heuristic, s.Depth)
}

// MatchConfig is one benchmark pairing: two players on one board size
// for a number of games.
type MatchConfig struct {
	// BoardSize is the board edge length.
	BoardSize int `json:"board_size"`

	// Games is the number of games to play for this pairing.
	Games int `json:"games"`

	// Black and White are the participants.
	Black PlayerSpec `json:"black"`
	White PlayerSpec `json:"white"`
}

// Label returns a short human-readable description of the pairing.
func (c MatchConfig) Label() string {
	return fmt.Sprintf("%dx%d %s vs %s", c.BoardSize, c.BoardSize, c.Black, c.White)
}

// MatchResult aggregates the games of one pairing.
type MatchResult struct {
	// Config is the pairing that produced this result.
	Config MatchConfig `json:"config"`

	// BlackWins, WhiteWins, and Draws partition the played games.
	BlackWins int `json:"black_wins"`
	WhiteWins int `json:"white_wins"`
	Draws     int `json:"draws"`

	// AvgMoves is the mean number of plays per game.
	AvgMoves float64 `json:"avg_moves"`

	// AvgMoveTime is the mean wall-clock time per AI search.
	AvgMoveTime time.Duration `json:"avg_move_time"`

	// AvgNodes is the mean number of positions evaluated per AI search.
	AvgNodes float64 `json:"avg_nodes"`
}

// Games returns the total number of games played for the pairing.
func (r MatchResult) Games() int {
	return r.BlackWins + r.WhiteWins + r.Draws
}

// BlackWinRate returns the fraction of games black won, in [0, 1].
func (r MatchResult) BlackWinRate() float64 {
	games := r.Games()
	if games == 0 {
		return 0
	}
	return float64(r.BlackWins) / float64(games)
}

// BenchmarkReport is a full benchmark run: every pairing result plus
// run metadata. This is what the report package renders and the
// database persists.
type BenchmarkReport struct {
	// ID is the database row ID, zero until saved.
	ID int64 `json:"id"`

	// RunAt is when the benchmark started.
	RunAt time.Time `json:"run_at"`

	// Elapsed is the wall-clock duration of the whole run.
	Elapsed time.Duration `json:"elapsed"`

	// Results holds one entry per pairing, in the order they were
	// configured.
	Results []MatchResult `json:"results"`
}

// TotalGames returns the number of games played across all pairings.
func (b *BenchmarkReport) TotalGames() int {
	total := 0
	for _, r := range b.Results {
		total += r.Games()
	}
	return total
}

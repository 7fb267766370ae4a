package ai

import (
	"errors"
	"fmt"

	"github.com/nao1215/othello/internal/board"
)

// ErrUnknownHeuristic is returned when a heuristic name cannot be
// resolved.
var ErrUnknownHeuristic = errors.New("unknown heuristic")

// Heuristic scores a position from the point of view of one player.
// Positive values favor the player, negative values the opponent. The
// individual heuristics are scaled to [-100, 100]; the weighted blend
// exceeds that range by its weight sum.
//
// Design decision: heuristics carry their name so game records and
// benchmark reports can identify them. A bare function type would lose
// the name once stored in an Engine.
type Heuristic struct {
	// Name is the identifier used on the command line and in reports.
	Name string

	// Eval scores the board for the given player.
	Eval func(b *board.Board, player board.Color) int
}

// The available heuristics.
var (
	// CoinParity scores the relative piece count. Cheap but shortsighted:
	// piece count swings wildly in the midgame.
	CoinParity = Heuristic{Name: "coin_parity", Eval: coinParity}

	// CornersCaptured scores corner ownership. Corners can never be
	// flipped, so they anchor stable territory.
	CornersCaptured = Heuristic{Name: "corners_captured", Eval: cornersCaptured}

	// Mobility scores the relative number of legal moves. Starving the
	// opponent of moves forces weak placements.
	Mobility = Heuristic{Name: "mobility", Eval: mobility}

	// AllInOne blends the other heuristics with fixed weights:
	// 10*corners + 4*mobility + 1*coins.
	AllInOne = Heuristic{Name: "all_in_one", Eval: allInOne}
)

// Heuristics lists every available heuristic in presentation order.
var Heuristics = []Heuristic{CoinParity, CornersCaptured, Mobility, AllInOne}

// ParseHeuristic resolves a heuristic by name.
func ParseHeuristic(name string) (Heuristic, error) {
	for _, h := range Heuristics {
		if h.Name == name {
			return h, nil
		}
	}
	return Heuristic{}, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
}

// HeuristicNames returns the names accepted by ParseHeuristic.
func HeuristicNames() []string {
	names := make([]string, len(Heuristics))
	for i, h := range Heuristics {
		names[i] = h.Name
	}
	return names
}

// coinParity returns 100 * (own - opp) / (own + opp) over piece counts.
// The denominator is never zero: a board always carries the four
// starting pieces.
func coinParity(b *board.Board, player board.Color) int {
	black, white := b.Score()
	own, opp := black, white
	if player == board.White {
		own, opp = white, black
	}
	return 100 * (own - opp) / (own + opp)
}

// cornersCaptured returns 100 * (own - opp) / (own + opp) over the four
// corners, or 0 while no corner is taken.
func cornersCaptured(b *board.Board, player board.Color) int {
	last := b.Size() - 1
	corners := [4]board.Move{{X: 0, Y: 0}, {X: last, Y: 0}, {X: 0, Y: last}, {X: last, Y: last}}

	own, opp := 0, 0
	for _, c := range corners {
		cell, err := b.Cell(c.X, c.Y)
		if err != nil {
			continue
		}
		switch cell {
		case player:
			own++
		case player.Opponent():
			opp++
		}
	}
	if own+opp == 0 {
		return 0
	}
	return 100 * (own - opp) / (own + opp)
}

// mobility returns 100 * (own - opp) / (own + opp) over legal move
// counts, or 0 when neither side can move.
func mobility(b *board.Board, player board.Color) int {
	own := b.LegalMoves(player).PopCount()
	opp := b.LegalMoves(player.Opponent()).PopCount()
	if own+opp == 0 {
		return 0
	}
	return 100 * (own - opp) / (own + opp)
}

// Blend weights for allInOne. Corners dominate because they are the
// only permanently stable squares a shallow search can recognize.
const (
	weightCorners  = 10
	weightMobility = 4
	weightCoins    = 1
)

func allInOne(b *board.Board, player board.Color) int {
	return weightCorners*cornersCaptured(b, player) +
		weightMobility*mobility(b, player) +
		weightCoins*coinParity(b, player)
}

package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/nao1215/othello/internal/board"
)

// ErrUnknownAlgorithm is returned when an algorithm name cannot be
// resolved.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithm selects the tree-search strategy.
type Algorithm string

// The available algorithms. Alpha-beta visits a fraction of the nodes
// minimax does while choosing the same move, so it is the usual pick.
const (
	Minimax   Algorithm = "minimax"
	AlphaBeta Algorithm = "ab"
)

// ParseAlgorithm resolves an algorithm by name. "alphabeta" is accepted
// as an alias for "ab".
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case string(Minimax):
		return Minimax, nil
	case string(AlphaBeta), "alphabeta":
		return AlphaBeta, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// Stats reports what a search cost.
type Stats struct {
	// Nodes is the number of positions evaluated, counting interior
	// nodes.
	Nodes int

	// Elapsed is the wall-clock search time.
	Elapsed time.Duration
}

// Engine picks moves by fixed-depth tree search.
type Engine struct {
	// Depth is the number of plies to look ahead. Must be at least 1.
	Depth int

	// Algorithm selects minimax or alpha-beta search.
	Algorithm Algorithm

	// Heuristic scores leaf positions.
	Heuristic Heuristic
}

// NewEngine returns an engine with the given look-ahead depth using
// alpha-beta search and the blended heuristic.
func NewEngine(depth int) *Engine {
	return &Engine{Depth: depth, Algorithm: AlphaBeta, Heuristic: AllInOne}
}

// checkInterval is how many nodes the search visits between context
// checks. Checking on every node measurably slows the hot loop.
const checkInterval = 1024

// search carries the mutable state of one BestMove call.
type search struct {
	board     *board.Board
	player    board.Color
	heuristic Heuristic
	ctx       context.Context
	nodes     int
	stopped   bool
}

// BestMove returns the strongest move for the side to move, searching
// Depth plies ahead. The board is cloned; the caller's board is never
// mutated. When the side to move has no legal move, Pass is returned.
//
// The context bounds the search: on cancellation or deadline the best
// move found so far is returned with a nil error. Root moves are
// searched in bit-index order, so even an interrupted search returns a
// fully evaluated candidate.
func (e *Engine) BestMove(ctx context.Context, b *board.Board) (board.Move, Stats, error) {
	if e.Depth < 1 {
		return board.Pass, Stats{}, fmt.Errorf("search depth must be at least 1, got %d", e.Depth)
	}
	if e.Heuristic.Eval == nil {
		return board.Pass, Stats{}, errors.New("engine has no heuristic")
	}

	start := time.Now()
	player := b.Current()
	s := &search{
		board:     b.Clone(),
		player:    player,
		heuristic: e.Heuristic,
		ctx:       ctx,
	}

	moves := s.board.LegalMoves(player).Coordinates()
	if len(moves) == 0 {
		return board.Pass, Stats{Elapsed: time.Since(start)}, nil
	}

	best := moves[0]
	bestScore := math.MinInt
	for _, m := range moves {
		if err := s.board.Play(m); err != nil {
			return board.Pass, Stats{}, err
		}
		var score int
		if e.Algorithm == Minimax {
			score = s.minimax(e.Depth - 1)
		} else {
			score = s.alphabeta(e.Depth-1, math.MinInt, math.MaxInt)
		}
		if err := s.board.Undo(); err != nil {
			return board.Pass, Stats{}, err
		}
		if s.stopped {
			break
		}
		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	return best, Stats{Nodes: s.nodes, Elapsed: time.Since(start)}, nil
}

// visit counts a node and periodically polls the context. It reports
// whether the search should stop.
func (s *search) visit() bool {
	s.nodes++
	if s.nodes%checkInterval == 0 && s.ctx.Err() != nil {
		s.stopped = true
	}
	return s.stopped
}

// maximizing reports whether the side to move at the current node is
// the searching player.
func (s *search) maximizing() bool {
	return s.board.Current() == s.player
}

func (s *search) minimax(depth int) int {
	if s.visit() || depth == 0 || s.board.IsGameOver() {
		return s.heuristic.Eval(s.board, s.player)
	}

	moves := s.board.LegalMoves(s.board.Current()).Coordinates()
	max := s.maximizing()
	best := math.MaxInt
	if max {
		best = math.MinInt
	}
	for _, m := range moves {
		if err := s.board.Play(m); err != nil {
			continue
		}
		score := s.minimax(depth - 1)
		_ = s.board.Undo()
		if max && score > best {
			best = score
		}
		if !max && score < best {
			best = score
		}
		if s.stopped {
			break
		}
	}
	return best
}

func (s *search) alphabeta(depth, alpha, beta int) int {
	if s.visit() || depth == 0 || s.board.IsGameOver() {
		return s.heuristic.Eval(s.board, s.player)
	}

	moves := s.board.LegalMoves(s.board.Current()).Coordinates()
	if s.maximizing() {
		best := math.MinInt
		for _, m := range moves {
			if err := s.board.Play(m); err != nil {
				continue
			}
			score := s.alphabeta(depth-1, alpha, beta)
			_ = s.board.Undo()
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha || s.stopped {
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for _, m := range moves {
		if err := s.board.Play(m); err != nil {
			continue
		}
		score := s.alphabeta(depth-1, alpha, beta)
		_ = s.board.Undo()
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if beta <= alpha || s.stopped {
			break
		}
	}
	return best
}

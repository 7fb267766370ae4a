package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/nao1215/othello/internal/ai"
	"github.com/nao1215/othello/internal/board"
)

// Player produces moves for one side. Implementations must return a
// move that is legal on the given board, or Pass when the side to move
// has no legal move.
type Player interface {
	// NextMove returns the player's move for the current position. The
	// board is read-only from the player's point of view; the
	// controller applies the move.
	NextMove(ctx context.Context, b *board.Board) (board.Move, error)

	// Name identifies the player in logs, records, and reports.
	Name() string
}

// AIPlayer picks moves with a search engine. The zero value is not
// usable; construct it with an engine.
type AIPlayer struct {
	// Engine performs the move search.
	Engine *ai.Engine

	// MoveTimeout bounds each search. Zero means no per-move limit.
	MoveTimeout time.Duration

	// OnSearch, when set, receives the statistics of every completed
	// search. The benchmark runner aggregates node counts this way.
	OnSearch func(ai.Stats)
}

// NewAIPlayer returns a player using the given engine with no per-move
// time limit.
func NewAIPlayer(engine *ai.Engine) *AIPlayer {
	return &AIPlayer{Engine: engine}
}

// NextMove runs the engine's search, bounded by MoveTimeout when one is
// set. On timeout the engine's best move so far is played.
func (p *AIPlayer) NextMove(ctx context.Context, b *board.Board) (board.Move, error) {
	if p.MoveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.MoveTimeout)
		defer cancel()
	}
	move, stats, err := p.Engine.BestMove(ctx, b)
	if err != nil {
		return board.Pass, err
	}
	if p.OnSearch != nil {
		p.OnSearch(stats)
	}
	return move, nil
}

// Name returns an identifier of the form "ab/all_in_one@3".
func (p *AIPlayer) Name() string {
	return fmt.Sprintf("%s/%s@%d", p.Engine.Algorithm, p.Engine.Heuristic.Name, p.Engine.Depth)
}

// RandomPlayer plays uniformly random legal moves.
type RandomPlayer struct {
	rng *rand.Rand
}

// NewRandomPlayer returns a random player seeded with the given value.
func NewRandomPlayer(seed int64) *RandomPlayer {
	return &RandomPlayer{rng: rand.New(rand.NewSource(seed))}
}

// NextMove returns a random legal move, or Pass when there is none.
func (p *RandomPlayer) NextMove(_ context.Context, b *board.Board) (board.Move, error) {
	return ai.RandomMove(p.rng, b), nil
}

// Name returns "random".
func (p *RandomPlayer) Name() string {
	return "random"
}

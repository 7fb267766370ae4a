package ai

import (
	"math/rand"

	"github.com/nao1215/othello/internal/board"
)

// RandomMove returns a uniformly random legal move for the side to
// move, or Pass when there is none. Benchmarks use it as the weakest
// baseline opponent.
func RandomMove(rng *rand.Rand, b *board.Board) board.Move {
	moves := b.LegalMoves(b.Current()).Coordinates()
	if len(moves) == 0 {
		return board.Pass
	}
	return moves[rng.Intn(len(moves))]
}

// Package board implements the Othello game state on top of bitboards.
// It provides the Bitboard primitive (a bit set over board squares with
// directional shifts), the Board type that enforces the rules of the game
// (legal move generation, captures, automatic passes, undo), and the Move
// type with its algebraic notation.
package board

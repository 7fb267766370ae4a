// Package game drives a full match between two players: move
// scheduling, the blitz chess clock, and result reporting. The board
// package enforces the rules; this package only decides whose turn it
// is and asks the player for a move.
package game

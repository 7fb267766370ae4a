// Package ai implements move selection for computer players: minimax and
// alpha-beta tree search over the board package, a set of position
// heuristics, and a random mover used as a baseline in benchmarks.
package ai

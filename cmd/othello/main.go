// Package main provides the entry point for the othello CLI.
//
// Othello is a terminal Othello (Reversi) game with human and AI
// players, a blitz clock, and an engine benchmark harness.
//
// Usage:
//
//	othello play
//	othello play --mode pvai --depth 4
//	othello benchmark --sizes 6,8 --depths 1,2,3
//
// See --help for all available options.
package main

// main is the entry point for othello.
func main() {
	Execute()
}

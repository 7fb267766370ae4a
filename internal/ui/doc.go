// Package ui renders the board and game status for the terminal,
// with optional ANSI colors and legal-move hints.
package ui

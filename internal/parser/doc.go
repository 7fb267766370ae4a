// Package parser reads the game's text formats: saved games, contest
// position files, and the commands typed during an interactive match.
package parser

package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/othello/internal/board"
)

// ErrUnknownCommand is returned when interactive input is neither a
// known command nor a move in algebraic notation.
var ErrUnknownCommand = errors.New("unknown command")

// CommandKind identifies what the player asked for.
type CommandKind int

// The interactive commands.
const (
	// CommandMove plays the square carried in Command.Move.
	CommandMove CommandKind = iota

	// CommandHelp prints the command reference ("?").
	CommandHelp

	// CommandRules prints the game rules ("r").
	CommandRules

	// CommandSaveQuit saves the position and ends the session ("s").
	CommandSaveQuit

	// CommandSaveHistory saves the position with its full move history
	// and ends the session ("sh").
	CommandSaveHistory

	// CommandForfeit concedes the game ("ff").
	CommandForfeit

	// CommandRestart starts the game over ("restart").
	CommandRestart

	// CommandQuit leaves without saving ("q" or "quit").
	CommandQuit
)

// Command is one parsed line of interactive input.
type Command struct {
	Kind CommandKind
	Move board.Move
}

// CommandParser turns interactive input lines into commands for a
// board of a fixed size.
type CommandParser struct {
	size int
}

// NewCommandParser returns a parser for boards of the given size.
func NewCommandParser(size int) *CommandParser {
	return &CommandParser{size: size}
}

// Parse interprets one input line. Anything that is not a keyword is
// tried as a move in algebraic notation.
func (p *CommandParser) Parse(input string) (Command, error) {
	trimmed := strings.TrimSpace(input)
	switch strings.ToLower(trimmed) {
	case "?":
		return Command{Kind: CommandHelp}, nil
	case "r":
		return Command{Kind: CommandRules}, nil
	case "s":
		return Command{Kind: CommandSaveQuit}, nil
	case "sh":
		return Command{Kind: CommandSaveHistory}, nil
	case "ff":
		return Command{Kind: CommandForfeit}, nil
	case "restart":
		return Command{Kind: CommandRestart}, nil
	case "q", "quit":
		return Command{Kind: CommandQuit}, nil
	}
	move, err := board.ParseMove(trimmed, p.size)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q (type ? for help)", ErrUnknownCommand, trimmed)
	}
	return Command{Kind: CommandMove, Move: move}, nil
}

// HelpText is printed for the "?" command.
const HelpText = `Commands:
  <move>   play a square, e.g. d3
  ?        show this help
  r        show the rules
  s        save the game and quit
  sh       save the game with its move history and quit
  ff       forfeit the game
  restart  restart the game
  q, quit  quit without saving`

// RulesText is printed for the "r" command.
const RulesText = `Othello rules:
  Black (X) moves first. A move must be placed on an empty square so
  that it brackets one or more of the opponent's pieces in a straight
  line; the bracketed pieces flip to the mover's color. A player with
  no legal move passes automatically. The game ends when neither
  player can move, and the side with more pieces wins.`

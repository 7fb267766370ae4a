package parser

import (
	"errors"
	"testing"

	"github.com/nao1215/othello/internal/board"
)

func TestCommandParserParse(t *testing.T) {
	t.Parallel()

	p := NewCommandParser(8)
	tests := []struct {
		name  string
		input string
		want  Command
	}{
		{name: "help", input: "?", want: Command{Kind: CommandHelp}},
		{name: "rules", input: "r", want: Command{Kind: CommandRules}},
		{name: "save", input: "s", want: Command{Kind: CommandSaveQuit}},
		{name: "save with history", input: "sh", want: Command{Kind: CommandSaveHistory}},
		{name: "forfeit", input: "ff", want: Command{Kind: CommandForfeit}},
		{name: "restart", input: "restart", want: Command{Kind: CommandRestart}},
		{name: "quit short", input: "q", want: Command{Kind: CommandQuit}},
		{name: "quit long", input: "quit", want: Command{Kind: CommandQuit}},
		{name: "uppercase keyword", input: "FF", want: Command{Kind: CommandForfeit}},
		{name: "padded keyword", input: "  sh  ", want: Command{Kind: CommandSaveHistory}},
		{name: "move", input: "d3", want: Command{Kind: CommandMove, Move: board.Move{X: 3, Y: 2}}},
		{name: "padded move", input: " h8 ", want: Command{Kind: CommandMove, Move: board.Move{X: 7, Y: 7}}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := p.Parse(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q): expected %+v, got %+v", tt.input, tt.want, got)
			}
		})
	}
}

func TestCommandParserUnknown(t *testing.T) {
	t.Parallel()

	p := NewCommandParser(8)
	for _, input := range []string{"", "xyzzy", "i9", "a0", "help"} {
		if _, err := p.Parse(input); !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("Parse(%q): expected ErrUnknownCommand, got %v", input, err)
		}
	}
}

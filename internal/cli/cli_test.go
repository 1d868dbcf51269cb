package cli

import (
	"bytes"
	"strings"
	"testing"

	"chesstools/internal/board"
	"chesstools/internal/core"
	"chesstools/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want CommandType
		args []string
	}{
		{"quit", CmdQuit, nil},
		{"  EXIT ", CmdQuit, nil},
		{"help", CmdHelp, nil},
		{"?", CmdHelp, nil},
		{"undo", CmdUndo, []string{}},
		{"undo 3", CmdUndo, []string{"3"}},
		{"history", CmdHistory, nil},
		{"fen", CmdFEN, nil},
		{"color brown", CmdColor, []string{"brown"}},
		{"resume 8/8/8/8/8/8/8/8 w - - 0 1", CmdResume, []string{"8/8/8/8/8/8/8/8", "w", "-", "-", "0", "1"}},
		{"e2 e4", CmdMove, nil},
		{"quit now", CmdMove, nil},
		{"", CmdMove, nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd := ParseCommand(tt.line)
			assert.Equal(t, tt.want, cmd.Type)
			if tt.args != nil {
				assert.Equal(t, tt.args, cmd.Args)
			}
		})
	}

	assert.Equal(t, "e2 e4", ParseCommand("  e2 e4  ").Raw)
}

func TestGetCommandPromptAndEOF(t *testing.T) {
	out := &bytes.Buffer{}
	c := New(NewScannerReader(strings.NewReader("e2e4\n")), out)

	cmd, err := c.GetCommand("White to move (move 1): ")
	require.NoError(t, err)
	assert.Equal(t, CmdMove, cmd.Type)
	assert.Equal(t, "White to move (move 1): ", out.String())

	cmd, err = c.GetCommand("Black to move (move 1): ")
	require.NoError(t, err)
	assert.Equal(t, CmdQuit, cmd.Type)
}

type promptingReader struct {
	prompt string
}

func (p *promptingReader) SetPrompt(prompt string) { p.prompt = prompt }
func (p *promptingReader) Readline() (string, error) {
	return "fen", nil
}

func TestGetCommandDelegatesPrompt(t *testing.T) {
	out := &bytes.Buffer{}
	r := &promptingReader{}
	c := New(r, out)

	_, err := c.GetCommand("White to move (move 4): ")
	require.NoError(t, err)
	assert.Equal(t, "White to move (move 4): ", r.prompt)
	assert.Empty(t, out.String())
}

func TestDisplayBoard(t *testing.T) {
	out := &bytes.Buffer{}
	c := New(NewScannerReader(strings.NewReader("")), out)

	c.DisplayBoard(board.New())
	assert.Equal(t, "\n"+board.New().ToASCII()+"\n\n", out.String())

	require.NoError(t, c.SetTheme(ThemeGreen))
	out.Reset()
	c.DisplayBoard(board.New())
	assert.Contains(t, out.String(), "\033[48;5;157m")
	assert.Contains(t, out.String(), "8  ")

	assert.Error(t, c.SetTheme("pink"))
}

func TestShowOutcome(t *testing.T) {
	out := &bytes.Buffer{}
	c := New(NewScannerReader(strings.NewReader("")), out)

	c.ShowOutcome(game.Outcome{Player: core.ColorBlack, Captured: 'R', Promoted: true})
	assert.Equal(t, "Black pawn promoted to Queen!\nCaptured R!\n", out.String())

	out.Reset()
	c.ShowOutcome(game.Outcome{Player: core.ColorWhite, Captured: board.Empty})
	assert.Empty(t, out.String())
}

func TestShowGameHistory(t *testing.T) {
	out := &bytes.Buffer{}
	c := New(NewScannerReader(strings.NewReader("")), out)

	c.ShowGameHistory("start", []string{"e2e4", "e7e5", "g1f3"}, "now")
	assert.Equal(t, "Starting FEN: start\n1. e2e4 | e7e5\n2. g1f3 | ...\nCurrent FEN: now\n", out.String())
}

package transport

import (
	"chesstools/internal/board"
	"chesstools/internal/cli"
	"chesstools/internal/game"
)

// View abstracts console input and output for the game loop
type View interface {
	GetCommand(prompt string) (*cli.Command, error)
	SetTheme(theme cli.ColorTheme) error

	DisplayBoard(b board.Board)
	ShowMessage(msg string)
	ShowError(err error)
	ShowHelp()
	ShowGoodbye()
	ShowGameHistory(initialFEN string, moves []string, currentFEN string)

	ShowOutcome(o game.Outcome)
	ShowUnparsable()
	ShowInvalidSquare()
	ShowInvalidMove(reason string)
}

var _ View = (*cli.CLI)(nil)

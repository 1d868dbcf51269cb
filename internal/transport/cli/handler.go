package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chesstools/internal/board"
	"chesstools/internal/cli"
	"chesstools/internal/game"
	"chesstools/internal/service"
	"chesstools/internal/transport"
)

type CLIHandler struct {
	svc    *service.Service
	view   transport.View
	gameID string
}

func New(svc *service.Service, view transport.View) *CLIHandler {
	return &CLIHandler{
		svc:  svc,
		view: view,
	}
}

// Start registers the console game, from fen when it is not empty
func (h *CLIHandler) Start(fen string) error {
	id := h.svc.GenerateGameID()
	if err := h.svc.NewGame(id, fen); err != nil {
		return fmt.Errorf("could not start the game: %w", err)
	}
	h.gameID = id
	return nil
}

// Main game loop - board, prompt, command
func (h *CLIHandler) Run() error {
	if h.gameID == "" {
		if err := h.Start(""); err != nil {
			return err
		}
	}

	for {
		g, err := h.svc.GetGame(h.gameID)
		if err != nil {
			return err
		}
		h.view.DisplayBoard(g.State.Board)

		cmd, err := h.view.GetCommand(prompt(g.State))
		if err != nil {
			return err
		}

		if !h.ProcessCommand(cmd) {
			return nil
		}
	}
}

func prompt(s game.State) string {
	return fmt.Sprintf("%s to move (move %d): ", s.Turn, s.MoveNumber)
}

// Handles user commands - returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		h.view.ShowGoodbye()
		return false

	case cli.CmdHelp:
		if err := h.svc.Reset(h.gameID); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowHelp()

	case cli.CmdMove:
		h.handleMove(cmd.Raw)

	case cli.CmdUndo:
		count := 1
		if len(cmd.Args) > 0 {
			n, err := strconv.Atoi(cmd.Args[0])
			if err != nil || n < 1 {
				h.view.ShowMessage("Invalid undo count. Usage: undo [count]")
				return true
			}
			count = n
		}

		if err := h.svc.Undo(h.gameID, count); err != nil {
			h.view.ShowError(err)
		} else if count == 1 {
			h.view.ShowMessage("Move undone")
		} else {
			h.view.ShowMessage(fmt.Sprintf("%d moves undone", count))
		}

	case cli.CmdResume:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: resume <FEN string>")
			return true
		}
		h.handleResume(strings.Join(cmd.Args, " "))

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}
		theme := cli.ColorTheme(strings.ToLower(cmd.Args[0]))
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
		} else {
			h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		}

	case cli.CmdHistory:
		g, err := h.svc.GetGame(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowGameHistory(g.InitialFEN, g.Moves, g.FEN())

	case cli.CmdFEN:
		g, err := h.svc.GetGame(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(g.FEN())
	}

	return true
}

// handleMove maps each failure class to its console message
func (h *CLIHandler) handleMove(text string) {
	outcome, err := h.svc.Play(h.gameID, text)

	var moveErr *board.MoveError
	switch {
	case err == nil:
		h.view.ShowOutcome(outcome)
	case errors.Is(err, game.ErrUnparsable):
		h.view.ShowUnparsable()
	case errors.Is(err, board.ErrInvalidSquare):
		h.view.ShowInvalidSquare()
	case errors.As(err, &moveErr):
		h.view.ShowInvalidMove(moveErr.Reason)
	default:
		h.view.ShowError(err)
	}
}

// handleResume switches the console to a new game decoded from fen.
// The previous game stays registered so its stored history is kept.
func (h *CLIHandler) handleResume(fen string) {
	if err := h.Start(fen); err != nil {
		h.view.ShowError(err)
		return
	}
	h.view.ShowMessage("Position loaded.")
}

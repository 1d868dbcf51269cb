package http

import (
	"errors"
	"strconv"

	"chesstools/internal/board"
	"chesstools/internal/core"
	"chesstools/internal/game"
	"chesstools/internal/primeday"
	"chesstools/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateGame starts a game from the standard position or the given FEN
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, _ := c.Locals("validatedBody").(*core.CreateGameRequest)
	if req == nil {
		return validationBypass(c)
	}

	gameID := h.svc.GenerateGameID()
	if err := h.svc.NewGame(gameID, req.FEN); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "failed to create game",
			Code:    core.ErrInvalidFEN,
			Details: err.Error(),
		})
	}

	gi, err := h.svc.GetGame(gameID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(buildGameResponse(gi))
}

// GetGame returns the game; with ?moveCount=N it long-polls until the
// move count differs from N
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	var (
		gi  service.GameInfo
		err error
	)
	if raw := c.Query("moveCount"); raw != "" {
		known, convErr := strconv.Atoi(raw)
		if convErr != nil || known < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
				Error: "invalid moveCount",
				Code:  core.ErrInvalidRequest,
			})
		}
		gi, err = h.svc.WaitForMove(c.UserContext(), gameID, known)
	} else {
		gi, err = h.svc.GetGame(gameID)
	}
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(buildGameResponse(gi))
}

// MakeMove applies a move given as free text
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	req, _ := c.Locals("validatedBody").(*core.MoveRequest)
	if req == nil {
		return validationBypass(c)
	}

	if _, err := h.svc.Play(gameID, req.Move); err != nil {
		return h.serviceError(c, err)
	}

	gi, err := h.svc.GetGame(gameID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(buildGameResponse(gi))
}

// UndoMove takes back count moves, default 1
func (h *HTTPHandler) UndoMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	req, _ := c.Locals("validatedBody").(*core.UndoRequest)
	if req == nil {
		return validationBypass(c)
	}
	count := req.Count
	if count == 0 {
		count = 1
	}

	if err := h.svc.Undo(gameID, count); err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return h.serviceError(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "cannot undo",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	gi, err := h.svc.GetGame(gameID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(buildGameResponse(gi))
}

// ResetGame puts the game back at its starting position
func (h *HTTPHandler) ResetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	if err := h.svc.Reset(gameID); err != nil {
		return h.serviceError(c, err)
	}

	gi, err := h.svc.GetGame(gameID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(buildGameResponse(gi))
}

func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	if err := h.svc.DeleteGame(gameID); err != nil {
		return h.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetBoard returns FEN and the ASCII rendering
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	gi, err := h.svc.GetGame(gameID)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(core.BoardResponse{
		FEN:   gi.FEN(),
		Board: gi.State.Board.ToASCII(),
	})
}

// PrimeDay checks the day-of-month of a MM-DD-YYYY date
func (h *HTTPHandler) PrimeDay(c *fiber.Ctx) error {
	req, _ := c.Locals("validatedBody").(*core.PrimeDayRequest)
	if req == nil {
		return validationBypass(c)
	}

	result, err := primeday.Check(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid date format",
			Code:    core.ErrInvalidDate,
			Details: "use MM-DD-YYYY",
		})
	}

	return c.JSON(core.PrimeDayResponse{
		Date:  result.Date,
		Day:   result.Day,
		Prime: result.Prime,
	})
}

// serviceError maps service and engine errors to HTTP responses
func (h *HTTPHandler) serviceError(c *fiber.Ctx, err error) error {
	var moveErr *board.MoveError
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "game not found",
			Code:  core.ErrGameNotFound,
		})
	case errors.As(err, &moveErr):
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid move",
			Code:    core.ErrInvalidMove,
			Details: moveErr.Reason,
		})
	case errors.Is(err, board.ErrInvalidSquare):
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid square name",
			Code:    core.ErrInvalidSquare,
			Details: "use a-h and 1-8 (e.g. e2)",
		})
	case errors.Is(err, game.ErrUnparsable):
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "can't parse move",
			Code:    core.ErrUnparsableMove,
			Details: "use format like 'e2 e4' or 'e2e4'",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error:   "internal server error",
			Code:    core.ErrInternalError,
			Details: err.Error(),
		})
	}
}

func invalidGameID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
		Error:   "invalid game ID format",
		Code:    core.ErrInvalidRequest,
		Details: "game ID must be a valid UUID",
	})
}

func validationBypass(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
		Error: "validation bypass detected",
		Code:  core.ErrInternalError,
	})
}

func buildGameResponse(gi service.GameInfo) core.GameResponse {
	resp := core.GameResponse{
		GameID:     gi.ID,
		FEN:        gi.FEN(),
		Turn:       gi.State.Turn.Code(),
		MoveNumber: gi.State.MoveNumber,
		Moves:      gi.Moves,
	}
	if last := gi.LastResult; last != nil {
		info := &core.MoveInfo{
			Move:        last.Move,
			PlayerColor: last.Player.Code(),
			Piece:       last.Piece.String(),
			Promoted:    last.Promoted,
		}
		if last.Captured != board.Empty {
			info.Captured = last.Captured.String()
		}
		resp.LastMove = info
	}
	return resp
}

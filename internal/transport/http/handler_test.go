package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"chesstools/internal/board"
	"chesstools/internal/core"
	"chesstools/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	svc := service.New(nil)
	t.Cleanup(func() { svc.Close() })
	return NewFiberApp(svc, true)
}

func do(t *testing.T, app *fiber.App, method, path, body string, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createGame(t *testing.T, app *fiber.App, body string) core.GameResponse {
	t.Helper()
	var game core.GameResponse
	status := do(t, app, "POST", "/api/v1/games", body, &game)
	require.Equal(t, fiber.StatusCreated, status)
	return game
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	var body map[string]interface{}
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/health", "", &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "disabled", body["storage"])
	assert.EqualValues(t, 0, body["games"])

	createGame(t, app, "")
	do(t, app, "GET", "/health", "", &body)
	assert.EqualValues(t, 1, body["games"])
}

func TestCreateAndPlay(t *testing.T) {
	app := newTestApp(t)
	game := createGame(t, app, "")
	assert.Equal(t, board.StartingFEN, game.FEN)
	assert.Equal(t, "w", game.Turn)
	assert.Equal(t, 1, game.MoveNumber)

	var after core.GameResponse
	status := do(t, app, "POST", "/api/v1/games/"+game.GameID+"/moves", `{"move":"e2 e4"}`, &after)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "b", after.Turn)
	assert.Equal(t, []string{"e2e4"}, after.Moves)
	require.NotNil(t, after.LastMove)
	assert.Equal(t, "P", after.LastMove.Piece)
	assert.Equal(t, "w", after.LastMove.PlayerColor)

	var got core.GameResponse
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/games/"+game.GameID, "", &got))
	assert.Equal(t, after.FEN, got.FEN)

	var b core.BoardResponse
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/games/"+game.GameID+"/board", "", &b))
	assert.Contains(t, b.Board, "4 |. . . . P . . . | 4")
}

func TestIllegalMove(t *testing.T) {
	app := newTestApp(t)
	game := createGame(t, app, "")

	var e core.ErrorResponse
	status := do(t, app, "POST", "/api/v1/games/"+game.GameID+"/moves", `{"move":"e2e5"}`, &e)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, core.ErrInvalidMove, e.Code)
	assert.Equal(t, "Illegal move for that piece.", e.Details)

	status = do(t, app, "POST", "/api/v1/games/"+game.GameID+"/moves", `{"move":"i2 i4"}`, &e)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, core.ErrInvalidSquare, e.Code)

	status = do(t, app, "POST", "/api/v1/games/"+game.GameID+"/moves", `{"move":"e2 e4 e5"}`, &e)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, core.ErrUnparsableMove, e.Code)

	status = do(t, app, "POST", "/api/v1/games/"+game.GameID+"/moves", `{}`, &e)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, core.ErrInvalidRequest, e.Code)
}

func TestUndoResetDelete(t *testing.T) {
	app := newTestApp(t)
	game := createGame(t, app, "")
	base := "/api/v1/games/" + game.GameID

	for _, m := range []string{"e2e4", "e7e5"} {
		require.Equal(t, fiber.StatusOK, do(t, app, "POST", base+"/moves", `{"move":"`+m+`"}`, nil))
	}

	var after core.GameResponse
	require.Equal(t, fiber.StatusOK, do(t, app, "POST", base+"/undo", `{"count":1}`, &after))
	assert.Equal(t, []string{"e2e4"}, after.Moves)

	var e core.ErrorResponse
	assert.Equal(t, fiber.StatusBadRequest, do(t, app, "POST", base+"/undo", `{"count":5}`, &e))

	require.Equal(t, fiber.StatusOK, do(t, app, "POST", base+"/reset", "", &after))
	assert.Equal(t, board.StartingFEN, after.FEN)
	assert.Empty(t, after.Moves)

	assert.Equal(t, fiber.StatusNoContent, do(t, app, "DELETE", base, "", nil))
	assert.Equal(t, fiber.StatusNotFound, do(t, app, "GET", base, "", &e))
	assert.Equal(t, core.ErrGameNotFound, e.Code)
}

func TestCreateFromFEN(t *testing.T) {
	app := newTestApp(t)
	game := createGame(t, app, `{"fen":"4k3/P7/8/8/8/8/8/4K3 w - - 0 9"}`)
	assert.Equal(t, 9, game.MoveNumber)

	var after core.GameResponse
	require.Equal(t, fiber.StatusOK, do(t, app, "POST", "/api/v1/games/"+game.GameID+"/moves", `{"move":"a7a8"}`, &after))
	require.NotNil(t, after.LastMove)
	assert.True(t, after.LastMove.Promoted)
	assert.Equal(t, "Q3k3/8/8/8/8/8/8/4K3 b - - 0 9", after.FEN)

	var e core.ErrorResponse
	assert.Equal(t, fiber.StatusBadRequest, do(t, app, "POST", "/api/v1/games", `{"fen":"bogus"}`, &e))
	assert.Equal(t, core.ErrInvalidFEN, e.Code)
}

func TestBadGameID(t *testing.T) {
	app := newTestApp(t)
	var e core.ErrorResponse
	assert.Equal(t, fiber.StatusBadRequest, do(t, app, "GET", "/api/v1/games/not-a-uuid", "", &e))
	assert.Equal(t, core.ErrInvalidRequest, e.Code)
}

func TestLongPollReturnsWhenAhead(t *testing.T) {
	app := newTestApp(t)
	game := createGame(t, app, "")
	base := "/api/v1/games/" + game.GameID
	require.Equal(t, fiber.StatusOK, do(t, app, "POST", base+"/moves", `{"move":"g1f3"}`, nil))

	var got core.GameResponse
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", base+"?moveCount=0", "", &got))
	assert.Len(t, got.Moves, 1)

	var e core.ErrorResponse
	assert.Equal(t, fiber.StatusBadRequest, do(t, app, "GET", base+"?moveCount=x", "", &e))
}

func TestPrimeDay(t *testing.T) {
	app := newTestApp(t)

	var r core.PrimeDayResponse
	require.Equal(t, fiber.StatusOK, do(t, app, "POST", "/api/v1/primeday", `{"date":"02-03-2024"}`, &r))
	assert.Equal(t, 3, r.Day)
	assert.True(t, r.Prime)

	require.Equal(t, fiber.StatusOK, do(t, app, "POST", "/api/v1/primeday", `{"date":"02-02-2024"}`, &r))
	assert.False(t, r.Prime)

	var e core.ErrorResponse
	assert.Equal(t, fiber.StatusBadRequest, do(t, app, "POST", "/api/v1/primeday", `{"date":"13-01-2024"}`, &e))
	assert.Equal(t, core.ErrInvalidDate, e.Code)
}

func TestContentType(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest("POST", "/api/v1/games", strings.NewReader("fen=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
}

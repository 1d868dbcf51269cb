package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chesstools/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, path string) {
	t.Helper()
	store, err := storage.NewStore(path, false)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.InitDB())

	now := time.Now().UTC()
	store.RecordNewGame(storage.GameRecord{GameID: "game-1", InitialFEN: "start", StartTimeUTC: now})
	store.RecordMove(storage.MoveRecord{
		GameID: "game-1", MoveNumber: 1, MoveText: "e2e4", Piece: "P",
		FENAfterMove: "after", PlayerColor: "w", MoveTimeUTC: now,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, store.Flush(ctx))
}

func TestInitQueryMoves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.db")
	out := &bytes.Buffer{}

	require.NoError(t, run([]string{"init", "-path", path}, nil, out, false))
	assert.Contains(t, out.String(), "Database initialized at: "+path)

	out.Reset()
	require.NoError(t, run([]string{"query", "-path", path}, nil, out, false))
	assert.Contains(t, out.String(), "No games found")

	seed(t, path)

	out.Reset()
	require.NoError(t, run([]string{"query", "-path", path, "-gameId", "*"}, nil, out, false))
	assert.Contains(t, out.String(), "game-1")
	assert.Contains(t, out.String(), "Found 1 game(s)")

	out.Reset()
	require.NoError(t, run([]string{"moves", "-path", path, "-gameId", "game-1"}, nil, out, false))
	assert.Contains(t, out.String(), "e2e4")
	assert.Contains(t, out.String(), "Found 1 move(s)")
}

func TestDeleteConfirmation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.db")
	require.NoError(t, run([]string{"init", "-path", path}, nil, &bytes.Buffer{}, false))

	err := run([]string{"delete", "-path", path}, nil, &bytes.Buffer{}, false)
	assert.Error(t, err, "no terminal and no -force")

	out := &bytes.Buffer{}
	require.NoError(t, run([]string{"delete", "-path", path}, strings.NewReader("n\n"), out, true))
	assert.Contains(t, out.String(), "Aborted")
	assert.FileExists(t, path)

	out.Reset()
	require.NoError(t, run([]string{"delete", "-path", path}, strings.NewReader("y\n"), out, true))
	assert.Contains(t, out.String(), "Database deleted")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestUsageErrors(t *testing.T) {
	out := &bytes.Buffer{}
	assert.Error(t, run(nil, nil, out, false))
	assert.Error(t, run([]string{"user"}, nil, out, false))
	assert.Error(t, run([]string{"init"}, nil, out, false))
	assert.Error(t, run([]string{"moves", "-path", "x.db"}, nil, out, false))
}

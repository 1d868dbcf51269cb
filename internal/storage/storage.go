package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	writeQueueSize = 1000
	drainTimeout   = 2 * time.Second
)

// writeOp is one queued transaction, label names it in logs.
// An op with a barrier only closes it, marking a point in the queue.
type writeOp struct {
	label   string
	fn      func(*sql.Tx) error
	barrier chan struct{}
}

// Store persists games and moves to SQLite. Writes go through a queue
// drained by one goroutine; the first failed write degrades the store and
// every later write is dropped.
type Store struct {
	db        *sql.DB
	path      string
	queue     chan writeOp
	healthy   atomic.Bool
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// NewStore opens path and starts the writer. walMode selects the WAL journal.
func NewStore(path string, walMode bool) (*Store, error) {
	// pragmas go in the DSN so every pooled connection gets them
	dsn := path + "?_foreign_keys=on"
	if walMode {
		dsn += "&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err == nil {
		err = db.Ping()
		if err != nil {
			db.Close()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// single writer, a handful of readers
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		db:     db,
		path:   path,
		queue:  make(chan writeOp, writeQueueSize),
		ctx:    ctx,
		cancel: cancel,
	}
	s.healthy.Store(true)

	s.wg.Add(1)
	go s.writerLoop()

	return s, nil
}

func (s *Store) writerLoop() {
	defer s.wg.Done()

	for {
		select {
		case op := <-s.queue:
			s.run(op)
		case <-s.ctx.Done():
			s.drain()
			return
		}
	}
}

// drain runs what is already queued, bounded by drainTimeout
func (s *Store) drain() {
	deadline := time.After(drainTimeout)
	for {
		select {
		case op := <-s.queue:
			s.run(op)
		case <-deadline:
			log.Printf("Warning: storage drain timed out, %d writes lost", len(s.queue))
			return
		default:
			return
		}
	}
}

// run executes op in its own transaction unless the store is degraded
func (s *Store) run(op writeOp) {
	if op.barrier != nil {
		close(op.barrier)
		return
	}
	if !s.healthy.Load() {
		return
	}

	if err := s.inTx(op.fn); err != nil {
		log.Printf("Storage degraded: %s failed: %v", op.label, err)
		s.healthy.Store(false)
	}
}

func (s *Store) inTx(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// enqueue drops the write when the store is degraded or the queue is full
func (s *Store) enqueue(label string, fn func(*sql.Tx) error) {
	if !s.healthy.Load() {
		return
	}

	select {
	case s.queue <- writeOp{label: label, fn: fn}:
	default:
		log.Printf("Storage write queue full, dropping %s", label)
	}
}

// RecordNewGame asynchronously records a new game
func (s *Store) RecordNewGame(record GameRecord) {
	s.enqueue("game record", func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO games (game_id, initial_fen, start_time_utc) VALUES (?, ?, ?)`,
			record.GameID, record.InitialFEN, record.StartTimeUTC,
		)
		return err
	})
}

// RecordMove asynchronously records a move
func (s *Store) RecordMove(record MoveRecord) {
	s.enqueue("move record", func(tx *sql.Tx) error {
		query := `INSERT INTO moves (
			game_id, move_number, move_text, piece, captured, promoted,
			fen_after_move, player_color, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.MoveNumber, record.MoveText, record.Piece,
			record.Captured, record.Promoted, record.FENAfterMove,
			record.PlayerColor, record.MoveTimeUTC,
		)
		return err
	})
}

// DeleteUndoneMoves asynchronously deletes moves after undo or reset
func (s *Store) DeleteUndoneMoves(gameID string, afterMoveNumber int) {
	s.enqueue("undo operation", func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM moves WHERE game_id = ? AND move_number > ?`, gameID, afterMoveNumber)
		return err
	})
}

// DeleteGame asynchronously removes a game and its moves
func (s *Store) DeleteGame(gameID string) {
	s.enqueue("game delete", func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM games WHERE game_id = ?`, gameID)
		return err
	})
}

// Flush blocks until every write queued before the call has run
func (s *Store) Flush(ctx context.Context) error {
	if !s.healthy.Load() {
		return fmt.Errorf("storage degraded")
	}

	done := make(chan struct{})
	marker := writeOp{label: "flush", barrier: done}

	select {
	case s.queue <- marker:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsHealthy returns the current health status
func (s *Store) IsHealthy() bool {
	return s.healthy.Load()
}

// Close gracefully closes the database connection
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * drainTimeout):
			log.Printf("Warning: storage writer did not stop, closing anyway")
		}

		if s.db != nil {
			s.closeErr = s.db.Close()
		}
	})
	return s.closeErr
}

// InitDB creates the tables when they do not exist yet
func (s *Store) InitDB() error {
	err := s.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(Schema)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// DeleteDB removes the database file
func (s *Store) DeleteDB() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete database file: %w", err)
	}

	return nil
}

// QueryGames retrieves games, all of them when gameID is "" or "*"
func (s *Store) QueryGames(gameID string) ([]GameRecord, error) {
	query := `SELECT game_id, initial_fen, start_time_utc FROM games WHERE 1=1`

	var args []interface{}
	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}
	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(&g.GameID, &g.InitialFEN, &g.StartTimeUTC); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// QueryMoves returns the moves of one game in play order
func (s *Store) QueryMoves(gameID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(`SELECT
		move_id, game_id, move_number, move_text, piece, captured, promoted,
		fen_after_move, player_color, move_time_utc
	FROM moves WHERE game_id = ? ORDER BY move_number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(
			&m.MoveID, &m.GameID, &m.MoveNumber, &m.MoveText, &m.Piece, &m.Captured,
			&m.Promoted, &m.FENAfterMove, &m.PlayerColor, &m.MoveTimeUTC,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return moves, nil
}

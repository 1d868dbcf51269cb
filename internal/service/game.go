package service

import (
	"context"
	"fmt"
	"time"

	"chesstools/internal/board"
	"chesstools/internal/game"
	"chesstools/internal/storage"
)

// NewGame registers a game starting from fen, or the standard position when fen is empty
func (s *Service) NewGame(id, fen string) error {
	initial := game.Initial()
	if fen != "" {
		var err error
		if initial, err = game.FromFEN(fen); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; exists {
		return fmt.Errorf("game %s already exists", id)
	}

	g := game.New(initial)
	s.games[id] = g

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:       id,
			InitialFEN:   g.InitialFEN(),
			StartTimeUTC: time.Now().UTC(),
		})
	}

	return nil
}

// GetGame returns a copy of the game state
func (s *Service) GetGame(gameID string) (GameInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return GameInfo{}, err
	}
	return info(gameID, g), nil
}

// Play parses and applies a move typed as free text
func (s *Service) Play(gameID, text string) (game.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return game.Outcome{}, err
	}

	outcome, err := g.Play(text)
	if err != nil {
		return game.Outcome{}, err
	}

	moveCount := len(g.Moves())
	s.waiter.NotifyGame(gameID)

	if s.store != nil {
		captured := ""
		if outcome.Captured != board.Empty {
			captured = outcome.Captured.String()
		}
		s.store.RecordMove(storage.MoveRecord{
			GameID:       gameID,
			MoveNumber:   moveCount,
			MoveText:     outcome.Move,
			Piece:        outcome.Piece.String(),
			Captured:     captured,
			Promoted:     outcome.Promoted,
			FENAfterMove: g.CurrentFEN(),
			PlayerColor:  outcome.Player.Code(),
			MoveTimeUTC:  time.Now().UTC(),
		})
	}

	return outcome, nil
}

// Undo removes the specified number of moves from game history
func (s *Service) Undo(gameID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return err
	}

	if err := g.UndoMoves(count); err != nil {
		return err
	}

	remaining := len(g.Moves())
	s.waiter.NotifyGame(gameID)
	if s.store != nil {
		s.store.DeleteUndoneMoves(gameID, remaining)
	}
	return nil
}

// Reset puts the game back at its initial position
func (s *Service) Reset(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return err
	}

	g.Reset()
	s.waiter.NotifyGame(gameID)
	if s.store != nil {
		s.store.DeleteUndoneMoves(gameID, 0)
	}
	return nil
}

// DeleteGame removes a game from memory and storage
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(gameID); err != nil {
		return err
	}

	s.waiter.RemoveGame(gameID)
	delete(s.games, gameID)

	if s.store != nil {
		s.store.DeleteGame(gameID)
	}
	return nil
}

// WaitForMove blocks until the game's move count differs from knownMoves,
// the wait times out or ctx is done. It returns the state at that point.
func (s *Service) WaitForMove(ctx context.Context, gameID string, knownMoves int) (GameInfo, error) {
	s.mu.RLock()
	g, err := s.lookup(gameID)
	if err != nil {
		s.mu.RUnlock()
		return GameInfo{}, err
	}
	if len(g.Moves()) != knownMoves {
		gi := info(gameID, g)
		s.mu.RUnlock()
		return gi, nil
	}
	// register while holding the lock so no notification slips in between
	changed := s.waiter.Changed(gameID)
	s.mu.RUnlock()

	s.waiter.Wait(ctx, changed)
	return s.GetGame(gameID)
}

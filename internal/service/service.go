package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"chesstools/internal/game"
	"chesstools/internal/storage"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

const shutdownTimeout = 2 * time.Second

var ErrGameNotFound = errors.New("game not found")

// Service is a state manager for chess games with optional persistence
type Service struct {
	games  map[string]*game.Game
	mu     sync.RWMutex
	store  *storage.Store // nil if persistence disabled
	waiter *WaitRegistry
}

// GameInfo is a copy of a game's state, safe to read without the lock
type GameInfo struct {
	ID         string
	State      game.State
	Moves      []string
	InitialFEN string
	LastResult *game.Outcome
}

func (i GameInfo) FEN() string {
	return i.State.FEN()
}

// New creates a new service instance with optional storage
func New(store *storage.Store) *Service {
	return &Service{
		games:  make(map[string]*game.Game),
		store:  store,
		waiter: NewWaitRegistry(),
	}
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// ActiveGames is the number of games held in memory
func (s *Service) ActiveGames() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Close releases waiters and storage
func (s *Service) Close() error {
	s.mu.Lock()
	s.games = make(map[string]*game.Game)
	s.mu.Unlock()

	var result *multierror.Error
	if err := s.waiter.Shutdown(shutdownTimeout); err != nil {
		result = multierror.Append(result, err)
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("storage close: %w", err))
		}
	}
	return result.ErrorOrNil()
}

func (s *Service) lookup(gameID string) (*game.Game, error) {
	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return g, nil
}

func info(id string, g *game.Game) GameInfo {
	gi := GameInfo{
		ID:         id,
		State:      g.Current(),
		Moves:      g.Moves(),
		InitialFEN: g.InitialFEN(),
	}
	if last := g.LastResult(); last != nil {
		copied := *last
		gi.LastResult = &copied
	}
	return gi
}

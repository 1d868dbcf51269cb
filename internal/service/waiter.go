package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// WaitTimeout is the maximum time a client can wait for notifications
const WaitTimeout = 25 * time.Second

// WaitRegistry lets long-polling clients block until a game changes.
// Every game has one channel that is closed, and forgotten, on change.
type WaitRegistry struct {
	mu       sync.Mutex
	changed  map[string]chan struct{}
	shutdown chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		changed:  make(map[string]chan struct{}),
		shutdown: make(chan struct{}),
	}
}

// Changed returns the channel closed on the game's next change
func (w *WaitRegistry) Changed(gameID string) <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	ch, ok := w.changed[gameID]
	if !ok {
		ch = make(chan struct{})
		w.changed[gameID] = ch
	}
	return ch
}

// Wait blocks on a channel from Changed, the timeout, ctx or shutdown
func (w *WaitRegistry) Wait(ctx context.Context, changed <-chan struct{}) {
	w.wg.Add(1)
	defer w.wg.Done()

	timer := time.NewTimer(WaitTimeout)
	defer timer.Stop()

	select {
	case <-changed:
	case <-ctx.Done():
	case <-timer.C:
	case <-w.shutdown:
	}
}

// NotifyGame wakes every client waiting on a game
func (w *WaitRegistry) NotifyGame(gameID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ch, ok := w.changed[gameID]; ok {
		close(ch)
		delete(w.changed, gameID)
	}
}

// RemoveGame releases all waiters for a game (called before game deletion)
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.NotifyGame(gameID)
}

// Shutdown releases everyone and waits for them to return
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.once.Do(func() { close(w.shutdown) })

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out")
	}
}

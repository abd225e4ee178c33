package socket

import (
	"errors"
	"sync"

	"github.com/DedS3t/monopoly-engine/platform/engine"
)

var ErrNoSession = errors.New("socket: no running game for id")

// Sessions holds the live games keyed by game id. Socket handlers run on
// goroutines per connection, so every lookup and mutation goes through the
// lock; the engine itself is not safe for concurrent use.
type Sessions struct {
	mu    sync.Mutex
	games map[string]*engine.Game
}

func NewSessions() *Sessions {
	return &Sessions{games: make(map[string]*engine.Game)}
}

func (s *Sessions) Put(g *engine.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = g
}

func (s *Sessions) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// With runs fn with the game locked. All engine access from socket
// handlers goes through here.
func (s *Sessions) With(id string, fn func(*engine.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return ErrNoSession
	}
	return fn(g)
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sahilm23/connect4-api/internal/domain"
	"github.com/sahilm23/connect4-api/internal/repository"
)

// Store is an in-memory GameStore keyed by game ID. State is lost when the
// process restarts, which matches the homework deployment model.
type Store struct {
	mu    sync.RWMutex
	games map[string]*domain.Game
}

func New() *Store {
	return &Store{games: make(map[string]*domain.Game)}
}

func (s *Store) Save(_ context.Context, game *domain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[game.ID] = game
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*domain.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[id]
	if !ok {
		return nil, repository.ErrGameNotFound
	}
	return game, nil
}

func (s *Store) List(_ context.Context) ([]*domain.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]*domain.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, game)
	}
	return games, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.games, id)
	return nil
}

// Sweep removes finished games older than finishedTTL and in-progress games
// older than staleTTL, returning how many were removed. Used by the cleanup
// worker; Redis-backed stores expire entries via TTL instead.
func (s *Store) Sweep(_ context.Context, finishedTTL, staleTTL time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	now := time.Now()

	for id, game := range s.games {
		if game.IsFinished() {
			if now.Sub(game.FinishedAt) > finishedTTL {
				delete(s.games, id)
				count++
			}
		} else if now.Sub(game.CreatedAt) > staleTTL {
			delete(s.games, id)
			count++
		}
	}

	return count
}

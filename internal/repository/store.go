package repository

import (
	"context"
	"errors"

	"github.com/sahilm23/connect4-api/internal/domain"
)

var ErrGameNotFound = errors.New("game not found")

// GameStore is the persistence interface for live games. Implementations may
// be backed by memory or Redis; callers are expected to serialize access per
// game ID themselves.
type GameStore interface {
	// Save persists or updates a game.
	Save(ctx context.Context, game *domain.Game) error

	// Get retrieves a game by ID, returning ErrGameNotFound when missing.
	Get(ctx context.Context, id string) (*domain.Game, error)

	// List returns all stored games.
	List(ctx context.Context) ([]*domain.Game, error)

	// Delete removes a game by ID. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}

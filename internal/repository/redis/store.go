package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sahilm23/connect4-api/internal/domain"
	"github.com/sahilm23/connect4-api/internal/repository"
)

const gameKeyPrefix = "game:"

// Store is a Redis-backed GameStore. Each game is stored as a JSON value
// under its own key with a TTL, so both finished and abandoned games expire
// without a cleanup pass. Saving refreshes the TTL.
type Store struct {
	client      *redis.Client
	finishedTTL time.Duration
	staleTTL    time.Duration
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, addr, password string, finishedTTL, staleTTL time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return &Store{client: client, finishedTTL: finishedTTL, staleTTL: staleTTL}, nil
}

// ttlFor picks the retention for a game: finished games keep the short
// window, in-progress games the stale window, refreshed on every save.
func (s *Store) ttlFor(game *domain.Game) time.Duration {
	if game.IsFinished() {
		return s.finishedTTL
	}
	return s.staleTTL
}

func (s *Store) Save(ctx context.Context, game *domain.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = s.client.Set(ctx, gameKeyPrefix+game.ID, gameJSON, s.ttlFor(game)).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Game, error) {
	response, err := s.client.Get(ctx, gameKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game domain.Game
	if err = json.Unmarshal([]byte(response), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

func (s *Store) List(ctx context.Context) ([]*domain.Game, error) {
	var games []*domain.Game

	iter := s.client.Scan(ctx, 0, gameKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		response, err := s.client.Get(ctx, iter.Val()).Result()
		if errors.Is(err, redis.Nil) {
			continue // expired between scan and get
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get game %s: %w", iter.Val(), err)
		}

		var game domain.Game
		if err = json.Unmarshal([]byte(response), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game %s: %w", iter.Val(), err)
		}
		games = append(games, &game)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan games: %w", err)
	}

	return games, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, gameKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

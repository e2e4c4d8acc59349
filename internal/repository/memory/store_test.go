package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilm23/connect4-api/internal/domain"
	"github.com/sahilm23/connect4-api/internal/repository"
)

func TestStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrGameNotFound)

	game := domain.NewGame("g1", "Alice", "Bob", 2)
	require.NoError(t, store.Save(ctx, game))

	got, err := store.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Same(t, game, got)

	require.NoError(t, store.Delete(ctx, "g1"))
	_, err = store.Get(ctx, "g1")
	assert.ErrorIs(t, err, repository.ErrGameNotFound)

	// deleting an unknown ID is not an error
	assert.NoError(t, store.Delete(ctx, "g1"))
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	store := New()

	games, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)

	require.NoError(t, store.Save(ctx, domain.NewGame("g1", "a", "b", 2)))
	require.NoError(t, store.Save(ctx, domain.NewGame("g2", "c", "d", 1)))

	games, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestStore_Sweep(t *testing.T) {
	ctx := context.Background()
	store := New()

	fresh := domain.NewGame("fresh", "a", "b", 2)

	stale := domain.NewGame("stale", "a", "b", 2)
	stale.CreatedAt = time.Now().Add(-48 * time.Hour)

	finished := domain.NewGame("finished", "a", "b", 2)
	finished.Status = domain.StatusWon
	finished.Winner = domain.Player1
	finished.FinishedAt = time.Now().Add(-2 * time.Hour)

	justFinished := domain.NewGame("just-finished", "a", "b", 2)
	justFinished.Status = domain.StatusDraw
	justFinished.FinishedAt = time.Now()

	for _, g := range []*domain.Game{fresh, stale, finished, justFinished} {
		require.NoError(t, store.Save(ctx, g))
	}

	removed := store.Sweep(ctx, time.Hour, 24*time.Hour)
	assert.Equal(t, 2, removed)

	_, err := store.Get(ctx, "fresh")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "just-finished")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "stale")
	assert.ErrorIs(t, err, repository.ErrGameNotFound)
	_, err = store.Get(ctx, "finished")
	assert.ErrorIs(t, err, repository.ErrGameNotFound)
}

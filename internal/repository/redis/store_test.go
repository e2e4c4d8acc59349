package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilm23/connect4-api/internal/domain"
)

func TestTTLFor(t *testing.T) {
	store := &Store{finishedTTL: time.Hour, staleTTL: 24 * time.Hour}

	game := domain.NewGame("g1", "Alice", "Bob", 2)
	assert.Equal(t, 24*time.Hour, store.ttlFor(game), "in-progress games must expire eventually")

	_, err := game.MakeMove(domain.Player1, 0)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, store.ttlFor(game))

	// Player1 stacks column 3 to a vertical win.
	won := domain.NewGame("g2", "Alice", "Bob", 2)
	for _, column := range []int{3, 0, 3, 1, 3, 2, 3} {
		_, err := won.MakeMove(won.CurrentPlayer, column)
		require.NoError(t, err)
	}
	require.True(t, won.IsFinished())

	assert.Equal(t, time.Hour, store.ttlFor(won))
}

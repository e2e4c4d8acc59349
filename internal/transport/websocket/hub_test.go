package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilm23/connect4-api/internal/domain"
)

func receive(t *testing.T, sub *Subscriber) Message {
	t.Helper()

	select {
	case payload, ok := <-sub.C:
		require.True(t, ok, "subscriber channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(payload, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func TestHubPublishState(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	game := domain.NewGame("g1", "Alice", "Bob", 2)

	sub := hub.Subscribe(game.ID)
	other := hub.Subscribe("unrelated")
	defer hub.Unsubscribe(sub)
	defer hub.Unsubscribe(other)

	_, err := game.MakeMove(domain.Player1, 3)
	require.NoError(t, err)
	hub.PublishState(game)

	msg := receive(t, sub)
	assert.Equal(t, "state", msg.Type)
	require.NotNil(t, msg.Game)
	assert.Equal(t, "g1", msg.Game.ID)
	assert.Equal(t, 1, msg.Game.MoveCount)

	// watchers of other games see nothing
	select {
	case <-other.C:
		t.Fatal("unrelated subscriber received a message")
	default:
	}
}

func TestHubCloseGame(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	sub := hub.Subscribe("g1")

	hub.CloseGame("g1")

	msg := receive(t, sub)
	assert.Equal(t, "game_closed", msg.Type)
	assert.Nil(t, msg.Game)

	_, ok := <-sub.C
	assert.False(t, ok, "channel should be closed after the game goes away")
}

func TestHubUnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	sub := hub.Subscribe("g1")

	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)

	hub.PublishState(domain.NewGame("g1", "a", "b", 2))
	select {
	case _, ok := <-sub.C:
		assert.False(t, ok, "dropped subscriber must not receive state")
	default:
	}
}

func TestHubSlowSubscriberIsDropped(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	game := domain.NewGame("g1", "a", "b", 2)
	sub := hub.Subscribe(game.ID)

	// never drain: the buffer fills and the hub cuts the watcher loose
	for i := 0; i < subscriberBuffer+2; i++ {
		hub.PublishState(game)
	}

	drained := 0
	for range sub.C {
		drained++
	}
	assert.LessOrEqual(t, drained, subscriberBuffer)
}

package websocket

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sahilm23/connect4-api/internal/domain"
	"github.com/sahilm23/connect4-api/internal/transport/model"
)

const subscriberBuffer = 8

// Message is the envelope pushed to watchers.
type Message struct {
	Type string          `json:"type"` // "state" | "game_closed"
	Game *model.GameView `json:"game,omitempty"`
}

// Subscriber receives serialized messages for one game. C is closed when the
// game goes away or the subscriber is dropped.
type Subscriber struct {
	C      chan []byte
	gameID string
}

// Hub fans game state snapshots out to watchers, keyed by game ID. It
// implements the game service's Notifier interface.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscriber]struct{}
	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		subs:   make(map[string]map[*Subscriber]struct{}),
		logger: logger.With().Str("component", "watch-hub").Logger(),
	}
}

// Subscribe registers a watcher for a game.
func (h *Hub) Subscribe(gameID string) *Subscriber {
	sub := &Subscriber{
		C:      make(chan []byte, subscriberBuffer),
		gameID: gameID,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[gameID] == nil {
		h.subs[gameID] = make(map[*Subscriber]struct{})
	}
	h.subs[gameID][sub] = struct{}{}

	return sub
}

// Unsubscribe removes a watcher. Safe to call twice.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	watchers, ok := h.subs[sub.gameID]
	if !ok {
		return
	}
	if _, ok := watchers[sub]; !ok {
		return
	}

	delete(watchers, sub)
	if len(watchers) == 0 {
		delete(h.subs, sub.gameID)
	}
	close(sub.C)
}

// PublishState pushes a snapshot to every watcher of the game. Slow watchers
// with a full buffer are dropped rather than blocking the game.
func (h *Hub) PublishState(game *domain.Game) {
	view := model.FromGame(game)
	h.broadcast(game.ID, Message{Type: "state", Game: &view})
}

// CloseGame tells watchers the game is gone and drops them.
func (h *Hub) CloseGame(gameID string) {
	h.broadcast(gameID, Message{Type: "game_closed"})

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[gameID] {
		close(sub.C)
	}
	delete(h.subs, gameID)
}

func (h *Hub) broadcast(gameID string, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Str("game_id", gameID).Msg("failed to marshal watch message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[gameID] {
		select {
		case sub.C <- payload:
		default:
			// watcher is not keeping up
			delete(h.subs[gameID], sub)
			close(sub.C)
			h.logger.Warn().Str("game_id", gameID).Msg("dropped slow watcher")
		}
	}
	if len(h.subs[gameID]) == 0 {
		delete(h.subs, gameID)
	}
}

package websocket

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/sahilm23/connect4-api/internal/repository"
	"github.com/sahilm23/connect4-api/internal/service/game"
	"github.com/sahilm23/connect4-api/internal/transport/model"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Handler upgrades watch requests and streams state snapshots for one game.
type Handler struct {
	hub      *Hub
	service  *game.Service
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewHandler(logger zerolog.Logger, hub *Hub, service *game.Service, allowedOrigins []string) *Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if allowed == origin {
					return true
				}
			}
			return false
		},
	}

	return &Handler{
		hub:      hub,
		service:  service,
		upgrader: upgrader,
		logger:   logger.With().Str("component", "watch").Logger(),
	}
}

// ServeWatch handles GET /ws/games/:id. The client receives a state message
// on connect, one per accepted move or restart, and a game_closed message
// when the game is quit.
func (h *Handler) ServeWatch(c *gin.Context) {
	gameID := c.Param("id")

	current, err := h.service.Get(c.Request.Context(), gameID)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("game_id", gameID).Msg("websocket upgrade failed")
		return
	}

	sub := h.hub.Subscribe(gameID)

	// initial snapshot, before any broadcast can arrive
	view := model.FromGame(current)
	initial, err := json.Marshal(Message{Type: "state", Game: &view})
	if err == nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		err = conn.WriteMessage(websocket.TextMessage, initial)
	}
	if err != nil {
		h.hub.Unsubscribe(sub)
		conn.Close()
		return
	}

	go h.writeLoop(conn, sub)
	h.readLoop(conn, sub)
}

// writeLoop pumps hub messages and pings to the client.
func (h *Handler) writeLoop(conn *websocket.Conn, sub *Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload, ok := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game closed"))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop discards client messages and unsubscribes on disconnect.
func (h *Handler) readLoop(conn *websocket.Conn, sub *Subscriber) {
	defer func() {
		h.hub.Unsubscribe(sub)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

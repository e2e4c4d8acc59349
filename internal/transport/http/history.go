package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sahilm23/connect4-api/internal/repository/postgres"
)

const defaultHistoryLimit = 50

type HistoryHandler struct {
	archive *postgres.Archive
	logger  zerolog.Logger
}

func NewHistoryHandler(logger zerolog.Logger, archive *postgres.Archive) *HistoryHandler {
	return &HistoryHandler{
		archive: archive,
		logger:  logger.With().Str("component", "http").Logger(),
	}
}

// ListRecent returns the most recently finished games.
func (h *HistoryHandler) ListRecent(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
			return
		}
		limit = parsed
	}

	games, err := h.archive.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	if games == nil {
		games = []postgres.ArchivedGame{}
	}
	c.JSON(http.StatusOK, games)
}

// GetGame returns one archived game including its final board.
func (h *HistoryHandler) GetGame(c *gin.Context) {
	game, err := h.archive.GetGameByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch archived game")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch archived game"})
		return
	}
	if game == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	c.JSON(http.StatusOK, game)
}

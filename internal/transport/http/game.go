package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sahilm23/connect4-api/internal/domain"
	"github.com/sahilm23/connect4-api/internal/repository"
	"github.com/sahilm23/connect4-api/internal/service/game"
	"github.com/sahilm23/connect4-api/internal/transport/model"
)

type GameHandler struct {
	service *game.Service
	logger  zerolog.Logger
}

func NewGameHandler(logger zerolog.Logger, service *game.Service) *GameHandler {
	return &GameHandler{
		service: service,
		logger:  logger.With().Str("component", "http").Logger(),
	}
}

type createGameRequest struct {
	Player1Name     string `json:"player1_name"`
	Player2Name     string `json:"player2_name"`
	NumHumanPlayers *int   `json:"num_human_players" binding:"required"`
}

type moveRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Column   *int   `json:"column" binding:"required"`
}

type nextMoveResponse struct {
	Message  string `json:"message"`
	NextMove int    `json:"next_move"`
}

type quitResponse struct {
	Message string `json:"message"`
	GameID  string `json:"game_id"`
}

// ListGames returns all games currently in the store.
func (h *GameHandler) ListGames(c *gin.Context) {
	games, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	views := make([]model.GameView, 0, len(games))
	for _, g := range games {
		views = append(views, model.FromGame(g))
	}

	c.JSON(http.StatusOK, views)
}

// CreateGame starts a new game with zero, one or two human players. Empty
// names for computer slots get the classic defaults.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player1_name, player2_name and num_human_players are required"})
		return
	}

	numHumans := *req.NumHumanPlayers
	if numHumans < 0 || numHumans > 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "num_human_players must be 0, 1 or 2"})
		return
	}

	if req.Player1Name == "" {
		if numHumans > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player1_name is required"})
			return
		}
		req.Player1Name = "Computer 1"
	}
	if req.Player2Name == "" {
		if numHumans > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player2_name is required"})
			return
		}
		req.Player2Name = "Computer 2"
	}

	created, err := h.service.Create(c.Request.Context(), req.Player1Name, req.Player2Name, numHumans)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.FromGame(created))
}

// GetGame returns the current state of a game.
func (h *GameHandler) GetGame(c *gin.Context) {
	g, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.FromGame(g))
}

// MakeMove drops a disk in a column for the requesting player.
func (h *GameHandler) MakeMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player_id and column are required"})
		return
	}

	g, err := h.service.Move(c.Request.Context(), c.Param("id"), req.PlayerID, *req.Column)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.FromGame(g))
}

// RestartGame resets the board while keeping player information.
func (h *GameHandler) RestartGame(c *gin.Context) {
	g, err := h.service.Restart(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.FromGame(g))
}

// QuitGame removes the game from the store.
func (h *GameHandler) QuitGame(c *gin.Context) {
	gameID := c.Param("id")
	if err := h.service.Quit(c.Request.Context(), gameID); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, quitResponse{Message: "Game has been quit.", GameID: gameID})
}

// NextMove calculates the column the current player should play, typically
// used to drive computer players.
func (h *GameHandler) NextMove(c *gin.Context) {
	column, err := h.service.NextMove(c.Request.Context(), c.Param("id"), c.Query("difficulty"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, nextMoveResponse{Message: "Next move calculated.", NextMove: column})
}

// fail maps service errors onto HTTP status codes: unknown game to 404,
// rejected moves to 400, everything else to 500.
func (h *GameHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
	case errors.Is(err, domain.ErrInvalidMove),
		errors.Is(err, domain.ErrColumnFull),
		errors.Is(err, domain.ErrGameFinished),
		errors.Is(err, domain.ErrNotYourTurn):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

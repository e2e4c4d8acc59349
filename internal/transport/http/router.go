package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahilm23/connect4-api/internal/transport/http/middleware"
)

// NewRouter wires up all routes. The history handler and the watch handler
// are optional: history requires a database and watch a websocket hub.
func NewRouter(games *GameHandler, history *HistoryHandler, watch gin.HandlerFunc, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	router.GET("/games", games.ListGames)
	router.POST("/games", games.CreateGame)
	router.GET("/games/:id", games.GetGame)
	router.POST("/games/:id/moves", games.MakeMove)
	router.POST("/games/:id/restart", games.RestartGame)
	router.POST("/games/:id/quit", games.QuitGame)
	router.POST("/games/:id/next_move", games.NextMove)

	if history != nil {
		router.GET("/history", history.ListRecent)
		router.GET("/history/:id", history.GetGame)
	}

	if watch != nil {
		router.GET("/ws/games/:id", watch)
	}

	return router
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sahilm23/connect4-api/internal/config"
	"github.com/sahilm23/connect4-api/internal/repository"
	"github.com/sahilm23/connect4-api/internal/repository/memory"
	"github.com/sahilm23/connect4-api/internal/repository/postgres"
	redisstore "github.com/sahilm23/connect4-api/internal/repository/redis"
	"github.com/sahilm23/connect4-api/internal/service/cleanup"
	"github.com/sahilm23/connect4-api/internal/service/game"
	transporthttp "github.com/sahilm23/connect4-api/internal/transport/http"
	"github.com/sahilm23/connect4-api/internal/transport/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	logger := log.Logger

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Live game store: memory unless Redis is configured. Redis games expire
	// via TTL; the memory store is swept by the cleanup worker instead.
	var store repository.GameStore
	var sweeper cleanup.Sweeper
	if cfg.RedisAddr != "" {
		redisStore, err := redisstore.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.FinishedGameTTL, cfg.StaleGameTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisStore.Close()
		store = redisStore
		logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis game store")
	} else {
		memStore := memory.New()
		store = memStore
		sweeper = memStore
		logger.Info().Msg("using in-memory game store")
	}

	// Finished-game archive, optional.
	var archive game.Archive
	var historyHandler *transporthttp.HistoryHandler
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		pgArchive := postgres.NewArchive(db)
		archive = pgArchive
		historyHandler = transporthttp.NewHistoryHandler(logger, pgArchive)
		logger.Info().Msg("game archive enabled")
	}

	hub := websocket.NewHub(logger)
	gameService := game.NewService(logger, store, archive, hub, cfg.BotDifficulty)

	worker := cleanup.NewWorker(logger, sweeper, gameService, cfg.CleanupInterval, cfg.FinishedGameTTL, cfg.StaleGameTTL)
	go worker.Run(ctx)

	gameHandler := transporthttp.NewGameHandler(logger, gameService)
	watchHandler := websocket.NewHandler(logger, hub, gameService, cfg.AllowedOrigins)

	gin.SetMode(gin.ReleaseMode)
	router := transporthttp.NewRouter(gameHandler, historyHandler, watchHandler.ServeWatch, cfg.AllowedOrigins)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("server exited")
}

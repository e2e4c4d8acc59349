package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"PORT" env-default:"8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:5173"`

	// Live game store. Memory is used unless a Redis address is set.
	RedisAddr     string `env:"REDIS_ADDR" env-default:""`
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`

	// Finished-game archive. Disabled unless a database URL is set.
	DatabaseURL          string `env:"DATABASE_URL" env-default:""`
	DBMaxOpenConns       int    `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DBMaxIdleConns       int    `env:"DB_MAX_IDLE_CONNS" env-default:"25"`
	DBConnMaxLifetimeMin int    `env:"DB_CONN_MAX_LIFETIME_MINUTES" env-default:"5"`

	BotDifficulty string `env:"BOT_DIFFICULTY" env-default:"medium"`

	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" env-default:"1h"`
	FinishedGameTTL time.Duration `env:"FINISHED_GAME_TTL" env-default:"1h"`
	StaleGameTTL    time.Duration `env:"STALE_GAME_TTL" env-default:"24h"`
}

// Load reads configuration from the environment, loading a .env file first
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{}
	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	return config, nil
}

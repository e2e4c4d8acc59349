package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS archived_games (
	game_id          TEXT PRIMARY KEY,
	player1_name     TEXT NOT NULL,
	player2_name     TEXT NOT NULL,
	winner           TEXT,
	status           TEXT NOT NULL,
	reason           TEXT NOT NULL,
	total_moves      INT NOT NULL,
	duration_seconds INT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL,
	finished_at      TIMESTAMPTZ NOT NULL,
	board_state      JSONB
);
CREATE INDEX IF NOT EXISTS idx_archived_games_finished_at ON archived_games (finished_at DESC);
`

// Open connects to Postgres, applies pool settings and bootstraps the schema.
func Open(connStr string, maxOpenConns, maxIdleConns, connMaxLifetimeMin int) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(time.Duration(connMaxLifetimeMin) * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return db, nil
}

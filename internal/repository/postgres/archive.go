package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sahilm23/connect4-api/internal/domain"
)

// Archive persists finished games. Live games never touch the database.
type Archive struct {
	db *sql.DB
}

func NewArchive(db *sql.DB) *Archive {
	return &Archive{db: db}
}

// ArchivedGame is a finished game row.
type ArchivedGame struct {
	GameID          string          `json:"game_id"`
	Player1Name     string          `json:"player1_name"`
	Player2Name     string          `json:"player2_name"`
	Winner          *string         `json:"winner"` // "p1"/"p2", nil on draw or quit
	Status          string          `json:"status"`
	Reason          string          `json:"reason"` // "connect_four", "draw", "quit"
	TotalMoves      int             `json:"total_moves"`
	DurationSeconds int             `json:"duration_seconds"`
	CreatedAt       time.Time       `json:"created_at"`
	FinishedAt      time.Time       `json:"finished_at"`
	BoardState      [][]int         `json:"board_state,omitempty"`
}

// SaveGame upserts the final record of a game. Upsert handles the rare case
// where a quit races the archiving of the winning move.
func (a *Archive) SaveGame(ctx context.Context, game *domain.Game, reason string) error {
	finishedAt := game.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}
	duration := int(finishedAt.Sub(game.CreatedAt).Seconds())

	var winner *string
	if game.Winner != domain.Empty {
		key := domain.KeyFor(game.Winner)
		winner = &key
	}

	boardJSON, err := json.Marshal(convertBoardToInts(game.Board))
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	query := `
	INSERT INTO archived_games (game_id, player1_name, player2_name, winner, status, reason, total_moves, duration_seconds, created_at, finished_at, board_state)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (game_id) DO UPDATE SET
		winner = EXCLUDED.winner,
		status = EXCLUDED.status,
		reason = EXCLUDED.reason,
		total_moves = EXCLUDED.total_moves,
		duration_seconds = EXCLUDED.duration_seconds,
		finished_at = EXCLUDED.finished_at,
		board_state = EXCLUDED.board_state;
	`

	_, err = a.db.ExecContext(ctx, query,
		game.ID,
		game.Players[domain.Player1Key].Name,
		game.Players[domain.Player2Key].Name,
		winner,
		string(game.Status),
		reason,
		game.MoveCount,
		duration,
		game.CreatedAt,
		finishedAt,
		boardJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert archived game: %w", err)
	}

	return nil
}

// GetGameByID retrieves an archived game, nil when not found.
func (a *Archive) GetGameByID(ctx context.Context, gameID string) (*ArchivedGame, error) {
	query := `
	SELECT game_id, player1_name, player2_name, winner, status, reason,
	       total_moves, duration_seconds, created_at, finished_at, board_state
	FROM archived_games
	WHERE game_id = $1;
	`

	var result ArchivedGame
	var winner sql.NullString
	var boardJSON []byte

	err := a.db.QueryRowContext(ctx, query, gameID).Scan(
		&result.GameID,
		&result.Player1Name,
		&result.Player2Name,
		&winner,
		&result.Status,
		&result.Reason,
		&result.TotalMoves,
		&result.DurationSeconds,
		&result.CreatedAt,
		&result.FinishedAt,
		&boardJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get archived game: %w", err)
	}

	if winner.Valid {
		w := winner.String
		result.Winner = &w
	}
	if boardJSON != nil {
		if err := json.Unmarshal(boardJSON, &result.BoardState); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board state: %w", err)
		}
	}

	return &result, nil
}

// ListRecent returns the most recently finished games, newest first.
func (a *Archive) ListRecent(ctx context.Context, limit int) ([]ArchivedGame, error) {
	query := `
	SELECT game_id, player1_name, player2_name, winner, status, reason,
	       total_moves, duration_seconds, created_at, finished_at
	FROM archived_games
	ORDER BY finished_at DESC
	LIMIT $1;
	`

	rows, err := a.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived games: %w", err)
	}
	defer rows.Close()

	var games []ArchivedGame
	for rows.Next() {
		var result ArchivedGame
		var winner sql.NullString

		err := rows.Scan(
			&result.GameID,
			&result.Player1Name,
			&result.Player2Name,
			&winner,
			&result.Status,
			&result.Reason,
			&result.TotalMoves,
			&result.DurationSeconds,
			&result.CreatedAt,
			&result.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan archived game row: %w", err)
		}

		if winner.Valid {
			w := winner.String
			result.Winner = &w
		}

		games = append(games, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate archived games: %w", err)
	}

	return games, nil
}

func convertBoardToInts(board [][]domain.PlayerID) [][]int {
	intBoard := make([][]int, len(board))
	for i := range board {
		intBoard[i] = make([]int, len(board[i]))
		for j := range board[i] {
			intBoard[i][j] = int(board[i][j])
		}
	}
	return intBoard
}

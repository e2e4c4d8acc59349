package model

import (
	"time"

	"github.com/sahilm23/connect4-api/internal/domain"
)

// GameView is the public representation of a game, shared by the REST
// responses and the websocket snapshots. Board cells are 0 (empty), 1 and 2;
// turn and winner use the roster keys "p1"/"p2". On terminal games the turn
// stays on the last mover, it never flips past the winning move.
type GameView struct {
	ID          string                   `json:"id"`
	Board       [][]int                  `json:"board"`
	Players     map[string]domain.Player `json:"players"`
	CurrentTurn string                   `json:"current_turn"`
	Status      domain.GameStatus        `json:"status"`
	Winner      *string                  `json:"winner"`
	MoveCount   int                      `json:"move_count"`
	CreatedAt   time.Time                `json:"created_at"`
}

func FromGame(game *domain.Game) GameView {
	board := make([][]int, len(game.Board))
	for i := range game.Board {
		board[i] = make([]int, len(game.Board[i]))
		for j := range game.Board[i] {
			board[i][j] = int(game.Board[i][j])
		}
	}

	view := GameView{
		ID:          game.ID,
		Board:       board,
		Players:     game.Players,
		CurrentTurn: domain.KeyFor(game.CurrentPlayer),
		Status:      game.Status,
		MoveCount:   game.MoveCount,
		CreatedAt:   game.CreatedAt,
	}

	if game.Winner != domain.Empty {
		winner := domain.KeyFor(game.Winner)
		view.Winner = &winner
	}

	return view
}

package bot

import (
	"math/rand"

	"github.com/sahilm23/connect4-api/internal/domain"
)

// calculateEasyMove takes an immediate win, blocks an immediate loss, and
// otherwise plays a random valid column.
func calculateEasyMove(board [][]domain.PlayerID, player domain.PlayerID) int {
	validColumns := domain.GetValidMoves(board)
	if len(validColumns) == 0 {
		return -1
	}

	opponent := domain.Opponent(player)

	for _, col := range validColumns {
		testBoard, row, _ := domain.SimulateMove(board, col, player)
		if domain.CheckWin(testBoard, row, col, player) {
			return col
		}
	}

	for _, col := range validColumns {
		testBoard, row, _ := domain.SimulateMove(board, col, opponent)
		if domain.CheckWin(testBoard, row, col, opponent) {
			return col
		}
	}

	return validColumns[rand.Intn(len(validColumns))]
}

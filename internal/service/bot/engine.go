package bot

import (
	"github.com/sahilm23/connect4-api/internal/domain"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// CalculateBestMove selects the best column for the player based on
// difficulty. Returns -1 when the board has no valid moves left.
func CalculateBestMove(board [][]domain.PlayerID, player domain.PlayerID, difficulty string) int {
	switch difficulty {
	case DifficultyEasy:
		return calculateEasyMove(board, player)
	case DifficultyMedium:
		return calculateMediumMove(board, player)
	case DifficultyHard:
		return calculateMinimaxMove(board, player)
	default:
		return calculateMediumMove(board, player)
	}
}

// IsValidDifficulty reports whether the string names a known difficulty.
func IsValidDifficulty(difficulty string) bool {
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

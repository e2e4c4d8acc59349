package bot

import (
	"math"

	"github.com/sahilm23/connect4-api/internal/domain"
)

const (
	minimaxDepth = 7
	minimaxWin   = 1000000
	minimaxLoss  = -1000000
)

// calculateMinimaxMove implements hard difficulty using minimax with
// alpha-beta pruning.
func calculateMinimaxMove(board [][]domain.PlayerID, player domain.PlayerID) int {
	validColumns := domain.GetValidMoves(board)
	if len(validColumns) == 0 {
		return -1
	}

	bestCol := validColumns[0]
	bestScore := math.MinInt32
	alpha := math.MinInt32
	beta := math.MaxInt32

	opponent := domain.Opponent(player)

	for _, col := range validColumns {
		testBoard, row, _ := domain.SimulateMove(board, col, player)

		// if this move wins immediately, take it
		if domain.CheckWin(testBoard, row, col, player) {
			return col
		}

		score := minimax(testBoard, minimaxDepth-1, alpha, beta, false, player, opponent)

		if score > bestScore {
			bestScore = score
			bestCol = col
		}

		alpha = max(alpha, bestScore)
	}

	return bestCol
}

func minimax(board [][]domain.PlayerID, depth int, alpha, beta int, isMaximizing bool, player, opponent domain.PlayerID) int {
	validColumns := domain.GetValidMoves(board)

	if depth == 0 || len(validColumns) == 0 {
		return evaluateBoard(board, player, opponent)
	}

	if isMaximizing {
		maxEval := math.MinInt32
		for _, col := range validColumns {
			testBoard, row, _ := domain.SimulateMove(board, col, player)

			if domain.CheckWin(testBoard, row, col, player) {
				return minimaxWin - (minimaxDepth - depth) // prefer quicker wins
			}

			eval := minimax(testBoard, depth-1, alpha, beta, false, player, opponent)
			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)

			if beta <= alpha {
				break // beta cutoff
			}
		}
		return maxEval
	}

	minEval := math.MaxInt32
	for _, col := range validColumns {
		testBoard, row, _ := domain.SimulateMove(board, col, opponent)

		if domain.CheckWin(testBoard, row, col, opponent) {
			return minimaxLoss + (minimaxDepth - depth) // prefer delaying losses
		}

		eval := minimax(testBoard, depth-1, alpha, beta, true, player, opponent)
		minEval = min(minEval, eval)
		beta = min(beta, eval)

		if beta <= alpha {
			break // alpha cutoff
		}
	}
	return minEval
}

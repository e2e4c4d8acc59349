package bot

import (
	"github.com/sahilm23/connect4-api/internal/domain"
)

const (
	scoreWinNow          = 100000 // can win immediately
	scoreBlockWin        = 10000  // block opponent's immediate win
	scoreCreateWinThreat = 8000   // create a position with a forced win next move
	scoreBlockWinThreat  = 5000   // defuse opponent's win setup
	scoreThreeInRow      = 400
	scoreTwoInRow        = 100
	scoreCenter          = 30
	scoreNearCenter      = 20
	scoreEdge            = 5

	positionWeight   = 10
	twoInRowWeight   = 50
	threeInRowWeight = 500
)

var lineDirections = [][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// evaluateBoard calculates a heuristic score of the whole position from the
// player's point of view, used by the minimax leaf nodes.
func evaluateBoard(board [][]domain.PlayerID, player, opponent domain.PlayerID) int {
	score := 0

	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			switch board[row][col] {
			case player:
				score += evaluatePosition(board, row, col, player)
			case opponent:
				score -= evaluatePosition(board, row, col, opponent)
			}
		}
	}

	// center column preference
	centerCol := domain.Columns / 2
	for row := 0; row < domain.Rows; row++ {
		switch board[row][centerCol] {
		case player:
			score += positionWeight * 2
		case opponent:
			score -= positionWeight * 2
		}
	}

	return score
}

func evaluatePosition(board [][]domain.PlayerID, row, col int, player domain.PlayerID) int {
	score := positionWeight

	for _, dir := range lineDirections {
		dRow, dCol := dir[0], dir[1]

		posCount := domain.CountDiskInDirection(board, row, col, dRow, dCol, player)
		negCount := domain.CountDiskInDirection(board, row, col, -dRow, -dCol, player)
		total := posCount + negCount

		if !hasSpaceForExtension(board, row, col, dRow, dCol, posCount, negCount) {
			continue
		}

		if total >= 3 {
			score += threeInRowWeight
		} else if total == 2 {
			score += twoInRowWeight
		}
	}

	return score
}

// evaluateThreats scores connected runs through (row, col) that can still be
// extended into four.
func evaluateThreats(board [][]domain.PlayerID, row, col int, player domain.PlayerID) int {
	score := 0

	for _, dir := range lineDirections {
		dRow, dCol := dir[0], dir[1]

		posCount := domain.CountDiskInDirection(board, row, col, dRow, dCol, player)
		negCount := domain.CountDiskInDirection(board, row, col, -dRow, -dCol, player)
		total := posCount + negCount

		if !hasSpaceForExtension(board, row, col, dRow, dCol, posCount, negCount) {
			continue
		}

		if total >= 3 {
			score += scoreThreeInRow
		} else if total == 2 {
			score += scoreTwoInRow
		} else if total == 1 {
			score += 25
		}
	}

	return score
}

// evaluateWinningThreat scores how close the player is to an unstoppable win:
// two simultaneous winning columns cannot both be blocked.
func evaluateWinningThreat(board [][]domain.PlayerID, player, opponent domain.PlayerID) int {
	validMoves := domain.GetValidMoves(board)
	winningMoves := []int{}

	for _, col := range validMoves {
		testBoard, row, _ := domain.SimulateMove(board, col, player)
		if domain.CheckWin(testBoard, row, col, player) {
			winningMoves = append(winningMoves, col)
		}
	}

	if len(winningMoves) >= 2 {
		return scoreCreateWinThreat
	}

	if len(winningMoves) == 1 {
		// simulate the opponent blocking the single winning column
		blockBoard, _, _ := domain.SimulateMove(board, winningMoves[0], opponent)

		for _, nextCol := range domain.GetValidMoves(blockBoard) {
			futureBoard, futureRow, _ := domain.SimulateMove(blockBoard, nextCol, player)
			if domain.CheckWin(futureBoard, futureRow, nextCol, player) {
				return scoreCreateWinThreat / 2 // blockable but still valuable
			}
		}

		return scoreCreateWinThreat / 4 // easily blockable
	}

	return 0
}

func hasSpaceForExtension(board [][]domain.PlayerID, row, col, dRow, dCol, posCount, negCount int) bool {
	posRow := row + dRow*(posCount+1)
	posCol := col + dCol*(posCount+1)
	if isInBounds(posRow, posCol) && board[posRow][posCol] == domain.Empty && isPlayableSpace(board, posRow, posCol) {
		return true
	}

	negRow := row - dRow*(negCount+1)
	negCol := col - dCol*(negCount+1)
	if isInBounds(negRow, negCol) && board[negRow][negCol] == domain.Empty && isPlayableSpace(board, negRow, negCol) {
		return true
	}

	return false
}

// isPlayableSpace respects gravity: a cell is reachable only if it sits on
// the bottom row or directly on top of another disk.
func isPlayableSpace(board [][]domain.PlayerID, row, col int) bool {
	if row == domain.Rows-1 {
		return true
	}
	return board[row+1][col] != domain.Empty
}

func isInBounds(row, col int) bool {
	return row >= 0 && row < domain.Rows && col >= 0 && col < domain.Columns
}

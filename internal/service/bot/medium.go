package bot

import (
	"math"

	"github.com/sahilm23/connect4-api/internal/domain"
)

type simulation struct {
	board [][]domain.PlayerID
	row   int
}

// calculateMediumMove scores every valid column with a layered heuristic:
// immediate wins, blocks, two-move threats, positional strength and center
// preference.
func calculateMediumMove(board [][]domain.PlayerID, player domain.PlayerID) int {
	validColumns := domain.GetValidMoves(board)
	if len(validColumns) == 0 {
		return -1
	}

	opponent := domain.Opponent(player)
	scores := make(map[int]int, len(validColumns))

	// pre-calculate simulated boards per column for both sides
	botSimulations := make(map[int]simulation, len(validColumns))
	oppSimulations := make(map[int]simulation, len(validColumns))
	for _, col := range validColumns {
		scores[col] = 0

		botBoard, botRow, _ := domain.SimulateMove(board, col, player)
		botSimulations[col] = simulation{botBoard, botRow}

		oppBoard, oppRow, _ := domain.SimulateMove(board, col, opponent)
		oppSimulations[col] = simulation{oppBoard, oppRow}
	}

	// phase 1: immediate wins
	for _, col := range validColumns {
		sim := botSimulations[col]
		if domain.CheckWin(sim.board, sim.row, col, player) {
			scores[col] += scoreWinNow
		}
	}

	// phase 2: block opponent's immediate wins
	for _, col := range validColumns {
		sim := oppSimulations[col]
		if domain.CheckWin(sim.board, sim.row, col, opponent) {
			scores[col] += scoreBlockWin
		}
	}

	// phase 3: create winning threats that survive the opponent's response
	for _, col := range validColumns {
		sim := botSimulations[col]
		scores[col] += evaluateWinningThreat(sim.board, player, opponent)
	}

	// phase 4: reduce opponent's winning threats
	currentOpponentThreat := evaluateWinningThreat(board, opponent, player)
	for _, col := range validColumns {
		sim := botSimulations[col]
		if evaluateWinningThreat(sim.board, opponent, player) < currentOpponentThreat {
			scores[col] += scoreBlockWinThreat
		}
	}

	// phase 5: positional strength of the resulting boards
	for _, col := range validColumns {
		botSim := botSimulations[col]
		scores[col] += evaluateThreats(botSim.board, botSim.row, col, player)

		// half value for blocking versus creating
		oppSim := oppSimulations[col]
		scores[col] += evaluateThreats(oppSim.board, oppSim.row, col, opponent) / 2
	}

	// phase 6: center preference
	center := domain.Columns / 2
	for _, col := range validColumns {
		distFromCenter := col - center
		if distFromCenter < 0 {
			distFromCenter = -distFromCenter
		}

		switch distFromCenter {
		case 0:
			scores[col] += scoreCenter
		case 1:
			scores[col] += scoreNearCenter
		case 2:
			scores[col] += scoreEdge
		}
	}

	return findBestColumn(scores)
}

func findBestColumn(scores map[int]int) int {
	maxScore := math.MinInt32
	bestColumn := domain.Columns / 2

	for col := 0; col < domain.Columns; col++ {
		score, exists := scores[col]
		if !exists {
			continue
		}

		if score > maxScore {
			maxScore = score
			bestColumn = col
		} else if score == maxScore {
			// tie-breaker: prefer columns closer to center
			center := domain.Columns / 2
			if abs(col-center) < abs(bestColumn-center) {
				bestColumn = col
			}
		}
	}

	return bestColumn
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

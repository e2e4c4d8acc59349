package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilm23/connect4-api/internal/domain"
)

func boardWithDrops(t *testing.T, drops map[int][]domain.PlayerID) [][]domain.PlayerID {
	t.Helper()
	board := domain.NewBoard()
	for col, players := range drops {
		for _, p := range players {
			_, err := domain.DropDisk(board, col, p)
			require.NoError(t, err)
		}
	}
	return board
}

func TestCalculateBestMove_ReturnsValidColumn(t *testing.T) {
	board := domain.NewBoard()

	for _, difficulty := range []string{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		t.Run(difficulty, func(t *testing.T) {
			col := CalculateBestMove(board, domain.Player2, difficulty)
			assert.True(t, domain.IsValidMove(board, col), "difficulty %s returned column %d", difficulty, col)
		})
	}
}

func TestCalculateBestMove_TakesImmediateWin(t *testing.T) {
	// Player2 has three in column 5; dropping a fourth wins.
	board := boardWithDrops(t, map[int][]domain.PlayerID{
		5: {domain.Player2, domain.Player2, domain.Player2},
		0: {domain.Player1, domain.Player1},
		1: {domain.Player1},
	})

	for _, difficulty := range []string{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		t.Run(difficulty, func(t *testing.T) {
			assert.Equal(t, 5, CalculateBestMove(board, domain.Player2, difficulty))
		})
	}
}

func TestCalculateBestMove_BlocksImmediateLoss(t *testing.T) {
	// Player1 threatens a vertical four in column 2.
	board := boardWithDrops(t, map[int][]domain.PlayerID{
		2: {domain.Player1, domain.Player1, domain.Player1},
		4: {domain.Player2, domain.Player2},
	})

	for _, difficulty := range []string{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		t.Run(difficulty, func(t *testing.T) {
			assert.Equal(t, 2, CalculateBestMove(board, domain.Player2, difficulty))
		})
	}
}

func TestCalculateBestMove_FullBoard(t *testing.T) {
	board := domain.NewBoard()
	for col := 0; col < domain.Columns; col++ {
		player := domain.Player1
		// alternate colors in two-row bands so nobody has four
		for row := 0; row < domain.Rows; row++ {
			p := player
			if (row/2+col)%2 == 1 {
				p = domain.Opponent(player)
			}
			_, err := domain.DropDisk(board, col, p)
			require.NoError(t, err)
		}
	}
	require.True(t, domain.IsBoardFull(board))

	assert.Equal(t, -1, CalculateBestMove(board, domain.Player1, DifficultyMedium))
}

func TestIsValidDifficulty(t *testing.T) {
	assert.True(t, IsValidDifficulty(DifficultyEasy))
	assert.True(t, IsValidDifficulty(DifficultyMedium))
	assert.True(t, IsValidDifficulty(DifficultyHard))
	assert.False(t, IsValidDifficulty("impossible"))
	assert.False(t, IsValidDifficulty(""))
}

package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame() *Game {
	return NewGame("g1", "Alice", "Bob", 2)
}

func TestNewGame(t *testing.T) {
	game := newTestGame()

	assert.Equal(t, StatusInProgress, game.Status)
	assert.Equal(t, Player1, game.CurrentPlayer)
	assert.Equal(t, Empty, game.Winner)
	assert.Equal(t, 0, game.MoveCount)

	require.Len(t, game.Board, Rows)
	for _, row := range game.Board {
		require.Len(t, row, Columns)
		for _, cell := range row {
			assert.Equal(t, Empty, cell)
		}
	}

	assert.Equal(t, "red", game.Players[Player1Key].Color)
	assert.Equal(t, "yellow", game.Players[Player2Key].Color)
}

func TestNewGame_PlayerTypes(t *testing.T) {
	tests := []struct {
		name            string
		numHumanPlayers int
		wantP1          PlayerType
		wantP2          PlayerType
	}{
		{"two humans", 2, PlayerTypeHuman, PlayerTypeHuman},
		{"one human", 1, PlayerTypeHuman, PlayerTypeComputer},
		{"zero humans", 0, PlayerTypeComputer, PlayerTypeComputer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := NewGame("g1", "a", "b", tt.numHumanPlayers)
			assert.Equal(t, tt.wantP1, game.Players[Player1Key].Type)
			assert.Equal(t, tt.wantP2, game.Players[Player2Key].Type)
		})
	}
}

func TestMakeMove_DropsToLowestEmptyRow(t *testing.T) {
	game := newTestGame()

	row, err := game.MakeMove(Player1, 3)
	require.NoError(t, err)
	assert.Equal(t, Rows-1, row)
	assert.Equal(t, Player1, game.Board[Rows-1][3])

	row, err = game.MakeMove(Player2, 3)
	require.NoError(t, err)
	assert.Equal(t, Rows-2, row)
	assert.Equal(t, Player2, game.Board[Rows-2][3])
}

func TestMakeMove_AlternatesTurn(t *testing.T) {
	game := newTestGame()

	for i := 0; i < 4; i++ {
		expected := Player1
		if i%2 == 1 {
			expected = Player2
		}
		assert.Equal(t, expected, game.CurrentPlayer)

		_, err := game.MakeMove(game.CurrentPlayer, i)
		require.NoError(t, err)
	}
}

func TestMakeMove_NotYourTurn(t *testing.T) {
	game := newTestGame()

	_, err := game.MakeMove(Player2, 0)
	assert.ErrorIs(t, err, ErrNotYourTurn)
	assert.Equal(t, 0, game.MoveCount)
}

func TestMakeMove_ColumnOutOfRange(t *testing.T) {
	game := newTestGame()

	for _, column := range []int{-1, Columns, 42} {
		_, err := game.MakeMove(Player1, column)
		assert.ErrorIs(t, err, ErrInvalidMove)
	}
}

func TestMakeMove_FullColumn(t *testing.T) {
	for column := 0; column < Columns; column++ {
		t.Run(fmt.Sprintf("column %d", column), func(t *testing.T) {
			game := newTestGame()

			// both players drop into the same column so it fills without a win
			for i := 0; i < Rows; i++ {
				_, err := game.MakeMove(game.CurrentPlayer, column)
				require.NoError(t, err)
			}
			require.False(t, IsValidMove(game.Board, column))
			require.Equal(t, StatusInProgress, game.Status)

			before := game.MoveCount
			_, err := game.MakeMove(game.CurrentPlayer, column)
			assert.ErrorIs(t, err, ErrColumnFull)
			assert.Equal(t, before, game.MoveCount)
		})
	}
}

func TestMakeMove_VerticalWin(t *testing.T) {
	// Player1 drops in column 3 four times while Player2 plays elsewhere.
	game := newTestGame()

	moves := []int{3, 0, 3, 1, 3, 2, 3}
	for _, col := range moves[:len(moves)-1] {
		_, err := game.MakeMove(game.CurrentPlayer, col)
		require.NoError(t, err)
		assert.Equal(t, StatusInProgress, game.Status)
	}

	_, err := game.MakeMove(Player1, 3)
	require.NoError(t, err)

	assert.Equal(t, StatusWon, game.Status)
	assert.Equal(t, Player1, game.Winner)
	assert.True(t, game.IsFinished())
	assert.False(t, game.FinishedAt.IsZero())
}

func TestMakeMove_HorizontalWin(t *testing.T) {
	game := newTestGame()

	moves := []int{0, 0, 1, 1, 2, 2}
	for _, col := range moves {
		_, err := game.MakeMove(game.CurrentPlayer, col)
		require.NoError(t, err)
	}

	_, err := game.MakeMove(Player1, 3)
	require.NoError(t, err)

	assert.Equal(t, StatusWon, game.Status)
	assert.Equal(t, Player1, game.Winner)
}

func TestMakeMove_DiagonalWin(t *testing.T) {
	// Build the stacks for a / diagonal won by Player1:
	// columns 0..3 end up with Player1 at heights 0..3.
	game := newTestGame()

	moves := []int{0, 1, 1, 2, 2, 3, 2, 3, 3, 5, 3}
	for i, col := range moves {
		_, err := game.MakeMove(game.CurrentPlayer, col)
		require.NoError(t, err, "move %d (column %d)", i, col)
	}

	assert.Equal(t, StatusWon, game.Status)
	assert.Equal(t, Player1, game.Winner)
}

func TestMakeMove_AntiDiagonalWin(t *testing.T) {
	// Mirror of the diagonal case: \ diagonal from column 6 down to 3.
	game := newTestGame()

	moves := []int{6, 5, 5, 4, 4, 3, 4, 3, 3, 1, 3}
	for i, col := range moves {
		_, err := game.MakeMove(game.CurrentPlayer, col)
		require.NoError(t, err, "move %d (column %d)", i, col)
	}

	assert.Equal(t, StatusWon, game.Status)
	assert.Equal(t, Player1, game.Winner)
}

func TestMakeMove_TerminalGameRejectsMoves(t *testing.T) {
	game := newTestGame()

	moves := []int{3, 0, 3, 1, 3, 2, 3}
	for _, col := range moves {
		_, err := game.MakeMove(game.CurrentPlayer, col)
		require.NoError(t, err)
	}
	require.Equal(t, StatusWon, game.Status)

	boardBefore := CopyBoard(game.Board)
	movesBefore := game.MoveCount

	for _, player := range []PlayerID{Player1, Player2} {
		for col := 0; col < Columns; col++ {
			_, err := game.MakeMove(player, col)
			assert.ErrorIs(t, err, ErrGameFinished)
		}
	}

	assert.Equal(t, boardBefore, game.Board)
	assert.Equal(t, movesBefore, game.MoveCount)
	assert.Equal(t, Player1, game.Winner)
}

// drawnBoardCell returns the disk at (row, col) in a known drawn position:
// colors alternate per column and flip every two rows, so no line of four
// exists anywhere on the full board.
func drawnBoardCell(row, col int) PlayerID {
	first := Player1
	if col%2 == 1 {
		first = Player2
	}
	if (row/2)%2 == 1 {
		return Opponent(first)
	}
	return first
}

func TestMakeMove_Draw(t *testing.T) {
	// Fill everything except the top of column 6, then let the final move
	// complete the board through the engine.
	game := newTestGame()
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			game.Board[r][c] = drawnBoardCell(r, c)
		}
	}
	game.Board[0][6] = Empty
	game.MoveCount = Rows*Columns - 1
	game.CurrentPlayer = drawnBoardCell(0, 6)

	row, err := game.MakeMove(game.CurrentPlayer, 6)
	require.NoError(t, err)
	assert.Equal(t, 0, row)

	require.True(t, IsBoardFull(game.Board))
	assert.Equal(t, StatusDraw, game.Status)
	assert.Equal(t, Empty, game.Winner)
	assert.True(t, game.IsFinished())
}

func TestGame_GravityInvariant(t *testing.T) {
	game := newTestGame()

	moves := []int{3, 3, 2, 4, 3, 2, 0, 6, 5, 1}
	for _, col := range moves {
		_, err := game.MakeMove(game.CurrentPlayer, col)
		require.NoError(t, err)
	}

	// no occupied cell may sit above an empty cell in the same column
	for c := 0; c < Columns; c++ {
		for r := 1; r < Rows; r++ {
			if game.Board[r][c] == Empty {
				assert.Equal(t, Empty, game.Board[r-1][c], "cell above empty (%d,%d) must be empty", r, c)
			}
		}
	}
}

func TestGame_Restart(t *testing.T) {
	game := newTestGame()

	moves := []int{3, 0, 3, 1, 3, 2, 3}
	for _, col := range moves {
		_, err := game.MakeMove(game.CurrentPlayer, col)
		require.NoError(t, err)
	}
	require.Equal(t, StatusWon, game.Status)

	players := game.Players
	game.Restart()

	assert.Equal(t, StatusInProgress, game.Status)
	assert.Equal(t, Player1, game.CurrentPlayer)
	assert.Equal(t, Empty, game.Winner)
	assert.Equal(t, 0, game.MoveCount)
	assert.Equal(t, players, game.Players)
	assert.True(t, game.FinishedAt.IsZero())

	for _, row := range game.Board {
		for _, cell := range row {
			assert.Equal(t, Empty, cell)
		}
	}
}

func TestPlayerKeyMapping(t *testing.T) {
	p, ok := PlayerByKey(Player1Key)
	require.True(t, ok)
	assert.Equal(t, Player1, p)

	p, ok = PlayerByKey(Player2Key)
	require.True(t, ok)
	assert.Equal(t, Player2, p)

	_, ok = PlayerByKey("p3")
	assert.False(t, ok)

	assert.Equal(t, Player1Key, KeyFor(Player1))
	assert.Equal(t, Player2Key, KeyFor(Player2))
	assert.Equal(t, "", KeyFor(Empty))
}

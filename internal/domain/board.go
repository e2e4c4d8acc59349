package domain

func NewBoard() [][]PlayerID {
	board := make([][]PlayerID, Rows)
	for i := range board {
		board[i] = make([]PlayerID, Columns)
	}
	return board
}

func IsValidMove(board [][]PlayerID, column int) bool {
	if column < 0 || column >= Columns {
		return false
	}

	// board[0] is the top row, so an empty top cell means the column has room
	if board[0][column] != Empty {
		return false
	}

	return true
}

// DropDisk places a disk in the lowest empty row of the column and
// returns the row it landed in.
func DropDisk(board [][]PlayerID, column int, player PlayerID) (int, error) {
	for row := Rows - 1; row >= 0; row-- {
		if board[row][column] == Empty {
			board[row][column] = player
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

func IsBoardFull(board [][]PlayerID) bool {
	for c := 0; c < Columns; c++ {
		if board[0][c] == Empty {
			return false
		}
	}

	return true
}

// CopyBoard creates a deep copy of the board.
func CopyBoard(board [][]PlayerID) [][]PlayerID {
	newBoard := make([][]PlayerID, len(board))
	for i := range board {
		newBoard[i] = make([]PlayerID, len(board[i]))
		copy(newBoard[i], board[i])
	}
	return newBoard
}

// GetValidMoves lists the columns that still have room, used by the bot.
func GetValidMoves(board [][]PlayerID) []int {
	validMoves := []int{}
	for col := 0; col < Columns; col++ {
		if IsValidMove(board, col) {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

// SimulateMove drops a disk on a copy of the board and returns the result.
func SimulateMove(board [][]PlayerID, column int, player PlayerID) ([][]PlayerID, int, error) {
	newBoard := CopyBoard(board)
	row, err := DropDisk(newBoard, column, player)
	if err != nil {
		return nil, -1, err
	}
	return newBoard, row, nil
}

// CountDiskInDirection counts consecutive disks of a player starting next to
// (row, column) and walking in the given direction.
func CountDiskInDirection(board [][]PlayerID, row, column int, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for r >= 0 && r < Rows && c >= 0 && c < Columns && board[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}

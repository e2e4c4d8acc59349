package domain

// CheckWin reports whether the disk just placed at (row, column) completes
// four in a row. Only the lines passing through that position are scanned,
// which is cheaper than checking the whole board after every move.
func CheckWin(board [][]PlayerID, row, column int, player PlayerID) bool {
	// horizontal (through this row)
	count := 0
	for c := 0; c < Columns; c++ {
		if board[row][c] == player {
			count++
			if count == ToWin {
				return true
			}
		} else {
			count = 0
		}
	}

	// vertical (through this column)
	count = 0
	for r := 0; r < Rows; r++ {
		if board[r][column] == player {
			count++
			if count == ToWin {
				return true
			}
		} else {
			count = 0
		}
	}

	// diagonal \ (through this position)
	count = 0
	startRow, startCol := row, column
	for startRow > 0 && startCol > 0 {
		startRow--
		startCol--
	}
	for startRow < Rows && startCol < Columns {
		if board[startRow][startCol] == player {
			count++
			if count == ToWin {
				return true
			}
		} else {
			count = 0
		}
		startRow++
		startCol++
	}

	// diagonal / (through this position)
	count = 0
	startRow, startCol = row, column
	for startRow < Rows-1 && startCol > 0 {
		startRow++
		startCol--
	}
	for startRow >= 0 && startCol < Columns {
		if board[startRow][startCol] == player {
			count++
			if count == ToWin {
				return true
			}
		} else {
			count = 0
		}
		startRow--
		startCol++
	}

	return false
}

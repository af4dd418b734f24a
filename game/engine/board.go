package engine

// CreateInitialBoard allocates a fresh boardSize x boardSize board with every
// cell unvisited. A non-positive size yields an empty board.
func CreateInitialBoard(boardSize int) Board {
	if boardSize <= 0 {
		return Board{}
	}
	board := make(Board, boardSize)
	for r := range board {
		board[r] = make([]Cell, boardSize)
	}
	return board
}

// Size returns the side length of the board
func (b Board) Size() int {
	return len(b)
}

// Contains reports whether the coordinate lies on the board
func (b Board) Contains(pos Coordinate) bool {
	return IsValidSquare(pos.Row, pos.Col, len(b))
}

// At returns a pointer to the cell at pos. The caller must check Contains first.
func (b Board) At(pos Coordinate) *Cell {
	return &b[pos.Row][pos.Col]
}

// Clone returns a deep copy that shares no rows with b
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for r, row := range b {
		out[r] = make([]Cell, len(row))
		copy(out[r], row)
	}
	return out
}

// CountVisited returns how many cells have been visited
func (b Board) CountVisited() int {
	count := 0
	for _, row := range b {
		for _, cell := range row {
			if cell.Visited {
				count++
			}
		}
	}
	return count
}

// IsComplete reports whether every cell has been visited
func (b Board) IsComplete() bool {
	n := len(b)
	return n > 0 && b.CountVisited() == n*n
}

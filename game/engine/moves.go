package engine

// Knight displacements, paired positionally. The order is part of the
// contract of GetValidMoves.
var (
	knightRowOffsets = [8]int{-2, -2, -1, -1, 1, 1, 2, 2}
	knightColOffsets = [8]int{-1, 1, -2, 2, -2, 2, -1, 1}
)

// IsValidSquare reports whether (r, c) lies on a boardSize x boardSize board
func IsValidSquare(r, c, boardSize int) bool {
	return r >= 0 && r < boardSize && c >= 0 && c < boardSize
}

// GetValidMoves returns the on-board knight destinations from (r, c) in
// offset-table order. Visited squares are not filtered out.
func GetValidMoves(r, c, boardSize int) []Coordinate {
	moves := make([]Coordinate, 0, len(knightRowOffsets))
	for i := range knightRowOffsets {
		nr, nc := r+knightRowOffsets[i], c+knightColOffsets[i]
		if IsValidSquare(nr, nc, boardSize) {
			moves = append(moves, Coordinate{Row: nr, Col: nc})
		}
	}
	return moves
}

// IsKnightMove reports whether to is one knight jump away from from
func IsKnightMove(from, to Coordinate) bool {
	dr, dc := abs(to.Row-from.Row), abs(to.Col-from.Col)
	return (dr == 1 && dc == 2) || (dr == 2 && dc == 1)
}

// UnvisitedMoves returns the knight destinations from pos that are still unvisited
func UnvisitedMoves(board Board, pos Coordinate) []Coordinate {
	var result []Coordinate
	for _, m := range GetValidMoves(pos.Row, pos.Col, board.Size()) {
		if !board.At(m).Visited {
			result = append(result, m)
		}
	}
	if result == nil {
		result = []Coordinate{}
	}
	return result
}

// containsCoordinate reports whether target appears in moves
func containsCoordinate(moves []Coordinate, target Coordinate) bool {
	for _, m := range moves {
		if m == target {
			return true
		}
	}
	return false
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

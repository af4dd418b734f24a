package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidSquare = errors.New("invalid square")

// ColumnLabel returns the display letter for a 0-based column index
func ColumnLabel(col int) string {
	if col < 0 || col >= MaxBoardSize {
		return "?"
	}
	return string(rune('A' + col))
}

// SquareName returns the compact name of a square, column letter then 1-based row ("C2")
func SquareName(pos Coordinate) string {
	return fmt.Sprintf("%s%d", ColumnLabel(pos.Col), pos.Row+1)
}

// DisplayName renders a square the way status messages show it: "(2, C)"
func DisplayName(pos Coordinate) string {
	return fmt.Sprintf("(%d, %s)", pos.Row+1, ColumnLabel(pos.Col))
}

// ParseSquare parses a compact square name such as "C2" or "c2"
func ParseSquare(name string) (Coordinate, error) {
	name = strings.TrimSpace(strings.ToUpper(name))
	if len(name) < 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	letter := name[0]
	if letter < 'A' || letter > 'Z' {
		return Coordinate{}, fmt.Errorf("%w: %q has no column letter", ErrInvalidSquare, name)
	}
	row, err := strconv.Atoi(name[1:])
	if err != nil || row < 1 {
		return Coordinate{}, fmt.Errorf("%w: %q has no row number", ErrInvalidSquare, name)
	}
	return Coordinate{Row: row - 1, Col: int(letter - 'A')}, nil
}

// AccessibilityGrid returns, for every square of an n x n board, the number
// of knight moves available from it on an empty board.
func AccessibilityGrid(n int) [][]int {
	if n <= 0 {
		return [][]int{}
	}
	grid := make([][]int, n)
	for r := range grid {
		grid[r] = make([]int, n)
		for c := range grid[r] {
			grid[r][c] = len(GetValidMoves(r, c, n))
		}
	}
	return grid
}

// CountPositionsWithDegree counts squares of an n x n board with exactly degree moves
func CountPositionsWithDegree(n, degree int) int {
	count := 0
	for _, row := range AccessibilityGrid(n) {
		for _, d := range row {
			if d == degree {
				count++
			}
		}
	}
	return count
}

// AnalyzeMobility grades how close the knight is to a dead end
func AnalyzeMobility(state *GameState) string {
	if state.Status != InProgress {
		return ""
	}
	switch n := len(state.NextMoves); {
	case n == 0:
		return "STUCK"
	case n == 1:
		return "CRITICAL"
	case n == 2:
		return "LOW"
	default:
		return "OK"
	}
}

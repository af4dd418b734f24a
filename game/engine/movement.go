package engine

import (
	"fmt"
	"time"
)

// CanMoveTo checks if the knight can legally jump to pos right now
func (gs *GameState) CanMoveTo(pos Coordinate) bool {
	if gs.Status != InProgress || gs.CurrentPos == nil {
		return false
	}
	if !gs.Board.Contains(pos) || gs.Board.At(pos).Visited {
		return false
	}
	return containsCoordinate(GetValidMoves(gs.CurrentPos.Row, gs.CurrentPos.Col, gs.BoardSize), pos)
}

// ApplyClick runs one click through the game state machine. It returns
// whether the click changed the board and a reason code describing the outcome.
func (gs *GameState) ApplyClick(pos Coordinate, config *GameConfig) (bool, string) {
	m := config.messages()
	defer gs.UpdateBoardVisuals()

	if !IsValidSquare(pos.Row, pos.Col, gs.BoardSize) {
		gs.Message = fmt.Sprintf(m.InvalidSquare, DisplayName(pos))
		return false, ReasonInvalidSquare
	}

	switch gs.Status {
	case NotStarted:
		gs.visit(pos)
		gs.Status = InProgress
		gs.Message = fmt.Sprintf(m.Placed, DisplayName(pos))
		gs.checkOutcome(m)
		return true, ReasonPlaced

	case InProgress:
		if gs.Board.At(pos).Visited {
			gs.Message = fmt.Sprintf(m.AlreadyVisited, DisplayName(pos))
			return false, ReasonVisited
		}
		if !gs.CanMoveTo(pos) {
			gs.Message = fmt.Sprintf(m.InvalidMove, DisplayName(pos))
			return false, ReasonInvalidMove
		}
		gs.visit(pos)
		gs.Message = fmt.Sprintf(m.Moved, gs.StepCount, DisplayName(pos))
		gs.checkOutcome(m)
		return true, ReasonMoved

	default:
		gs.Message = m.GameOver
		return false, ReasonGameOver
	}
}

// visit marks pos as the next step of the tour
func (gs *GameState) visit(pos Coordinate) {
	gs.StepCount++
	cell := gs.Board.At(pos)
	cell.Visited = true
	cell.Step = gs.StepCount
	current := pos
	gs.CurrentPos = &current
	gs.AddMoveToHistory(pos)
}

// checkOutcome moves the game to Won or Lost once the tour completes or dead-ends
func (gs *GameState) checkOutcome(m Messages) {
	if gs.StepCount == gs.BoardSize*gs.BoardSize {
		gs.Status = Won
		gs.GameOver = true
		gs.Victory = true
		gs.Message = fmt.Sprintf(m.Won, gs.StepCount)
		return
	}
	if len(UnvisitedMoves(gs.Board, *gs.CurrentPos)) == 0 {
		gs.Status = Lost
		gs.GameOver = true
		gs.Message = fmt.Sprintf(m.Lost, gs.StepCount)
	}
}

// UpdateBoardVisuals recomputes the current-square and next-move flags
func (gs *GameState) UpdateBoardVisuals() {
	for r := range gs.Board {
		for c := range gs.Board[r] {
			gs.Board[r][c].IsCurrent = false
			gs.Board[r][c].IsNextMove = false
		}
	}

	gs.NextMoves = []Coordinate{}
	if gs.CurrentPos == nil || !gs.Board.Contains(*gs.CurrentPos) {
		gs.Mobility = ""
		return
	}
	gs.Board.At(*gs.CurrentPos).IsCurrent = true

	if gs.Status == InProgress {
		gs.NextMoves = UnvisitedMoves(gs.Board, *gs.CurrentPos)
		if gs.ShowHints {
			for _, m := range gs.NextMoves {
				gs.Board.At(m).IsNextMove = true
			}
		}
	}
	gs.Mobility = AnalyzeMobility(gs)
}

// AddMoveToHistory appends the square just visited to the move history
func (gs *GameState) AddMoveToHistory(pos Coordinate) {
	gs.MoveHistory = append(gs.MoveHistory, MoveHistoryEntry{
		Row:       pos.Row,
		Col:       pos.Col,
		Step:      gs.StepCount,
		Square:    SquareName(pos),
		Timestamp: time.Now().Unix(),
	})
}

package engine

import "time"

// Status is the lifecycle state of a single game
type Status string

const (
	NotStarted Status = "not_started"
	InProgress Status = "in_progress"
	Won        Status = "won"
	Lost       Status = "lost"

	// Validation constants
	MinBoardSize     = 1
	MaxBoardSize     = 26 // column labels run A..Z
	DefaultBoardSize = 8
	MaxBulkMoves     = MaxBoardSize * MaxBoardSize

	DefaultCompetitionTimeLimit = 600 * time.Second
)

// DefaultCompetitionLevels are the board sizes played in order during a competition
var DefaultCompetitionLevels = []int{5, 6, 7, 8, 9, 10}

// Reason codes attached to click outcomes
const (
	ReasonPlaced        = "placed"
	ReasonMoved         = "moved"
	ReasonInvalidSquare = "invalid_square"
	ReasonVisited       = "already_visited"
	ReasonInvalidMove   = "invalid_move"
	ReasonGameOver      = "game_over"
	ReasonLevelReset    = "level_reset"
	ReasonLevelAdvanced = "level_advanced"
	ReasonTimedOut      = "timed_out"
)

// Cell represents a single board square
type Cell struct {
	Visited    bool `json:"visited"`
	Step       int  `json:"step"` // 1-based visit order, 0 until visited
	IsCurrent  bool `json:"is_current"`
	IsNextMove bool `json:"is_next_move"`
}

// Board is a square, row-major grid of cells
type Board [][]Cell

// Coordinate is a 0-indexed (row, col) pair
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// MoveHistoryEntry records one visited square
type MoveHistoryEntry struct {
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Step      int    `json:"step"`
	Square    string `json:"square"`
	Timestamp int64  `json:"timestamp"`
}

// Coordinate returns the square the entry refers to
func (m MoveHistoryEntry) Coordinate() Coordinate {
	return Coordinate{Row: m.Row, Col: m.Col}
}

// CompetitionState tracks a timed ladder of board sizes
type CompetitionState struct {
	Active           bool      `json:"active"`
	Level            int       `json:"level"` // 1-based index into Levels
	Levels           []int     `json:"levels"`
	TimeLimitSeconds int       `json:"time_limit_seconds"`
	StartedAt        time.Time `json:"started_at"`
	Deadline         time.Time `json:"deadline"`
	TimeLeftSeconds  int       `json:"time_left_seconds"`
	Failures         int       `json:"failures"`
	Completed        bool      `json:"completed"`
	TimedOut         bool      `json:"timed_out"`
}

// GameState represents the complete state of one game session
type GameState struct {
	Board       Board              `json:"board"`
	BoardSize   int                `json:"board_size"`
	Status      Status             `json:"status"`
	CurrentPos  *Coordinate        `json:"current_pos"`
	StepCount   int                `json:"step_count"`
	MoveHistory []MoveHistoryEntry `json:"move_history"`
	Message     string             `json:"message"`
	GameOver    bool               `json:"game_over"`
	Victory     bool               `json:"victory"`
	ConfigName  string             `json:"config_name"`
	ShowHints   bool               `json:"show_hints"`

	// NextMoves lists the legal unvisited targets from the current square,
	// independent of ShowHints.
	NextMoves []Coordinate `json:"next_moves"`

	// TotalClicks counts every click since the session started and is kept across resets.
	TotalClicks int `json:"total_clicks"`

	Competition *CompetitionState `json:"competition,omitempty"`

	// Computed helper view (not required for core game logic)
	Mobility string `json:"mobility,omitempty"`
}

// Clone returns a deep copy of the state that shares nothing with the original
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	c := *gs
	c.Board = gs.Board.Clone()
	if gs.CurrentPos != nil {
		pos := *gs.CurrentPos
		c.CurrentPos = &pos
	}
	c.MoveHistory = append([]MoveHistoryEntry{}, gs.MoveHistory...)
	c.NextMoves = append([]Coordinate{}, gs.NextMoves...)
	if gs.Competition != nil {
		comp := *gs.Competition
		comp.Levels = append([]int(nil), gs.Competition.Levels...)
		c.Competition = &comp
	}
	return &c
}

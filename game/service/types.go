package service

import (
	"time"

	"github.com/wricardo/knights-tour/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a single click
type MoveResult struct {
	Success     bool              `json:"success"`
	Reason      string            `json:"reason"`
	GameState   *engine.GameState `json:"game_state"`
	Message     string            `json:"message"`
	Events      []GameEvent       `json:"events,omitempty"`
	Step        *StepInfo         `json:"step,omitempty"`
	AttemptedTo *AttemptInfo      `json:"attempted_to,omitempty"`
}

// BulkMoveResult contains the result of a sequence of clicks
type BulkMoveResult struct {
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // click reason code, or won|lost|game_over
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	StartPos  *engine.Coordinate `json:"start_pos"`
	EndPos    *engine.Coordinate `json:"end_pos"`
	StartStep int                `json:"start_step"`
	EndStep   int                `json:"end_step"`

	Steps       []StepInfo   `json:"steps,omitempty"`
	AttemptedTo *AttemptInfo `json:"attempted_to,omitempty"`

	GameOver      bool     `json:"game_over"`
	GameOverCode  string   `json:"game_over_code,omitempty"`
	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
	Mobility      string   `json:"mobility,omitempty"`
}

// StepInfo is a compact record of one square the knight landed on
type StepInfo struct {
	Idx     int                `json:"idx"`
	From    *engine.Coordinate `json:"from,omitempty"` // nil for the placement click
	To      engine.Coordinate  `json:"to"`
	Square  string             `json:"square"`
	Step    int                `json:"step"`
	Reason  string             `json:"reason"`
	Victory bool               `json:"victory,omitempty"`
	DeadEnd bool               `json:"dead_end,omitempty"`
}

// AttemptInfo explains why a clicked square was refused
type AttemptInfo struct {
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	Square     string `json:"square,omitempty"`
	OnBoard    bool   `json:"on_board"`
	Visited    bool   `json:"visited"`
	KnightMove bool   `json:"knight_move"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string             `json:"type"` // see Event* constants
	Message   string             `json:"message"`
	Timestamp time.Time          `json:"timestamp"`
	Position  *engine.Coordinate `json:"position,omitempty"`
}

// Event types
const (
	EventReset               = "reset"
	EventPlaced              = "placed"
	EventMove                = "move"
	EventWon                 = "won"
	EventLost                = "lost"
	EventLevelAdvanced       = "level_advanced"
	EventLevelReset          = "level_reset"
	EventTimedOut            = "timed_out"
	EventCompetitionComplete = "competition_complete"
)

// ValidMove is a legal next square with the number of onward jumps it leaves open
type ValidMove struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Square string `json:"square"`
	Onward int    `json:"onward"`
}

// CompetitionOptions configures a competition run; zero values mean defaults
type CompetitionOptions struct {
	Levels           []int `json:"levels,omitempty"`
	TimeLimitSeconds int   `json:"time_limit_seconds,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	BoardSize   int    `json:"board_size"`
	ShowHints   bool   `json:"show_hints"`
}

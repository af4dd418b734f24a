package engine

import "time"

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	Reset() *GameState
	IsGameOver() bool
	IsVictory() bool
	GetStatus() Status
	GetCurrentPosition() *Coordinate

	// Movement operations
	Click(row, col int) bool
	CanMove(row, col int) bool
	GetPossibleMoves() []Coordinate
	LastReason() string

	// Configuration
	GetConfig() *GameConfig
	Resize(boardSize int) error
	SetShowHints(show bool)

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry

	// Competition
	StartCompetition(levels []int, limit time.Duration) error
	StopCompetition()
	Tick() bool
}

var _ Engine = (*GameEngine)(nil)

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialise access per session.
type GameEngine struct {
	state      *GameState
	config     *GameConfig
	now        func() time.Time
	lastReason string
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
		now:    time.Now,
	}

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine on the default 8x8 board
func NewEngineWithDefaults() *GameEngine {
	config := DefaultConfig(DefaultBoardSize)
	return &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
		now:    time.Now,
	}
}

// SetClock replaces the time source used by competition mode
func (e *GameEngine) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	e.now = now
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// Reset starts a fresh game on the same board size
func (e *GameEngine) Reset() *GameState {
	e.replaceState()
	e.state.Message = e.config.messages().Reset
	return e.state
}

// replaceState reinitialises the board from config while keeping
// session-level fields (click total, hint toggle, running competition).
func (e *GameEngine) replaceState() {
	prev := e.state
	e.state = InitGameStateFromConfig(e.config)
	if prev != nil {
		e.state.TotalClicks = prev.TotalClicks
		e.state.ShowHints = prev.ShowHints
		if prev.Competition != nil && prev.Competition.Active {
			e.state.Competition = prev.Competition
		}
	}
	e.state.UpdateBoardVisuals()
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// IsVictory returns whether the tour was completed
func (e *GameEngine) IsVictory() bool {
	return e.state.Victory
}

// GetStatus returns the state-machine status
func (e *GameEngine) GetStatus() Status {
	return e.state.Status
}

// GetCurrentPosition returns the knight's square, or nil before placement
func (e *GameEngine) GetCurrentPosition() *Coordinate {
	if e.state.CurrentPos == nil {
		return nil
	}
	pos := *e.state.CurrentPos
	return &pos
}

// Click handles a player's click on (row, col)
func (e *GameEngine) Click(row, col int) bool {
	e.state.TotalClicks++

	if e.competitionActive() {
		if handled, ok := e.competitionClick(); handled {
			return ok
		}
	}

	ok, reason := e.state.ApplyClick(Coordinate{Row: row, Col: col}, e.config)
	e.lastReason = reason

	if e.competitionActive() && e.state.Victory {
		e.completeLevel()
	}

	return ok
}

// CanMove checks whether clicking (row, col) would move the knight
func (e *GameEngine) CanMove(row, col int) bool {
	pos := Coordinate{Row: row, Col: col}
	if e.state.Status == NotStarted {
		return e.state.Board.Contains(pos)
	}
	return e.state.CanMoveTo(pos)
}

// GetPossibleMoves returns the legal unvisited destinations of the knight
func (e *GameEngine) GetPossibleMoves() []Coordinate {
	if e.state.Status != InProgress || e.state.CurrentPos == nil {
		return []Coordinate{}
	}
	return UnvisitedMoves(e.state.Board, *e.state.CurrentPos)
}

// LastReason returns the reason code of the most recent click
func (e *GameEngine) LastReason() string {
	return e.lastReason
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// Resize switches to a boardSize x boardSize board and resets the game
func (e *GameEngine) Resize(boardSize int) error {
	if e.competitionActive() {
		return ErrCompetitionActive
	}
	if err := ValidateBoardSize(boardSize); err != nil {
		return err
	}
	e.config = e.configWithSize(boardSize)
	e.replaceState()
	return nil
}

// configWithSize copies the current config with a different board size.
// Configs may be shared through the config cache, so they are never mutated.
func (e *GameEngine) configWithSize(boardSize int) *GameConfig {
	cfg := *e.config
	cfg.BoardSize = boardSize
	return &cfg
}

// SetShowHints toggles next-move highlighting
func (e *GameEngine) SetShowHints(show bool) {
	e.state.ShowHints = show
	e.state.UpdateBoardVisuals()
}

// GetMoveHistory returns the squares visited in the current game
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last visited square, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

// BulkClick replays clicks in order, stopping at the first rejected click or
// once the game is over. It returns the result of every click attempted.
func (e *GameEngine) BulkClick(squares []Coordinate) []bool {
	results := make([]bool, 0, len(squares))

	for _, sq := range squares {
		if e.IsGameOver() {
			break
		}

		ok := e.Click(sq.Row, sq.Col)
		results = append(results, ok)
		if !ok {
			break
		}
	}

	return results
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wricardo/knights-tour/game/engine"
)

// gameServiceImpl implements the GameService interface. One mutex serialises
// every engine call and every session access time update; neither engines
// nor sessions are safe for concurrent use.
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	now      func() time.Time
	mu       sync.Mutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		now:      time.Now,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// session looks a session up and marks it as accessed. Callers hold s.mu.
func (s *gameServiceImpl) session(ctx context.Context, sessionID string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	cfg := *sess.Engine.GetConfig()
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState().Clone(),
		GameConfig:     &cfg,
	}
}

// CreateSession creates a new game session. A positive boardSize overrides
// the config's board size.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, boardSize int) (*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if boardSize != 0 {
		if err := engine.ValidateBoardSize(boardSize); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				configIDs := make([]string, 0, len(availableConfigs))
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, fmt.Errorf("config '%s': %w (available configs: %v)", configName, err, configIDs)
			}
			return nil, fmt.Errorf("config '%s': %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if boardSize != 0 && boardSize != config.BoardSize {
		if err := sess.Engine.Resize(boardSize); err != nil {
			s.sessions.Delete(sess.ID)
			return nil, err
		}
	}

	return s.sessionInfo(sess, configName), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Engine.Tick()
	return s.sessionInfo(sess, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	return nil
}

// Move clicks one square for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, row, col int, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	events := []GameEvent{}
	if reset {
		state := sess.Engine.Reset()
		events = append(events, s.event(EventReset, state.Message, nil))
	}

	step, attempt, clickEvents, success := s.click(sess.Engine, 1, engine.Coordinate{Row: row, Col: col})
	state := sess.Engine.GetState()

	return &MoveResult{
		Success:     success,
		Reason:      sess.Engine.LastReason(),
		GameState:   state.Clone(),
		Message:     state.Message,
		Events:      append(events, clickEvents...),
		Step:        step,
		AttemptedTo: attempt,
	}, nil
}

// BulkMove clicks squares in order, stopping at the first refused click or when the game ends
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, squares []engine.Coordinate, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{
		RequestedMoves: len(squares),
		Events:         []GameEvent{},
		Success:        true,
	}

	if reset {
		state := sess.Engine.Reset()
		result.Events = append(result.Events, s.event(EventReset, state.Message, nil))
	}

	start := sess.Engine.GetState()
	result.StartPos = sess.Engine.GetCurrentPosition()
	result.StartStep = start.StepCount

	if len(squares) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		squares = squares[:engine.MaxBulkMoves]
	}

	for i, sq := range squares {
		if sess.Engine.IsGameOver() {
			result.StoppedReason = "game_over"
			result.StopReasonCode = engine.ReasonGameOver
			result.StoppedOnMove = i + 1
			break
		}

		step, attempt, events, ok := s.click(sess.Engine, i+1, sq)
		result.Events = append(result.Events, events...)
		if !ok {
			result.Success = false
			result.StopReasonCode = sess.Engine.LastReason()
			result.StoppedReason = fmt.Sprintf("move %d refused: %s", i+1, result.StopReasonCode)
			result.StoppedOnMove = i + 1
			result.AttemptedTo = attempt
			break
		}
		result.MovesExecuted++
		if step != nil {
			result.Steps = append(result.Steps, *step)
		}
	}

	end := sess.Engine.GetState()
	result.GameState = end.Clone()
	result.EndPos = sess.Engine.GetCurrentPosition()
	result.EndStep = end.StepCount
	result.GameOver = end.GameOver
	result.Message = end.Message
	result.Mobility = end.Mobility

	if end.GameOver {
		result.GameOverCode = string(end.Status)
		if result.StopReasonCode == "" {
			result.StopReasonCode = string(end.Status)
		}
	}

	for _, m := range end.NextMoves {
		result.PossibleMoves = append(result.PossibleMoves, engine.SquareName(m))
	}

	return result, nil
}

// click runs one click and describes its outcome. idx is the 1-based position in a batch.
func (s *gameServiceImpl) click(eng *engine.GameEngine, idx int, pos engine.Coordinate) (*StepInfo, *AttemptInfo, []GameEvent, bool) {
	before := eng.GetState()
	prevStatus := before.Status
	prevPos := eng.GetCurrentPosition()
	prevComplete := before.Competition != nil && before.Competition.Completed

	ok := eng.Click(pos.Row, pos.Col)
	reason := eng.LastReason()
	state := eng.GetState()

	events := []GameEvent{}
	var step *StepInfo
	var attempt *AttemptInfo

	switch reason {
	case engine.ReasonPlaced, engine.ReasonMoved:
		landed := pos
		step = &StepInfo{
			Idx:     idx,
			From:    prevPos,
			To:      landed,
			Square:  engine.SquareName(landed),
			Step:    state.StepCount,
			Reason:  reason,
			Victory: state.Status == engine.Won,
			DeadEnd: state.Status == engine.Lost,
		}
		eventType := EventMove
		if reason == engine.ReasonPlaced {
			eventType = EventPlaced
		}
		events = append(events, s.event(eventType,
			fmt.Sprintf("Step %d: %s", state.StepCount, engine.SquareName(landed)), &landed))
	case engine.ReasonLevelAdvanced:
		events = append(events, s.event(EventLevelAdvanced, state.Message, nil))
	case engine.ReasonLevelReset:
		events = append(events, s.event(EventLevelReset, state.Message, nil))
	case engine.ReasonTimedOut:
		events = append(events, s.event(EventTimedOut, state.Message, nil))
	default:
		attempt = &AttemptInfo{
			Row:     pos.Row,
			Col:     pos.Col,
			OnBoard: state.Board.Contains(pos),
		}
		if attempt.OnBoard {
			attempt.Square = engine.SquareName(pos)
			attempt.Visited = state.Board.At(pos).Visited
			attempt.KnightMove = prevPos != nil && engine.IsKnightMove(*prevPos, pos)
		}
	}

	if prevStatus != state.Status && reason != engine.ReasonTimedOut {
		switch state.Status {
		case engine.Won:
			events = append(events, s.event(EventWon, state.Message, nil))
		case engine.Lost:
			events = append(events, s.event(EventLost, state.Message, nil))
		}
	}
	if !prevComplete && state.Competition != nil && state.Competition.Completed {
		events = append(events, s.event(EventCompetitionComplete, state.Message, nil))
	}

	return step, attempt, events, ok
}

func (s *gameServiceImpl) event(eventType, message string, pos *engine.Coordinate) GameEvent {
	return GameEvent{Type: eventType, Message: message, Timestamp: s.now(), Position: pos}
}

// Reset resets a game session to a fresh board
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Reset().Clone(), nil
}

// Resize switches a session to a new board size and starts over
func (s *gameServiceImpl) Resize(ctx context.Context, sessionID string, boardSize int) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Engine.Resize(boardSize); err != nil {
		return nil, err
	}
	return sess.Engine.GetState().Clone(), nil
}

// SetHints turns next-move highlighting on or off
func (s *gameServiceImpl) SetHints(ctx context.Context, sessionID string, show bool) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Engine.SetShowHints(show)
	return sess.Engine.GetState().Clone(), nil
}

// StartCompetition begins a timed level ladder for a session
func (s *gameServiceImpl) StartCompetition(ctx context.Context, sessionID string, opts CompetitionOptions) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	limit := time.Duration(opts.TimeLimitSeconds) * time.Second
	if err := sess.Engine.StartCompetition(opts.Levels, limit); err != nil {
		return nil, err
	}
	return sess.Engine.GetState().Clone(), nil
}

// StopCompetition abandons a session's competition
func (s *gameServiceImpl) StopCompetition(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Engine.StopCompetition()
	return sess.Engine.GetState().Clone(), nil
}

// GetGameState retrieves the current game state, refreshing the competition clock
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Engine.Tick()
	return sess.Engine.GetState().Clone(), nil
}

// GetValidMoves lists the squares the knight can jump to next
func (s *gameServiceImpl) GetValidMoves(ctx context.Context, sessionID string) ([]ValidMove, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	moves := []ValidMove{}
	for _, m := range sess.Engine.GetPossibleMoves() {
		onward := 0
		for _, next := range engine.GetValidMoves(m.Row, m.Col, state.BoardSize) {
			if !state.Board.At(next).Visited {
				onward++
			}
		}
		moves = append(moves, ValidMove{Row: m.Row, Col: m.Col, Square: engine.SquareName(m), Onward: onward})
	}
	return moves, nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	moves := []engine.MoveHistoryEntry{}
	// pages past the end are empty; checked first so start cannot overflow
	if opts.Page <= totalPages {
		start := (opts.Page - 1) * opts.Limit
		end := start + opts.Limit
		if end > total {
			end = total
		}
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

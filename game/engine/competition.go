package engine

import (
	"errors"
	"fmt"
	"time"
)

var ErrCompetitionActive = errors.New("competition in progress")

// StartCompetition begins a timed run through the given board sizes.
// Nil levels or a non-positive limit fall back to the defaults.
func (e *GameEngine) StartCompetition(levels []int, limit time.Duration) error {
	if len(levels) == 0 {
		levels = DefaultCompetitionLevels
	}
	for _, size := range levels {
		if err := ValidateBoardSize(size); err != nil {
			return fmt.Errorf("competition level: %w", err)
		}
	}
	if limit <= 0 {
		limit = DefaultCompetitionTimeLimit
	}

	now := e.now()
	comp := &CompetitionState{
		Active:           true,
		Level:            1,
		Levels:           append([]int(nil), levels...),
		TimeLimitSeconds: int(limit / time.Second),
		StartedAt:        now,
		Deadline:         now.Add(limit),
		TimeLeftSeconds:  int(limit / time.Second),
	}

	e.config = e.configWithSize(levels[0])
	e.replaceState()
	e.state.Competition = comp
	e.state.Message = fmt.Sprintf(e.config.messages().LevelAdvanced, 1, levels[0], levels[0])
	return nil
}

// StopCompetition abandons the competition and resets the board at the current size
func (e *GameEngine) StopCompetition() {
	if e.state.Competition == nil {
		return
	}
	e.state.Competition = nil
	e.Reset()
}

// GetCompetition returns the competition state, or nil when none was started
func (e *GameEngine) GetCompetition() *CompetitionState {
	return e.state.Competition
}

// Tick refreshes the competition clock and reports whether time ran out on this call
func (e *GameEngine) Tick() bool {
	comp := e.state.Competition
	if comp == nil || !comp.Active {
		return false
	}

	left := comp.Deadline.Sub(e.now())
	if left > 0 {
		comp.TimeLeftSeconds = int((left + time.Second - 1) / time.Second)
		return false
	}

	comp.TimeLeftSeconds = 0
	comp.TimedOut = true
	comp.Active = false
	if !e.state.Victory {
		e.state.Status = Lost
	}
	e.state.GameOver = true
	e.state.Message = fmt.Sprintf(e.config.messages().TimedOut, comp.Level)
	e.state.UpdateBoardVisuals()
	return true
}

func (e *GameEngine) competitionActive() bool {
	return e.state.Competition != nil && e.state.Competition.Active
}

// competitionClick handles clicks that the competition consumes: the clock
// running out, and the click after a level ends. handled is false when the
// click should go through the normal state machine.
func (e *GameEngine) competitionClick() (handled bool, ok bool) {
	if e.Tick() {
		e.lastReason = ReasonTimedOut
		return true, false
	}
	if !e.state.GameOver {
		return false, false
	}

	comp := e.state.Competition
	m := e.config.messages()
	size := e.config.BoardSize

	if e.state.Victory {
		comp.Level++
		size = comp.Levels[comp.Level-1]
		e.config = e.configWithSize(size)
		e.replaceState()
		e.state.Message = fmt.Sprintf(m.LevelAdvanced, comp.Level, size, size)
		e.lastReason = ReasonLevelAdvanced
		return true, true
	}

	comp.Failures++
	e.replaceState()
	e.state.Message = fmt.Sprintf(m.LevelReset, comp.Level, size, size)
	e.lastReason = ReasonLevelReset
	return true, true
}

// completeLevel finishes the competition when the final level is won
func (e *GameEngine) completeLevel() {
	comp := e.state.Competition
	if comp.Level < len(comp.Levels) {
		return
	}
	comp.Completed = true
	comp.Active = false
	e.state.Message = fmt.Sprintf(e.config.messages().CompetitionComplete, len(comp.Levels))
}

package engine

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newCompetitionEngine(t *testing.T, levels []int, limit time.Duration) (*GameEngine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	engine := NewEngineWithDefaults()
	engine.SetClock(clock.now)
	if err := engine.StartCompetition(levels, limit); err != nil {
		t.Fatalf("StartCompetition: %v", err)
	}
	return engine, clock
}

func TestStartCompetition(t *testing.T) {
	engine, _ := newCompetitionEngine(t, nil, 0)

	comp := engine.GetCompetition()
	if comp == nil || !comp.Active {
		t.Fatal("expected an active competition")
	}
	if comp.Level != 1 || len(comp.Levels) != len(DefaultCompetitionLevels) {
		t.Errorf("unexpected ladder: level=%d levels=%v", comp.Level, comp.Levels)
	}
	if comp.TimeLimitSeconds != 600 || comp.TimeLeftSeconds != 600 {
		t.Errorf("expected 600s limit, got %d/%d", comp.TimeLimitSeconds, comp.TimeLeftSeconds)
	}
	if engine.GetState().BoardSize != DefaultCompetitionLevels[0] {
		t.Errorf("expected first level board %d, got %d", DefaultCompetitionLevels[0], engine.GetState().BoardSize)
	}
	if engine.GetState().Message != "Level 1 (5x5) begins. Place your knight." {
		t.Errorf("unexpected message %q", engine.GetState().Message)
	}
}

func TestStartCompetition_InvalidLevel(t *testing.T) {
	engine := NewEngineWithDefaults()
	err := engine.StartCompetition([]int{5, 30}, time.Minute)
	if !errors.Is(err, ErrInvalidBoardSize) {
		t.Errorf("expected ErrInvalidBoardSize, got %v", err)
	}
	if engine.GetCompetition() != nil {
		t.Error("failed start must not leave a competition behind")
	}
}

func TestCompetitionAdvanceAndComplete(t *testing.T) {
	engine, _ := newCompetitionEngine(t, []int{1, 5}, time.Minute)

	// 1x1 board is won on placement
	if !engine.Click(0, 0) || !engine.IsVictory() {
		t.Fatal("expected level 1 won")
	}
	if engine.GetCompetition().Completed {
		t.Fatal("competition should not be complete after level 1")
	}

	// the next click only advances the level
	if !engine.Click(3, 3) || engine.LastReason() != ReasonLevelAdvanced {
		t.Fatalf("expected level advance, got %s", engine.LastReason())
	}
	state := engine.GetState()
	if state.BoardSize != 5 || state.Status != NotStarted || engine.GetCompetition().Level != 2 {
		t.Fatalf("unexpected state after advance: size=%d status=%s level=%d",
			state.BoardSize, state.Status, engine.GetCompetition().Level)
	}

	for _, pos := range fiveByFiveTour {
		if !engine.Click(pos.Row, pos.Col) {
			t.Fatalf("move to %v rejected: %s", pos, engine.LastReason())
		}
	}

	comp := engine.GetCompetition()
	if !comp.Completed || comp.Active {
		t.Errorf("expected completed competition, got %+v", comp)
	}
	if engine.GetState().Message != "Competition complete! All 2 levels cleared." {
		t.Errorf("unexpected message %q", engine.GetState().Message)
	}

	// competition over: resize is allowed again
	if err := engine.Resize(6); err != nil {
		t.Errorf("Resize after completion: %v", err)
	}
	if engine.GetCompetition() != nil {
		t.Error("finished competition should be dropped on the next board")
	}
}

func TestCompetitionLevelReset(t *testing.T) {
	engine, _ := newCompetitionEngine(t, []int{3, 5}, time.Minute)

	engine.Click(1, 1)
	if engine.GetStatus() != Lost {
		t.Fatalf("expected loss on the 3x3 center, got %s", engine.GetStatus())
	}

	if !engine.Click(0, 0) || engine.LastReason() != ReasonLevelReset {
		t.Fatalf("expected level reset, got %s", engine.LastReason())
	}
	comp := engine.GetCompetition()
	if comp.Failures != 1 || comp.Level != 1 {
		t.Errorf("expected one failure on level 1, got %+v", comp)
	}
	state := engine.GetState()
	if state.BoardSize != 3 || state.Status != NotStarted || state.StepCount != 0 {
		t.Errorf("expected a fresh 3x3 board, got size=%d status=%s", state.BoardSize, state.Status)
	}
	if state.TotalClicks != 2 {
		t.Errorf("expected 2 total clicks, got %d", state.TotalClicks)
	}
}

func TestCompetitionTimeout(t *testing.T) {
	engine, clock := newCompetitionEngine(t, []int{5}, time.Minute)
	engine.Click(0, 0)

	clock.advance(10*time.Second + 500*time.Millisecond)
	if engine.Tick() {
		t.Fatal("clock has not expired yet")
	}
	if left := engine.GetCompetition().TimeLeftSeconds; left != 50 {
		t.Errorf("expected 50s left, got %d", left)
	}

	clock.advance(time.Minute)
	if engine.Click(1, 2) {
		t.Fatal("click after the deadline should be rejected")
	}
	if engine.LastReason() != ReasonTimedOut {
		t.Errorf("expected timed_out, got %s", engine.LastReason())
	}

	comp := engine.GetCompetition()
	if !comp.TimedOut || comp.Active || comp.TimeLeftSeconds != 0 {
		t.Errorf("unexpected competition after timeout: %+v", comp)
	}
	state := engine.GetState()
	if state.Status != Lost || !state.GameOver {
		t.Errorf("expected lost game, got %s", state.Status)
	}
	if state.StepCount != 1 {
		t.Errorf("timed-out click must not move the knight")
	}

	if engine.Click(1, 2) || engine.LastReason() != ReasonGameOver {
		t.Errorf("expected game_over after timeout, got %s", engine.LastReason())
	}
}

func TestCompetitionBlocksResize(t *testing.T) {
	engine, _ := newCompetitionEngine(t, []int{5, 6}, time.Minute)
	if err := engine.Resize(8); !errors.Is(err, ErrCompetitionActive) {
		t.Errorf("expected ErrCompetitionActive, got %v", err)
	}

	engine.StopCompetition()
	if engine.GetCompetition() != nil {
		t.Error("expected competition cleared")
	}
	if err := engine.Resize(8); err != nil {
		t.Errorf("Resize after stop: %v", err)
	}
}

package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createTestConfig() *GameConfig {
	return &GameConfig{
		Name:        "Engine Test Config",
		Description: "Configuration for engine tests",
		BoardSize:   5,
		ShowHints:   true,
		Messages: Messages{
			Welcome:        "Welcome to engine test!",
			Placed:         "Placed on %s",
			Moved:          "Step %d at %s",
			Won:            "Won after %d squares",
			Lost:           "Lost at step %d",
			AlreadyVisited: "%s visited",
			InvalidMove:    "%s unreachable",
		},
	}
}

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GameConfig)
		wantErr string
	}{
		{"valid", func(c *GameConfig) {}, ""},
		{"missing name", func(c *GameConfig) { c.Name = "" }, "name is required"},
		{"missing description", func(c *GameConfig) { c.Description = "" }, "description is required"},
		{"board too small", func(c *GameConfig) { c.BoardSize = 0 }, "board_size"},
		{"board too large", func(c *GameConfig) { c.BoardSize = 27 }, "board_size"},
		{"missing welcome", func(c *GameConfig) { c.Messages.Welcome = "" }, "messages.welcome"},
		{"missing won", func(c *GameConfig) { c.Messages.Won = "" }, "messages.won is required"},
		{"missing lost", func(c *GameConfig) { c.Messages.Lost = "" }, "messages.lost is required"},
		{"won without count", func(c *GameConfig) { c.Messages.Won = "Won!" }, "messages.won must contain"},
		{"lost without count", func(c *GameConfig) { c.Messages.Lost = "Lost!" }, "messages.lost must contain"},
		{"moved without square", func(c *GameConfig) { c.Messages.Moved = "Step %d" }, "messages.moved"},
		{"moved verbs out of order", func(c *GameConfig) { c.Messages.Moved = "%s reached at step %d" }, "messages.moved must put %d before %s"},
		{"placed without square", func(c *GameConfig) { c.Messages.Placed = "Placed" }, "messages.placed"},
		{"optional moved may be empty", func(c *GameConfig) { c.Messages.Moved = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createTestConfig()
			tt.mutate(config)
			err := ValidateGameConfig(config)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateGameConfig_Nil(t *testing.T) {
	if err := ValidateGameConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestValidateBoardSize(t *testing.T) {
	for _, n := range []int{1, 5, 26} {
		if err := ValidateBoardSize(n); err != nil {
			t.Errorf("size %d: unexpected error %v", n, err)
		}
	}
	for _, n := range []int{-1, 0, 27} {
		if err := ValidateBoardSize(n); !errors.Is(err, ErrInvalidBoardSize) {
			t.Errorf("size %d: expected ErrInvalidBoardSize, got %v", n, err)
		}
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	for n := MinBoardSize; n <= MaxBoardSize; n++ {
		if err := ValidateGameConfig(DefaultConfig(n)); err != nil {
			t.Errorf("DefaultConfig(%d) invalid: %v", n, err)
		}
	}
}

func TestLoadGameConfig(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	data := `{
		"name": "Loaded",
		"description": "From disk",
		"board_size": 6,
		"show_hints": true,
		"messages": {"welcome": "Hi", "won": "Won %d", "lost": "Lost %d"}
	}`
	if err := os.WriteFile(valid, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadGameConfig(valid)
	if err != nil {
		t.Fatalf("LoadGameConfig: %v", err)
	}
	if config.Name != "Loaded" || config.BoardSize != 6 || !config.ShowHints {
		t.Errorf("unexpected config: %+v", config)
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"name": "x", "board_size": 40}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGameConfig(invalid); err == nil {
		t.Error("expected validation error")
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGameConfig(broken); err == nil {
		t.Error("expected parse error")
	}

	if _, err := LoadGameConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInitGameStateFromConfig(t *testing.T) {
	config := createTestConfig()
	state := InitGameStateFromConfig(config)

	if state.BoardSize != 5 || len(state.Board) != 5 {
		t.Fatalf("expected 5x5 board, got size %d with %d rows", state.BoardSize, len(state.Board))
	}
	if state.Status != NotStarted {
		t.Errorf("expected status %s, got %s", NotStarted, state.Status)
	}
	if state.CurrentPos != nil {
		t.Error("expected no knight before the first click")
	}
	if state.Message != config.Messages.Welcome {
		t.Errorf("expected welcome message, got %q", state.Message)
	}
	if state.ConfigName != config.Name {
		t.Errorf("expected config name %q, got %q", config.Name, state.ConfigName)
	}
	if state.MoveHistory == nil || state.NextMoves == nil {
		t.Error("expected non-nil history and next moves")
	}

	def := InitGameStateFromConfig(nil)
	if def.BoardSize != DefaultBoardSize {
		t.Errorf("nil config: expected board %d, got %d", DefaultBoardSize, def.BoardSize)
	}
}

func TestMessagesFallBackToDefaults(t *testing.T) {
	config := createTestConfig()
	config.Messages.GameOver = ""
	m := config.messages()
	if m.GameOver != DefaultMessages().GameOver {
		t.Errorf("expected default game over message, got %q", m.GameOver)
	}
	if m.Welcome != config.Messages.Welcome {
		t.Error("configured message should not be replaced")
	}
}

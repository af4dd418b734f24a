package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/knights-tour/game/engine"
)

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("playable board", func(t *testing.T) {
		writeConfigFile(t, dir, "five", createValidConfig())
		result := ValidateFile(filepath.Join(dir, "five.json"))
		if !result.Valid {
			t.Fatalf("Expected valid, got errors %v", result.Errors)
		}
		if len(result.Warnings) != 0 {
			t.Errorf("Expected no warnings for 5x5, got %v", result.Warnings)
		}
		if result.File != "five.json" || len(result.Info) == 0 {
			t.Errorf("Unexpected result %+v", result)
		}
		// the four corners on 5x5; on 3x3 all eight outer squares count
		if !strings.Contains(strings.Join(result.Info, "\n"), "Squares with 2 moves: 4") {
			t.Errorf("Expected degree-2 square count in info, got %v", result.Info)
		}
	})

	t.Run("board without a tour", func(t *testing.T) {
		config := createValidConfig()
		config.BoardSize = 3
		writeConfigFile(t, dir, "three", config)

		result := ValidateFile(filepath.Join(dir, "three.json"))
		if !result.Valid {
			t.Fatalf("3x3 is still a valid config: %v", result.Errors)
		}
		joined := strings.Join(result.Warnings, "\n")
		if !strings.Contains(joined, "1 of 9 squares cannot be reached") {
			t.Errorf("Expected unreachable center warning, got %v", result.Warnings)
		}
		if !strings.Contains(joined, "no complete tour") {
			t.Errorf("Expected no-tour warning, got %v", result.Warnings)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		config := createValidConfig()
		config.Description = ""
		writeConfigFile(t, dir, "nodesc", config)

		result := ValidateFile(filepath.Join(dir, "nodesc.json"))
		if result.Valid || len(result.Errors) == 0 {
			t.Errorf("Expected invalid result, got %+v", result)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if ValidateFile(filepath.Join(dir, "absent.json")).Valid {
			t.Error("Expected missing file to be invalid")
		}
	})
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "b", createValidConfig())
	writeConfigFile(t, dir, "a", createValidConfig())
	os.WriteFile(filepath.Join(dir, "c.json"), []byte("not json"), 0644)
	os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0644)

	results, err := ValidateDir(dir)
	if err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if results[0].File != "a.json" || !results[0].Valid || results[2].Valid {
		t.Errorf("Unexpected results %+v", results)
	}

	if _, err := ValidateDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestReachableSquares(t *testing.T) {
	tests := map[int]int{1: 1, 2: 1, 3: 8, 4: 16, 8: 64}
	for n, want := range tests {
		if got := reachableSquares(n, engine.Coordinate{}); got != want {
			t.Errorf("n=%d: got %d, want %d", n, got, want)
		}
	}
}

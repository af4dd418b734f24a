package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/wricardo/knights-tour/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// Info lines are only filled for valid files.
type ValidationResult struct {
	File     string   `json:"file"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Info     []string `json:"info,omitempty"`
}

// ValidateFile loads one configuration file and reports whether it is playable
func ValidateFile(path string) ValidationResult {
	result := ValidationResult{File: filepath.Base(path), Valid: true}

	config, err := readConfigFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	n := config.BoardSize
	reachable := reachableSquares(n, engine.Coordinate{Row: 0, Col: 0})
	if reachable < n*n {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d of %d squares cannot be reached from A1", n*n-reachable, n*n))
	}
	if n >= 2 && n <= 4 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no complete tour exists on a %dx%d board", n, n))
	}

	result.Info = append(result.Info,
		fmt.Sprintf("Name: %s", config.Name),
		fmt.Sprintf("Board: %dx%d (%d squares)", n, n, n*n),
		fmt.Sprintf("Hints: %v", config.ShowHints),
		fmt.Sprintf("Squares with 2 moves: %d", engine.CountPositionsWithDegree(n, 2)),
	)
	return result
}

// ValidateDir validates every *.json file in dir, sorted by file name
func ValidateDir(dir string) ([]ValidationResult, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("config directory: %w", err)
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("error finding config files: %w", err)
	}
	sort.Strings(files)

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, ValidateFile(file))
	}
	return results, nil
}

// reachableSquares flood-fills the knight graph from start on an empty board
func reachableSquares(n int, start engine.Coordinate) int {
	if !engine.IsValidSquare(start.Row, start.Col, n) {
		return 0
	}

	seen := map[engine.Coordinate]bool{start: true}
	queue := []engine.Coordinate{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range engine.GetValidMoves(current.Row, current.Col, n) {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(seen)
}

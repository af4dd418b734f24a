package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrInvalidBoardSize = errors.New("invalid board size")

// Messages holds the status-line templates shown to the player
type Messages struct {
	Welcome             string `json:"welcome"`
	Placed              string `json:"placed"`
	Moved               string `json:"moved"`
	Won                 string `json:"won"`
	Lost                string `json:"lost"`
	AlreadyVisited      string `json:"already_visited"`
	InvalidMove         string `json:"invalid_move"`
	InvalidSquare       string `json:"invalid_square"`
	GameOver            string `json:"game_over"`
	Reset               string `json:"reset"`
	LevelReset          string `json:"level_reset"`
	LevelAdvanced       string `json:"level_advanced"`
	CompetitionComplete string `json:"competition_complete"`
	TimedOut            string `json:"timed_out"`
}

// GameConfig represents a game configuration loaded from JSON
type GameConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	BoardSize   int      `json:"board_size"`
	ShowHints   bool     `json:"show_hints"`
	Messages    Messages `json:"messages"`
}

// DefaultMessages returns the built-in English message templates
func DefaultMessages() Messages {
	return Messages{
		Welcome:             "Board ready. Place your knight on any square.",
		Placed:              "Knight placed on %s. Plan your route.",
		Moved:               "Step %d: knight reached %s.",
		Won:                 "Tour complete! The knight visited all %d squares.",
		Lost:                "Dead end: no moves left after step %d.",
		AlreadyVisited:      "Square %s was already visited. Choose another square.",
		InvalidMove:         "The knight cannot reach %s from here.",
		InvalidSquare:       "Square %s is not on the board.",
		GameOver:            "The game is over. Reset to play again.",
		Reset:               "Board reset. Place your knight to begin.",
		LevelReset:          "Path broken at level %d (%dx%d). The board has been reset, try again.",
		LevelAdvanced:       "Level %d (%dx%d) begins. Place your knight.",
		CompetitionComplete: "Competition complete! All %d levels cleared.",
		TimedOut:            "Time is up! The competition ended at level %d.",
	}
}

// DefaultConfig returns a playable configuration for the given board size
func DefaultConfig(boardSize int) *GameConfig {
	return &GameConfig{
		Name:        "default",
		Description: fmt.Sprintf("Open %dx%d board", boardSize, boardSize),
		BoardSize:   boardSize,
		ShowHints:   true,
		Messages:    DefaultMessages(),
	}
}

// ValidateBoardSize checks that a board can be labelled and played
func ValidateBoardSize(boardSize int) error {
	if boardSize < MinBoardSize || boardSize > MaxBoardSize {
		return fmt.Errorf("%w: must be between %d and %d, got %d", ErrInvalidBoardSize, MinBoardSize, MaxBoardSize, boardSize)
	}
	return nil
}

// ValidateGameConfig validates a game configuration for correctness
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}
	if err := ValidateBoardSize(config.BoardSize); err != nil {
		return fmt.Errorf("config validation: board_size: %w", err)
	}

	m := config.Messages
	if m.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if m.Won == "" {
		return fmt.Errorf("config validation: messages.won is required")
	}
	if m.Lost == "" {
		return fmt.Errorf("config validation: messages.lost is required")
	}

	// Format strings
	if !strings.Contains(m.Won, "%d") {
		return fmt.Errorf("config validation: messages.won must contain %%d for the square count")
	}
	if !strings.Contains(m.Lost, "%d") {
		return fmt.Errorf("config validation: messages.lost must contain %%d for the step count")
	}
	// moved is formatted with (step, square) in that order
	if m.Moved != "" {
		step, square := strings.Index(m.Moved, "%d"), strings.Index(m.Moved, "%s")
		if step < 0 || square < 0 {
			return fmt.Errorf("config validation: messages.moved must contain %%d for the step and %%s for the square")
		}
		if square < step {
			return fmt.Errorf("config validation: messages.moved must put %%d before %%s")
		}
	}
	squareTemplates := map[string]string{
		"placed":          m.Placed,
		"already_visited": m.AlreadyVisited,
		"invalid_move":    m.InvalidMove,
		"invalid_square":  m.InvalidSquare,
	}
	for key, tmpl := range squareTemplates {
		if tmpl != "" && !strings.Contains(tmpl, "%s") {
			return fmt.Errorf("config validation: messages.%s must contain %%s for the square", key)
		}
	}

	return nil
}

// LoadGameConfig loads and validates a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// messages returns the config's templates with blanks filled from the defaults
func (c *GameConfig) messages() Messages {
	m := c.Messages
	d := DefaultMessages()
	fill := func(v *string, fallback string) {
		if *v == "" {
			*v = fallback
		}
	}
	fill(&m.Welcome, d.Welcome)
	fill(&m.Placed, d.Placed)
	fill(&m.Moved, d.Moved)
	fill(&m.Won, d.Won)
	fill(&m.Lost, d.Lost)
	fill(&m.AlreadyVisited, d.AlreadyVisited)
	fill(&m.InvalidMove, d.InvalidMove)
	fill(&m.InvalidSquare, d.InvalidSquare)
	fill(&m.GameOver, d.GameOver)
	fill(&m.Reset, d.Reset)
	fill(&m.LevelReset, d.LevelReset)
	fill(&m.LevelAdvanced, d.LevelAdvanced)
	fill(&m.CompetitionComplete, d.CompetitionComplete)
	fill(&m.TimedOut, d.TimedOut)
	return m
}

// InitGameStateFromConfig creates a new game state using the provided configuration
func InitGameStateFromConfig(config *GameConfig) *GameState {
	if config == nil {
		config = DefaultConfig(DefaultBoardSize)
	}

	return &GameState{
		Board:       CreateInitialBoard(config.BoardSize),
		BoardSize:   config.BoardSize,
		Status:      NotStarted,
		CurrentPos:  nil,
		StepCount:   0,
		MoveHistory: []MoveHistoryEntry{},
		Message:     config.messages().Welcome,
		ConfigName:  config.Name,
		ShowHints:   config.ShowHints,
		NextMoves:   []Coordinate{},
	}
}

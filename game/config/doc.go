// Package config provides configuration management for the Knight's Tour game.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines the board size, whether next-move hints are
// shown, and the message templates used for the status line.
//
// Available Configurations:
//   - small: 5x5, the smallest board with a complete tour
//   - six, seven: intermediate boards
//   - classic: the standard 8x8 chessboard (default)
//   - nine, large: 9x9 and 10x10 boards for long tours
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("small")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// ValidateFile and ValidateDir back the validate command. Besides the
// engine's structural checks they flood-fill the knight graph and warn
// about boards on which a complete tour is impossible.
package config

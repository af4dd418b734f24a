// Package engine provides the core game logic for the Knight's Tour game.
//
// The engine package implements:
//   - The board model (CreateInitialBoard) and knight move generation
//     (IsValidSquare, GetValidMoves)
//   - The click-driven game state machine: not started, in progress, won, lost
//   - Next-move highlighting and move history
//   - Competition mode: a timed ladder of board sizes
//   - Configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState is the explicit, serialisable state
// of one game; GameConfig carries the board size and message templates
// loaded from JSON files.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultConfig(8))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Place the knight, then jump
//	gameEngine.Click(0, 0)
//	gameEngine.Click(1, 2)
//	state := gameEngine.GetState()
//
// Game Rules:
//
// The first click places the knight. Every following click must target an
// unvisited square one knight move away. The game is won when every square
// has been visited and lost when the knight has no unvisited square to jump
// to. The engine never searches for a tour; dead ends are part of play.
package engine

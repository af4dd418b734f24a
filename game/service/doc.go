// Package service provides the business logic layer for the Knight's Tour game.
//
// The service package implements:
//   - Multi-session game management
//   - Click processing with reason codes and gameplay events
//   - Board resizing, hint toggling and competition control
//   - Paginated move history
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine; the service serialises
// access to engines and returns deep copies of game state so transports can
// encode them without holding any lock.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "small", 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Place the knight, then jump
//	result, err := gameService.Move(ctx, info.ID, 0, 0, false)
//	result, err = gameService.Move(ctx, info.ID, 1, 2, false)
package service

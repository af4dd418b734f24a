// Package mcp exposes the knight's tour to AI agents over the Model Context Protocol.
//
// The package does not touch game state directly. Client is a thin proxy:
// every tool call is translated into a request against the REST API and the
// JSON response is rendered as text an agent can read.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - game_state: board diagram with step numbers, knight and hints
//   - valid_moves: legal next squares with onward move counts
//   - move: click a single square, by name ("C2") or by row/col
//   - bulk_move: click a list of squares in order
//   - reset_game, resize_board: start again
//   - start_competition: timed ladder of board sizes
//   - move_history: paginated list of visited squares
//   - list_configs: available board configurations
//   - describe_square: detail for one square
//   - game_instructions: rules and strategy
//
// Transport Modes:
//
// The server returned by GetMCPServer can be served over stdio with
// server.ServeStdio, or mounted on the HTTP server at /mcp where each POST
// body is handed to HandleMessage.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp

// Package api provides the HTTP REST API for the knight's tour server.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session ({config_id?, board_size?})
//   - GET /api/sessions - List sessions (sort=created|accessed, order, limit)
//   - GET /api/sessions/{id} - Session details
//   - DELETE /api/sessions/{id} - Remove a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/move - Click one square
//   - POST /api/sessions/{id}/bulk-move - Click a list of squares
//   - POST /api/sessions/{id}/reset - Start a new tour on the same board
//   - POST /api/sessions/{id}/resize - Change board size ({board_size})
//   - POST /api/sessions/{id}/hints - Toggle next-move hints ({show})
//   - GET /api/sessions/{id}/moves - Legal next squares
//   - GET /api/sessions/{id}/history - Visited squares (page, limit, order)
//
// Competition:
//   - POST /api/sessions/{id}/competition - Start ({levels?, time_limit_seconds?})
//   - DELETE /api/sessions/{id}/competition - Abandon
//
// Configuration:
//   - GET /api/configs - List configurations
//   - GET /api/configs/{name} - One configuration
//   - POST /api/configs - Save a configuration
//
// Other:
//   - GET /api/health - Liveness
//   - GET /ws?session={id} - WebSocket live updates
//   - GET / - Browser UI from the static directory
//
// Squares:
//
// A move body is either {"row": 1, "col": 2} or {"square": "C2"}; both name
// the same square. Bulk moves take the same two forms as a list:
//
//	{"squares": ["A1", "C2", "E1"], "reset": true}
//	{"squares": [{"row": 0, "col": 0}, {"row": 1, "col": 2}]}
//
// A refused click is not an HTTP error. The response is 200 with
// success=false and a reason code (invalid_square, already_visited,
// invalid_move, game_over).
//
// Error Handling:
//
// Errors are returned as {"error": "..."}. Unknown sessions and configs
// give 404, invalid board sizes, squares and configs give 400, a running
// competition blocks resizing with 400, everything else is 500.
package api

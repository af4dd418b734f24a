// Package websocket provides WebSocket transport for the Knight's Tour game.
//
// Architecture:
//
// A central Hub owns every connection. Its Run loop is the only goroutine
// that touches the client registry; registration, removal and broadcasts
// all arrive over channels. Each client has a read pump (keep-alive and
// disconnect detection) and a write pump (queued messages and pings).
//
// Message Protocol:
//
// Outgoing messages are JSON objects {session_id, game_state, event, data}.
// A client first receives "connected" carrying its client_id, then a
// "state_update" with the full GameState after every change made through
// the REST API, plus "competition_level", "game_won" and "game_lost" events.
// Incoming messages are ignored.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
//	hub.BroadcastToSession(sessionID, state)
package websocket

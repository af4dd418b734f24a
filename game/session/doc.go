// Package session provides session management for the Knight's Tour game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Short random session IDs
//   - Session lifecycle management and idle cleanup
//
// Core Types:
//
// Manager is the in-memory store behind service.SessionManager. Each
// service.Session owns its own engine.GameEngine, so any number of games can
// run side by side without sharing state.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Lookups are
// case-insensitive; "AB12" and "ab12" name the same session.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
//
// Cleanup:
//
// Sessions live until deleted or until CleanupExpiredSessions drops them for
// inactivity. Nothing is written to disk.
package session

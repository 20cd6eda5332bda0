// Package session provides session management for Cardfall.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Optional file-backed persistence
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session wraps its own engine instance plus metadata like seat
// bindings, creation time and last access time.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference, generated with
// cryptographic randomness and stored case-insensitively.
//
// Persistence:
//
// When constructed with NewManagerWithPersistence, the manager writes
// sessions through to a SessionPersistence implementation and falls back
// to it on cache misses, so a restarted server finds its games again.
// FilePersistence stores one JSON document per session; the game state
// inside it is the engine's serialized form and passes the same
// structural validation on load that any external state document would.
//
// Concurrency:
//
// The session manager is thread-safe. Multiple goroutines can safely
// create, retrieve, and delete sessions concurrently. Mutating a single
// session's game, however, is the service layer's job to serialize.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new session
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sessionID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// List all active sessions
//	sessions := manager.List()
package session

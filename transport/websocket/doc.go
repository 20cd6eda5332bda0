// Package websocket provides WebSocket transport for Cardfall.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Automatic board broadcasting after each committed move
//   - Connection lifecycle management
//   - Ping/pong keepalive handling
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a pair of
// dedicated goroutines for reading and writing.
//
// Message Protocol:
//
// Connections are one-way: clients watch, they do not act. Moves arrive
// through the REST API or MCP transport; after each committed move the
// server broadcasts a JSON message carrying the full GameState plus the
// engine events (move_committed, seat_eliminated, game_ended) that the
// move produced.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=ab12)
// when establishing the connection. Board updates are broadcast only to
// clients watching the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a committed move
//	hub.BroadcastToSession(sessionID, state, events)
//
// Concurrency:
//
// The hub is safe for concurrent use. Registration flows through the Run
// loop while broadcasts take a read lock on the session map, so multiple
// games can update simultaneously without blocking each other.
package websocket

// Package api provides HTTP REST API handlers for Cardfall.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Configuration listing and creation
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional config_id)
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//   - POST /api/sessions/{id}/join - Bind a player to a free human seat
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current board, seats and turn
//   - GET /api/sessions/{id}/legal-moves?seat=N - Destinations for a seat
//   - POST /api/sessions/{id}/path - One concrete step sequence
//   - POST /api/sessions/{id}/move - Commit a move
//   - POST /api/sessions/{id}/reset - Deal a fresh board
//   - GET /api/sessions/{id}/history - Move history with pagination
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - GET /api/configs/{name} - Get one configuration
//   - POST /api/configs - Save a configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. A move is sent as:
//
//	{
//	  "seat_id": 0,
//	  "to": {"row": 2, "col": 3},
//	  "version": 7   // optional optimistic concurrency check
//	}
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// Rule violations map to 409 Conflict: an illegal destination, a stale
// version, or a move into a finished game. Unknown sessions, configs and
// unreachable path requests map to 404.
package api

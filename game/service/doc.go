// Package service sits between the transports and the engine. It owns the
// operations every transport shares: creating and joining sessions,
// committing moves, querying state, legal moves and paths, and managing
// named configurations.
//
// The service is deliberately transport-agnostic. The REST API, the
// WebSocket hub and the MCP tools all call the same GameService methods,
// so game rules are enforced in exactly one place regardless of how a
// move arrives.
//
// Two responsibilities live here rather than in the engine:
//
//   - Player identity. Seats in the engine are plain integers. The service
//     binds opaque player identifiers to human seats at join time and
//     generates one when the caller arrives without an identity.
//
//   - Automated play. After a human move commits, the service keeps
//     applying policy-chosen moves while the seat to act is automated, so
//     a single Move call returns a session that is either finished or
//     waiting on a human again.
//
// Session and configuration storage are behind the SessionManager and
// ConfigManager interfaces so tests can substitute in-memory fakes.
package service

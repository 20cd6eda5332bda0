// Package mcp provides the Model Context Protocol server for Cardfall.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution
//   - Stdio transport mode
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_session: Create new game session with config selection
//   - join_session: Bind a player identity to a free human seat
//   - list_sessions: List all active sessions
//   - get_session: Get specific session details
//   - game_state: Get current board with a text rendering
//   - legal_moves: Enumerate a seat's reachable destinations
//   - move: Commit a move to a destination cell
//   - path: Reconstruct one concrete step sequence
//   - move_history: Retrieve move history with pagination
//   - list_configs: List available game configurations
//   - describe_cell: Inspect one board cell's card and occupancy
//   - game_instructions: Full rules and strategy notes
//
// Architecture:
//
// The client is a thin proxy: every tool call maps to a REST API request
// against the running Cardfall server, so the MCP surface never bypasses
// the rule checks and broadcasting the HTTP handlers perform.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously play the game
//   - Query legal moves and exact paths before committing
//   - Manage multiple game sessions
//   - Learn from move history
package mcp

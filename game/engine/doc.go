// Package engine provides the core game logic for Cardfall.
//
// Cardfall is played on an N x N grid of playing cards. The card under a
// seat dictates exactly how many orthogonal unit steps it must take on its
// turn; the departed cell burns away for the rest of the match. A seat with
// no legal move is eliminated, and the last seat able to move wins.
//
// The engine package implements:
//   - Deterministic board generation with reserved starting Aces
//   - Legal-move computation (BFS shortest distances plus a parity rule)
//   - Exact-path reconstruction for move execution and animation
//   - The turn/elimination/win state machine
//   - Move application with atomic validate-then-mutate semantics
//   - Whole-state JSON serialization for shared-store synchronization
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState is the complete serializable state
// of one game, and GameConfig defines the rules loaded from JSON files.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	seat := eng.CurrentSeat()
//	moves := eng.LegalMoves(seat)
//	events, err := eng.ApplyMove(seat, moves[0])
//
// Movement Topology:
//
// Two movement variants exist and are selected explicitly per game:
// toroidal (row/col wrap modulo the grid size) and bounded (off-grid moves
// are illegal). The active variant is part of the serialized state so a
// stored game replays under the rules it was dealt with.
//
// Concurrency:
//
// The engine core is single-threaded and synchronous. ApplyMove is the only
// mutation entry point and re-validates before writing; surrounding layers
// must serialize moves per session and use the state Version field to
// detect conflicting writes.
package engine

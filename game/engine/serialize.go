package engine

import (
	"encoding/json"
	"fmt"
)

// Serialize encodes a game state as a plain structural JSON document
// suitable for writing wholesale to a shared store. No engine-internal
// object identity survives the round trip; Deserialize reconstructs an
// equivalent session.
func Serialize(state *GameState) ([]byte, error) {
	if state == nil {
		return nil, fmt.Errorf("serialize: state is nil")
	}
	return json.Marshal(state)
}

// Deserialize decodes a game state document and checks its structural
// invariants before handing it back.
func Deserialize(doc []byte) (*GameState, error) {
	var state GameState
	if err := json.Unmarshal(doc, &state); err != nil {
		return nil, fmt.Errorf("deserialize: %w", err)
	}

	if state.GridSize < MinGridSize || state.GridSize > MaxGridSize {
		return nil, fmt.Errorf("deserialize: grid size %d out of range", state.GridSize)
	}
	if len(state.Board) != state.GridSize {
		return nil, fmt.Errorf("deserialize: board has %d rows, expected %d", len(state.Board), state.GridSize)
	}
	for r, row := range state.Board {
		if len(row) != state.GridSize {
			return nil, fmt.Errorf("deserialize: row %d has %d cells, expected %d", r, len(row), state.GridSize)
		}
	}
	switch state.Topology {
	case TopologyToroidal, TopologyBounded:
	default:
		return nil, fmt.Errorf("deserialize: unknown topology %q", state.Topology)
	}
	if len(state.Seats) < MinSeats || len(state.Seats) > MaxSeats {
		return nil, fmt.Errorf("deserialize: %d seats out of range", len(state.Seats))
	}
	for _, seat := range state.Seats {
		if !state.InBounds(seat.Position) {
			return nil, fmt.Errorf("deserialize: seat %d off board at (%d,%d)",
				seat.ID, seat.Position.Row, seat.Position.Col)
		}
	}

	return &state, nil
}

package service

import (
	"time"

	"github.com/cardfall/cardfall/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	SeatBindings   map[int]string     `json:"seat_bindings,omitempty"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// JoinResult reports the seat a player was bound to
type JoinResult struct {
	SessionID string `json:"session_id"`
	PlayerID  string `json:"player_id"`
	SeatID    int    `json:"seat_id"`
}

// MoveRequest carries one move intent. Version, when nonzero, is the state
// version the caller computed the move against; a mismatch rejects the
// move instead of silently overwriting a concurrent one.
type MoveRequest struct {
	SeatID  int             `json:"seat_id"`
	To      engine.Position `json:"to"`
	Version int             `json:"version,omitempty"`
}

// PathRequest asks for one concrete step sequence between two cells
type PathRequest struct {
	From  engine.Position `json:"from"`
	To    engine.Position `json:"to"`
	Steps int             `json:"steps"`
}

// MoveResult contains the result of a move operation, including any
// automated-seat turns that played out after the committed move.
type MoveResult struct {
	GameState *engine.GameState  `json:"game_state"`
	Events    []engine.GameEvent `json:"events"`
	AutoMoves int                `json:"auto_moves"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveRecord `json:"moves"`
	TotalMoves  int                 `json:"total_moves"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string          `json:"filename"`
	ConfigID    string          `json:"config_id"` // The identifier to use for session creation
	Name        string          `json:"name"`      // Display name
	Description string          `json:"description"`
	GridSize    int             `json:"grid_size"`
	SeatCount   int             `json:"seat_count"`
	Topology    engine.Topology `json:"topology"`
}

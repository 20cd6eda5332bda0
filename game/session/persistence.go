package session

import (
	"encoding/json"
	"time"

	"github.com/cardfall/cardfall/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the JSON structure for persisted sessions. The
// game state is stored as the engine's own serialized document so a
// restored session replays through the same structural validation a
// caller-supplied state would.
type PersistedSessionData struct {
	ID             string          `json:"id"`
	ConfigName     string          `json:"config_name"`
	SeatBindings   map[int]string  `json:"seat_bindings,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	GameState      json.RawMessage `json:"game_state"`
}

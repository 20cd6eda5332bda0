package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/cardfall/cardfall/game/engine"
)

var (
	// ErrNoFreeSeat means every human seat in the session is already bound
	// to a player.
	ErrNoFreeSeat = errors.New("no free human seat in session")

	// ErrAlreadyJoined means the player identifier is already bound to a
	// seat in this session.
	ErrAlreadyJoined = errors.New("player already joined session")
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	policy   engine.SeatPolicy
	mu       sync.Mutex
}

// NewGameService creates a new game service instance. Automated seats play
// with the uniform-random policy.
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return NewGameServiceWithPolicy(sessions, configs, engine.NewRandomPolicy(nil))
}

// NewGameServiceWithPolicy creates a game service with a custom
// automated-seat policy.
func NewGameServiceWithPolicy(sessions SessionManager, configs ConfigManager, policy engine.SeatPolicy) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		policy:   policy,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			available, listErr := s.configs.ListConfigs()
			if listErr == nil && len(available) > 0 {
				var ids []string
				for _, cfg := range available {
					ids = append(ids, cfg.ConfigID)
				}
				return nil, fmt.Errorf("failed to load config %q (available: %v): %w", configName, ids, err)
			}
			return nil, fmt.Errorf("failed to load config %q: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let the session manager generate an ID.
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// JoinSession binds an opaque player identifier to the next free human
// seat. A caller without an identity gets a generated one back; the engine
// itself never interprets the string.
func (s *gameServiceImpl) JoinSession(ctx context.Context, sessionID, playerID string) (*JoinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	if playerID == "" {
		playerID = uuid.NewString()
	}
	if sess.SeatBindings == nil {
		sess.SeatBindings = make(map[int]string)
	}
	for seatID, bound := range sess.SeatBindings {
		if bound == playerID {
			return nil, fmt.Errorf("%w: seat %d", ErrAlreadyJoined, seatID)
		}
	}

	for _, seat := range sess.Engine.GetState().Seats {
		if seat.Kind != engine.SeatHuman {
			continue
		}
		if _, taken := sess.SeatBindings[seat.ID]; taken {
			continue
		}
		sess.SeatBindings[seat.ID] = playerID
		s.sessions.Save(sessionID)
		return &JoinResult{SessionID: sess.ID, PlayerID: playerID, SeatID: seat.ID}, nil
	}

	return nil, ErrNoFreeSeat
}

// Move validates and commits a move, then plays out any automated seats
// whose turns follow, so the caller gets back a session that is either
// finished or awaiting a human seat.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, req MoveRequest) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	state := sess.Engine.GetState()
	if req.Version != 0 && req.Version != state.Version {
		return nil, fmt.Errorf("%w: caller saw version %d, session at %d",
			engine.ErrVersionConflict, req.Version, state.Version)
	}

	events, err := sess.Engine.ApplyMove(req.SeatID, req.To)
	if err != nil {
		return nil, err
	}

	autoEvents, autoMoves := s.playAutomatedSeats(sess)
	events = append(events, autoEvents...)

	s.sessions.Save(sessionID)

	return &MoveResult{
		GameState: sess.Engine.GetState(),
		Events:    events,
		AutoMoves: autoMoves,
	}, nil
}

// playAutomatedSeats advances the session while the seat to move is
// automated. Every committed move burns a cell, so the loop terminates.
func (s *gameServiceImpl) playAutomatedSeats(sess *Session) ([]engine.GameEvent, int) {
	var events []engine.GameEvent
	autoMoves := 0

	for !sess.Engine.IsGameOver() {
		state := sess.Engine.GetState()
		seat := state.Seats[state.CurrentSeat]
		if seat.Kind != engine.SeatAutomated {
			break
		}

		moves := sess.Engine.LegalMoves(seat.ID)
		if len(moves) == 0 {
			// The machine only awaits seats with moves; treat this as a
			// stale snapshot and stop rather than loop.
			break
		}
		pick := s.policy.ChooseMove(seat, moves)
		moveEvents, err := sess.Engine.ApplyMove(seat.ID, pick)
		if err != nil {
			break
		}
		events = append(events, moveEvents...)
		autoMoves++
	}

	return events, autoMoves
}

// Reset deals a fresh board for the session
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	state, err := sess.Engine.Reset()
	if err != nil {
		return nil, fmt.Errorf("failed to reset session: %w", err)
	}
	s.sessions.Save(sessionID)
	return state, nil
}

// GetGameState returns the full state snapshot for a session
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// LegalMoves computes the legal destinations for a seat
func (s *gameServiceImpl) LegalMoves(ctx context.Context, sessionID string, seatID int) ([]engine.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return sess.Engine.LegalMoves(seatID), nil
}

// ExactPath reconstructs one concrete step sequence. Zero steps defaults
// to the value of the card under the from cell.
func (s *gameServiceImpl) ExactPath(ctx context.Context, sessionID string, req PathRequest) ([]engine.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	state := sess.Engine.GetState()
	steps := req.Steps
	if steps == 0 {
		if !state.InBounds(req.From) {
			return nil, fmt.Errorf("%w: from cell off board", engine.ErrNoPathFound)
		}
		steps = state.CardValueAt(req.From)
	}
	return sess.Engine.ExactPath(req.From, req.To, steps)
}

// GetMoveHistory returns a page of the session's move log
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 20
	}

	ordered := make([]engine.MoveRecord, total)
	copy(ordered, history)
	if opts.Order == "desc" {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}

	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &HistoryResponse{
		Moves:       ordered[start:end],
		TotalMoves:  total,
		Page:        page,
		PageSize:    limit,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1 && total > 0,
	}, nil
}

// ListConfigs returns information about available configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a configuration by name
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig persists a configuration under the given name
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if err := engine.ValidateGameConfig(config); err != nil {
		return err
	}
	return s.configs.SaveConfig(configName, config)
}

// sessionInfo builds the external view of a session
func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.Config.Name,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		SeatBindings:   sess.SeatBindings,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}

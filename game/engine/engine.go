package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() (*GameState, error)
	IsGameOver() bool
	Winner() *int
	CurrentSeat() int

	// Move computation
	LegalMoves(seatID int) []Position
	ExactPath(from, to Position, steps int) ([]Position, error)

	// Mutation
	ApplyMove(seatID int, to Position) ([]GameEvent, error)

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveRecord
	GetLastMove() *MoveRecord
}

// GameEngine implements the Engine interface. It is single-threaded by
// design: one mutation entry point, no internal concurrency, no I/O.
// Callers that share an engine across goroutines must serialize access.
type GameEngine struct {
	state  *GameState
	config *GameConfig
}

// NewEngine creates a new game engine with the provided configuration,
// dealing a fresh board and immediately evaluating the opening turn so
// seats stuck from the deal are eliminated without an external poll.
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{config: config}
	if _, err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewEngineWithDefaults creates a new game engine with the default configuration
func NewEngineWithDefaults() *GameEngine {
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		// The default config is statically valid.
		panic(fmt.Sprintf("engine: default config rejected: %v", err))
	}
	return e
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState replaces the game state (used when loading a persisted or
// synchronized session).
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.GridSize < MinGridSize || state.GridSize > MaxGridSize {
		return fmt.Errorf("invalid state: grid size %d out of range", state.GridSize)
	}
	if len(state.Board) != state.GridSize {
		return fmt.Errorf("invalid state: board has %d rows, expected %d", len(state.Board), state.GridSize)
	}
	e.state = state
	return nil
}

// Reset deals a new board and restarts the game. A configured nonzero seed
// reproduces the same deal; otherwise each reset draws a fresh seed, which
// is recorded in the state.
func (e *GameEngine) Reset() (*GameState, error) {
	seed := e.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	board, seats, err := Generate(e.config, rng)
	if err != nil {
		return nil, err
	}

	e.state = &GameState{
		GridSize:    e.config.GridSize,
		Topology:    e.config.Topology,
		Seed:        seed,
		Board:       board,
		Seats:       seats,
		CurrentSeat: 0,
		Turn:        1,
		Status:      StatusInProgress,
		History:     []MoveRecord{},
		ConfigName:  e.config.Name,
	}
	e.state.evaluate(e.config)
	return e.state, nil
}

// IsGameOver returns whether the session has finished
func (e *GameEngine) IsGameOver() bool {
	return e.state.Status == StatusFinished
}

// Winner returns the winning seat ID, or nil for a draw or an unfinished game
func (e *GameEngine) Winner() *int {
	return e.state.Winner
}

// CurrentSeat returns the seat awaiting a move
func (e *GameEngine) CurrentSeat() int {
	return e.state.CurrentSeat
}

// LegalMoves returns every legal destination for the seat, or an empty set
// for a finished or unknown seat.
func (e *GameEngine) LegalMoves(seatID int) []Position {
	return e.state.LegalMoves(seatID)
}

// ExactPath reconstructs one concrete step sequence between two cells for
// execution and animation.
func (e *GameEngine) ExactPath(from, to Position, steps int) ([]Position, error) {
	return e.state.ExactPath(from, to, steps)
}

// ApplyMove validates and commits a move for the seat, returning the
// structured events the transition produced.
func (e *GameEngine) ApplyMove(seatID int, to Position) ([]GameEvent, error) {
	return e.state.applyMove(e.config, seatID, to)
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and restarts the game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}
	e.config = config
	_, err := e.Reset()
	return err
}

// GetMoveHistory returns the append-only move log
func (e *GameEngine) GetMoveHistory() []MoveRecord {
	return e.state.History
}

// GetLastMove returns the last committed move, or nil if none
func (e *GameEngine) GetLastMove() *MoveRecord {
	if len(e.state.History) == 0 {
		return nil
	}
	return &e.state.History[len(e.state.History)-1]
}

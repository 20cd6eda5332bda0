package engine

import (
	"fmt"
	"strings"
)

// GameConfig defines the rules for one game, loaded from JSON files in the
// configs directory.
type GameConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	GridSize    int      `json:"grid_size"`
	SeatCount   int      `json:"seat_count"`
	HumanSeats  int      `json:"human_seats"`
	Topology    Topology `json:"topology"`

	// Seed fixes the deal for reproducible games; 0 means draw a fresh
	// seed at generation time.
	Seed int64 `json:"seed,omitempty"`

	Messages struct {
		Welcome    string `json:"welcome"`
		YourTurn   string `json:"your_turn"`
		Eliminated string `json:"eliminated"`
		Victory    string `json:"victory"`
		Draw       string `json:"draw"`
	} `json:"messages"`
}

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.GridSize < MinGridSize || config.GridSize > MaxGridSize {
		return fmt.Errorf("config validation: grid_size must be between %d and %d, got %d",
			MinGridSize, MaxGridSize, config.GridSize)
	}
	if config.SeatCount < MinSeats || config.SeatCount > MaxSeats {
		return fmt.Errorf("config validation: seat_count must be between %d and %d, got %d",
			MinSeats, MaxSeats, config.SeatCount)
	}
	if config.HumanSeats < 0 || config.HumanSeats > config.SeatCount {
		return fmt.Errorf("config validation: human_seats must be between 0 and seat_count (%d), got %d",
			config.SeatCount, config.HumanSeats)
	}

	switch config.Topology {
	case TopologyToroidal, TopologyBounded:
	case "":
		return fmt.Errorf("config validation: topology is required (toroidal or bounded)")
	default:
		return fmt.Errorf("config validation: unknown topology %q", config.Topology)
	}

	// The seat count precondition: one distinct-suit Ace per seat must be
	// dealable. Checked here so generation never surprises at runtime.
	if config.SeatCount > len(Suits) {
		return fmt.Errorf("config validation: seat_count %d exceeds %d available starting aces",
			config.SeatCount, len(Suits))
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if !strings.Contains(config.Messages.YourTurn, "%d") {
		return fmt.Errorf("config validation: messages.your_turn must contain %%d for the seat number")
	}
	if !strings.Contains(config.Messages.Eliminated, "%d") {
		return fmt.Errorf("config validation: messages.eliminated must contain %%d for the seat number")
	}
	if !strings.Contains(config.Messages.Victory, "%d") {
		return fmt.Errorf("config validation: messages.victory must contain %%d for the winning seat")
	}
	if config.Messages.Draw == "" {
		return fmt.Errorf("config validation: messages.draw is required")
	}

	return nil
}

// DefaultConfig returns the built-in configuration used when no configs
// directory entry is selected: a 6x6 toroidal duel against one automated
// seat.
func DefaultConfig() *GameConfig {
	cfg := &GameConfig{
		Name:        "Default Duel",
		Description: "6x6 toroidal board, one human seat against one automated seat",
		GridSize:    6,
		SeatCount:   2,
		HumanSeats:  1,
		Topology:    TopologyToroidal,
	}
	cfg.Messages.Welcome = "Welcome to Cardfall!"
	cfg.Messages.YourTurn = "Seat %d to move"
	cfg.Messages.Eliminated = "Seat %d has no more moves"
	cfg.Messages.Victory = "Seat %d wins!"
	cfg.Messages.Draw = "Draw: no seats remain"
	return cfg
}

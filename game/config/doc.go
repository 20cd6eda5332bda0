// Package config provides configuration management for Cardfall.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Grid size (the board is always square)
//   - Seat counts (total seats and how many are human)
//   - Board topology (toroidal wrap-around or bounded edges)
//   - An optional fixed deal seed for reproducible games
//   - Game messages for various events
//
// Available Configurations:
//
// The package ships several board setups:
//   - classic: 8x8 toroidal board for three seats
//   - duel: 6x6 toroidal board, one human against one automated seat
//   - solitaire: 5x5 bounded board with a single seat
//   - royale: 10x10 toroidal board with four seats
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("duel")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Grid size within the supported range
//   - Seat counts the deck can actually seat
//   - A known topology value
//   - Required message templates with the right format verbs
package config

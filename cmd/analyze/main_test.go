package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cardfall/cardfall/game/engine"
)

func testConfig() *engine.GameConfig {
	cfg := engine.DefaultConfig()
	cfg.Seed = 20250901
	return cfg
}

func writeConfig(t *testing.T, cfg *engine.GameConfig) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")

	data := []byte(`{
		"name": "` + cfg.Name + `",
		"description": "` + cfg.Description + `",
		"grid_size": 6,
		"seat_count": 2,
		"human_seats": 1,
		"topology": "toroidal",
		"seed": 20250901,
		"messages": {
			"welcome": "Welcome!",
			"your_turn": "Seat %d to move",
			"eliminated": "Seat %d is out",
			"victory": "Seat %d wins!",
			"draw": "Draw"
		}
	}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, testConfig())

	config, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if config.GridSize != 6 {
		t.Errorf("Expected grid size 6, got %d", config.GridSize)
	}
	if config.SeatCount != 2 {
		t.Errorf("Expected 2 seats, got %d", config.SeatCount)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestLoadConfig_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"name":"X","description":"Y","grid_size":42,"seat_count":2,"human_seats":1,"topology":"toroidal"}`), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Error("Expected validation error for grid_size 42")
	}
}

func TestAnalyzeDeal(t *testing.T) {
	config := testConfig()

	report, err := analyzeDeal(config)
	if err != nil {
		t.Fatalf("analyzeDeal failed: %v", err)
	}

	totalCells := 0
	for value, count := range report.ValueCounts {
		if value < 1 || value > 8 {
			t.Errorf("Unexpected card value %d on board", value)
		}
		totalCells += count
	}
	if totalCells != config.GridSize*config.GridSize {
		t.Errorf("Expected %d cells counted, got %d", config.GridSize*config.GridSize, totalCells)
	}

	if len(report.OpeningMoves) != config.SeatCount {
		t.Fatalf("Expected opening moves for %d seats, got %d", config.SeatCount, len(report.OpeningMoves))
	}
	for seatID, moves := range report.OpeningMoves {
		if moves < 0 {
			t.Errorf("Seat %d has negative opening move count", seatID)
		}
	}
}

func TestSelfPlay(t *testing.T) {
	config := testConfig()

	report := selfPlay(config, 10)
	if report.Games != 10 {
		t.Fatalf("Expected 10 games, got %d", report.Games)
	}

	finished := report.Draws
	for _, wins := range report.Wins {
		finished += wins
	}
	if finished != report.Games {
		t.Errorf("Wins (%v) plus draws (%d) should cover all %d games", report.Wins, report.Draws, report.Games)
	}

	if report.MaxMoves > config.GridSize*config.GridSize {
		t.Errorf("Game length %d exceeds cell count %d", report.MaxMoves, config.GridSize*config.GridSize)
	}
	if report.MinMoves < 0 {
		t.Errorf("MinMoves should be set, got %d", report.MinMoves)
	}
	if report.AvgBurned > float64(config.GridSize*config.GridSize) {
		t.Errorf("Average burned cells %.1f exceeds board size", report.AvgBurned)
	}
}

func TestPlayOut_Terminates(t *testing.T) {
	config := testConfig()
	eng, err := engine.NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	playOut(eng, engine.NewRandomPolicy(nil))

	if !eng.IsGameOver() {
		t.Error("Expected game to be over after playOut")
	}
}

func TestAnalyzeConfigDoesNotPanic(t *testing.T) {
	path := writeConfig(t, testConfig())

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeConfig panicked: %v", r)
		}
	}()
	analyzeConfig(path, 5)
	analyzeConfig(filepath.Join(t.TempDir(), "missing.json"), 5)
}

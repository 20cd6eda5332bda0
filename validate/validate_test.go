package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

const validConfigJSON = `{
	"name": "Test Duel",
	"description": "A test configuration",
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
}`

func TestValidateConfig_Valid(t *testing.T) {
	path := writeConfigFile(t, validConfigJSON)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, got errors: %v", result.Errors)
	}

	joined := strings.Join(result.Errors, "\n")
	if !strings.Contains(joined, "Test Duel") {
		t.Errorf("Expected name in info output, got: %v", result.Errors)
	}
	if !strings.Contains(joined, "6x6") {
		t.Errorf("Expected grid dimensions in info output, got: %v", result.Errors)
	}
	if !strings.Contains(joined, "Pinned seed") {
		t.Errorf("Expected pinned seed note in info output, got: %v", result.Errors)
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig(filepath.Join(t.TempDir(), "nope.json"))
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	path := writeConfigFile(t, "{not json")

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Invalid JSON") {
		t.Errorf("Expected JSON parse error, got: %v", result.Errors)
	}
}

func TestValidateConfig_GridSizeOutOfRange(t *testing.T) {
	path := writeConfigFile(t, strings.Replace(validConfigJSON, `"grid_size": 6`, `"grid_size": 42`, 1))

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid result for grid_size 42")
	}
}

func TestValidateConfig_TooManySeats(t *testing.T) {
	path := writeConfigFile(t, strings.Replace(validConfigJSON, `"seat_count": 2`, `"seat_count": 5`, 1))

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid result for seat_count 5")
	}
}

func TestValidateConfig_UnknownTopology(t *testing.T) {
	path := writeConfigFile(t, strings.Replace(validConfigJSON, `"topology": "toroidal"`, `"topology": "klein_bottle"`, 1))

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid result for unknown topology")
	}
}

func TestValidateConfig_MissingPlaceholder(t *testing.T) {
	path := writeConfigFile(t, strings.Replace(validConfigJSON, `"your_turn": "Seat %d to move"`, `"your_turn": "Your move"`, 1))

	result := validateConfig(path)
	if result.Valid {
		t.Errorf("Expected invalid result for your_turn without %%d placeholder")
	}
}

func TestValidatePlayability_UnpinnedSeedNeverFails(t *testing.T) {
	path := writeConfigFile(t, strings.Replace(validConfigJSON, `"seed": 20250901,`, ``, 1))

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Config without pinned seed should validate, got errors: %v", result.Errors)
	}

	joined := strings.Join(result.Errors, "\n")
	if !strings.Contains(joined, "Playability") {
		t.Errorf("Expected playability note in output, got: %v", result.Errors)
	}
}

func TestValidationResult_StructFields(t *testing.T) {
	result := ValidationResult{
		File:   "classic.json",
		Valid:  true,
		Errors: []string{"✓ ok"},
	}

	if result.File != "classic.json" {
		t.Errorf("Expected File 'classic.json', got '%s'", result.File)
	}
	if !result.Valid {
		t.Error("Expected Valid true")
	}
	if len(result.Errors) != 1 {
		t.Errorf("Expected 1 message, got %d", len(result.Errors))
	}
}

func TestValidateConfig_ProjectConfigs(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "configs", "*.json"))
	if err != nil || len(files) == 0 {
		t.Skip("Skipping test - no project configs found")
	}

	for _, file := range files {
		result := validateConfig(file)
		if !result.Valid {
			t.Errorf("Project config %s failed validation: %v", result.File, result.Errors)
		}
	}
}

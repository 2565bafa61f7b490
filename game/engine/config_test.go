package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GameConfig)
		wantErr string
	}{
		{"valid", func(c *GameConfig) {}, ""},
		{"missing name", func(c *GameConfig) { c.Name = "" }, "name is required"},
		{"zero cell size", func(c *GameConfig) { c.CellSize = 0 }, "cell_size"},
		{"canvas not multiple", func(c *GameConfig) { c.CanvasSize = 410 }, "multiple of cell_size"},
		{"grid too small", func(c *GameConfig) { c.CanvasSize = 80 }, "cells per side"},
		{"grid too large", func(c *GameConfig) { c.CanvasSize = 2020 }, "cells per side"},
		{"zero length", func(c *GameConfig) { c.InitialLength = 0 }, "initial_length"},
		{"length wider than grid", func(c *GameConfig) { c.InitialLength = 21 }, "initial_length"},
		{"start row outside", func(c *GameConfig) { c.StartRow = 20 }, "start_row"},
		{"negative start row", func(c *GameConfig) { c.StartRow = -1 }, "start_row"},
		{"zero min speed", func(c *GameConfig) { c.MinSpeed = 0 }, "min_speed"},
		{"initial below floor", func(c *GameConfig) { c.InitialSpeed = 40 }, "initial_speed"},
		{"negative increment", func(c *GameConfig) { c.SpeedIncrement = -1 }, "speed_increment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createTestConfig()
			tt.mutate(config)

			err := ValidateGameConfig(config)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected valid config, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateGameConfig_Nil(t *testing.T) {
	if err := ValidateGameConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestDefaultGameConfig(t *testing.T) {
	config := DefaultGameConfig()
	if err := ValidateGameConfig(config); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if config.GridCells() != 20 {
		t.Errorf("Expected 20 grid cells, got %d", config.GridCells())
	}
	if config.InitialSpeed != 150 || config.SpeedIncrement != 5 || config.MinSpeed != 50 {
		t.Errorf("Unexpected default pacing: %+v", config)
	}
}

func TestLoadGameConfig(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "classic.json")
	content := `{
  "name": "Classic",
  "description": "test",
  "canvas_size": 400,
  "cell_size": 20,
  "initial_length": 3,
  "start_row": 10,
  "initial_speed": 150,
  "speed_increment": 5,
  "min_speed": 50
}`
	if err := os.WriteFile(valid, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadGameConfig(valid)
	if err != nil {
		t.Fatalf("LoadGameConfig failed: %v", err)
	}
	if config.Name != "Classic" || config.GridCells() != 20 {
		t.Errorf("Unexpected config: %+v", config)
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadGameConfig(filepath.Join(dir, "missing.json")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("bad json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		os.WriteFile(path, []byte("{not json"), 0644)
		if _, err := LoadGameConfig(path); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		os.WriteFile(path, []byte(`{"name":"x","canvas_size":400,"cell_size":20}`), 0644)
		if _, err := LoadGameConfig(path); err == nil {
			t.Error("Expected validation error")
		}
	})
}

func TestFoodsToMinSpeed(t *testing.T) {
	config := createTestConfig()
	if got := config.FoodsToMinSpeed(); got != 20 {
		t.Errorf("Expected 20 foods to reach the floor, got %d", got)
	}

	config.SpeedIncrement = 0
	if got := config.FoodsToMinSpeed(); got != 0 {
		t.Errorf("Expected 0 with no increment, got %d", got)
	}
}

func TestParseDirection(t *testing.T) {
	tests := map[string]Direction{
		"up":     Up,
		"DOWN":   Down,
		" left ": Left,
		"Right":  Right,
	}
	for in, want := range tests {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if _, err := ParseDirection("north"); err == nil {
		t.Error("Expected error for unknown direction")
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := [][2]Direction{{Up, Down}, {Left, Right}}
	for _, p := range pairs {
		if p[0].Opposite() != p[1] || p[1].Opposite() != p[0] {
			t.Errorf("Expected %v and %v to be opposites", p[0], p[1])
		}
		if !p[0].IsOpposite(p[1]) {
			t.Errorf("IsOpposite(%v, %v) = false", p[0], p[1])
		}
	}
	if Up.IsOpposite(Left) {
		t.Error("Up and Left are not opposites")
	}
}

func TestOutcomeString(t *testing.T) {
	tests := map[Outcome]string{
		OutcomeIdle:     "idle",
		OutcomeContinue: "continue",
		OutcomeAteFood:  "ate_food",
		OutcomeGameOver: "game_over",
	}
	for outcome, want := range tests {
		if outcome.String() != want {
			t.Errorf("Outcome %d: expected %q, got %q", int(outcome), want, outcome.String())
		}
	}
}

func TestInitialSnake(t *testing.T) {
	snake := InitialSnake(3, 10)
	want := []Cell{{2, 10}, {1, 10}, {0, 10}}
	for i := range want {
		if snake[i] != want[i] {
			t.Errorf("segment %d: expected %v, got %v", i, want[i], snake[i])
		}
	}
}

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `{
	"name": "Test Config",
	"description": "Test configuration",
	"canvas_size": 200,
	"cell_size": 20,
	"initial_length": 3,
	"start_row": 5,
	"initial_speed": 150,
	"speed_increment": 5,
	"min_speed": 50
}`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func hasError(result ValidationResult, substr string) bool {
	for _, err := range result.Errors {
		if strings.Contains(err, substr) {
			return true
		}
	}
	return false
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "test.json", validConfig)

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}
	if result.Name != "Test Config" {
		t.Errorf("Expected name 'Test Config', got %q", result.Name)
	}
	if !hasError(result, "✓ Grid: 10x10") {
		t.Errorf("Expected grid info, got %v", result.Errors)
	}
}

func TestValidateConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"invalid JSON", "bad.json", `{"name": "Bad",`, "Invalid JSON"},
		{"unknown field", "extra.json", `{"name": "Extra", "grid_size": 5}`, "Invalid JSON"},
		{"missing name", "noname.json", strings.Replace(validConfig, `"Test Config"`, `""`, 1), "name is required"},
		{"canvas not a multiple", "odd.json", strings.Replace(validConfig, `"canvas_size": 200`, `"canvas_size": 210`, 1), "multiple of cell_size"},
		{"snake too long", "long.json", strings.Replace(validConfig, `"initial_length": 3`, `"initial_length": 11`, 1), "initial_length"},
		{"start row outside", "row.json", strings.Replace(validConfig, `"start_row": 5`, `"start_row": 10`, 1), "start_row"},
		{"speed below floor", "slow.json", strings.Replace(validConfig, `"initial_speed": 150`, `"initial_speed": 40`, 1), "initial_speed"},
		{"uppercase file name", "Classic.json", validConfig, "not a valid config ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.file, tt.content)

			result := validateConfig(path)
			if result.Valid {
				t.Fatal("Expected invalid config")
			}
			if !hasError(result, tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, result.Errors)
			}
		})
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig(filepath.Join(t.TempDir(), "missing.json"))
	if result.Valid || !hasError(result, "Failed to read file") {
		t.Errorf("Expected a read error, got %+v", result)
	}
}

func TestValidateDir_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.json", validConfig)
	writeConfig(t, dir, "b.json", strings.Replace(validConfig, "Test Config", "test config", 1))

	results, err := validateDir(dir)
	if err != nil {
		t.Fatalf("validateDir failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if !results[0].Valid {
		t.Errorf("Expected a.json to be valid: %v", results[0].Errors)
	}
	if results[1].Valid || !hasError(results[1], "already used by a.json") {
		t.Errorf("Expected a duplicate name error for b.json, got %v", results[1].Errors)
	}
}

func TestValidateShippedConfigs(t *testing.T) {
	results, err := validateDir("../configs")
	if err != nil {
		t.Fatalf("validateDir failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Expected shipped configs")
	}
	for _, result := range results {
		if !result.Valid {
			t.Errorf("%s is invalid: %v", result.File, result.Errors)
		}
	}
}

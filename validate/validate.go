// Command validate provides a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and unknown fields
//   - Engine validation: grid geometry, starting snake and pacing
//   - File names usable as config IDs (lowercase, no spaces)
//   - Unique display names across files
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/snake-game/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Name   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	stem := strings.TrimSuffix(result.File, ".json")
	if stem != strings.ToLower(stem) || strings.ContainsAny(stem, " \t") {
		result.fail("File name %q is not a valid config ID (use lowercase without spaces)", result.File)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}
	result.Name = config.Name

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	if config.Description == "" {
		result.info("No description")
	}
	result.info("Grid: %dx%d, snake length %d on row %d", config.GridCells(), config.GridCells(), config.InitialLength, config.StartRow)
	result.info("Speed: %dms down to %dms in steps of %dms", config.InitialSpeed, config.MinSpeed, config.SpeedIncrement)

	return result
}

// validateDir validates every *.json file in dir, sorted by file name, and
// flags display names used by more than one file.
func validateDir(dir string) ([]ValidationResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	results := make([]ValidationResult, 0, len(files))
	names := make(map[string]string)
	for _, file := range files {
		result := validateConfig(file)
		if result.Name != "" {
			key := strings.ToLower(result.Name)
			if other, exists := names[key]; exists {
				result.fail("Name %q is already used by %s", result.Name, other)
			} else {
				names[key] = result.File
			}
		}
		results = append(results, result)
	}

	return results, nil
}

// main scans ../configs (or the directory given as argument) for *.json
// files and validates each one, printing a concise report and exiting with
// non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	results, err := validateDir(configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, result := range results {
		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}

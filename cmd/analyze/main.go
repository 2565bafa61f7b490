// Command analyze prints quick, human-readable pacing figures for the game
// configurations in a configs directory: board size, how many foods it takes
// to reach top speed, how long a full crossing of the board takes at the
// start and at top speed, and warnings for presets that are unplayable in
// practice.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/wricardo/snake-game/game/engine"
)

const (
	// fastestPlayable is the step interval under which few players can react
	fastestPlayable = 40 * time.Millisecond
	// minHeadStart is the number of free cells wanted in front of the head
	minHeadStart = 3
)

// Analysis holds the derived figures of one configuration
type Analysis struct {
	File            string
	Name            string
	GridCells       int
	InitialLength   int
	HeadStart       int
	MaxScore        int
	InitialSpeed    time.Duration
	MinSpeed        time.Duration
	FoodsToMinSpeed int
	CrossingAtStart time.Duration
	CrossingAtMin   time.Duration
	Warnings        []string
}

func analyze(file string, cfg *engine.GameConfig) Analysis {
	cells := cfg.GridCells()
	a := Analysis{
		File:            file,
		Name:            cfg.Name,
		GridCells:       cells,
		InitialLength:   cfg.InitialLength,
		HeadStart:       cells - cfg.InitialLength,
		MaxScore:        cells*cells - cfg.InitialLength,
		InitialSpeed:    time.Duration(cfg.InitialSpeed) * time.Millisecond,
		MinSpeed:        time.Duration(cfg.MinSpeed) * time.Millisecond,
		FoodsToMinSpeed: cfg.FoodsToMinSpeed(),
	}
	a.CrossingAtStart = time.Duration(cells) * a.InitialSpeed
	a.CrossingAtMin = time.Duration(cells) * a.MinSpeed

	if a.MinSpeed < fastestPlayable {
		a.Warnings = append(a.Warnings, fmt.Sprintf("top speed %s is faster than %s", a.MinSpeed, fastestPlayable))
	}
	if a.HeadStart < minHeadStart {
		a.Warnings = append(a.Warnings, fmt.Sprintf("head start of %d cells before the wall is under %d", a.HeadStart, minHeadStart))
	}
	if cfg.StartRow == 0 || cfg.StartRow == cells-1 {
		a.Warnings = append(a.Warnings, fmt.Sprintf("snake starts against the wall on row %d", cfg.StartRow))
	}
	if cfg.SpeedIncrement == 0 {
		a.Warnings = append(a.Warnings, "speed never increases")
	}

	return a
}

func printAnalysis(w io.Writer, a Analysis) {
	fmt.Fprintf(w, "\n=== Analyzing %s ===\n", a.File)
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Grid: %d x %d (max score %d)\n", a.GridCells, a.GridCells, a.MaxScore)
	fmt.Fprintf(w, "Snake: length %d, %d cells of head start\n", a.InitialLength, a.HeadStart)
	fmt.Fprintf(w, "Speed: %s down to %s after %d foods\n", a.InitialSpeed, a.MinSpeed, a.FoodsToMinSpeed)
	fmt.Fprintf(w, "Board crossing: %s at start, %s at top speed\n", a.CrossingAtStart, a.CrossingAtMin)

	if len(a.Warnings) == 0 {
		fmt.Fprintln(w, "✅ Pacing looks playable")
		return
	}
	for _, warning := range a.Warnings {
		fmt.Fprintf(w, "⚠️  WARNING: %s\n", warning)
	}
}

// analyzeDir analyzes every *.json file in dir, sorted by file name. Files
// that fail to load are reported to w and skipped.
func analyzeDir(w io.Writer, dir string) ([]Analysis, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var results []Analysis
	for _, file := range files {
		cfg, err := engine.LoadGameConfig(file)
		if err != nil {
			fmt.Fprintf(w, "\n=== Skipping %s: %v\n", filepath.Base(file), err)
			continue
		}
		a := analyze(filepath.Base(file), cfg)
		printAnalysis(w, a)
		results = append(results, a)
	}
	return results, nil
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	results, err := analyzeDir(os.Stdout, dir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Printf("No configurations found in %s\n", dir)
		os.Exit(1)
	}
}

package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultGameConfig returns the classic 20x20 configuration
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:           "Classic",
		Description:    "20x20 grid, 150ms start, 5ms faster per food down to 50ms",
		CanvasSize:     DefaultCanvasSize,
		CellSize:       DefaultCellSize,
		InitialLength:  DefaultLength,
		StartRow:       DefaultStartRow,
		InitialSpeed:   DefaultSpeed,
		SpeedIncrement: DefaultIncrement,
		MinSpeed:       DefaultMinSpeed,
	}
}

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	// Validate grid geometry
	if config.CellSize <= 0 {
		return fmt.Errorf("config validation: cell_size must be positive, got %d", config.CellSize)
	}
	if config.CanvasSize%config.CellSize != 0 {
		return fmt.Errorf("config validation: canvas_size %d must be a multiple of cell_size %d",
			config.CanvasSize, config.CellSize)
	}
	cells := config.GridCells()
	if cells < MinGridCells || cells > MaxGridCells {
		return fmt.Errorf("config validation: grid must have between %d and %d cells per side, got %d",
			MinGridCells, MaxGridCells, cells)
	}

	// Validate starting snake
	if config.InitialLength < 1 || config.InitialLength > cells {
		return fmt.Errorf("config validation: initial_length must be between 1 and %d, got %d",
			cells, config.InitialLength)
	}
	if config.StartRow < 0 || config.StartRow >= cells {
		return fmt.Errorf("config validation: start_row must be between 0 and %d, got %d",
			cells-1, config.StartRow)
	}

	// Validate pacing
	if config.MinSpeed < MinSpeedFloor {
		return fmt.Errorf("config validation: min_speed must be at least %d, got %d", MinSpeedFloor, config.MinSpeed)
	}
	if config.InitialSpeed < config.MinSpeed {
		return fmt.Errorf("config validation: initial_speed (%d) must not be below min_speed (%d)",
			config.InitialSpeed, config.MinSpeed)
	}
	if config.SpeedIncrement < 0 {
		return fmt.Errorf("config validation: speed_increment must not be negative, got %d", config.SpeedIncrement)
	}

	return nil
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", filename, err)
	}

	return &config, nil
}

// NextSpeed returns the tick interval after one more food is eaten
func (c *GameConfig) NextSpeed(speed int) int {
	next := speed - c.SpeedIncrement
	if next < c.MinSpeed {
		return c.MinSpeed
	}
	return next
}

// FoodsToMinSpeed returns how many foods it takes to reach the speed floor
func (c *GameConfig) FoodsToMinSpeed() int {
	if c.SpeedIncrement == 0 || c.InitialSpeed <= c.MinSpeed {
		return 0
	}
	diff := c.InitialSpeed - c.MinSpeed
	return (diff + c.SpeedIncrement - 1) / c.SpeedIncrement
}

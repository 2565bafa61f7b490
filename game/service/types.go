package service

import (
	"time"

	"github.com/wricardo/snake-game/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// KeyResult reports how a key press was interpreted
type KeyResult struct {
	Key       string            `json:"key"`
	Action    string            `json:"action"`
	Captured  bool              `json:"captured"`
	Handled   bool              `json:"handled"`
	GameState *engine.GameState `json:"game_state"`
}

// HighScoreInfo describes the persisted best score
type HighScoreInfo struct {
	BestScore int    `json:"best_score"`
	Key       string `json:"key"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename       string `json:"filename"`
	ConfigID       string `json:"config_id"` // The identifier to use for session creation
	Name           string `json:"name"`      // Display name
	Description    string `json:"description"`
	GridCells      int    `json:"grid_cells"`
	InitialSpeed   int    `json:"initial_speed"`
	SpeedIncrement int    `json:"speed_increment"`
	MinSpeed       int    `json:"min_speed"`
}

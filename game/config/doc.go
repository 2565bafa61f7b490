// Package config provides configuration management for the snake game.
//
// Game configurations are JSON presets stored in a directory, one file per
// preset. The file stem is the config id used by the API ("classic" for
// classic.json). Each preset defines the board geometry (canvas and cell
// size), the starting snake, and the pacing (initial speed, speed-up per food
// and speed floor). Presets are validated with engine.ValidateGameConfig and
// cached after the first load.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fast, err := manager.LoadConfig("fast")
//	defaultConfig := manager.GetDefault()
//	presets, err := manager.ListConfigs()
//
// When the directory holds no usable preset, the built-in classic
// configuration is the default.
package config

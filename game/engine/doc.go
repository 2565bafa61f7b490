// Package engine holds the rules of snake on a square grid.
//
// GameEngine owns a GameState and changes it only through its methods:
// Reset lays out the snake on the start row heading right, Start begins a
// game, SetDirection buffers the next heading, Tick advances one cell and
// TogglePause freezes the clock. A GameConfig, usually read from a JSON
// preset with LoadGameConfig, fixes the grid size and pacing:
//
//	config, err := engine.LoadGameConfig("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	eng, _ := engine.NewEngine(config)
//	eng.Start()
//	eng.SetDirection(engine.Up)
//	outcome := eng.Tick()
//
// A direction reaches the snake only on the next tick, and only the last one
// accepted before that tick counts. Reversals are refused. Food is always
// placed on a free cell; each bite adds a segment and a point and shortens
// the tick interval down to MinSpeed. Hitting a wall or any segment,
// including the tail, ends the game.
//
// Nothing here sleeps, draws or writes files. The driver package schedules
// ticks and renders frames around an engine.
package engine

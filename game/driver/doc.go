// Package driver runs a snake game in real time.
//
// A Driver owns one engine and is the only goroutine that mutates it. Player
// commands and scheduler ticks are posted to its inbox and applied in order
// by Run. Each frame is handed to the registered renderers as a snapshot.
//
// # Scheduling
//
// Ticks come from a Scheduler. The driver keeps at most one live schedule:
// eating food cancels it and schedules again at the new speed, pausing
// cancels it, and game over cancels it. Every schedule carries an epoch, so a
// tick already queued from a cancelled schedule is dropped.
//
// # Usage
//
//	eng, _ := engine.NewEngine(engine.DefaultGameConfig())
//	d := driver.New(eng, driver.WithBoard(board), driver.WithRenderer(r))
//	go d.Run(ctx)
//	d.Submit(driver.CmdStart{})
package driver

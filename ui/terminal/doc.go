// Package terminal plays the snake game in a text terminal using tcell.
//
// The board is drawn at the top-left of the screen with a border, each grid
// cell two columns wide so it looks square. A status line under the board
// shows the score, the best score and the current speed. Overlays mark a
// paused or finished game.
//
// Usage:
//
//	screen, _ := tcell.NewScreen()
//	screen.Init()
//	defer screen.Fini()
//
//	renderer := terminal.NewRenderer(screen)
//	d := driver.New(eng, driver.WithRenderer(renderer))
//	go d.Run(ctx)
//	err := terminal.Play(ctx, screen, d, renderer)
package terminal

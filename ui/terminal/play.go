package terminal

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/snake-game/game/driver"
	"github.com/wricardo/snake-game/game/input"
)

// ErrQuit is returned by Play when the player quits
var ErrQuit = errors.New("player quit")

// Play feeds screen key events to the driver until the player quits, ctx is
// cancelled or the driver stops. The caller owns the screen and finalizes it.
func Play(ctx context.Context, screen tcell.Screen, d *driver.Driver, renderer *Renderer) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.Done():
			return driver.ErrDriverStopped
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				if renderer != nil {
					renderer.Redraw()
				}
			case *tcell.EventKey:
				action := input.FromTcell(ev)
				switch action {
				case input.None:
					continue
				case input.Quit:
					return ErrQuit
				}
				if err := d.Submit(driver.CmdKey{Action: action}); err != nil {
					return err
				}
			}
		}
	}
}

// Package input maps key presses to game actions.
//
// Arrow keys and WASD (either case) steer, space toggles pause, Enter starts
// a game and r resets it. Key names follow the browser KeyboardEvent.key
// spelling so web clients can forward them verbatim; terminal key events are
// mapped from tcell.
package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/snake-game/game/engine"
)

// Action is what a key press asks the game to do
type Action int

const (
	None Action = iota
	Up
	Down
	Left
	Right
	Pause
	Start
	Reset
	Quit
)

var actionNames = map[Action]string{
	None:  "none",
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
	Pause: "pause",
	Start: "start",
	Reset: "reset",
	Quit:  "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// Direction returns the movement direction for a steering action
func (a Action) Direction() (engine.Direction, bool) {
	switch a {
	case Up:
		return engine.Up, true
	case Down:
		return engine.Down, true
	case Left:
		return engine.Left, true
	case Right:
		return engine.Right, true
	}
	return engine.Direction{}, false
}

// keyNames maps KeyboardEvent.key values to actions
var keyNames = map[string]Action{
	"ArrowUp":    Up,
	"w":          Up,
	"W":          Up,
	"ArrowDown":  Down,
	"s":          Down,
	"S":          Down,
	"ArrowLeft":  Left,
	"a":          Left,
	"A":          Left,
	"ArrowRight": Right,
	"d":          Right,
	"D":          Right,
	" ":          Pause,
	"Space":      Pause,
	"Spacebar":   Pause,
	"Enter":      Start,
	"r":          Reset,
	"R":          Reset,
}

// capturedKeys are the keys whose default browser action (page scrolling)
// a web client must suppress
var capturedKeys = map[string]bool{
	"ArrowUp": true, "ArrowDown": true, "ArrowLeft": true, "ArrowRight": true,
	" ": true, "w": true, "a": true, "s": true, "d": true,
}

// FromKeyName maps a KeyboardEvent.key value to an action; unknown keys map to None
func FromKeyName(name string) Action {
	if action, ok := keyNames[name]; ok {
		return action
	}
	return None
}

// Captured reports whether a web client should prevent the default action for the key
func Captured(name string) bool {
	return capturedKeys[name]
}

// CapturedKeys lists the keys returned true by Captured
func CapturedKeys() []string {
	return []string{"ArrowUp", "ArrowDown", "ArrowLeft", "ArrowRight", " ", "w", "a", "s", "d"}
}

// FromTcell maps a terminal key event to an action
func FromTcell(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return Up
	case tcell.KeyDown:
		return Down
	case tcell.KeyLeft:
		return Left
	case tcell.KeyRight:
		return Right
	case tcell.KeyEnter:
		return Start
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Quit
	case tcell.KeyRune:
		r := ev.Rune()
		switch r {
		case ' ':
			return Pause
		case 'q', 'Q':
			return Quit
		}
		return FromKeyName(string(r))
	}
	return None
}

// ParseAction converts an action name such as "pause" or "up" to an Action
func ParseAction(name string) Action {
	name = strings.ToLower(strings.TrimSpace(name))
	for action, n := range actionNames {
		if n == name {
			return action
		}
	}
	return None
}

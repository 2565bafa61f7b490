package driver

import (
	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/game/input"
)

// Command is a player request applied by the driver loop
type Command interface {
	command()
}

// CmdStart starts a new game unless one is running
type CmdStart struct{}

// CmdTogglePause pauses or resumes a running game
type CmdTogglePause struct{}

// CmdReset stops the game and restores the initial position
type CmdReset struct{}

// CmdTurn steers the snake
type CmdTurn struct {
	Direction engine.Direction
}

// CmdKey applies a mapped key press
type CmdKey struct {
	Action input.Action
}

// CmdLoadConfig switches to another configuration and resets the game
type CmdLoadConfig struct {
	Config *engine.GameConfig
}

// cmdSnapshot changes nothing; Do returns the current state
type cmdSnapshot struct{}

func (CmdStart) command()       {}
func (CmdTogglePause) command() {}
func (CmdReset) command()       {}
func (CmdTurn) command()        {}
func (CmdKey) command()         {}
func (CmdLoadConfig) command()  {}
func (cmdSnapshot) command()    {}

// commandForAction translates a key action into a driver command
func commandForAction(action input.Action) (Command, bool) {
	if d, ok := action.Direction(); ok {
		return CmdTurn{Direction: d}, true
	}
	switch action {
	case input.Pause:
		return CmdTogglePause{}, true
	case input.Start:
		return CmdStart{}, true
	case input.Reset:
		return CmdReset{}, true
	}
	return nil, false
}

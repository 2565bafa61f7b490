package driver

import "github.com/wricardo/snake-game/game/engine"

// Event names what caused a frame
type Event string

const (
	EventReset    Event = "reset"
	EventStart    Event = "start"
	EventTick     Event = "tick"
	EventAteFood  Event = "ate_food"
	EventGameOver Event = "game_over"
	EventNewBest  Event = "new_best"
	EventPause    Event = "pause"
	EventResume   Event = "resume"
)

// Frame is one observable change of the game
type Frame struct {
	Event Event             `json:"event"`
	State *engine.GameState `json:"state"`
}

// Renderer receives frames. Render is called from the driver loop and must
// not block for long.
type Renderer interface {
	Render(frame Frame)
}

// RendererFunc adapts a function to the Renderer interface
type RendererFunc func(frame Frame)

// Render calls f(frame)
func (f RendererFunc) Render(frame Frame) {
	f(frame)
}

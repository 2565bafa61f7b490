package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/snake-game/game/driver"
	"github.com/wricardo/snake-game/game/engine"
)

// cellWidth is the number of screen columns per grid cell
const cellWidth = 2

var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHead    = tcell.StyleDefault.Background(tcell.ColorLime)
	styleBody    = tcell.StyleDefault.Background(tcell.ColorGreen)
	styleFood    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleOverlay = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Renderer draws driver frames on a tcell screen
type Renderer struct {
	mu     sync.Mutex
	screen tcell.Screen
	last   driver.Frame
}

// NewRenderer creates a renderer for screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render implements driver.Renderer
func (r *Renderer) Render(frame driver.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last = frame
	r.draw()
}

// Redraw paints the last frame again, e.g. after a resize
func (r *Renderer) Redraw() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.draw()
}

func (r *Renderer) draw() {
	state := r.last.State
	r.screen.Clear()
	defer r.screen.Show()

	if state == nil {
		return
	}

	cells := state.GridCells
	width, height := r.screen.Size()
	if width < cells*cellWidth+2 || height < cells+4 {
		r.text(0, 0, styleDefault, fmt.Sprintf("Terminal too small: need %dx%d", cells*cellWidth+2, cells+4))
		return
	}

	r.border(cells)

	if state.HasFood {
		r.cell(state.Food, '●', styleFood)
	}
	for i := len(state.Snake) - 1; i >= 0; i-- {
		style := styleBody
		if i == 0 {
			style = styleHead
		}
		r.cell(state.Snake[i], ' ', style)
	}

	r.text(0, cells+2, styleStatus, fmt.Sprintf("Score: %d  Best: %d  Speed: %dms", state.Score, state.BestScore, state.Speed))
	r.text(0, cells+3, styleStatus, "Arrows/WASD turn  Enter start  Space pause  R reset  Q quit")

	switch {
	case state.Paused:
		r.overlay(cells, "PAUSED")
	case state.GameOver && r.last.Event == driver.EventNewBest:
		r.overlay(cells, fmt.Sprintf("NEW BEST: %d", state.BestScore))
	case state.GameOver:
		r.overlay(cells, "GAME OVER")
	case !state.Running:
		r.overlay(cells, "Press Enter to start")
	}
}

// border draws the frame around a cells x cells board
func (r *Renderer) border(cells int) {
	right := cells*cellWidth + 1
	bottom := cells + 1

	for x := 1; x < right; x++ {
		r.screen.SetContent(x, 0, tcell.RuneHLine, nil, styleBorder)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, styleBorder)
	}
	for y := 1; y < bottom; y++ {
		r.screen.SetContent(0, y, tcell.RuneVLine, nil, styleBorder)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, styleBorder)
	}
	r.screen.SetContent(0, 0, tcell.RuneULCorner, nil, styleBorder)
	r.screen.SetContent(right, 0, tcell.RuneURCorner, nil, styleBorder)
	r.screen.SetContent(0, bottom, tcell.RuneLLCorner, nil, styleBorder)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, styleBorder)
}

// cell fills the screen columns of one grid cell
func (r *Renderer) cell(c engine.Cell, ch rune, style tcell.Style) {
	x, y := screenPos(c)
	r.screen.SetContent(x, y, ch, nil, style)
	r.screen.SetContent(x+1, y, ' ', nil, style)
}

func (r *Renderer) text(x, y int, style tcell.Style, s string) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// overlay centers a message on the board
func (r *Renderer) overlay(cells int, msg string) {
	msg = " " + msg + " "
	x := (cells*cellWidth+2-len([]rune(msg)))/2
	if x < 0 {
		x = 0
	}
	r.text(x, (cells+2)/2, styleOverlay, msg)
}

// screenPos returns the screen column and row of the left half of a grid cell
func screenPos(c engine.Cell) (int, int) {
	return 1 + c.X*cellWidth, 1 + c.Y
}

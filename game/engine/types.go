package engine

import "fmt"

const (
	// Validation constants
	MinGridCells      = 5
	MaxGridCells      = 100
	MinSpeedFloor     = 1
	DefaultCanvasSize = 400
	DefaultCellSize   = 20
	DefaultLength     = 3
	DefaultStartRow   = 10
	DefaultSpeed      = 150
	DefaultIncrement  = 5
	DefaultMinSpeed   = 50
)

// Cell is a discrete grid coordinate
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell one step away in direction d
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is a unit vector along one grid axis
type Direction struct {
	X int `json:"x"`
	Y int `json:"y"`
}

var (
	Up    = Direction{X: 0, Y: -1}
	Down  = Direction{X: 0, Y: 1}
	Left  = Direction{X: -1, Y: 0}
	Right = Direction{X: 1, Y: 0}
)

// Outcome reports what a single tick did
type Outcome int

const (
	// OutcomeIdle means the tick was suppressed because the game is not
	// running or is paused.
	OutcomeIdle Outcome = iota
	OutcomeContinue
	OutcomeAteFood
	OutcomeGameOver
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeAteFood:
		return "ate_food"
	case OutcomeGameOver:
		return "game_over"
	default:
		return "idle"
	}
}

// Collision describes what ended the game
type Collision string

const (
	NoCollision   Collision = ""
	WallCollision Collision = "wall"
	SelfCollision Collision = "self"
)

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	CanvasSize     int    `json:"canvas_size"`
	CellSize       int    `json:"cell_size"`
	InitialLength  int    `json:"initial_length"`
	StartRow       int    `json:"start_row"`
	InitialSpeed   int    `json:"initial_speed"`
	SpeedIncrement int    `json:"speed_increment"`
	MinSpeed       int    `json:"min_speed"`
}

// GridCells returns the number of cells along each side of the square grid
func (c *GameConfig) GridCells() int {
	if c.CellSize <= 0 {
		return 0
	}
	return c.CanvasSize / c.CellSize
}

// GameState represents the complete game state
type GameState struct {
	Snake     []Cell    `json:"snake"` // head first
	Direction Direction `json:"direction"`
	Pending   Direction `json:"pending"`
	Food      Cell      `json:"food"`
	HasFood   bool      `json:"has_food"`
	Score     int       `json:"score"`
	BestScore int       `json:"best_score"`
	Speed     int       `json:"speed"` // tick interval in milliseconds
	Running   bool      `json:"running"`
	Paused    bool      `json:"paused"`
	GameOver  bool      `json:"game_over"`
	NewBest   bool      `json:"new_best,omitempty"`
	Collision Collision `json:"collision,omitempty"`
	GridCells int       `json:"grid_cells"`
	Ticks     int       `json:"ticks"`
}

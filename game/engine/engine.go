package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Snapshot() *GameState
	Reset() *GameState
	Start() bool
	IsRunning() bool
	IsPaused() bool
	IsGameOver() bool
	GetScore() int
	GetSpeed() int

	// Simulation
	SetDirection(d Direction) bool
	PlaceFood() bool
	Tick() Outcome
	TogglePause() (paused bool, ok bool)

	// Best score
	SetBestScore(best int)
	GetBestScore() int

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	config *GameConfig
	rng    *rand.Rand
}

// Option configures a GameEngine
type Option func(*GameEngine)

// WithRand sets the random source used for food placement
func WithRand(rng *rand.Rand) Option {
	return func(e *GameEngine) {
		e.rng = rng
	}
}

// NewEngine creates a new game engine with the provided configuration.
// The engine starts in the reset state: not running, food placed.
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{config: config}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.rng == nil {
		engine.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	engine.state = &GameState{}
	engine.Reset()
	return engine, nil
}

// NewEngineWithDefaults creates a new game engine with the default configuration
func NewEngineWithDefaults(opts ...Option) *GameEngine {
	engine, err := NewEngine(DefaultGameConfig(), opts...)
	if err != nil {
		// The default configuration is always valid
		panic(err)
	}
	return engine
}

// GetState returns the live game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// Snapshot returns a deep copy of the game state
func (e *GameEngine) Snapshot() *GameState {
	return e.state.Clone()
}

// SetState replaces the game state. It is used to set up literal positions.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if len(state.Snake) == 0 {
		return fmt.Errorf("state snake cannot be empty")
	}
	if state.GridCells == 0 {
		state.GridCells = e.config.GridCells()
	}

	seen := make(map[Cell]bool, len(state.Snake))
	for _, segment := range state.Snake {
		if !state.InBounds(segment) {
			return fmt.Errorf("snake segment %s is outside the %dx%d grid", segment, state.GridCells, state.GridCells)
		}
		if seen[segment] {
			return fmt.Errorf("snake segment %s appears twice", segment)
		}
		seen[segment] = true
	}

	e.state = state
	return nil
}

// Reset restores the initial snake, direction, score and speed, stops the
// game and places fresh food. The best score is carried over.
func (e *GameEngine) Reset() *GameState {
	best := e.state.BestScore

	e.state = &GameState{
		Snake:     InitialSnake(e.config.InitialLength, e.config.StartRow),
		Direction: Right,
		Pending:   Right,
		Score:     0,
		BestScore: best,
		Speed:     e.config.InitialSpeed,
		Running:   false,
		Paused:    false,
		GridCells: e.config.GridCells(),
	}
	e.PlaceFood()

	return e.state
}

// Start resets the game and sets it running. It does nothing while a game
// is already running.
func (e *GameEngine) Start() bool {
	if e.state.Running {
		return false
	}
	e.Reset()
	e.state.Running = true
	return true
}

// IsRunning returns whether a game is in progress
func (e *GameEngine) IsRunning() bool {
	return e.state.Running
}

// IsPaused returns whether the running game is paused
func (e *GameEngine) IsPaused() bool {
	return e.state.Paused
}

// IsGameOver returns whether the last game ended in a collision
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// GetScore returns the current score
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// GetSpeed returns the current tick interval in milliseconds
func (e *GameEngine) GetSpeed() int {
	return e.state.Speed
}

// SetDirection buffers a direction for the next tick. Anything but a unit
// direction is rejected, as is a reversal of the current direction, and
// input is ignored once the game is over.
func (e *GameEngine) SetDirection(d Direction) bool {
	if e.state.GameOver || !d.Valid() {
		return false
	}
	if d.IsOpposite(e.state.Direction) {
		return false
	}
	e.state.Pending = d
	return true
}

// PlaceFood puts food on a random free cell. Random sampling is bounded;
// when it keeps hitting the snake, a free cell is drawn from an exhaustive
// scan instead. It returns false only when the snake covers the whole grid.
func (e *GameEngine) PlaceFood() bool {
	gs := e.state
	cells := gs.GridCells

	for attempt := 0; attempt < cells*cells; attempt++ {
		candidate := Cell{X: e.rng.Intn(cells), Y: e.rng.Intn(cells)}
		if !gs.Occupies(candidate) {
			gs.Food = candidate
			gs.HasFood = true
			return true
		}
	}

	free := gs.FreeCells()
	if len(free) == 0 {
		gs.HasFood = false
		return false
	}
	gs.Food = free[e.rng.Intn(len(free))]
	gs.HasFood = true
	return true
}

// Tick advances the game by one step
func (e *GameEngine) Tick() Outcome {
	gs := e.state
	if !gs.Running || gs.Paused {
		return OutcomeIdle
	}

	gs.Ticks++
	newHead, collision := gs.advance()
	if collision != NoCollision {
		e.gameOver(collision)
		return OutcomeGameOver
	}

	if gs.HasFood && newHead == gs.Food {
		gs.Score++
		e.PlaceFood()
		gs.Speed = e.config.NextSpeed(gs.Speed)
		return OutcomeAteFood
	}

	gs.dropTail()
	return OutcomeContinue
}

// gameOver stops the game and records a new best score
func (e *GameEngine) gameOver(collision Collision) {
	gs := e.state
	gs.Running = false
	gs.Paused = false
	gs.GameOver = true
	gs.Collision = collision

	if gs.Score > gs.BestScore {
		gs.BestScore = gs.Score
		gs.NewBest = true
	}
}

// TogglePause flips the paused flag of a running game. ok is false when no
// game is running.
func (e *GameEngine) TogglePause() (paused bool, ok bool) {
	if !e.state.Running {
		return e.state.Paused, false
	}
	e.state.Paused = !e.state.Paused
	return e.state.Paused, true
}

// SetBestScore seeds the best score known from persistence
func (e *GameEngine) SetBestScore(best int) {
	if best < 0 {
		best = 0
	}
	e.state.BestScore = best
}

// GetBestScore returns the best score seen by this engine
func (e *GameEngine) GetBestScore() int {
	return e.state.BestScore
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and resets the game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.Reset()
	return nil
}

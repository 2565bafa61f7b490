package driver

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/game/scores"
)

// ErrDriverStopped is returned when a command is sent to a driver whose loop has exited
var ErrDriverStopped = errors.New("driver stopped")

const inboxSize = 64

// message is either a command or a tick from the schedule with the given epoch
type message struct {
	cmd   Command
	tick  bool
	epoch uint64
	reply chan *engine.GameState
}

// Driver applies commands and ticks to one engine from a single goroutine
type Driver struct {
	name      string
	engine    *engine.GameEngine
	scheduler Scheduler
	board     *scores.Board

	renderersMu sync.RWMutex
	renderers   []Renderer

	inbox chan message
	done  chan struct{}
	once  sync.Once

	config atomic.Pointer[engine.GameConfig]

	// owned by the loop goroutine
	handle    Handle
	scheduled bool
	epoch     uint64
}

// Option configures a Driver
type Option func(*Driver)

// WithScheduler sets the tick source
func WithScheduler(s Scheduler) Option {
	return func(d *Driver) {
		d.scheduler = s
	}
}

// WithBoard sets the best score board
func WithBoard(b *scores.Board) Option {
	return func(d *Driver) {
		d.board = b
	}
}

// WithRenderer registers a renderer
func WithRenderer(r Renderer) Option {
	return func(d *Driver) {
		d.renderers = append(d.renderers, r)
	}
}

// WithName sets the name used in log lines
func WithName(name string) Option {
	return func(d *Driver) {
		d.name = name
	}
}

// New creates a driver for the engine. Without options it ticks on a
// TickerScheduler and keeps the best score in memory.
func New(eng *engine.GameEngine, opts ...Option) *Driver {
	d := &Driver{
		name:   "game",
		engine: eng,
		inbox:  make(chan message, inboxSize),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.scheduler == nil {
		d.scheduler = NewTickerScheduler()
	}
	if d.board == nil {
		d.board = scores.NewBoard(scores.NewMemoryStore())
	}

	d.config.Store(eng.GetConfig())
	eng.SetBestScore(d.board.Best())
	return d
}

// AddRenderer registers a renderer on a live driver
func (d *Driver) AddRenderer(r Renderer) {
	d.renderersMu.Lock()
	defer d.renderersMu.Unlock()
	d.renderers = append(d.renderers, r)
}

// Config returns the configuration currently in use
func (d *Driver) Config() *engine.GameConfig {
	return d.config.Load()
}

// Board returns the best score board
func (d *Driver) Board() *scores.Board {
	return d.board
}

// Done is closed when Run returns
func (d *Driver) Done() <-chan struct{} {
	return d.done
}

// Run applies commands and ticks until ctx is cancelled. It renders the
// initial reset frame first.
func (d *Driver) Run(ctx context.Context) error {
	defer d.once.Do(func() { close(d.done) })
	defer d.cancelSchedule()

	d.render(EventReset)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Driver %s stopped: %v", d.name, ctx.Err())
			return ctx.Err()
		case msg := <-d.inbox:
			d.handleMessage(msg)
		}
	}
}

// Submit queues a command without waiting for it to be applied
func (d *Driver) Submit(cmd Command) error {
	select {
	case <-d.done:
		return ErrDriverStopped
	default:
	}

	select {
	case d.inbox <- message{cmd: cmd}:
		return nil
	case <-d.done:
		return ErrDriverStopped
	}
}

// Do applies a command and returns the resulting state
func (d *Driver) Do(ctx context.Context, cmd Command) (*engine.GameState, error) {
	reply := make(chan *engine.GameState, 1)

	select {
	case <-d.done:
		return nil, ErrDriverStopped
	default:
	}

	select {
	case d.inbox <- message{cmd: cmd, reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.done:
		return nil, ErrDriverStopped
	}

	select {
	case state := <-reply:
		return state, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.done:
		return nil, ErrDriverStopped
	}
}

// Snapshot returns a copy of the current state once all earlier commands
// and ticks have been applied
func (d *Driver) Snapshot(ctx context.Context) (*engine.GameState, error) {
	return d.Do(ctx, cmdSnapshot{})
}

func (d *Driver) handleMessage(msg message) {
	if msg.tick {
		if d.scheduled && msg.epoch == d.epoch {
			d.step()
		}
		return
	}

	d.apply(msg.cmd)
	if msg.reply != nil {
		msg.reply <- d.engine.Snapshot()
	}
}

func (d *Driver) apply(cmd Command) {
	switch c := cmd.(type) {
	case CmdStart:
		d.start()
	case CmdTogglePause:
		d.togglePause()
	case CmdReset:
		d.reset()
	case CmdTurn:
		d.turn(c.Direction)
	case CmdKey:
		if next, ok := commandForAction(c.Action); ok {
			d.apply(next)
		}
	case CmdLoadConfig:
		d.loadConfig(c.Config)
	case cmdSnapshot:
	default:
		log.Printf("Driver %s: unknown command %T", d.name, cmd)
	}
}

func (d *Driver) start() {
	if d.engine.IsRunning() {
		return
	}
	d.engine.SetBestScore(d.board.Best())
	d.engine.Start()
	log.Printf("Driver %s: game started (speed %dms)", d.name, d.engine.GetSpeed())
	d.render(EventStart)
	d.schedule()
}

func (d *Driver) togglePause() {
	paused, ok := d.engine.TogglePause()
	if !ok {
		return
	}

	if paused {
		d.cancelSchedule()
		d.render(EventPause)
		return
	}

	// Resuming advances one step immediately, then ticks resume on schedule.
	d.render(EventResume)
	d.step()
	if d.engine.IsRunning() && !d.scheduled {
		d.schedule()
	}
}

func (d *Driver) reset() {
	d.cancelSchedule()
	d.engine.Reset()
	d.engine.SetBestScore(d.board.Best())
	d.render(EventReset)
}

func (d *Driver) turn(dir engine.Direction) {
	if !d.engine.IsRunning() || d.engine.IsPaused() {
		return
	}
	d.engine.SetDirection(dir)
}

func (d *Driver) loadConfig(config *engine.GameConfig) {
	if config == nil {
		return
	}
	// A rejected config leaves the current game and its schedule untouched
	if err := engine.ValidateGameConfig(config); err != nil {
		log.Printf("Driver %s: rejected config %q: %v", d.name, config.Name, err)
		return
	}
	d.cancelSchedule()
	if err := d.engine.SetConfig(config); err != nil {
		log.Printf("Driver %s: rejected config %q: %v", d.name, config.Name, err)
		return
	}
	d.engine.SetBestScore(d.board.Best())
	d.config.Store(config)
	log.Printf("Driver %s: loaded config %q", d.name, config.Name)
	d.render(EventReset)
}

// step advances the game once and reacts to the outcome
func (d *Driver) step() {
	switch d.engine.Tick() {
	case engine.OutcomeIdle:
	case engine.OutcomeContinue:
		d.render(EventTick)
	case engine.OutcomeAteFood:
		d.schedule()
		d.render(EventAteFood)
	case engine.OutcomeGameOver:
		d.cancelSchedule()
		d.finish()
	}
}

// finish records the result of a game that just ended
func (d *Driver) finish() {
	state := d.engine.GetState()
	log.Printf("Driver %s: game over (%s collision, score %d)", d.name, state.Collision, state.Score)
	d.render(EventGameOver)

	if !state.NewBest {
		return
	}
	improved, err := d.board.Submit(state.Score)
	if err != nil {
		log.Printf("Driver %s: %v", d.name, err)
	}
	if improved {
		log.Printf("Driver %s: new best score %d", d.name, state.Score)
		d.render(EventNewBest)
	}
}

// schedule replaces any live schedule with one at the current speed
func (d *Driver) schedule() {
	d.cancelSchedule()

	d.epoch++
	epoch := d.epoch
	interval := time.Duration(d.engine.GetSpeed()) * time.Millisecond
	d.handle = d.scheduler.Schedule(interval, func() {
		d.postTick(epoch)
	})
	d.scheduled = true
}

func (d *Driver) cancelSchedule() {
	if !d.scheduled {
		return
	}
	d.scheduler.Cancel(d.handle)
	d.scheduled = false
}

// postTick is called from scheduler goroutines
func (d *Driver) postTick(epoch uint64) {
	select {
	case d.inbox <- message{tick: true, epoch: epoch}:
	case <-d.done:
	}
}

func (d *Driver) render(event Event) {
	d.renderersMu.RLock()
	renderers := d.renderers
	d.renderersMu.RUnlock()

	if len(renderers) == 0 {
		return
	}
	frame := Frame{Event: event, State: d.engine.Snapshot()}
	for _, r := range renderers {
		r.Render(frame)
	}
}


// Package loop runs one play-through of a puzzle engine: it polls input,
// applies commands, sleeps to the next gravity tick and redraws whenever the
// visible state changed.
//
// A session moves through three states. Initializing creates the engine and
// lays out the renderer. Playing repeats the iteration
//
//	redraw if dirty → game over? → apply input → sleep → tick → redraw if moved
//
// until the player quits or the engine reports game over. Terminating resets
// the renderer exactly once.
package loop

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stacker/internal/core"
	"github.com/vovakirdan/stacker/internal/input"
	"github.com/vovakirdan/stacker/internal/registry"
	"github.com/vovakirdan/stacker/internal/render"
)

// DefaultTickPeriod is the gravity tick period.
const DefaultTickPeriod = 10 * time.Millisecond

// State is the lifecycle state of a controller.
type State int

const (
	StateIdle State = iota
	StateInitializing
	StatePlaying
	StateTerminating
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StatePlaying:
		return "playing"
	case StateTerminating:
		return "terminating"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Reason tells why a session ended.
type Reason string

const (
	ReasonQuit     Reason = "quit"
	ReasonGameOver Reason = "game_over"
	ReasonError    Reason = "error"
)

// Sleeper blocks for the tick period. Tests inject one that returns at once.
type Sleeper func(d time.Duration)

// Options configure a controller.
type Options struct {
	Engine        string // Engine name, for logs
	Width, Height int
	TickPeriod    time.Duration // DefaultTickPeriod if zero
	Sleep         Sleeper       // time.Sleep if nil
	Logger        *log.Logger
}

// Stats summarise a finished session.
type Stats struct {
	Iterations int
	Ticks      int
	Redraws    int
	Commands   int // Input events that mapped to an engine command
	Reason     Reason
	Duration   time.Duration
}

// Controller owns the engine for one session and drives it.
// It is not safe for concurrent use.
type Controller struct {
	factory  registry.Factory
	renderer render.Renderer
	source   input.Source
	opts     Options
	logger   *log.Logger

	state State
	dirty bool
	stats Stats
}

// New creates a controller. The engine is not created until Run.
func New(factory registry.Factory, r render.Renderer, src input.Source, opts Options) *Controller {
	if opts.TickPeriod <= 0 {
		opts.TickPeriod = DefaultTickPeriod
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Controller{
		factory:  factory,
		renderer: r,
		source:   src,
		opts:     opts,
		logger:   logger,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Run plays one session to completion. The renderer is reset exactly once
// however the session ends. A construction or rendering error ends the
// session with ReasonError and is returned.
func (c *Controller) Run() (stats Stats, err error) {
	start := time.Now()
	c.stats = Stats{}

	defer func() {
		c.state = StateTerminating
		c.renderer.Reset()
		c.state = StateDone

		c.stats.Duration = time.Since(start)
		stats = c.stats

		if err != nil {
			c.logger.Error("session aborted", "err", err, "iterations", stats.Iterations)
			return
		}
		c.logger.Info("session ended",
			"reason", stats.Reason,
			"iterations", stats.Iterations,
			"ticks", stats.Ticks,
			"redraws", stats.Redraws,
			"duration", stats.Duration.Round(time.Millisecond),
		)
	}()

	c.state = StateInitializing
	engine, err := c.factory(c.opts.Width, c.opts.Height)
	if err != nil {
		c.stats.Reason = ReasonError
		return stats, fmt.Errorf("loop: cannot create %dx%d engine: %w", c.opts.Width, c.opts.Height, err)
	}
	if _, err := c.renderer.InitGame(engine); err != nil {
		c.stats.Reason = ReasonError
		return stats, fmt.Errorf("loop: init game: %w", err)
	}
	c.dirty = true

	c.logger.Info("session started",
		"engine", c.opts.Engine,
		"size", core.Sz(c.opts.Width, c.opts.Height),
		"tick", c.opts.TickPeriod,
	)

	c.state = StatePlaying
	for {
		c.stats.Iterations++

		if c.dirty {
			if err := c.redraw(engine); err != nil {
				return stats, err
			}
		}

		if engine.IsGameOver() {
			c.stats.Reason = ReasonGameOver
			return stats, nil
		}

		if c.apply(engine, c.source.Poll()) {
			c.stats.Reason = ReasonQuit
			return stats, nil
		}

		c.opts.Sleep(c.opts.TickPeriod)

		c.stats.Ticks++
		if engine.Tick() {
			c.dirty = true
			if err := c.redraw(engine); err != nil {
				return stats, err
			}
		}
	}
}

// redraw shows the current frame and clears the dirty flag.
func (c *Controller) redraw(engine registry.Engine) error {
	if err := c.renderer.ShowGame(engine); err != nil {
		c.stats.Reason = ReasonError
		return fmt.Errorf("loop: show game: %w", err)
	}
	c.dirty = false
	c.stats.Redraws++
	return nil
}

// apply maps a batch of events to engine commands in order. It returns true
// as soon as an event asks to quit; the rest of the batch is discarded.
func (c *Controller) apply(engine registry.Engine, events []core.Event) (quit bool) {
	for _, ev := range events {
		switch Classify(ev) {
		case CmdQuit:
			return true
		case CmdSlideLeft:
			c.stats.Commands++
			if engine.Slide(-1) {
				c.dirty = true
			}
		case CmdSlideRight:
			c.stats.Commands++
			if engine.Slide(1) {
				c.dirty = true
			}
		case CmdSoftDrop:
			c.stats.Commands++
			if engine.Down() {
				c.dirty = true
			} else {
				// The piece landed: fix it and spawn the next one. The dirty
				// flag stays as is; the next tick or command redraws.
				engine.Merge()
				engine.Random()
			}
		case CmdRotateAnticlockwise:
			c.stats.Commands++
			if engine.RotateAnticlockwise() {
				c.dirty = true
			}
		case CmdRotateClockwise:
			c.stats.Commands++
			if engine.RotateClockwise() {
				c.dirty = true
			}
		case CmdHardDrop:
			c.stats.Commands++
			engine.Drop()
			c.dirty = true
			engine.Merge()
			engine.Random()
		}
	}
	return false
}

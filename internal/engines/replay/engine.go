// Package replay provides an engine that plays back a reel of recorded board
// frames. It knows nothing about stacking rules: gravity ticks advance the
// reel, and movement commands step through it, which is enough to drive the
// game loop and every surface end to end.
package replay

import (
	"fmt"

	"github.com/vovakirdan/stacker/internal/core"
	"github.com/vovakirdan/stacker/internal/registry"
)

// Name is the registry name of the replay engine.
const Name = "replay"

// Package-level variables for configuration
var (
	reelPath string
)

// SetReelPath selects the reel file used by new engines. Empty means the
// built-in reel.
func SetReelPath(path string) {
	reelPath = path
}

// ReelPath returns the currently selected reel file.
func ReelPath() string {
	return reelPath
}

func init() {
	registry.Register(Name, "Plays back a recorded reel of board frames", func(w, h int) (registry.Engine, error) {
		reel, err := LoadReel(reelPath)
		if err != nil {
			return nil, err
		}
		return New(reel, w, h)
	})
}

// Engine replays a reel on a w x h board. Frames larger than the board are
// cropped, smaller ones are padded with empty cells.
type Engine struct {
	reel     *Reel
	w, h     int
	frame    int
	ticks    int
	advances int
}

// New creates an engine showing the first frame of reel.
func New(reel *Reel, w, h int) (*Engine, error) {
	if err := registry.CheckDims(w, h); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	if reel == nil || len(reel.Frames) == 0 {
		return nil, ErrEmptyReel
	}
	return &Engine{reel: reel, w: w, h: h}, nil
}

// Dims implements registry.Grid.
func (e *Engine) Dims() (int, int) {
	return e.w, e.h
}

// DisplayGet implements registry.Grid.
func (e *Engine) DisplayGet(x, y int) core.CellColor {
	if x < 0 || x >= e.w || y < 0 || y >= e.h {
		return core.Empty()
	}
	return e.reel.Frames[e.frame].At(x, y)
}

// Frame returns the index of the frame on display.
func (e *Engine) Frame() int {
	return e.frame
}

// Slide steps one frame back for dx < 0 and forward for dx > 0.
func (e *Engine) Slide(dx int) bool {
	switch {
	case dx < 0:
		return e.step(-1, false)
	case dx > 0:
		return e.step(1, false)
	default:
		return false
	}
}

// Down steps one frame forward. It fails on the last frame.
func (e *Engine) Down() bool {
	return e.step(1, false)
}

func (e *Engine) RotateClockwise() bool {
	return e.step(1, false)
}

func (e *Engine) RotateAnticlockwise() bool {
	return e.step(-1, false)
}

// Drop jumps to the last frame.
func (e *Engine) Drop() {
	e.frame = len(e.reel.Frames) - 1
}

// Merge has nothing to fix into a recorded board.
func (e *Engine) Merge() {}

// Random rewinds to the first frame once the reel has been played out.
func (e *Engine) Random() {
	if e.frame == len(e.reel.Frames)-1 {
		e.frame = 0
	}
}

// Tick advances the reel every TickEvery calls, wrapping around when the reel
// loops. It reports whether the frame changed.
func (e *Engine) Tick() bool {
	e.ticks++
	if e.reel.TickEvery <= 0 || e.ticks%e.reel.TickEvery != 0 {
		return false
	}
	if !e.step(1, e.reel.Loop) {
		return false
	}
	e.advances++
	return true
}

// IsGameOver reports whether GameOverAfter tick advances have happened.
func (e *Engine) IsGameOver() bool {
	return e.reel.GameOverAfter > 0 && e.advances >= e.reel.GameOverAfter
}

func (e *Engine) step(d int, wrap bool) bool {
	n := len(e.reel.Frames)
	next := e.frame + d
	if next < 0 || next >= n {
		if !wrap || n == 1 {
			return false
		}
		next = (next + n) % n
	}
	e.frame = next
	return true
}

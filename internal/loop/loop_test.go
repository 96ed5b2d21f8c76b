package loop

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stacker/internal/core"
	"github.com/vovakirdan/stacker/internal/input"
	"github.com/vovakirdan/stacker/internal/layout"
	"github.com/vovakirdan/stacker/internal/registry"
)

// fakeEngine records every call. Results come from the configured fields.
type fakeEngine struct {
	w, h int

	slideOK  bool
	downOK   bool
	rotateOK bool

	ticks     []bool // Tick results in order; false once exhausted
	overAfter int    // IsGameOver turns true after this many ticks; 0 never

	calls    []string
	tickN    int
	overHook func() bool
}

func (e *fakeEngine) Dims() (int, int) { return e.w, e.h }

func (e *fakeEngine) DisplayGet(x, y int) core.CellColor { return core.Empty() }

func (e *fakeEngine) Slide(dx int) bool {
	if dx < 0 {
		e.calls = append(e.calls, "slide(-1)")
	} else {
		e.calls = append(e.calls, "slide(+1)")
	}
	return e.slideOK
}

func (e *fakeEngine) Down() bool {
	e.calls = append(e.calls, "down")
	return e.downOK
}

func (e *fakeEngine) RotateClockwise() bool {
	e.calls = append(e.calls, "cw")
	return e.rotateOK
}

func (e *fakeEngine) RotateAnticlockwise() bool {
	e.calls = append(e.calls, "ccw")
	return e.rotateOK
}

func (e *fakeEngine) Drop()   { e.calls = append(e.calls, "drop") }
func (e *fakeEngine) Merge()  { e.calls = append(e.calls, "merge") }
func (e *fakeEngine) Random() { e.calls = append(e.calls, "random") }

func (e *fakeEngine) Tick() bool {
	i := e.tickN
	e.tickN++
	if i < len(e.ticks) {
		return e.ticks[i]
	}
	return false
}

func (e *fakeEngine) IsGameOver() bool {
	if e.overHook != nil {
		return e.overHook()
	}
	return e.overAfter > 0 && e.tickN >= e.overAfter
}

func (e *fakeEngine) factory() registry.Factory {
	return func(w, h int) (registry.Engine, error) {
		if err := registry.CheckDims(w, h); err != nil {
			return nil, err
		}
		e.w, e.h = w, h
		return e, nil
	}
}

// fakeRenderer counts calls and can fail on a given ShowGame call.
type fakeRenderer struct {
	inits  int
	shows  int
	resets int

	failInit error
	failShow error
	failAt   int // 1-based ShowGame call that fails; 0 never

	// events records "show" and "reset" interleaved with engine calls
	log *[]string
}

func (r *fakeRenderer) InitGame(g registry.Grid) (layout.Geometry, error) {
	r.inits++
	return layout.Geometry{}, r.failInit
}

func (r *fakeRenderer) ShowGame(g registry.Grid) error {
	r.shows++
	if r.log != nil {
		*r.log = append(*r.log, "show")
	}
	if r.failAt > 0 && r.shows == r.failAt {
		return r.failShow
	}
	return nil
}

func (r *fakeRenderer) Reset() {
	r.resets++
}

func (r *fakeRenderer) ShowMessage(string) {}

func noSleep(time.Duration) {}

func newController(e *fakeEngine, r *fakeRenderer, src input.Source) *Controller {
	return New(e.factory(), r, src, Options{
		Width:  10,
		Height: 20,
		Sleep:  noSleep,
		Logger: log.New(io.Discard),
	})
}

func key(k core.Key) core.Event { return core.KeyDown(k) }

func TestQuitShortCircuitsBatch(t *testing.T) {
	e := &fakeEngine{slideOK: true}
	r := &fakeRenderer{}
	src := input.NewScript([]core.Event{key(core.KeyLeft), key(core.KeyEscape), key(core.KeyRight)})

	stats, err := newController(e, r, src).Run()
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if got := strings.Join(e.calls, ","); got != "slide(-1)" {
		t.Errorf("engine calls = %q, expected only slide(-1)", got)
	}
	if stats.Reason != ReasonQuit {
		t.Errorf("Reason = %q, expected quit", stats.Reason)
	}
	if stats.Iterations != 1 || stats.Ticks != 0 {
		t.Errorf("expected termination in the first iteration, got %+v", stats)
	}
	if r.resets != 1 {
		t.Errorf("Reset called %d times, expected 1", r.resets)
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   core.Event
	}{
		{"quit event", core.QuitEvent()},
		{"escape", key(core.KeyEscape)},
		{"q", key(core.KeyQ)},
		{"shift q", core.KeyDownMod(core.KeyQ, core.ModShift)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &fakeEngine{}
			r := &fakeRenderer{}
			stats, err := newController(e, r, input.NewScript([]core.Event{tt.ev})).Run()
			if err != nil {
				t.Fatal(err)
			}
			if stats.Reason != ReasonQuit || stats.Iterations != 1 {
				t.Errorf("expected quit in iteration 1, got %+v", stats)
			}
		})
	}
}

func TestCommandMapping(t *testing.T) {
	tests := []struct {
		name     string
		ev       core.Event
		calls    string
		commands int
	}{
		{"left", key(core.KeyLeft), "slide(-1)", 1},
		{"a", key(core.KeyA), "slide(-1)", 1},
		{"right", key(core.KeyRight), "slide(+1)", 1},
		{"d", key(core.KeyD), "slide(+1)", 1},
		{"down", key(core.KeyArrowDown), "down", 1},
		{"s", key(core.KeyS), "down", 1},
		{"up", key(core.KeyUp), "ccw", 1},
		{"w", key(core.KeyW), "ccw", 1},
		{"shift up", core.KeyDownMod(core.KeyUp, core.ModShift), "cw", 1},
		{"shift w", core.KeyDownMod(core.KeyW, core.ModShift), "cw", 1},
		{"ctrl up", core.KeyDownMod(core.KeyUp, core.ModCtrl), "", 0},
		{"shift ctrl up", core.KeyDownMod(core.KeyUp, core.ModShift|core.ModCtrl), "", 0},
		{"space", key(core.KeySpace), "drop,merge,random", 1},
		{"other key", key(core.KeyNone), "", 0},
		{"other event", core.Event{Kind: core.EventOther}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &fakeEngine{slideOK: true, downOK: true, rotateOK: true}
			src := input.NewScript([]core.Event{tt.ev})
			src.QuitWhenDone = true

			stats, err := newController(e, &fakeRenderer{}, src).Run()
			if err != nil {
				t.Fatal(err)
			}
			if got := strings.Join(e.calls, ","); got != tt.calls {
				t.Errorf("engine calls = %q, expected %q", got, tt.calls)
			}
			if stats.Commands != tt.commands {
				t.Errorf("Commands = %d, expected %d", stats.Commands, tt.commands)
			}
		})
	}
}

// redrawsAfter runs one batch followed by a quit on the next poll and reports
// how many frames were shown.
func redrawsAfter(t *testing.T, e *fakeEngine, batch []core.Event) int {
	t.Helper()
	r := &fakeRenderer{}
	src := input.NewScript(batch)
	src.QuitWhenDone = true

	if _, err := newController(e, r, src).Run(); err != nil {
		t.Fatal(err)
	}
	return r.shows
}

func TestDirtyFlag(t *testing.T) {
	tests := []struct {
		name     string
		engine   fakeEngine
		ev       core.Event
		expected int // initial redraw + one if the command dirtied the board
	}{
		{"slide succeeded", fakeEngine{slideOK: true}, key(core.KeyLeft), 2},
		{"slide rejected", fakeEngine{}, key(core.KeyRight), 1},
		{"rotate succeeded", fakeEngine{rotateOK: true}, key(core.KeyUp), 2},
		{"rotate rejected", fakeEngine{}, core.KeyDownMod(core.KeyUp, core.ModShift), 1},
		{"soft drop moved", fakeEngine{downOK: true}, key(core.KeyArrowDown), 2},
		{"soft drop landed", fakeEngine{}, key(core.KeyArrowDown), 1},
		{"hard drop", fakeEngine{}, key(core.KeySpace), 2},
		{"ignored", fakeEngine{slideOK: true}, key(core.KeyNone), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.engine
			if got := redrawsAfter(t, &e, []core.Event{tt.ev}); got != tt.expected {
				t.Errorf("redraws = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestSoftDropLanding(t *testing.T) {
	e := &fakeEngine{}
	redrawsAfter(t, e, []core.Event{key(core.KeyS)})

	if got := strings.Join(e.calls, ","); got != "down,merge,random" {
		t.Errorf("engine calls = %q, expected down,merge,random", got)
	}
}

func TestHardDropAlwaysRedraws(t *testing.T) {
	e := &fakeEngine{}
	shows := redrawsAfter(t, e, []core.Event{key(core.KeySpace), key(core.KeySpace)})

	if got := strings.Join(e.calls, ","); got != "drop,merge,random,drop,merge,random" {
		t.Errorf("engine calls = %q", got)
	}
	// Several commands in one batch still produce a single redraw
	if shows != 2 {
		t.Errorf("redraws = %d, expected 2", shows)
	}
}

func TestTickRedrawsImmediately(t *testing.T) {
	var events []string
	e := &fakeEngine{ticks: []bool{true}}
	r := &fakeRenderer{log: &events}

	// Poll 1: nothing; tick moves. Poll 2: quit.
	src := input.NewScript(nil)
	src.QuitWhenDone = true

	stats, err := newController(e, r, src).Run()
	if err != nil {
		t.Fatal(err)
	}

	// Initial redraw plus the tick redraw; the tick redraw clears the flag so
	// the second iteration does not draw again.
	if r.shows != 2 {
		t.Errorf("redraws = %d, expected 2", r.shows)
	}
	if stats.Iterations != 2 || stats.Ticks != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestAlternatingTicksRedrawCount(t *testing.T) {
	const n = 100

	ticks := make([]bool, n)
	moving := 0
	for i := range ticks {
		ticks[i] = i%2 == 0
		if ticks[i] {
			moving++
		}
	}

	e := &fakeEngine{ticks: ticks, overAfter: n}
	r := &fakeRenderer{}
	stats, err := newController(e, r, input.NewScript()).Run()
	if err != nil {
		t.Fatal(err)
	}

	if r.shows != moving+1 {
		t.Errorf("redraws = %d, expected %d", r.shows, moving+1)
	}
	if stats.Redraws != r.shows {
		t.Errorf("Stats.Redraws = %d, renderer saw %d", stats.Redraws, r.shows)
	}
	if stats.Ticks != n || stats.Reason != ReasonGameOver {
		t.Errorf("unexpected stats %+v", stats)
	}
	if w, h := e.Dims(); w != 10 || h != 20 {
		t.Errorf("engine built as %dx%d, expected 10x20", w, h)
	}
}

func TestGameOverAfterFinalFrame(t *testing.T) {
	var events []string
	e := &fakeEngine{ticks: []bool{true}, overAfter: 1}
	r := &fakeRenderer{log: &events}

	stats, err := newController(e, r, input.NewScript()).Run()
	if err != nil {
		t.Fatal(err)
	}

	// The frame produced by the last tick is shown before the session ends
	if r.shows != 2 {
		t.Errorf("redraws = %d, expected 2", r.shows)
	}
	if stats.Reason != ReasonGameOver || stats.Iterations != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestGameOverBeforeInput(t *testing.T) {
	e := &fakeEngine{slideOK: true, overHook: func() bool { return true }}
	r := &fakeRenderer{}
	src := input.NewScript([]core.Event{key(core.KeyLeft)})

	stats, err := newController(e, r, src).Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(e.calls) != 0 || src.Polls() != 0 {
		t.Errorf("input must not be polled after game over: calls %v, polls %d", e.calls, src.Polls())
	}
	if stats.Reason != ReasonGameOver || r.shows != 1 || r.resets != 1 {
		t.Errorf("unexpected result %+v, shows %d, resets %d", stats, r.shows, r.resets)
	}
}

func TestRenderErrorEndsSession(t *testing.T) {
	boom := errors.New("texture missing")

	tests := []struct {
		name   string
		r      *fakeRenderer
		ticks  []bool
		iter   int
		redraw int
	}{
		{"initial frame", &fakeRenderer{failShow: boom, failAt: 1}, nil, 1, 0},
		{"tick frame", &fakeRenderer{failShow: boom, failAt: 2}, []bool{true}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &fakeEngine{ticks: tt.ticks}
			stats, err := newController(e, tt.r, input.NewScript()).Run()

			if !errors.Is(err, boom) {
				t.Fatalf("Run() error = %v, expected wrapped %v", err, boom)
			}
			if stats.Reason != ReasonError {
				t.Errorf("Reason = %q, expected error", stats.Reason)
			}
			if stats.Iterations != tt.iter || stats.Redraws != tt.redraw {
				t.Errorf("unexpected stats %+v", stats)
			}
			if tt.r.resets != 1 {
				t.Errorf("Reset called %d times, expected 1", tt.r.resets)
			}
		})
	}
}

func TestInitErrors(t *testing.T) {
	t.Run("invalid dimensions", func(t *testing.T) {
		e := &fakeEngine{}
		r := &fakeRenderer{}
		c := New(e.factory(), r, input.NewScript(), Options{Width: 0, Height: 20, Sleep: noSleep, Logger: log.New(io.Discard)})

		stats, err := c.Run()
		if !errors.Is(err, registry.ErrInvalidDimensions) {
			t.Fatalf("Run() error = %v, expected ErrInvalidDimensions", err)
		}
		if r.inits != 0 || r.shows != 0 {
			t.Error("renderer must not be used without an engine")
		}
		if r.resets != 1 || stats.Reason != ReasonError {
			t.Errorf("expected one reset and error reason, got %d, %q", r.resets, stats.Reason)
		}
	})

	t.Run("layout failure", func(t *testing.T) {
		r := &fakeRenderer{failInit: layout.ErrEmptyViewport}
		_, err := newController(&fakeEngine{}, r, input.NewScript()).Run()
		if !errors.Is(err, layout.ErrEmptyViewport) {
			t.Fatalf("Run() error = %v, expected ErrEmptyViewport", err)
		}
		if r.shows != 0 || r.resets != 1 {
			t.Errorf("shows %d, resets %d", r.shows, r.resets)
		}
	})
}

func TestInitGameCalledOnce(t *testing.T) {
	e := &fakeEngine{ticks: []bool{true, true, true}, overAfter: 3}
	r := &fakeRenderer{}
	if _, err := newController(e, r, input.NewScript()).Run(); err != nil {
		t.Fatal(err)
	}
	if r.inits != 1 {
		t.Errorf("InitGame called %d times, expected 1", r.inits)
	}
}

func TestSleepsOncePerIteration(t *testing.T) {
	var slept []time.Duration
	e := &fakeEngine{overAfter: 3}
	c := New(e.factory(), &fakeRenderer{}, input.NewScript(), Options{
		Width:      10,
		Height:     20,
		TickPeriod: 25 * time.Millisecond,
		Sleep:      func(d time.Duration) { slept = append(slept, d) },
		Logger:     log.New(io.Discard),
	})

	if _, err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if len(slept) != 3 {
		t.Fatalf("slept %d times, expected 3", len(slept))
	}
	for _, d := range slept {
		if d != 25*time.Millisecond {
			t.Errorf("slept %v, expected 25ms", d)
		}
	}
}

func TestStateTransitions(t *testing.T) {
	var seen []State
	var c *Controller

	e := &fakeEngine{}
	e.overHook = func() bool {
		seen = append(seen, c.State())
		return true
	}
	r := &fakeRenderer{}
	c = newController(e, r, input.NewScript())

	if c.State() != StateIdle {
		t.Errorf("initial state = %v, expected idle", c.State())
	}
	if _, err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || seen[0] != StatePlaying {
		t.Errorf("state during play = %v, expected [playing]", seen)
	}
	if c.State() != StateDone {
		t.Errorf("final state = %v, expected done", c.State())
	}
}

func TestDefaults(t *testing.T) {
	c := New((&fakeEngine{}).factory(), &fakeRenderer{}, input.NewScript(), Options{})
	if c.opts.TickPeriod != DefaultTickPeriod {
		t.Errorf("TickPeriod = %v, expected %v", c.opts.TickPeriod, DefaultTickPeriod)
	}
	if c.opts.Sleep == nil || c.logger == nil {
		t.Error("Sleep and logger should default")
	}
}

func TestClassifyStrings(t *testing.T) {
	if CmdRotateClockwise.String() != "rotate-clockwise" || Command(99).String() != "unknown" {
		t.Error("unexpected command names")
	}
	if StatePlaying.String() != "playing" || State(99).String() != "unknown" {
		t.Error("unexpected state names")
	}
}

package tcellscreen

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/stacker/internal/core"
	_ "github.com/vovakirdan/stacker/internal/engines/replay"
	"github.com/vovakirdan/stacker/internal/input"
	"github.com/vovakirdan/stacker/internal/layout"
	"github.com/vovakirdan/stacker/internal/loop"
	"github.com/vovakirdan/stacker/internal/session"
)

// recordingScreen wraps a simulation screen, recording the style of every
// cell written and replaying scripted events.
type recordingScreen struct {
	tcell.Screen
	cells  map[[2]int]tcell.Style
	shows  int
	events chan tcell.Event
}

func newRecordingScreen(t *testing.T, w, h int) *recordingScreen {
	t.Helper()

	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(sim.Fini)

	return &recordingScreen{
		Screen: sim,
		cells:  make(map[[2]int]tcell.Style),
		events: make(chan tcell.Event, 16),
	}
}

func (r *recordingScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	r.cells[[2]int{x, y}] = style
	r.Screen.SetContent(x, y, primary, combining, style)
}

func (r *recordingScreen) Show() {
	r.shows++
}

func (r *recordingScreen) PollEvent() tcell.Event {
	ev, ok := <-r.events
	if !ok {
		return nil
	}
	return ev
}

func background(st tcell.Style) tcell.Color {
	_, bg, _ := st.Decompose()
	return bg
}

func TestSurfacePresent(t *testing.T) {
	screen := newRecordingScreen(t, 6, 4)
	s := NewSurface(screen)

	if s.Size() != core.Sz(6, 4) {
		t.Errorf("Size() = %v, expected 6x4", s.Size())
	}
	if s.BlockUnit() != core.Sz(2, 1) {
		t.Errorf("BlockUnit() = %v, expected 2x1", s.BlockUnit())
	}

	frame := core.NewScreen(6, 4)
	frame.Clear(core.ColorBackground)
	frame.Set(1, 2, core.ColorGray)

	if err := s.Present(frame); err != nil {
		t.Fatalf("Present() failed: %v", err)
	}
	if screen.shows != 1 {
		t.Errorf("Show called %d times, expected 1", screen.shows)
	}
	if len(screen.cells) != 24 {
		t.Errorf("wrote %d cells, expected 24", len(screen.cells))
	}

	if got, want := background(screen.cells[[2]int{1, 2}]), tcell.NewRGBColor(128, 128, 128); got != want {
		t.Errorf("cell (1,2) background = %v, expected %v", got, want)
	}
	if got, want := background(screen.cells[[2]int{0, 0}]), tcell.NewRGBColor(96, 0, 0); got != want {
		t.Errorf("cell (0,0) background = %v, expected %v", got, want)
	}
	if len(s.styles) != 2 {
		t.Errorf("cached %d styles, expected 2", len(s.styles))
	}
}

func TestSurfaceClipsLargeFrames(t *testing.T) {
	screen := newRecordingScreen(t, 3, 2)
	s := NewSurface(screen)

	if err := s.Present(core.NewScreen(10, 10)); err != nil {
		t.Fatal(err)
	}
	if len(screen.cells) != 6 {
		t.Errorf("wrote %d cells, expected 6", len(screen.cells))
	}
}

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want core.Event
	}{
		{"left", tcell.KeyLeft, 0, tcell.ModNone, core.KeyDown(core.KeyLeft)},
		{"right", tcell.KeyRight, 0, tcell.ModNone, core.KeyDown(core.KeyRight)},
		{"down", tcell.KeyDown, 0, tcell.ModNone, core.KeyDown(core.KeyArrowDown)},
		{"up", tcell.KeyUp, 0, tcell.ModNone, core.KeyDown(core.KeyUp)},
		{"shift up", tcell.KeyUp, 0, tcell.ModShift, core.KeyDownMod(core.KeyUp, core.ModShift)},
		{"ctrl up", tcell.KeyUp, 0, tcell.ModCtrl, core.KeyDownMod(core.KeyUp, core.ModCtrl)},
		{"alt shift up", tcell.KeyUp, 0, tcell.ModAlt | tcell.ModShift, core.KeyDownMod(core.KeyUp, core.ModAlt|core.ModShift)},
		{"escape", tcell.KeyEscape, 0, tcell.ModNone, core.KeyDown(core.KeyEscape)},
		{"letter a", tcell.KeyRune, 'a', tcell.ModNone, core.KeyDown(core.KeyA)},
		{"letter q", tcell.KeyRune, 'q', tcell.ModNone, core.KeyDown(core.KeyQ)},
		{"upper W", tcell.KeyRune, 'W', tcell.ModNone, core.KeyDownMod(core.KeyW, core.ModShift)},
		{"space", tcell.KeyRune, ' ', tcell.ModNone, core.KeyDown(core.KeySpace)},
		{"ctrl c", tcell.KeyCtrlC, 0, tcell.ModCtrl, core.QuitEvent()},
		{"unknown rune", tcell.KeyRune, 'z', tcell.ModNone, core.Event{Kind: core.EventOther}},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, core.Event{Kind: core.EventOther}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyEvent(tt.key, tt.r, tt.mod); got != tt.want {
				t.Errorf("keyEvent() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestPump(t *testing.T) {
	screen := newRecordingScreen(t, 10, 10)
	screen.events <- tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)
	screen.events <- tcell.NewEventResize(20, 20)
	screen.events <- tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone)
	close(screen.events)

	q := input.NewQueue()
	Pump(screen, q)

	got := q.Poll()
	want := []core.Event{core.KeyDown(core.KeyLeft), core.KeyDown(core.KeyD), core.QuitEvent()}
	if len(got) != len(want) {
		t.Fatalf("got %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := newRecordingScreen(t, 40, 24)
	screen.events <- tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)
	defer close(screen.events)

	cfg := session.Config{
		Engine:  "replay",
		Session: core.DefaultSessionConfig(),
		Layout:  layout.Options{Width: layout.Fraction{Num: 1, Den: 1}, Height: layout.Fraction{Num: 1, Den: 1}},
		Logger:  log.New(io.Discard),
		Sleep:   func(time.Duration) { time.Sleep(time.Millisecond) },
	}

	stats, err := Run(screen, cfg)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if stats.Reason != loop.ReasonQuit {
		t.Errorf("Reason = %q, expected quit", stats.Reason)
	}
	// One frame per redraw, plus the blank screen on reset
	if screen.shows != stats.Redraws+1 {
		t.Errorf("Show called %d times, expected %d", screen.shows, stats.Redraws+1)
	}
}

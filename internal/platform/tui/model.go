// Package tui runs stacker sessions inside Bubble Tea programs, locally or
// over SSH. The game loop runs on its own goroutine: it reads keys from an
// input queue filled by the program and presents frames through a Surface
// the program displays.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stacker/internal/input"
	"github.com/vovakirdan/stacker/internal/loop"
	"github.com/vovakirdan/stacker/internal/session"
)

// helpRows is the number of terminal rows reserved below the board.
const helpRows = 1

// Model is the Bubble Tea model showing one session.
type Model struct {
	surface  *Surface
	queue    *input.Queue
	keys     KeyMap
	help     help.Model
	frame    string
	width    int
	quitting bool
}

// NewModel creates a model that forwards keys to queue and shows the frames
// presented on surface.
func NewModel(surface *Surface, queue *input.Queue, keys KeyMap) Model {
	return Model{
		surface: surface,
		queue:   queue,
		keys:    keys,
		help:    help.New(),
	}
}

// WithTheme returns the model with the help line styled by t.
func (m Model) WithTheme(t Theme) Model {
	t.apply(&m.help)
	return m
}

// Init starts waiting for the first frame.
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.surface)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.queue.Push(m.keys.Event(msg))
		return m, nil

	case tea.WindowSizeMsg:
		// The layout is fixed for the session; only the help line follows.
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = string(msg)
		return m, waitForFrame(m.surface)

	case SessionDoneMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the latest frame and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.frame + "\n" + m.help.View(m.keys)
}

// Options configure a session played in a Bubble Tea program.
type Options struct {
	Session session.Config

	// Cols and Rows are the terminal size in cells.
	Cols, Rows int

	// Renderer styles the frames; nil uses the default renderer.
	Renderer *lipgloss.Renderer

	ProgramOptions []tea.ProgramOption
}

// Start prepares a session for a Bubble Tea program. It returns the model to
// run and a function that plays the session; the caller runs the function on
// its own goroutine and closes the returned queue when the program exits.
func Start(opts Options) (Model, *input.Queue, func() (loop.Stats, error)) {
	surface := NewSurface(opts.Cols, opts.Rows-helpRows, NewFrameEncoder(opts.Renderer))
	queue := input.NewQueue()
	model := NewModel(surface, queue, DefaultKeyMap()).WithTheme(DefaultTheme(opts.Renderer))

	run := func() (loop.Stats, error) {
		return session.Run(surface, queue, opts.Session)
	}
	return model, queue, run
}

// Play runs one session in a local full-screen Bubble Tea program and
// returns when the session has ended.
func Play(opts Options) (loop.Stats, error) {
	model, queue, run := Start(opts)

	programOpts := append([]tea.ProgramOption{tea.WithAltScreen()}, opts.ProgramOptions...)
	p := tea.NewProgram(model, programOpts...)

	type result struct {
		stats loop.Stats
		err   error
	}
	done := make(chan result, 1)
	go func() {
		stats, err := run()
		done <- result{stats, err}
	}()

	_, progErr := p.Run()
	// The program may exit first (killed, terminal lost): stop the loop
	queue.Close()
	res := <-done

	if res.err != nil {
		return res.stats, res.err
	}
	if progErr != nil {
		return res.stats, fmt.Errorf("tui: program failed: %w", progErr)
	}
	return res.stats, nil
}

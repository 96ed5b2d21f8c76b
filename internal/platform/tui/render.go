package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stacker/internal/core"
)

// halfBlock draws the top pixel in the foreground colour and the bottom
// pixel in the background colour, so one terminal cell shows two square-ish
// pixels stacked vertically.
const halfBlock = "▀"

// cellPair is the two pixels shown by one terminal cell.
type cellPair struct {
	top, bottom core.RGB
}

// FrameEncoder converts pixel frames to styled terminal text.
type FrameEncoder struct {
	renderer *lipgloss.Renderer
	styles   map[cellPair]lipgloss.Style
}

// NewFrameEncoder creates an encoder that styles text for r, so colours
// match the terminal the frame is shown on. A nil r uses the default
// renderer.
func NewFrameEncoder(r *lipgloss.Renderer) *FrameEncoder {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &FrameEncoder{
		renderer: r,
		styles:   make(map[cellPair]lipgloss.Style),
	}
}

// Encode converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func (e *FrameEncoder) Encode(s *core.Screen) string {
	rows := (s.Height() + 1) / 2

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*rows*4 + rows)

	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteRune('\n')
		}
		for _, run := range rowRuns(s, row) {
			sb.WriteString(e.style(run.pair).Render(strings.Repeat(halfBlock, run.n)))
		}
	}
	return sb.String()
}

func (e *FrameEncoder) style(p cellPair) lipgloss.Style {
	if st, ok := e.styles[p]; ok {
		return st
	}
	st := e.renderer.NewStyle().
		Foreground(lipgloss.Color(p.top.Hex())).
		Background(lipgloss.Color(p.bottom.Hex()))
	e.styles[p] = st
	return st
}

type run struct {
	pair cellPair
	n    int
}

// rowRuns groups the terminal cells of one text row into runs of equal
// colours. An odd last pixel row is paired with black.
func rowRuns(s *core.Screen, row int) []run {
	y := row * 2
	var runs []run

	for x := 0; x < s.Width(); x++ {
		p := cellPair{top: s.Get(x, y), bottom: core.ColorBlack}
		if y+1 < s.Height() {
			p.bottom = s.Get(x, y+1)
		}

		if n := len(runs); n > 0 && runs[n-1].pair == p {
			runs[n-1].n++
			continue
		}
		runs = append(runs, run{pair: p, n: 1})
	}
	return runs
}

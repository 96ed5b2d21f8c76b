// Package tcellscreen plays sessions directly on a tcell screen. Each
// terminal cell is one pixel painted with its background colour; cells are
// about twice as tall as they are wide, so blocks are two cells wide.
package tcellscreen

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/stacker/internal/core"
)

// Surface is a render.Surface backed by a tcell screen.
type Surface struct {
	screen tcell.Screen
	size   core.Size
	styles map[core.RGB]tcell.Style
}

// NewSurface creates a surface covering the whole of an initialised screen.
// The size is taken once; later resizes do not change the session layout.
func NewSurface(screen tcell.Screen) *Surface {
	w, h := screen.Size()
	return &Surface{
		screen: screen,
		size:   core.Sz(w, h),
		styles: make(map[core.RGB]tcell.Style),
	}
}

// Size implements render.Surface.
func (s *Surface) Size() core.Size {
	return s.size
}

// BlockUnit implements render.UnitHinter.
func (s *Surface) BlockUnit() core.Size {
	return core.Sz(2, 1)
}

// Present implements render.Surface.
func (s *Surface) Present(frame *core.Screen) error {
	w := min(frame.Width(), s.size.W)
	h := min(frame.Height(), s.size.H)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.screen.SetContent(x, y, ' ', nil, s.style(frame.Get(x, y)))
		}
	}
	s.screen.Show()
	return nil
}

// Reset implements render.Surface. It blanks the screen; restoring the
// terminal is left to whoever initialised it.
func (s *Surface) Reset() {
	s.screen.Clear()
	s.screen.Show()
}

func (s *Surface) style(c core.RGB) tcell.Style {
	if st, ok := s.styles[c]; ok {
		return st
	}
	st := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	s.styles[c] = st
	return st
}

package render

import (
	"github.com/vovakirdan/stacker/internal/core"
	"github.com/vovakirdan/stacker/internal/layout"
	"github.com/vovakirdan/stacker/internal/registry"
)

// outlineMin is the smallest block side that still gets a black outline.
// Smaller blocks would be all outline.
const outlineMin = 3

// Flat draws every block as a filled rectangle in its palette colour.
type Flat struct {
	canvas
}

// NewFlat creates a flat-colour renderer drawing onto s.
func NewFlat(s Surface, cfg Config) *Flat {
	return &Flat{canvas: newCanvas(s, cfg)}
}

// InitGame implements Renderer.
func (f *Flat) InitGame(g registry.Grid) (layout.Geometry, error) {
	return f.initGame(g)
}

// ShowGame implements Renderer.
func (f *Flat) ShowGame(g registry.Grid) error {
	return f.draw(g, flatBlock)
}

// Reset implements Renderer.
func (f *Flat) Reset() {
	f.reset()
}

// ShowMessage implements Renderer.
func (f *Flat) ShowMessage(text string) {
	f.showMessage(text)
}

func flatBlock(dst *core.Screen, r core.Rect, c core.CellColor) error {
	dst.FillRect(r, core.ColorFor(c))
	if r.W >= outlineMin && r.H >= outlineMin {
		dst.StrokeRect(r, core.ColorBlack)
	}
	return nil
}

package render

import (
	"github.com/vovakirdan/stacker/internal/core"
	"github.com/vovakirdan/stacker/internal/layout"
	"github.com/vovakirdan/stacker/internal/registry"
)

// Textured draws every block as a texture scaled into the block rectangle.
// Textures are borrowed from a shared cache for the duration of a frame.
type Textured struct {
	canvas
	textures *TextureCache
}

// NewTextured creates a texture-mapped renderer drawing onto s.
func NewTextured(s Surface, textures *TextureCache, cfg Config) *Textured {
	return &Textured{canvas: newCanvas(s, cfg), textures: textures}
}

// InitGame implements Renderer.
func (t *Textured) InitGame(g registry.Grid) (layout.Geometry, error) {
	return t.initGame(g)
}

// ShowGame implements Renderer. A missing texture aborts the frame with a
// *LoadError and nothing is presented.
func (t *Textured) ShowGame(g registry.Grid) error {
	return t.draw(g, t.block)
}

// Reset implements Renderer.
func (t *Textured) Reset() {
	t.reset()
}

// ShowMessage implements Renderer.
func (t *Textured) ShowMessage(text string) {
	t.showMessage(text)
}

func (t *Textured) block(dst *core.Screen, r core.Rect, c core.CellColor) error {
	tex, err := t.textures.Get(core.TextureName(c))
	if err != nil {
		return err
	}
	dst.DrawTexture(r, tex)
	return nil
}

// Package headless runs sessions without a terminal. The surface keeps the
// last presented frame so it can be written out as a PNG image.
package headless

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/vovakirdan/stacker/internal/core"
)

// ErrNoFrame is returned when an image is requested before any frame was
// presented.
var ErrNoFrame = errors.New("headless: no frame presented")

// Surface is an off-screen render.Surface.
type Surface struct {
	size   core.Size
	unit   core.Size
	last   *core.Screen
	frames int
	resets int
}

// NewSurface creates a surface of w x h pixels.
func NewSurface(w, h int) *Surface {
	return &Surface{size: core.Sz(w, h)}
}

// WithUnit makes the surface hint a block unit, so layouts match a terminal
// with non-square cells.
func (s *Surface) WithUnit(u core.Size) *Surface {
	s.unit = u
	return s
}

// Size implements render.Surface.
func (s *Surface) Size() core.Size {
	return s.size
}

// BlockUnit implements render.UnitHinter. A zero size means no hint.
func (s *Surface) BlockUnit() core.Size {
	return s.unit
}

// Present implements render.Surface.
func (s *Surface) Present(frame *core.Screen) error {
	s.last = frame.Clone()
	s.frames++
	return nil
}

// Reset implements render.Surface.
func (s *Surface) Reset() {
	s.resets++
}

// Frames returns how many frames were presented.
func (s *Surface) Frames() int {
	return s.frames
}

// Resets returns how many times the surface was reset.
func (s *Surface) Resets() int {
	return s.resets
}

// Last returns a copy of the last presented frame, or nil.
func (s *Surface) Last() *core.Screen {
	if s.last == nil {
		return nil
	}
	return s.last.Clone()
}

// Image converts the last frame to an image, each pixel scaled to a
// scale x scale square.
func (s *Surface) Image(scale int) (*image.RGBA, error) {
	if s.last == nil {
		return nil, ErrNoFrame
	}
	scale = max(scale, 1)

	w, h := s.last.Width(), s.last.Height()
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h*scale; y++ {
		for x := 0; x < w*scale; x++ {
			c := s.last.Get(x/scale, y/scale)
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return img, nil
}

// WritePNG encodes the last frame as a PNG.
func (s *Surface) WritePNG(w io.Writer, scale int) error {
	img, err := s.Image(scale)
	if err != nil {
		return err
	}
	return encodePNG(w, img)
}

// SavePNG writes the last frame to path, creating parent directories.
func (s *Surface) SavePNG(path string, scale int) error {
	img, err := s.Image(scale)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("headless: create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("headless: create %s: %w", path, err)
	}
	if err := encodePNG(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func encodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("headless: encode png: %w", err)
	}
	return nil
}

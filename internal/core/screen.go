package core

import (
	"strings"
)

// Screen is a 2D pixel buffer that renderers draw a whole frame into before
// handing it to a surface. It decouples drawing from the actual display, so a
// terminal, an image encoder or a test double can all present the same frame.
type Screen struct {
	width  int
	height int
	pix    []RGB // row-major: pix[y*width + x]
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	return s
}

func (s *Screen) allocate() {
	s.pix = make([]RGB, s.width*s.height)
}

// Width returns the screen width in pixels.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in pixels.
func (s *Screen) Height() int {
	return s.height
}

// Size returns the screen dimensions.
func (s *Screen) Size() Size {
	return Size{W: s.width, H: s.height}
}

// Bounds returns the screen area as a rectangle at the origin.
func (s *Screen) Bounds() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// Clear fills the entire screen with the given colour.
func (s *Screen) Clear(c RGB) {
	for i := range s.pix {
		s.pix[i] = c
	}
}

// Set colours the pixel at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, c RGB) {
	if !s.Bounds().Contains(x, y) {
		return
	}
	s.pix[y*s.width+x] = c
}

// Get returns the pixel at the given position.
// Returns black for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) RGB {
	if !s.Bounds().Contains(x, y) {
		return ColorBlack
	}
	return s.pix[y*s.width+x]
}

// FillRect fills a rectangular area with the given colour.
func (s *Screen) FillRect(r Rect, c RGB) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.Set(x, y, c)
		}
	}
}

// StrokeRect draws a one-pixel outline along the inside edge of r.
func (s *Screen) StrokeRect(r Rect, c RGB) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	for x := r.X; x < r.Right(); x++ {
		s.Set(x, r.Y, c)
		s.Set(x, r.Bottom()-1, c)
	}
	for y := r.Y; y < r.Bottom(); y++ {
		s.Set(r.X, y, c)
		s.Set(r.Right()-1, y, c)
	}
}

// DrawTexture scales t into r using nearest-neighbour sampling.
func (s *Screen) DrawTexture(r Rect, t *Texture) {
	if t == nil || t.Empty() || r.W <= 0 || r.H <= 0 {
		return
	}
	for dy := 0; dy < r.H; dy++ {
		ty := dy * t.H / r.H
		for dx := 0; dx < r.W; dx++ {
			tx := dx * t.W / r.W
			s.Set(r.X+dx, r.Y+dy, t.At(tx, ty))
		}
	}
}

// Clone returns an independent copy of the screen.
func (s *Screen) Clone() *Screen {
	c := &Screen{width: s.width, height: s.height, pix: make([]RGB, len(s.pix))}
	copy(c.pix, s.pix)
	return c
}

// String renders the buffer as text, one rune per pixel, using legend to
// name colours. Colours missing from the legend render as '?'.
// Useful for line-by-line comparisons in tests.
func (s *Screen) String(legend map[RGB]rune) string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			r, ok := legend[s.pix[y*s.width+x]]
			if !ok {
				r = '?'
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Texture is a small decoded image drawn into block rectangles.
type Texture struct {
	W, H int
	Pix  []RGB // row-major
}

// Empty reports whether the texture has no pixels.
func (t *Texture) Empty() bool {
	return t.W <= 0 || t.H <= 0 || len(t.Pix) < t.W*t.H
}

// At returns the texel at (x, y).
func (t *Texture) At(x, y int) RGB {
	return t.Pix[y*t.W+x]
}

// Package core provides fundamental types shared by the layout engine, the
// renderers and the game loop. It has no external dependencies so that the
// loop and layout code stay pure and testable.
package core

import "fmt"

// Size is a width/height pair. Depending on context it is measured in pixels,
// grid blocks or abstract block units.
type Size struct {
	W, H int
}

// Sz creates a new Size.
func Sz(w, h int) Size {
	return Size{W: w, H: h}
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// String formats the size as WxH.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// Rect represents an axis-aligned rectangle in pixel space.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsRect returns true if other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

package core

import (
	"fmt"
	"strconv"
)

// RGB is an opaque 24-bit colour used for surface pixels.
type RGB struct {
	R, G, B uint8
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Fixed colours used by the renderers.
var (
	ColorBlack      = RGB{0, 0, 0}
	ColorGray       = RGB{128, 128, 128}
	ColorDarkGray   = RGB{32, 32, 32}
	ColorBackground = RGB{96, 0, 0}
)

// PaletteSize is the number of piece colours an engine may report.
const PaletteSize = 7

var palette = [PaletteSize]RGB{
	{255, 196, 196},
	{255, 255, 196},
	{196, 255, 196},
	{196, 255, 255},
	{196, 196, 255},
	{255, 196, 255},
	{255, 226, 196},
}

// CellKind tags the variant held by a CellColor.
type CellKind uint8

const (
	KindEmpty CellKind = iota
	KindWall
	KindValue
)

// CellColor is the colour of one grid cell as reported by a puzzle engine:
// empty, a wall block, or a palette value.
type CellColor struct {
	Kind CellKind
	N    int // Palette index, meaningful only for KindValue
}

// Empty returns the colour of an unoccupied cell.
func Empty() CellColor {
	return CellColor{Kind: KindEmpty}
}

// Wall returns the colour of a border block.
func Wall() CellColor {
	return CellColor{Kind: KindWall}
}

// Value returns the palette colour n. Values outside the palette are allowed
// and resolve to the fallback colour and texture.
func Value(n int) CellColor {
	return CellColor{Kind: KindValue, N: n}
}

// InPalette reports whether c is a palette value with a dedicated colour.
func (c CellColor) InPalette() bool {
	return c.Kind == KindValue && c.N >= 0 && c.N < PaletteSize
}

// String returns a short human-readable name.
func (c CellColor) String() string {
	switch c.Kind {
	case KindEmpty:
		return "Empty"
	case KindWall:
		return "Wall"
	case KindValue:
		return "Value(" + strconv.Itoa(c.N) + ")"
	default:
		return "Unknown"
	}
}

// ColorFor maps a cell colour to its flat rendering colour.
// Unmapped colours (empty cells, out-of-palette values) fall back to dark gray.
func ColorFor(c CellColor) RGB {
	switch {
	case c.Kind == KindWall:
		return ColorGray
	case c.InPalette():
		return palette[c.N]
	default:
		return ColorDarkGray
	}
}

// Texture names understood by texture providers.
const (
	TextureNone = "none"
	TextureWall = "wall"
)

// TextureName maps a cell colour to the name of the texture drawn for it.
// Unmapped colours fall back to TextureNone.
func TextureName(c CellColor) string {
	switch {
	case c.Kind == KindWall:
		return TextureWall
	case c.InPalette():
		return strconv.Itoa(c.N)
	default:
		return TextureNone
	}
}

// TextureNames returns the full set of names TextureName can produce,
// in a stable order. Used to preload a texture pack.
func TextureNames() []string {
	names := []string{TextureNone, TextureWall}
	for i := 0; i < PaletteSize; i++ {
		names = append(names, strconv.Itoa(i))
	}
	return names
}

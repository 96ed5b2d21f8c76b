// Package layout computes where a walled puzzle board (and optionally a title
// banner) goes on a surface of arbitrary size. Everything is integer
// arithmetic so that every block in a session has exactly the same pixel size.
package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/stacker/internal/core"
)

// Title banner dimensions in blocks.
const (
	TitleCols = 29
	TitleRows = 7
)

var (
	ErrEmptyViewport = errors.New("layout: viewport has no area")
	ErrEmptyGrid     = errors.New("layout: grid has no cells")
	ErrBlockTooSmall = errors.New("layout: viewport too small for one pixel per block")
	ErrUnknownMode   = errors.New("layout: unknown mode")
	ErrBadFraction   = errors.New("layout: invalid fraction")
)

// Mode selects how the board is placed on the surface.
type Mode int

const (
	ModeBoard Mode = iota // Board centred in a fraction of the viewport
	ModeTitle             // Title banner above a bottom-anchored board
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBoard:
		return "board"
	case ModeTitle:
		return "title"
	default:
		return "unknown"
	}
}

// ParseMode parses "board" or "title".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "board":
		return ModeBoard, nil
	case "title":
		return ModeTitle, nil
	default:
		return ModeBoard, fmt.Errorf("%w %q", ErrUnknownMode, s)
	}
}

// Fraction is an exact num/den ratio applied to a viewport dimension.
type Fraction struct {
	Num, Den int
}

// Of applies the fraction to n with integer division.
func (f Fraction) Of(n int) int {
	return n * f.Num / f.Den
}

// String formats the fraction as num/den.
func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// ParseFraction parses "num/den" or a bare integer ("1" means 1/1).
func ParseFraction(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	numStr, denStr, found := strings.Cut(s, "/")
	if !found {
		denStr = "1"
	}

	num, err := strconv.Atoi(strings.TrimSpace(numStr))
	if err != nil {
		return Fraction{}, fmt.Errorf("%w %q: %v", ErrBadFraction, s, err)
	}
	den, err := strconv.Atoi(strings.TrimSpace(denStr))
	if err != nil {
		return Fraction{}, fmt.Errorf("%w %q: %v", ErrBadFraction, s, err)
	}
	if num <= 0 || den <= 0 || num > den {
		return Fraction{}, fmt.Errorf("%w %q: must be in (0, 1]", ErrBadFraction, s)
	}
	return Fraction{Num: num, Den: den}, nil
}

// Options tune the layout.
type Options struct {
	// Unit is the size of one block in abstract units. It fixes the aspect
	// ratio of a block: 50x50 gives square pixels, 2x1 gives square-looking
	// blocks on a terminal whose cells are twice as tall as wide.
	Unit core.Size

	// Width and Height are the share of the viewport the content may use.
	Width  Fraction
	Height Fraction
}

// DefaultOptions returns the reference options for a mode:
// one third by two thirds for the board alone, 80% by full height with the title.
func DefaultOptions(m Mode) Options {
	if m == ModeTitle {
		return Options{
			Unit:   core.Sz(50, 50),
			Width:  Fraction{4, 5},
			Height: Fraction{1, 1},
		}
	}
	return Options{
		Unit:   core.Sz(50, 50),
		Width:  Fraction{1, 3},
		Height: Fraction{2, 3},
	}
}

// Region is an origin plus a uniform block size. Block (x, y) of the region
// covers origin + (x, y) * cell size.
type Region struct {
	X, Y         int // Pixel origin
	CellW, CellH int // Block size in pixels
	Cols, Rows   int // Extent in blocks
}

// Cell returns the pixel rectangle of block (x, y).
func (r Region) Cell(x, y int) core.Rect {
	return core.NewRect(r.X+x*r.CellW, r.Y+y*r.CellH, r.CellW, r.CellH)
}

// Bounds returns the pixel rectangle covered by the whole region.
func (r Region) Bounds() core.Rect {
	return core.NewRect(r.X, r.Y, r.Cols*r.CellW, r.Rows*r.CellH)
}

// Geometry is the layout of one session.
type Geometry struct {
	Mode     Mode
	Viewport core.Size
	Grid     core.Size // Logical board, without walls
	Title    Region    // Zero unless HasTitle
	Board    Region    // Board including side and bottom walls
	HasTitle bool
}

// FitAspect returns the largest size that fits inside bound while keeping
// the aspect ratio of content. content must have no zero dimension.
func FitAspect(content, bound core.Size) core.Size {
	h := content.H * bound.W / content.W
	if h > bound.H {
		return core.Size{W: content.W * bound.H / content.H, H: bound.H}
	}
	return core.Size{W: bound.W, H: h}
}

// WalledSize returns the board extent in blocks: one wall column on each side
// and one wall row at the bottom.
func WalledSize(grid core.Size) core.Size {
	return core.Size{W: grid.W + 2, H: grid.H + 1}
}

// BoardOnly centres the walled board in the viewport, scaled to the largest
// block size that fits in opts' share of the viewport.
func BoardOnly(viewport, grid core.Size, opts Options) Geometry {
	blocks := WalledSize(grid)
	cellW, cellH := blockSize(blocks, viewport, opts)

	// Centred on the drawn extent, not the untruncated fit
	boardW := blocks.W * cellW
	boardH := blocks.H * cellH

	return Geometry{
		Mode:     ModeBoard,
		Viewport: viewport,
		Grid:     grid,
		Board: Region{
			X:     (viewport.W - boardW) / 2,
			Y:     (viewport.H - boardH) / 2,
			CellW: cellW,
			CellH: cellH,
			Cols:  blocks.W,
			Rows:  blocks.H,
		},
	}
}

// BoardWithTitle stacks the title banner on top of the walled board. Both
// share one block size, computed by fitting the composite (wider of the two
// widths, sum of the heights) into opts' share of the viewport. The title is
// centred at the top of the composite and the board is anchored to its bottom.
func BoardWithTitle(viewport, grid core.Size, opts Options) Geometry {
	board := WalledSize(grid)
	composite := core.Size{
		W: max(board.W, TitleCols),
		H: board.H + TitleRows,
	}
	cellW, cellH := blockSize(composite, viewport, opts)

	compH := composite.H * cellH
	top := (viewport.H - compH) / 2

	return Geometry{
		Mode:     ModeTitle,
		Viewport: viewport,
		Grid:     grid,
		HasTitle: true,
		Title: Region{
			X:     (viewport.W - TitleCols*cellW) / 2,
			Y:     top,
			CellW: cellW,
			CellH: cellH,
			Cols:  TitleCols,
			Rows:  TitleRows,
		},
		Board: Region{
			X:     (viewport.W - board.W*cellW) / 2,
			Y:     top + compH - board.H*cellH,
			CellW: cellW,
			CellH: cellH,
			Cols:  board.W,
			Rows:  board.H,
		},
	}
}

// Compute validates its inputs and lays out the board for the given mode.
func Compute(mode Mode, viewport, grid core.Size, opts Options) (Geometry, error) {
	if viewport.Empty() {
		return Geometry{}, fmt.Errorf("%w: %s", ErrEmptyViewport, viewport)
	}
	if grid.Empty() {
		return Geometry{}, fmt.Errorf("%w: %s", ErrEmptyGrid, grid)
	}
	if opts.Unit.Empty() {
		opts.Unit = DefaultOptions(mode).Unit
	}
	if opts.Width.Den <= 0 || opts.Height.Den <= 0 {
		def := DefaultOptions(mode)
		opts.Width, opts.Height = def.Width, def.Height
	}

	var g Geometry
	switch mode {
	case ModeBoard:
		g = BoardOnly(viewport, grid, opts)
	case ModeTitle:
		g = BoardWithTitle(viewport, grid, opts)
	default:
		return Geometry{}, fmt.Errorf("%w %d", ErrUnknownMode, int(mode))
	}

	if g.Board.CellW <= 0 || g.Board.CellH <= 0 {
		return Geometry{}, fmt.Errorf("%w: viewport %s, grid %s", ErrBlockTooSmall, viewport, grid)
	}
	return g, nil
}

// blockSize fits blocks (scaled by the unit) into the allowed share of the
// viewport and returns the resulting pixel size of one block.
func blockSize(blocks, viewport core.Size, opts Options) (int, int) {
	content := core.Size{W: blocks.W * opts.Unit.W, H: blocks.H * opts.Unit.H}
	bound := core.Size{W: opts.Width.Of(viewport.W), H: opts.Height.Of(viewport.H)}
	if bound.Empty() {
		return 0, 0
	}

	fitted := FitAspect(content, bound)
	return fitted.W / blocks.W, fitted.H / blocks.H
}

// Package render draws a puzzle board onto a pixel surface. A renderer lays
// the board out once per session, then redraws whole frames on demand: clear,
// title banner, walls, cells, present. Surfaces only ever receive complete
// frames.
package render

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stacker/internal/core"
	"github.com/vovakirdan/stacker/internal/layout"
	"github.com/vovakirdan/stacker/internal/registry"
)

// ErrNotInitialized is returned by ShowGame before InitGame succeeded.
var ErrNotInitialized = errors.New("render: ShowGame called before InitGame")

// Renderer is the output side of the game loop.
type Renderer interface {
	// InitGame computes the session layout for the grid's shape.
	// Called exactly once per session, before any ShowGame.
	InitGame(g registry.Grid) (layout.Geometry, error)

	// ShowGame draws and presents one complete frame.
	ShowGame(g registry.Grid) error

	// Reset performs end-of-session cleanup.
	Reset()

	// ShowMessage is reserved for on-screen diagnostics. Renderers in this
	// package do not draw messages.
	ShowMessage(text string)
}

// Surface is where finished frames go: a terminal, an image, a test double.
type Surface interface {
	// Size returns the viewport in pixels.
	Size() core.Size

	// Present displays frame in one step. The surface must not keep a
	// reference to frame after returning.
	Present(frame *core.Screen) error

	// Reset is called once when the session ends.
	Reset()
}

// UnitHinter is implemented by surfaces whose pixels are not square. The
// returned size becomes the layout's block unit unless one is configured.
type UnitHinter interface {
	BlockUnit() core.Size
}

// Config selects the layout of a renderer.
type Config struct {
	Mode   layout.Mode
	Layout layout.Options
	Logger *log.Logger
}

// blockFunc paints one block of colour c into r.
type blockFunc func(dst *core.Screen, r core.Rect, c core.CellColor) error

// canvas is the state shared by the concrete renderers: the surface, the
// session geometry and the frame buffer the board is drawn into.
type canvas struct {
	surface Surface
	cfg     Config
	logger  *log.Logger

	geom   layout.Geometry
	screen *core.Screen
	ready  bool
}

func newCanvas(s Surface, cfg Config) canvas {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return canvas{surface: s, cfg: cfg, logger: logger}
}

func (c *canvas) initGame(g registry.Grid) (layout.Geometry, error) {
	opts := c.cfg.Layout
	if opts.Unit.Empty() {
		if h, ok := c.surface.(UnitHinter); ok {
			opts.Unit = h.BlockUnit()
		}
	}

	viewport := c.surface.Size()
	w, h := g.Dims()

	geom, err := layout.Compute(c.cfg.Mode, viewport, core.Sz(w, h), opts)
	if err != nil {
		return layout.Geometry{}, fmt.Errorf("render: cannot lay out %dx%d board: %w", w, h, err)
	}

	c.geom = geom
	c.screen = core.NewScreen(viewport.W, viewport.H)
	c.ready = true

	c.logger.Debug("layout computed",
		"mode", geom.Mode,
		"viewport", viewport,
		"block", core.Sz(geom.Board.CellW, geom.Board.CellH),
		"board", geom.Board.Bounds(),
	)
	return geom, nil
}

// draw renders a full frame with block and presents it. If any block fails
// nothing is presented.
func (c *canvas) draw(g registry.Grid, block blockFunc) error {
	if !c.ready {
		return ErrNotInitialized
	}

	dst := c.screen
	dst.Clear(core.ColorBackground)

	if c.geom.HasTitle {
		for _, tb := range Title {
			if err := block(dst, c.geom.Title.Cell(tb.X, tb.Y), tb.Color()); err != nil {
				return err
			}
		}
	}

	board := c.geom.Board
	w, h := g.Dims()
	wall := core.Wall()

	for y := 0; y < h; y++ {
		if err := block(dst, board.Cell(0, y), wall); err != nil {
			return err
		}
		for x := 0; x < w; x++ {
			if err := block(dst, board.Cell(1+x, y), g.DisplayGet(x, y)); err != nil {
				return err
			}
		}
		if err := block(dst, board.Cell(w+1, y), wall); err != nil {
			return err
		}
	}

	for x := 0; x < w+2; x++ {
		if err := block(dst, board.Cell(x, h), wall); err != nil {
			return err
		}
	}

	if err := c.surface.Present(dst); err != nil {
		return fmt.Errorf("render: present failed: %w", err)
	}
	return nil
}

func (c *canvas) reset() {
	c.surface.Reset()
}

func (c *canvas) showMessage(text string) {
	c.logger.Debug("message not displayed", "text", text)
}

// Geometry returns the layout computed by InitGame.
func (c *canvas) Geometry() layout.Geometry {
	return c.geom
}

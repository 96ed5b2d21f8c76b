package layout

import (
	"errors"
	"testing"

	"github.com/vovakirdan/stacker/internal/core"
)

func TestFitAspect(t *testing.T) {
	tests := []struct {
		name     string
		content  core.Size
		bound    core.Size
		expected core.Size
	}{
		{"tall content in square bound", core.Sz(1, 2), core.Sz(100, 100), core.Sz(50, 100)},
		{"height clamped first", core.Sz(10, 20), core.Sz(5, 5), core.Sz(2, 5)},
		{"wide content in square bound", core.Sz(2, 1), core.Sz(100, 100), core.Sz(100, 50)},
		{"exact fit", core.Sz(4, 3), core.Sz(400, 300), core.Sz(400, 300)},
		{"upscale", core.Sz(3, 3), core.Sz(90, 60), core.Sz(60, 60)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FitAspect(tc.content, tc.bound)
			if got != tc.expected {
				t.Errorf("FitAspect(%v, %v) = %v, expected %v", tc.content, tc.bound, got, tc.expected)
			}
		})
	}
}

func TestFitAspectInvariants(t *testing.T) {
	contents := []core.Size{core.Sz(1, 2), core.Sz(12, 21), core.Sz(29, 28), core.Sz(7, 3), core.Sz(1, 1)}
	bounds := []core.Size{core.Sz(100, 100), core.Sz(640, 720), core.Sz(37, 11), core.Sz(1, 500)}

	for _, c := range contents {
		for _, b := range bounds {
			got := FitAspect(c, b)
			if got.W > b.W || got.H > b.H {
				t.Errorf("FitAspect(%v, %v) = %v exceeds bound", c, b, got)
			}
			// got.W/c.W == got.H/c.H within one unit of rounding, compared
			// by cross-multiplication to stay in integers.
			diff := got.W*c.H - got.H*c.W
			if diff < 0 {
				diff = -diff
			}
			if diff > max(c.W, c.H) {
				t.Errorf("FitAspect(%v, %v) = %v breaks aspect ratio (cross diff %d)", c, b, got, diff)
			}
		}
	}
}

func TestBoardOnly(t *testing.T) {
	g, err := Compute(ModeBoard, core.Sz(1920, 1080), core.Sz(10, 20), DefaultOptions(ModeBoard))
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}

	expected := Region{X: 756, Y: 183, CellW: 34, CellH: 34, Cols: 12, Rows: 21}
	if g.Board != expected {
		t.Errorf("Board = %+v, expected %+v", g.Board, expected)
	}
	if g.HasTitle {
		t.Error("board-only layout should not have a title region")
	}
	if g.Grid != core.Sz(10, 20) || g.Viewport != core.Sz(1920, 1080) {
		t.Errorf("Grid/Viewport not recorded: %v %v", g.Grid, g.Viewport)
	}

	// Board is centred in the viewport
	b := g.Board.Bounds()
	if left, right := b.X, 1920-b.Right(); left != right {
		t.Errorf("board not horizontally centred: left %d, right %d", left, right)
	}
	if top, bottom := b.Y, 1080-b.Bottom(); top != bottom && top+1 != bottom {
		t.Errorf("board not vertically centred: top %d, bottom %d", top, bottom)
	}
}

func TestBoardWithTitle(t *testing.T) {
	g, err := Compute(ModeTitle, core.Sz(1920, 1080), core.Sz(10, 20), DefaultOptions(ModeTitle))
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}

	if !g.HasTitle {
		t.Fatal("title layout should have a title region")
	}

	expectedTitle := Region{X: 409, Y: 8, CellW: 38, CellH: 38, Cols: TitleCols, Rows: TitleRows}
	if g.Title != expectedTitle {
		t.Errorf("Title = %+v, expected %+v", g.Title, expectedTitle)
	}

	expectedBoard := Region{X: 732, Y: 274, CellW: 38, CellH: 38, Cols: 12, Rows: 21}
	if g.Board != expectedBoard {
		t.Errorf("Board = %+v, expected %+v", g.Board, expectedBoard)
	}

	// Title sits directly on top of the board and both share the block size
	if g.Title.Bounds().Bottom() != g.Board.Y {
		t.Errorf("title bottom %d should meet board top %d", g.Title.Bounds().Bottom(), g.Board.Y)
	}
	if g.Title.CellW != g.Board.CellW || g.Title.CellH != g.Board.CellH {
		t.Error("title and board must share one block size")
	}

	vp := core.NewRect(0, 0, 1920, 1080)
	if !vp.ContainsRect(g.Title.Bounds()) || !vp.ContainsRect(g.Board.Bounds()) {
		t.Error("regions must lie inside the viewport")
	}
	if g.Title.Bounds().Intersects(g.Board.Bounds()) {
		t.Error("title and board must not overlap")
	}
}

func TestWideBoardWithTitle(t *testing.T) {
	// A board wider than the banner decides the composite width
	g, err := Compute(ModeTitle, core.Sz(800, 600), core.Sz(40, 10), DefaultOptions(ModeTitle))
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}

	if g.Board.Cols != 42 {
		t.Fatalf("Board.Cols = %d, expected 42", g.Board.Cols)
	}
	if g.Board.Bounds().W > 800*4/5 {
		t.Errorf("board width %d exceeds 80%% of the viewport", g.Board.Bounds().W)
	}
	if g.Title.Bounds().W >= g.Board.Bounds().W {
		t.Error("title should be narrower than a 42-block board")
	}
}

func TestTerminalUnit(t *testing.T) {
	opts := DefaultOptions(ModeBoard)
	opts.Unit = core.Sz(2, 1)

	g, err := Compute(ModeBoard, core.Sz(120, 40), core.Sz(10, 20), opts)
	if err != nil {
		t.Fatalf("Compute() failed: %v", err)
	}

	expected := Region{X: 48, Y: 9, CellW: 2, CellH: 1, Cols: 12, Rows: 21}
	if g.Board != expected {
		t.Errorf("Board = %+v, expected %+v", g.Board, expected)
	}
}

func TestRegionCell(t *testing.T) {
	r := Region{X: 10, Y: 20, CellW: 4, CellH: 3, Cols: 5, Rows: 5}

	if got := r.Cell(0, 0); got != core.NewRect(10, 20, 4, 3) {
		t.Errorf("Cell(0, 0) = %v", got)
	}
	if got := r.Cell(2, 3); got != core.NewRect(18, 29, 4, 3) {
		t.Errorf("Cell(2, 3) = %v", got)
	}
	if got := r.Bounds(); got != core.NewRect(10, 20, 20, 15) {
		t.Errorf("Bounds() = %v", got)
	}
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name     string
		viewport core.Size
		grid     core.Size
		expected error
	}{
		{"zero viewport", core.Sz(0, 0), core.Sz(10, 20), ErrEmptyViewport},
		{"zero width viewport", core.Sz(0, 100), core.Sz(10, 20), ErrEmptyViewport},
		{"zero grid", core.Sz(800, 600), core.Sz(0, 20), ErrEmptyGrid},
		{"tiny viewport", core.Sz(3, 3), core.Sz(10, 20), ErrBlockTooSmall},
		{"viewport smaller than share", core.Sz(2, 2), core.Sz(10, 20), ErrBlockTooSmall},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute(ModeBoard, tc.viewport, tc.grid, DefaultOptions(ModeBoard))
			if !errors.Is(err, tc.expected) {
				t.Errorf("Compute() error = %v, expected %v", err, tc.expected)
			}
		})
	}

	if _, err := Compute(Mode(9), core.Sz(800, 600), core.Sz(10, 20), Options{}); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("unknown mode error = %v", err)
	}
}

func TestComputeFillsZeroOptions(t *testing.T) {
	withDefaults, err := Compute(ModeBoard, core.Sz(1920, 1080), core.Sz(10, 20), DefaultOptions(ModeBoard))
	if err != nil {
		t.Fatal(err)
	}
	zero, err := Compute(ModeBoard, core.Sz(1920, 1080), core.Sz(10, 20), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if withDefaults != zero {
		t.Errorf("zero Options should behave like defaults: %+v vs %+v", zero, withDefaults)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in       string
		expected Mode
		wantErr  bool
	}{
		{"board", ModeBoard, false},
		{"", ModeBoard, false},
		{"Title", ModeTitle, false},
		{"banner", ModeBoard, true},
	}

	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.expected {
			t.Errorf("ParseMode(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestParseFraction(t *testing.T) {
	tests := []struct {
		in       string
		expected Fraction
		wantErr  bool
	}{
		{"1/3", Fraction{1, 3}, false},
		{" 4 / 5 ", Fraction{4, 5}, false},
		{"1", Fraction{1, 1}, false},
		{"0/3", Fraction{}, true},
		{"3/2", Fraction{}, true},
		{"a/b", Fraction{}, true},
		{"1/0", Fraction{}, true},
	}

	for _, tc := range tests {
		got, err := ParseFraction(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseFraction(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrBadFraction) {
			t.Errorf("ParseFraction(%q) error should wrap ErrBadFraction: %v", tc.in, err)
		}
		if got != tc.expected {
			t.Errorf("ParseFraction(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}

	if (Fraction{2, 3}).Of(1080) != 720 {
		t.Error("2/3 of 1080 should be 720")
	}
}

package render

import "github.com/vovakirdan/stacker/internal/core"

// TitleBlock is one block of the title banner, positioned in the 29x7 title
// region and coloured with palette value N.
type TitleBlock struct {
	X, Y int
	N    int
}

// Color returns the cell colour of the block.
func (b TitleBlock) Color() core.CellColor {
	return core.Value(b.N)
}

// Title spells STACKER in a 3x5 block font, one palette colour per letter.
var Title = []TitleBlock{
	// S
	{1, 1, 0}, {2, 1, 0}, {3, 1, 0}, {1, 2, 0}, {1, 3, 0},
	{2, 3, 0}, {3, 3, 0}, {3, 4, 0}, {1, 5, 0}, {2, 5, 0},
	{3, 5, 0},
	// T
	{5, 1, 1}, {6, 1, 1}, {7, 1, 1}, {6, 2, 1}, {6, 3, 1},
	{6, 4, 1}, {6, 5, 1},
	// A
	{9, 1, 2}, {10, 1, 2}, {11, 1, 2}, {9, 2, 2}, {11, 2, 2},
	{9, 3, 2}, {10, 3, 2}, {11, 3, 2}, {9, 4, 2}, {11, 4, 2},
	{9, 5, 2}, {11, 5, 2},
	// C
	{13, 1, 3}, {14, 1, 3}, {15, 1, 3}, {13, 2, 3}, {13, 3, 3},
	{13, 4, 3}, {13, 5, 3}, {14, 5, 3}, {15, 5, 3},
	// K
	{17, 1, 4}, {19, 1, 4}, {17, 2, 4}, {18, 2, 4}, {17, 3, 4},
	{17, 4, 4}, {18, 4, 4}, {17, 5, 4}, {19, 5, 4},
	// E
	{21, 1, 5}, {22, 1, 5}, {23, 1, 5}, {21, 2, 5}, {21, 3, 5},
	{22, 3, 5}, {21, 4, 5}, {21, 5, 5}, {22, 5, 5}, {23, 5, 5},
	// R
	{25, 1, 6}, {26, 1, 6}, {25, 2, 6}, {27, 2, 6}, {25, 3, 6},
	{26, 3, 6}, {25, 4, 6}, {27, 4, 6}, {25, 5, 6}, {27, 5, 6},
}

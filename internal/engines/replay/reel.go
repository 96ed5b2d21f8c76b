package replay

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/stacker/internal/core"
)

//go:embed reels/demo.yaml
var defaultReel []byte

// ErrEmptyReel is returned for reels without frames.
var ErrEmptyReel = errors.New("replay: reel has no frames")

// YAMLReel is the on-disk form of a reel.
//
//	id: demo
//	tick_every: 40
//	loop: true
//	frames:
//	  - |
//	    ....
//	    .00.
//
// Frame cells: '.' or ' ' empty, '#' wall, '0'-'9' palette value.
type YAMLReel struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	TickEvery     int      `yaml:"tick_every"`
	Loop          bool     `yaml:"loop"`
	GameOverAfter int      `yaml:"game_over_after,omitempty"`
	Frames        []string `yaml:"frames"`
}

// Frame is one board picture. Rows may be ragged; missing cells are empty.
type Frame [][]core.CellColor

// At returns cell (x, y), or Empty outside the frame.
func (f Frame) At(x, y int) core.CellColor {
	if y < 0 || y >= len(f) || x < 0 || x >= len(f[y]) {
		return core.Empty()
	}
	return f[y][x]
}

// Reel is a parsed sequence of frames plus playback settings.
type Reel struct {
	ID            string
	Name          string
	TickEvery     int // Gravity ticks per frame advance; 0 never advances
	Loop          bool
	GameOverAfter int // Tick-driven advances before game over; 0 never ends
	Frames        []Frame
}

// ParseReel parses a YAML reel.
func ParseReel(data []byte) (*Reel, error) {
	var yr YAMLReel
	if err := yaml.Unmarshal(data, &yr); err != nil {
		return nil, fmt.Errorf("replay: yaml unmarshal: %w", err)
	}
	if len(yr.Frames) == 0 {
		return nil, ErrEmptyReel
	}
	if yr.TickEvery < 0 || yr.GameOverAfter < 0 {
		return nil, fmt.Errorf("replay: reel %q: negative tick_every or game_over_after", yr.ID)
	}

	reel := &Reel{
		ID:            yr.ID,
		Name:          yr.Name,
		TickEvery:     yr.TickEvery,
		Loop:          yr.Loop,
		GameOverAfter: yr.GameOverAfter,
		Frames:        make([]Frame, 0, len(yr.Frames)),
	}

	for i, text := range yr.Frames {
		frame, err := parseFrame(text)
		if err != nil {
			return nil, fmt.Errorf("replay: reel %q frame %d: %w", yr.ID, i, err)
		}
		reel.Frames = append(reel.Frames, frame)
	}
	return reel, nil
}

// LoadReel reads a reel from path. An empty path loads the built-in reel.
func LoadReel(path string) (*Reel, error) {
	if path == "" {
		return ParseReel(defaultReel)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: reading reel %s: %w", path, err)
	}
	return ParseReel(data)
}

func parseFrame(text string) (Frame, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	frame := make(Frame, len(lines))

	for y, line := range lines {
		row := make([]core.CellColor, 0, len(line))
		for x, ch := range line {
			c, err := parseCell(ch)
			if err != nil {
				return nil, fmt.Errorf("cell (%d, %d): %w", x, y, err)
			}
			row = append(row, c)
		}
		frame[y] = row
	}
	return frame, nil
}

func parseCell(ch rune) (core.CellColor, error) {
	switch {
	case ch == '.' || ch == ' ':
		return core.Empty(), nil
	case ch == '#':
		return core.Wall(), nil
	case ch >= '0' && ch <= '9':
		return core.Value(int(ch - '0')), nil
	default:
		return core.CellColor{}, fmt.Errorf("unknown cell %q", ch)
	}
}

package tui

import (
	"sync"

	"github.com/vovakirdan/stacker/internal/core"
)

// Surface is the render.Surface of a Bubble Tea program. Present encodes
// the frame on the game loop goroutine and hands the text to the program;
// only the newest frame is kept if the program falls behind.
type Surface struct {
	size    core.Size
	encoder *FrameEncoder
	frames  chan string
	done    chan struct{}
	once    sync.Once
}

// NewSurface creates a surface for a terminal area of cols x rows cells.
// Each cell shows two pixels, so the viewport is cols x 2*rows pixels.
func NewSurface(cols, rows int, enc *FrameEncoder) *Surface {
	if enc == nil {
		enc = NewFrameEncoder(nil)
	}
	return &Surface{
		size:    core.Sz(max(cols, 0), max(rows, 0)*2),
		encoder: enc,
		frames:  make(chan string, 1),
		done:    make(chan struct{}),
	}
}

// Size implements render.Surface.
func (s *Surface) Size() core.Size {
	return s.size
}

// Present implements render.Surface. It never blocks: an unread frame is
// replaced by the new one.
func (s *Surface) Present(frame *core.Screen) error {
	text := s.encoder.Encode(frame)
	for {
		select {
		case s.frames <- text:
			return nil
		default:
		}
		// Drop the stale frame and retry
		select {
		case <-s.frames:
		default:
		}
	}
}

// Reset implements render.Surface. It tells the program the session is over.
func (s *Surface) Reset() {
	s.once.Do(func() { close(s.done) })
}

// Done is closed once the session has ended.
func (s *Surface) Done() <-chan struct{} {
	return s.done
}

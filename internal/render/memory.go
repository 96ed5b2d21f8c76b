package render

import (
	"github.com/vovakirdan/stacker/internal/core"
)

// Memory is an in-memory surface that keeps a copy of every presented frame.
type Memory struct {
	size    core.Size
	unit    core.Size
	frames  []*core.Screen
	resets  int
	Failure error // Returned by Present when set
}

// NewMemory creates a surface with the given viewport.
func NewMemory(w, h int) *Memory {
	return &Memory{size: core.Sz(w, h)}
}

// WithUnit makes the surface report a block unit hint.
func (m *Memory) WithUnit(u core.Size) *Memory {
	m.unit = u
	return m
}

// Size implements Surface.
func (m *Memory) Size() core.Size {
	return m.size
}

// BlockUnit implements UnitHinter. A zero unit leaves the layout default.
func (m *Memory) BlockUnit() core.Size {
	return m.unit
}

// Present implements Surface.
func (m *Memory) Present(frame *core.Screen) error {
	if m.Failure != nil {
		return m.Failure
	}
	m.frames = append(m.frames, frame.Clone())
	return nil
}

// Reset implements Surface.
func (m *Memory) Reset() {
	m.resets++
}

// Frames returns every presented frame in order.
func (m *Memory) Frames() []*core.Screen {
	return m.frames
}

// Last returns the most recent frame, or nil.
func (m *Memory) Last() *core.Screen {
	if len(m.frames) == 0 {
		return nil
	}
	return m.frames[len(m.frames)-1]
}

// Resets returns how many times Reset was called.
func (m *Memory) Resets() int {
	return m.resets
}

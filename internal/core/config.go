package core

import "time"

// SessionConfig describes one play-through: the logical board, the loop
// cadence and how the board is laid out on the surface.
type SessionConfig struct {
	BoardW     int           // Board width in columns
	BoardH     int           // Board height in rows
	TickPeriod time.Duration // Gravity tick period
	Layout     string        // "board" or "title"
	Textures   bool          // Draw texture-mapped blocks instead of flat colours
}

// DefaultSessionConfig returns the reference session: a 10x20 board with a
// 10ms tick, flat colours and the board-only layout.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		BoardW:     10,
		BoardH:     20,
		TickPeriod: 10 * time.Millisecond,
		Layout:     "board",
		Textures:   false,
	}
}

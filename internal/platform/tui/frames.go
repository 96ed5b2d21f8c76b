package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg carries an encoded frame from the game loop to the program.
type FrameMsg string

// SessionDoneMsg is sent once the game loop has reset the surface.
type SessionDoneMsg struct{}

// waitForFrame returns a Bubble Tea command that blocks until the surface
// has a new frame or the session is over. A frame presented just before the
// end is still delivered first.
func waitForFrame(s *Surface) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-s.frames:
			return FrameMsg(f)
		case <-s.done:
			select {
			case f := <-s.frames:
				return FrameMsg(f)
			default:
				return SessionDoneMsg{}
			}
		}
	}
}

package loop

import "github.com/vovakirdan/stacker/internal/core"

// Command is what an input event asks the engine to do.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdSlideLeft
	CmdSlideRight
	CmdSoftDrop
	CmdRotateAnticlockwise
	CmdRotateClockwise
	CmdHardDrop
)

func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdQuit:
		return "quit"
	case CmdSlideLeft:
		return "slide-left"
	case CmdSlideRight:
		return "slide-right"
	case CmdSoftDrop:
		return "soft-drop"
	case CmdRotateAnticlockwise:
		return "rotate-anticlockwise"
	case CmdRotateClockwise:
		return "rotate-clockwise"
	case CmdHardDrop:
		return "hard-drop"
	default:
		return "unknown"
	}
}

// Classify maps an event to a command. Rotation requires an exact modifier
// match: Up alone rotates anticlockwise, Up with only Shift rotates
// clockwise, any other combination does nothing.
func Classify(ev core.Event) Command {
	switch ev.Kind {
	case core.EventQuit:
		return CmdQuit
	case core.EventKeyDown:
	default:
		return CmdNone
	}

	switch ev.Key {
	case core.KeyEscape, core.KeyQ:
		return CmdQuit
	case core.KeyLeft, core.KeyA:
		return CmdSlideLeft
	case core.KeyRight, core.KeyD:
		return CmdSlideRight
	case core.KeyArrowDown, core.KeyS:
		return CmdSoftDrop
	case core.KeyUp, core.KeyW:
		switch ev.Mod {
		case core.ModNone:
			return CmdRotateAnticlockwise
		case core.ModShift:
			return CmdRotateClockwise
		}
		return CmdNone
	case core.KeySpace:
		return CmdHardDrop
	default:
		return CmdNone
	}
}

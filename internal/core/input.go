package core

// EventKind distinguishes the variants an input source can deliver.
type EventKind int

const (
	EventOther   EventKind = iota // Unrecognised event, always ignored
	EventQuit                     // Window closed, connection dropped, Ctrl+C
	EventKeyDown                  // A key was pressed
)

// Key is a named key, abstracted from the physical key codes of a backend.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyArrowDown
	KeyA
	KeyD
	KeyS
	KeyW
	KeyQ
	KeyEscape
	KeySpace
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyArrowDown:
		return "Down"
	case KeyA:
		return "A"
	case KeyD:
		return "D"
	case KeyS:
		return "S"
	case KeyW:
		return "W"
	case KeyQ:
		return "Q"
	case KeyEscape:
		return "Escape"
	case KeySpace:
		return "Space"
	default:
		return "Unknown"
	}
}

// Mod is a bitmask of modifier keys held during a key press.
type Mod uint8

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
)

// Event is one discrete input event.
type Event struct {
	Kind EventKind
	Key  Key
	Mod  Mod
}

// QuitEvent returns a quit event.
func QuitEvent() Event {
	return Event{Kind: EventQuit}
}

// KeyDown returns a key press without modifiers.
func KeyDown(k Key) Event {
	return Event{Kind: EventKeyDown, Key: k}
}

// KeyDownMod returns a key press with the given modifiers.
func KeyDownMod(k Key, m Mod) Event {
	return Event{Kind: EventKeyDown, Key: k, Mod: m}
}

// String returns a short description of the event.
func (e Event) String() string {
	switch e.Kind {
	case EventQuit:
		return "Quit"
	case EventKeyDown:
		s := "KeyDown(" + e.Key.String()
		if e.Mod&ModShift != 0 {
			s += "+Shift"
		}
		if e.Mod&ModCtrl != 0 {
			s += "+Ctrl"
		}
		if e.Mod&ModAlt != 0 {
			s += "+Alt"
		}
		return s + ")"
	default:
		return "Other"
	}
}

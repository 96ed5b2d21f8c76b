package tcellscreen

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/stacker/internal/core"
	"github.com/vovakirdan/stacker/internal/input"
)

// EventPoller is the part of tcell.Screen the input pump needs.
type EventPoller interface {
	// PollEvent blocks for the next event and returns nil once the screen
	// has been finalised.
	PollEvent() tcell.Event
}

// Pump forwards key events from p to q until p is finalised, then closes q.
// Resize events are dropped: the layout is fixed for the session.
func Pump(p EventPoller, q *input.Queue) {
	defer q.Close()

	for {
		ev := p.PollEvent()
		if ev == nil {
			return
		}
		if key, ok := ev.(*tcell.EventKey); ok {
			q.Push(KeyEvent(key))
		}
	}
}

// KeyEvent translates a tcell key event. Ctrl+C is a quit event; keys the
// game does not use become EventOther.
func KeyEvent(ev *tcell.EventKey) core.Event {
	return keyEvent(ev.Key(), ev.Rune(), ev.Modifiers())
}

var namedKeys = map[tcell.Key]core.Key{
	tcell.KeyLeft:   core.KeyLeft,
	tcell.KeyRight:  core.KeyRight,
	tcell.KeyUp:     core.KeyUp,
	tcell.KeyDown:   core.KeyArrowDown,
	tcell.KeyEscape: core.KeyEscape,
}

var runeKeys = map[rune]core.Key{
	'a': core.KeyA,
	'd': core.KeyD,
	's': core.KeyS,
	'w': core.KeyW,
	'q': core.KeyQ,
	' ': core.KeySpace,
}

func keyEvent(k tcell.Key, r rune, mods tcell.ModMask) core.Event {
	mod := modFrom(mods)

	switch k {
	case tcell.KeyCtrlC:
		return core.QuitEvent()
	case tcell.KeyRune:
		if unicode.IsUpper(r) {
			mod |= core.ModShift
			r = unicode.ToLower(r)
		}
		if key, ok := runeKeys[r]; ok {
			return core.KeyDownMod(key, mod)
		}
	default:
		if key, ok := namedKeys[k]; ok {
			return core.KeyDownMod(key, mod)
		}
	}
	return core.Event{Kind: core.EventOther}
}

func modFrom(m tcell.ModMask) core.Mod {
	var mod core.Mod
	if m&tcell.ModShift != 0 {
		mod |= core.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= core.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= core.ModAlt
	}
	return mod
}

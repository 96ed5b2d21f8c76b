package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stacker/internal/core"
)

// KeyMap translates Bubble Tea key messages to input events and describes
// the bindings for the help line. This centralizes key bindings and makes
// them testable.
type KeyMap struct {
	Left            key.Binding
	Right           key.Binding
	SoftDrop        key.Binding
	Rotate          key.Binding
	RotateClockwise key.Binding
	HardDrop        key.Binding
	Quit            key.Binding
	Interrupt       key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "rotate ↺"),
		),
		RotateClockwise: key.NewBinding(
			key.WithKeys("shift+up", "W"),
			key.WithHelp("⇧↑", "rotate ↻"),
		),
		HardDrop: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "drop"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Left, km.Right, km.SoftDrop, km.Rotate, km.RotateClockwise, km.HardDrop, km.Quit}
}

// FullHelp implements help.KeyMap.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Left, km.Right, km.SoftDrop},
		{km.Rotate, km.RotateClockwise, km.HardDrop},
		{km.Quit},
	}
}

// keyNames maps Bubble Tea key names, without modifiers, to named keys.
var keyNames = map[string]core.Key{
	"left":  core.KeyLeft,
	"right": core.KeyRight,
	"up":    core.KeyUp,
	"down":  core.KeyArrowDown,
	"a":     core.KeyA,
	"d":     core.KeyD,
	"s":     core.KeyS,
	"w":     core.KeyW,
	"q":     core.KeyQ,
	"esc":   core.KeyEscape,
	" ":     core.KeySpace,
	"space": core.KeySpace,
}

// Event translates a key message to an input event. Modifiers are kept so
// the loop can tell Up from Shift+Up from Ctrl+Up. Unknown keys become
// EventOther; Ctrl+C is a quit event.
func (km KeyMap) Event(msg tea.KeyMsg) core.Event {
	if key.Matches(msg, km.Interrupt) {
		return core.QuitEvent()
	}

	name := msg.String()
	var mod core.Mod

	for {
		switch {
		case strings.HasPrefix(name, "ctrl+"):
			mod |= core.ModCtrl
			name = strings.TrimPrefix(name, "ctrl+")
			continue
		case strings.HasPrefix(name, "alt+"):
			mod |= core.ModAlt
			name = strings.TrimPrefix(name, "alt+")
			continue
		case strings.HasPrefix(name, "shift+"):
			mod |= core.ModShift
			name = strings.TrimPrefix(name, "shift+")
			continue
		}
		break
	}

	// Shifted letters arrive as upper-case runes
	if r, size := utf8.DecodeRuneInString(name); size == len(name) && unicode.IsUpper(r) {
		mod |= core.ModShift
		name = string(unicode.ToLower(r))
	}

	k, ok := keyNames[name]
	if !ok {
		return core.Event{Kind: core.EventOther}
	}
	return core.KeyDownMod(k, mod)
}

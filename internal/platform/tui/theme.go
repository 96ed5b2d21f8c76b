package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles of the text drawn around the board.
type Theme struct {
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
}

// DefaultTheme returns the default theme for r. A nil r uses the default
// renderer; SSH sessions pass the renderer of their connection.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		HelpKey:       r.NewStyle().Foreground(lipgloss.Color("245")).Bold(true), // Medium gray
		HelpDesc:      r.NewStyle().Foreground(lipgloss.Color("240")),            // Dim gray
		HelpSeparator: r.NewStyle().Foreground(lipgloss.Color("238")),            // Dark gray
	}
}

// apply sets the help styles of h.
func (t Theme) apply(h *help.Model) {
	h.Styles.ShortKey = t.HelpKey
	h.Styles.ShortDesc = t.HelpDesc
	h.Styles.ShortSeparator = t.HelpSeparator
	h.Styles.FullKey = t.HelpKey
	h.Styles.FullDesc = t.HelpDesc
	h.Styles.FullSeparator = t.HelpSeparator
	h.Styles.Ellipsis = t.HelpSeparator
}

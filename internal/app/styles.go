package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/onecode/onecode/internal/theme"
)

// chrome holds the styles of the window around the editors. It is derived
// from the active theme on every frame.
type chrome struct {
	tabBar      lipgloss.Style
	tab         lipgloss.Style
	activeTab   lipgloss.Style
	statusBar   lipgloss.Style
	statusError lipgloss.Style
	statusWarn  lipgloss.Style
	bar         lipgloss.Style
	barLabel    lipgloss.Style
	muted       lipgloss.Style
	dialog      lipgloss.Style
	body        lipgloss.Style
}

func newChrome(t theme.Theme) chrome {
	sidebar := t.Lip(theme.RoleSidebar)
	fg := t.Lip(theme.RoleForeground)
	return chrome{
		tabBar:      lipgloss.NewStyle().Background(sidebar),
		tab:         lipgloss.NewStyle().Background(sidebar).Foreground(t.Lip(theme.RoleLineNumber)).Padding(0, 1),
		activeTab:   lipgloss.NewStyle().Background(t.Lip(theme.RoleBackground)).Foreground(fg).Bold(true).Padding(0, 1),
		statusBar:   lipgloss.NewStyle().Background(t.Lip(theme.RoleSelection)).Foreground(fg),
		statusError: lipgloss.NewStyle().Background(t.Lip(theme.RoleSelection)).Foreground(t.Lip(theme.RoleError)).Bold(true),
		statusWarn:  lipgloss.NewStyle().Background(t.Lip(theme.RoleSelection)).Foreground(t.Lip(theme.RoleWarning)),
		bar:         lipgloss.NewStyle().Background(sidebar).Foreground(fg),
		barLabel:    lipgloss.NewStyle().Background(sidebar).Foreground(t.Lip(theme.RoleKeyword)).Bold(true),
		muted:       lipgloss.NewStyle().Background(sidebar).Foreground(t.Lip(theme.RoleLineNumber)),
		dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Lip(theme.RoleBorder)).
			Background(t.Lip(theme.RoleBackground)).
			Foreground(fg).
			Padding(1, 2),
		body: lipgloss.NewStyle().Background(t.Lip(theme.RoleBackground)).Foreground(fg),
	}
}

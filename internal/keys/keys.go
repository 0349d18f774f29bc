// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// EditorKeyMap defines the keybindings handled inside an editor view.
type EditorKeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	DocStart key.Binding
	DocEnd   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Selection
	SelectUp    key.Binding
	SelectDown  key.Binding
	SelectLeft  key.Binding
	SelectRight key.Binding
	SelectHome  key.Binding
	SelectEnd   key.Binding
	SelectAll   key.Binding

	// Editing
	Newline       key.Binding
	Tab           key.Binding
	Backspace     key.Binding
	Delete        key.Binding
	ToggleComment key.Binding
	DuplicateLine key.Binding
	DeleteLine    key.Binding
}

// DefaultEditorKeyMap returns the default editor keybindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "line up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "line down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "char left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "char right"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "line start"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "line end"),
		),
		DocStart: key.NewBinding(
			key.WithKeys("ctrl+home"),
			key.WithHelp("ctrl+home", "document start"),
		),
		DocEnd: key.NewBinding(
			key.WithKeys("ctrl+end"),
			key.WithHelp("ctrl+end", "document end"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "page down"),
		),

		SelectUp: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", "select up"),
		),
		SelectDown: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", "select down"),
		),
		SelectLeft: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("shift+←", "select left"),
		),
		SelectRight: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("shift+→", "select right"),
		),
		SelectHome: key.NewBinding(
			key.WithKeys("shift+home"),
			key.WithHelp("shift+home", "select to line start"),
		),
		SelectEnd: key.NewBinding(
			key.WithKeys("shift+end"),
			key.WithHelp("shift+end", "select to line end"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select all"),
		),

		Newline: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "newline with indent"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "indent"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete left"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("delete", "delete right"),
		),
		// terminals report ctrl+/ as ctrl+_
		ToggleComment: key.NewBinding(
			key.WithKeys("ctrl+_", "ctrl+/"),
			key.WithHelp("ctrl+/", "toggle comment"),
		),
		DuplicateLine: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "duplicate line"),
		),
		DeleteLine: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "delete line"),
		),
	}
}

// AppKeyMap defines the keybindings of the editor window.
type AppKeyMap struct {
	// Files
	New      key.Binding
	Save     key.Binding
	SaveAll  key.Binding
	CloseTab key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding

	// Search
	Find       key.Binding
	FindNext   key.Binding
	FindPrev   key.Binding
	ToggleCase key.Binding

	// View
	ToggleTheme   key.Binding
	ToggleMinimap key.Binding
	ToggleWrap    key.Binding

	// General
	Help   key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultAppKeyMap returns the default window keybindings.
func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		New: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new file"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		SaveAll: key.NewBinding(
			key.WithKeys("alt+s"),
			key.WithHelp("alt+s", "save all"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "close tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("ctrl+pgdown", "alt+right"),
			key.WithHelp("alt+→", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("ctrl+pgup", "alt+left"),
			key.WithHelp("alt+←", "previous tab"),
		),

		Find: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "find"),
		),
		FindNext: key.NewBinding(
			key.WithKeys("f3", "enter"),
			key.WithHelp("f3/enter", "next match"),
		),
		// terminals report shift+f3 as f15
		FindPrev: key.NewBinding(
			key.WithKeys("f15", "shift+tab"),
			key.WithHelp("shift+f3", "previous match"),
		),
		ToggleCase: key.NewBinding(
			key.WithKeys("alt+c"),
			key.WithHelp("alt+c", "match case"),
		),

		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle theme"),
		),
		ToggleMinimap: key.NewBinding(
			key.WithKeys("alt+m"),
			key.WithHelp("alt+m", "toggle minimap"),
		),
		ToggleWrap: key.NewBinding(
			key.WithKeys("alt+z"),
			key.WithHelp("alt+z", "toggle word wrap"),
		),

		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close bar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the status bar hint.
func (k AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Save, k.Find, k.Quit}
}

// FullHelp returns keybindings for the help overlay, grouped by section.
func (k AppKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Save, k.SaveAll, k.CloseTab, k.NextTab, k.PrevTab}, // Files
		{k.Find, k.FindNext, k.FindPrev, k.ToggleCase},               // Search
		{k.ToggleTheme, k.ToggleMinimap, k.ToggleWrap},               // View
		{k.Help, k.Escape, k.Quit},                                   // General
	}
}

// FullHelp returns the editing keybindings for the help overlay.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Home, k.End, k.DocStart, k.DocEnd, k.PageUp, k.PageDown},
		{k.SelectUp, k.SelectDown, k.SelectLeft, k.SelectRight, k.SelectHome, k.SelectEnd, k.SelectAll},
		{k.Newline, k.Tab, k.Backspace, k.Delete, k.ToggleComment, k.DuplicateLine, k.DeleteLine},
	}
}

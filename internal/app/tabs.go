package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rivo/uniseg"

	"github.com/onecode/onecode/internal/editor"
)

const (
	zoneTabPrefix = "tab:"
	maxTitleWidth = 24
	modifiedMark  = "● "
)

// tab is one open document.
type tab struct {
	ed       *editor.Model
	untitled int // number shown for a document without a path
}

// name is the file name, or "Untitled-N".
func (t tab) name() string {
	if p := t.ed.Path(); p != "" {
		return filepath.Base(p)
	}
	return fmt.Sprintf("Untitled-%d", t.untitled)
}

// title is the tab label: the name, prefixed with a dot when modified.
func (t tab) title() string {
	name := t.name()
	if uniseg.StringWidth(name) > maxTitleWidth {
		name = ansi.Truncate(name, maxTitleWidth, "…")
	}
	if t.ed.Modified() {
		return modifiedMark + name
	}
	return name
}

func tabZoneID(i int) string {
	return fmt.Sprintf("%s%d", zoneTabPrefix, i)
}

// renderTabs draws the tab bar. Each tab is a click zone.
func (m Model) renderTabs(c chrome) string {
	var b strings.Builder
	for i, t := range m.tabs {
		style := c.tab
		if i == m.active {
			style = c.activeTab
		}
		b.WriteString(zone.Mark(tabZoneID(i), style.Render(t.title())))
	}
	bar := ansi.Truncate(b.String(), m.width, "")
	if pad := m.width - ansi.StringWidth(bar); pad > 0 {
		bar += c.tabBar.Render(strings.Repeat(" ", pad))
	}
	return bar
}

// tabAt returns the tab under a mouse event.
func (m Model) tabAt(inBounds func(id string) bool) (int, bool) {
	for i := range m.tabs {
		if inBounds(tabZoneID(i)) {
			return i, true
		}
	}
	return 0, false
}

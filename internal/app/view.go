package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/onecode/onecode/internal/search"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	t := m.themes.Active()
	c := newChrome(t)
	h := m.bodyHeight()
	ed := m.activeEditor()

	var body string
	switch {
	case m.confirm != nil:
		body = m.confirm.View(c, m.width, h)
	case m.showing:
		body = m.help.View(c, t, m.width, h)
	case ed != nil:
		body = ed.View()
	default:
		body = lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center,
			c.body.Render("No open files. Press ctrl+n for a new file."),
			lipgloss.WithWhitespaceBackground(c.body.GetBackground()))
	}

	rows := []string{m.renderTabs(c), body}
	if m.search.open {
		rows = append(rows, m.search.View(c, m.width, m.searchEngine()))
	}
	if m.saveAs != nil {
		rows = append(rows, m.saveAsView(c))
	}

	st := m.status
	if ed != nil {
		st.language = ed.Language().String()
	}
	rows = append(rows, st.View(c, m.width))

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) searchEngine() *search.Engine {
	if ed := m.activeEditor(); ed != nil {
		return ed.SearchEngine()
	}
	return nil
}

func (m Model) saveAsView(c chrome) string {
	in := m.saveAs.input
	in.Width = max(1, m.width-ansi.StringWidth(in.Prompt)-1)
	in.PromptStyle = c.barLabel
	in.TextStyle = c.bar
	in.PlaceholderStyle = c.muted
	line := in.View()
	if pad := m.width - ansi.StringWidth(line); pad > 0 {
		line += c.bar.Render(strings.Repeat(" ", pad))
	}
	return ansi.Truncate(line, m.width, "")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

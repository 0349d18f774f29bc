package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/onecode/onecode/internal/keys"
	"github.com/onecode/onecode/internal/log"
	"github.com/onecode/onecode/internal/theme"
)

var helpGroups = []string{"Files", "Search", "View", "General"}

// helpMarkdown lists the shortcuts as markdown tables.
func helpMarkdown(app keys.AppKeyMap, ed keys.EditorKeyMap) string {
	var b strings.Builder
	b.WriteString("# Keyboard shortcuts\n\n")
	for i, group := range app.FullHelp() {
		title := "Other"
		if i < len(helpGroups) {
			title = helpGroups[i]
		}
		writeTable(&b, title, group)
	}
	var editing []key.Binding
	for _, group := range ed.FullHelp() {
		editing = append(editing, group...)
	}
	writeTable(&b, "Editing", editing)
	return b.String()
}

func writeTable(b *strings.Builder, title string, bindings []key.Binding) {
	fmt.Fprintf(b, "## %s\n\n| Key | Action |\n|---|---|\n", title)
	for _, kb := range bindings {
		h := kb.Help()
		if h.Key == "" {
			continue
		}
		fmt.Fprintf(b, "| `%s` | %s |\n", h.Key, h.Desc)
	}
	b.WriteString("\n")
}

// helpView renders the shortcut overlay. Rendering is cached per theme
// and width.
type helpView struct {
	markdown string
	theme    string
	width    int
	rendered string
}

func newHelpView() *helpView {
	return &helpView{markdown: helpMarkdown(keys.DefaultAppKeyMap(), keys.DefaultEditorKeyMap())}
}

func (h *helpView) render(t theme.Theme, width int) string {
	if h.rendered != "" && h.theme == t.Name() && h.width == width {
		return h.rendered
	}
	style := "dark"
	if t.Name() == theme.Light.Name() {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(20, width)),
	)
	out := ""
	if err == nil {
		out, err = r.Render(h.markdown)
	}
	if err != nil {
		log.ErrorErr(log.CatApp, "render help", err)
		out = h.markdown
	}
	h.rendered, h.theme, h.width = out, t.Name(), width
	return out
}

// View renders the overlay into a width x height box.
func (h *helpView) View(c chrome, t theme.Theme, width, height int) string {
	body := h.render(t, width-4)
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return c.body.Width(width).Height(height).MaxHeight(height).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

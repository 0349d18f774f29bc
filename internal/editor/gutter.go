package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/onecode/onecode/internal/theme"
)

// gutterMargin is the padding around the line numbers, one cell per side.
const gutterMargin = 2

// GutterWidth returns the width of the line-number gutter for a document
// of lineCount lines. It only grows when the count gains a digit.
func GutterWidth(lineCount int) int {
	digits := len(strconv.Itoa(max(1, lineCount)))
	return gutterMargin + runewidth.RuneWidth('9')*digits
}

// gutterStyles holds the two line-number looks of one theme.
type gutterStyles struct {
	normal  lipgloss.Style
	current lipgloss.Style
}

func newGutterStyles(t theme.Theme) gutterStyles {
	base := lipgloss.NewStyle().Background(t.Lip(theme.RoleSidebar))
	return gutterStyles{
		normal:  base.Foreground(t.Lip(theme.RoleLineNumber)),
		current: base.Foreground(t.Lip(theme.RoleForeground)).Bold(true),
	}
}

// renderGutter draws the gutter cell of one screen row. line is the
// 0-indexed document line, or -1 for rows past the end of the document.
// Continuation rows of a wrapped line are blank.
func (s gutterStyles) renderGutter(width, line int, first, isCursorLine bool) string {
	if line < 0 || !first {
		return s.normal.Render(strings.Repeat(" ", width))
	}
	text := fmt.Sprintf("%*d ", width-1, line+1)
	if isCursorLine {
		return s.current.Render(text)
	}
	return s.normal.Render(text)
}

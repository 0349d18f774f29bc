package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

type statusLevel int

const (
	levelInfo statusLevel = iota
	levelWarn
	levelError
)

// status is the bottom bar state. message is a transient notice shown on
// the left; the cursor position and language sit on the right.
type status struct {
	message  string
	level    statusLevel
	line     int
	col      int
	language string
}

func (s status) View(c chrome, width int) string {
	right := fmt.Sprintf(" Ln %d, Col %d | UTF-8 | %s ", s.line, s.col, s.language)
	if s.language == "" {
		right = " "
	}
	room := width - ansi.StringWidth(right)
	if room < 0 {
		return c.statusBar.Render(ansi.Truncate(right, width, ""))
	}

	msg := ""
	if s.message != "" {
		msg = truncate.StringWithTail(" "+s.message, uint(room), "…")
	}
	style := c.statusBar
	switch s.level {
	case levelWarn:
		style = c.statusWarn
	case levelError:
		style = c.statusError
	}
	pad := room - ansi.StringWidth(msg)
	return style.Render(msg) + c.statusBar.Render(strings.Repeat(" ", pad)+right)
}

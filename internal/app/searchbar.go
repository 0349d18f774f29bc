package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/onecode/onecode/internal/search"
)

// searchBar is the find input shown above the status bar.
type searchBar struct {
	input         textinput.Model
	open          bool
	caseSensitive bool
}

func newSearchBar() searchBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Find"
	ti.CharLimit = 256
	return searchBar{input: ti}
}

// Open shows the bar and focuses the input. initial, when set, replaces
// the query.
func (s *searchBar) Open(initial string) tea.Cmd {
	s.open = true
	if initial != "" {
		s.input.SetValue(initial)
		s.input.CursorEnd()
	}
	return s.input.Focus()
}

func (s *searchBar) Close() {
	s.open = false
	s.input.Blur()
}

func (s searchBar) Query() string {
	return s.input.Value()
}

// Update forwards a key to the input. It reports whether the query text
// changed.
func (s *searchBar) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s.input.Value() != before, cmd
}

// counter is the "3 of 12" label for the engine state.
func counter(e *search.Engine) string {
	if !e.Active() {
		return ""
	}
	n := len(e.Matches())
	if n == 0 {
		return "No results"
	}
	if i, ok := e.Current(); ok {
		return fmt.Sprintf("%d of %d", i+1, n)
	}
	return fmt.Sprintf("%d results", n)
}

// View renders the bar at width. e may be nil when no tab is open.
func (s searchBar) View(c chrome, width int, e *search.Engine) string {
	label := c.barLabel.Render(" Find: ")
	caseFlag := c.muted.Render(" Aa ")
	if s.caseSensitive {
		caseFlag = c.barLabel.Render(" Aa ")
	}
	count := ""
	if e != nil {
		count = counter(e)
	}
	right := c.muted.Render(" "+count+" ") + caseFlag

	s.input.Width = max(1, width-ansi.StringWidth(label)-ansi.StringWidth(right)-1)
	s.input.PromptStyle = c.bar
	s.input.TextStyle = c.bar
	s.input.PlaceholderStyle = c.muted

	left := label + s.input.View()
	pad := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if pad < 0 {
		return ansi.Truncate(left+right, width, "")
	}
	return left + c.bar.Render(strings.Repeat(" ", pad)) + right
}

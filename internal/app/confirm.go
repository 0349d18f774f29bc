package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// confirmation asks what to do with unsaved changes before a tab closes
// or the program quits.
type confirmation struct {
	tab  int // tab to close; quitting when negative
	text string
}

func confirmClose(i int, name string) *confirmation {
	return &confirmation{
		tab:  i,
		text: fmt.Sprintf("Do you want to save the changes you made to %s?", name),
	}
}

func confirmQuit(unsaved int) *confirmation {
	noun := "file has"
	if unsaved != 1 {
		noun = "files have"
	}
	return &confirmation{
		tab:  -1,
		text: fmt.Sprintf("%d %s unsaved changes. Save before quitting?", unsaved, noun),
	}
}

func (c *confirmation) quitting() bool {
	return c.tab < 0
}

// View renders the dialog centered in a width x height area.
func (c *confirmation) View(ch chrome, width, height int) string {
	inner := min(56, max(20, width-8))
	body := wordwrap.String(c.text, inner) + "\n\n" + "[s] Save   [d] Don't save   [c] Cancel"
	box := ch.dialog.Width(inner + 4).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(ch.body.GetBackground()))
}

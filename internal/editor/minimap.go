package editor

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/onecode/onecode/internal/theme"
)

const (
	// MinimapWidth is the minimap's width in cells, excluding its border.
	MinimapWidth = 10

	// DefaultMinimapDelay is the quiet period before the minimap redraws.
	DefaultMinimapDelay = 100 * time.Millisecond

	minimapLinesPerCell = 4 // braille dot rows per cell
	minimapCharsPerDot  = 4 // source columns folded into one dot column
)

// brailleDots[row][col] is the dot bit for a position in a braille cell.
var brailleDots = [minimapLinesPerCell][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// MinimapScroll mirrors the primary view's scroll position onto the
// minimap: primaryScroll / primaryMax * minimapMax. A primary view that
// cannot scroll maps to 0.
func MinimapScroll(primaryScroll, primaryMax, minimapMax int) int {
	if primaryMax <= 0 || minimapMax <= 0 {
		return 0
	}
	primaryScroll = max(min(primaryScroll, primaryMax), 0)
	return primaryScroll * minimapMax / primaryMax
}

// minimap is a snapshot of the document drawn in braille, four lines per
// row. It only changes when rebuilt.
type minimap struct {
	rows []string
}

func buildMinimap(lines []string, tabSize int) minimap {
	n := (len(lines) + minimapLinesPerCell - 1) / minimapLinesPerCell
	mm := minimap{rows: make([]string, n)}
	dotCols := MinimapWidth * 2

	for r := range n {
		cells := make([]rune, MinimapWidth)
		for dy := range minimapLinesPerCell {
			i := r*minimapLinesPerCell + dy
			if i >= len(lines) {
				break
			}
			for _, c := range layoutLine(lines[i], tabSize) {
				if strings.TrimSpace(c.text) == "" {
					continue
				}
				dx := c.x / minimapCharsPerDot
				if dx >= dotCols {
					break
				}
				cells[dx/2] |= brailleDots[dy][dx%2]
			}
		}
		for i := range cells {
			cells[i] += 0x2800
		}
		mm.rows[r] = string(cells)
	}
	return mm
}

// lines returns the document lines covered by minimap row r.
func (mm minimap) lines(r int) (first, last int) {
	first = r * minimapLinesPerCell
	return first, first + minimapLinesPerCell - 1
}

type minimapStyles struct {
	border lipgloss.Style
	normal lipgloss.Style
	band   lipgloss.Style
}

func newMinimapStyles(t theme.Theme) minimapStyles {
	fg := t.Lip(theme.RoleLineNumber)
	return minimapStyles{
		border: lipgloss.NewStyle().Foreground(t.Lip(theme.RoleBorder)).Background(t.Lip(theme.RoleSidebar)),
		normal: lipgloss.NewStyle().Foreground(fg).Background(t.Lip(theme.RoleSidebar)),
		band:   lipgloss.NewStyle().Foreground(t.Lip(theme.RoleForeground)).Background(t.Lip(theme.RoleCurrentLine)),
	}
}

// render draws height minimap rows starting at row offset. Rows covering
// a line in [firstVisible, lastVisible] are drawn as the viewport band.
func (mm minimap) render(s minimapStyles, offset, height, firstVisible, lastVisible int) []string {
	out := make([]string, height)
	blank := strings.Repeat(" ", MinimapWidth)
	for i := range height {
		r := offset + i
		text := blank
		if r < len(mm.rows) {
			text = mm.rows[r]
		}
		style := s.normal
		if first, last := mm.lines(r); r < len(mm.rows) && first <= lastVisible && last >= firstVisible {
			style = s.band
		}
		out[i] = s.border.Render("│") + style.Render(text)
	}
	return out
}

// MinimapRefreshMsg is the tick that redraws an editor's minimap.
type MinimapRefreshMsg struct {
	ID  string
	Seq int
}

// Debouncer coalesces minimap refresh requests. Every Schedule supersedes
// the previous one, so only the tick of the latest request fires.
type Debouncer struct {
	id      string
	delay   time.Duration
	seq     int
	pending bool
}

// NewDebouncer creates a debouncer whose ticks are tagged with id.
func NewDebouncer(id string, delay time.Duration) *Debouncer {
	return &Debouncer{id: id, delay: delay}
}

// Schedule starts a new quiet period and returns its tick.
func (d *Debouncer) Schedule() tea.Cmd {
	d.seq++
	d.pending = true
	seq, id := d.seq, d.id
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return MinimapRefreshMsg{ID: id, Seq: seq}
	})
}

// Fire reports whether msg is the tick of the latest request. A tick is
// accepted at most once.
func (d *Debouncer) Fire(msg MinimapRefreshMsg) bool {
	if msg.ID != d.id || msg.Seq != d.seq || !d.pending {
		return false
	}
	d.pending = false
	return true
}

// Pending reports whether a refresh is scheduled and has not fired.
func (d *Debouncer) Pending() bool {
	return d.pending
}

package editor

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/onecode/onecode/internal/search"
	"github.com/onecode/onecode/internal/syntax"
	"github.com/onecode/onecode/internal/theme"
)

// displayRow is one screen row of text: a whole line, or one wrapped
// segment of it.
type displayRow struct {
	line  int
	seg   segment
	first bool // first row of its line
	last  bool // last row of its line
}

func (m *Model) gutterWidth() int {
	if !m.cfg.ShowLineNumbers {
		return 0
	}
	return GutterWidth(m.doc.LineCount())
}

func (m *Model) minimapWidth() int {
	if !m.cfg.ShowMinimap {
		return 0
	}
	return MinimapWidth + 1
}

// textWidth is the width left for text once gutter and minimap are placed.
func (m *Model) textWidth() int {
	return max(m.width-m.gutterWidth()-m.minimapWidth(), 1)
}

// layout maps every document line to screen rows.
func (m *Model) layout() []displayRow {
	n := m.doc.LineCount()
	rows := make([]displayRow, 0, n)
	for i := range n {
		line := m.doc.LineAt(i)
		if !m.cfg.WordWrap {
			rows = append(rows, displayRow{line: i, seg: segment{0, m.doc.LineLen(i)}, first: true, last: true})
			continue
		}
		segs := wrapCells(line, layoutLine(line, m.cfg.TabSize), m.textWidth())
		for j, s := range segs {
			rows = append(rows, displayRow{line: i, seg: s, first: j == 0, last: j == len(segs)-1})
		}
	}
	return rows
}

// cursorRow returns the index of the row holding the cursor.
func cursorRow(rows []displayRow, line, col int) int {
	for i, r := range rows {
		if r.line != line {
			continue
		}
		if col < r.seg.end || r.last {
			return i
		}
	}
	return 0
}

// ensureCursorVisible scrolls the minimum amount that brings the cursor
// on screen.
func (m *Model) ensureCursorVisible() {
	if m.height <= 0 {
		return
	}
	rows := m.layout()
	c := m.doc.Cursor()
	r := cursorRow(rows, c.Line, c.Col)
	if r < m.top {
		m.top = r
	}
	if r >= m.top+m.height {
		m.top = r - m.height + 1
	}
	m.top = max(min(m.top, len(rows)-1), 0)

	if m.cfg.WordWrap {
		m.left = 0
		return
	}
	x := cursorX(layoutLine(m.doc.LineAt(c.Line), m.cfg.TabSize), c.Col)
	tw := m.textWidth()
	if x < m.left {
		m.left = x
	}
	if x >= m.left+tw {
		m.left = x - tw + 1
	}
}

// cellStyle is the composed look of one text cell.
type cellStyle struct {
	fg, bg       string
	bold, italic bool
	reverse      bool
}

// lineOverlay marks which rune columns of a line fall in each overlay.
type lineOverlay struct {
	current   bool
	match     []bool
	selection []bool
	cursor    int // rune column of the cursor, -1 when not on this line
}

// View renders the editor.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	rows := m.layout()
	top := max(min(m.top, len(rows)-1), 0)
	visible := rows[top:min(top+m.height, len(rows))]

	gw := m.gutterWidth()
	tw := m.textWidth()
	cur := m.doc.Cursor()

	var mm []string
	if m.cfg.ShowMinimap {
		firstVisible, lastVisible := visible[0].line, visible[len(visible)-1].line
		primaryMax := max(len(rows)-m.height, 0)
		minimapMax := max(len(m.minimap.rows)-m.height, 0)
		off := MinimapScroll(top, primaryMax, minimapMax)
		mm = m.minimap.render(m.mmStyle, off, m.height, firstVisible, lastVisible)
	}

	r := &renderer{
		m:      m,
		styles: make(map[cellStyle]lipgloss.Style),
	}
	offset := m.doc.LineStart(visible[0].line)
	lastLine := -1
	var (
		cells []cell
		toks  []syntax.Token
		ov    lineOverlay
	)

	out := make([]string, 0, m.height)
	for i := range m.height {
		var b strings.Builder
		if i >= len(visible) {
			if gw > 0 {
				b.WriteString(m.gutter.renderGutter(gw, -1, false, false))
			}
			b.WriteString(r.fill(tw, false))
		} else {
			row := visible[i]
			if row.line != lastLine {
				if lastLine >= 0 {
					offset += m.doc.LineLen(lastLine) + 1
				}
				lastLine = row.line
				text := m.doc.LineAt(row.line)
				cells = layoutLine(text, m.cfg.TabSize)
				toks = m.hl.Tokens(row.line, text)
				ov = m.overlay(row.line, offset, len(cells))
			}
			if gw > 0 {
				b.WriteString(m.gutter.renderGutter(gw, row.line, row.first, row.line == cur.Line))
			}
			b.WriteString(r.row(row, cells, toks, ov, tw))
		}
		if mm != nil {
			b.WriteString(mm[i])
		}
		out = append(out, b.String())
	}
	return strings.Join(out, "\n")
}

// overlay collects the current-line, match, selection and cursor layers of
// a line starting at offset with n runes.
func (m *Model) overlay(line, offset, n int) lineOverlay {
	ov := lineOverlay{cursor: -1}
	c := m.doc.Cursor()
	if line == c.Line {
		ov.current = true
		if m.focused {
			ov.cursor = c.Col
		}
	}

	end := offset + n
	matches := m.search.Matches()
	i, _ := slices.BinarySearchFunc(matches, offset, func(mt search.Match, off int) int {
		if mt.End <= off {
			return -1
		}
		return 1
	})
	for ; i < len(matches) && matches[i].Start < end; i++ {
		if ov.match == nil {
			ov.match = make([]bool, n)
		}
		for o := max(matches[i].Start, offset); o < min(matches[i].End, end); o++ {
			ov.match[o-offset] = true
		}
	}

	if m.doc.HasSelection() {
		sel, _ := m.doc.Selection()
		s, e := sel.Bounds()
		if s < end && e > offset {
			ov.selection = make([]bool, n)
			for o := max(s, offset); o < min(e, end); o++ {
				ov.selection[o-offset] = true
			}
		}
	}
	return ov
}

// renderer draws text rows, batching runs of equally styled cells.
type renderer struct {
	m      *Model
	styles map[cellStyle]lipgloss.Style
}

func (r *renderer) style(cs cellStyle) lipgloss.Style {
	if st, ok := r.styles[cs]; ok {
		return st
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(cs.fg)).
		Background(lipgloss.Color(cs.bg)).
		Bold(cs.bold).
		Italic(cs.italic).
		Reverse(cs.reverse)
	r.styles[cs] = st
	return st
}

// fill pads width cells with the line background.
func (r *renderer) fill(width int, current bool) string {
	if width <= 0 {
		return ""
	}
	bg := theme.RoleBackground
	if current {
		bg = theme.RoleCurrentLine
	}
	return r.style(cellStyle{fg: r.m.theme.Color(theme.RoleForeground), bg: r.m.theme.Color(bg)}).
		Render(strings.Repeat(" ", width))
}

// base returns the style of column col before overlays: the token color
// over the default foreground. toks are consumed in order.
func (r *renderer) base(c cell, toks *[]syntax.Token) cellStyle {
	t := r.m.theme
	cs := cellStyle{fg: t.Color(theme.RoleForeground), bg: t.Color(theme.RoleBackground)}
	for len(*toks) > 0 && (*toks)[0].End() <= c.byte {
		*toks = (*toks)[1:]
	}
	if len(*toks) > 0 && (*toks)[0].Start <= c.byte {
		if s, ok := r.m.styles.Resolve((*toks)[0].Kind); ok {
			if s.Foreground != "" {
				cs.fg = s.Foreground
			}
			cs.bold, cs.italic = s.Bold, s.Italic
		}
	}
	return cs
}

// compose layers the overlays over a base style: current line at the
// bottom, then matches, then the selection, with the cursor on top.
func (r *renderer) compose(cs cellStyle, col int, ov lineOverlay) cellStyle {
	t := r.m.theme
	if ov.current {
		cs.bg = t.Color(theme.RoleCurrentLine)
	}
	if ov.match != nil && col < len(ov.match) && ov.match[col] {
		cs.bg = t.Color(theme.RoleMatch)
	}
	if ov.selection != nil && col < len(ov.selection) && ov.selection[col] {
		cs.bg = t.Color(theme.RoleSelection)
	}
	if col == ov.cursor {
		cs.reverse = true
	}
	return cs
}

// row draws one screen row of text, width cells wide.
func (r *renderer) row(row displayRow, cells []cell, toks []syntax.Token, ov lineOverlay, width int) string {
	left := 0
	if !r.m.cfg.WordWrap {
		left = r.m.left
	}
	origin := 0
	if row.seg.start < len(cells) {
		origin = cells[row.seg.start].x
	}

	var (
		b     strings.Builder
		run   strings.Builder
		runCS cellStyle
		used  int
	)
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(r.style(runCS).Render(run.String()))
			run.Reset()
		}
	}
	emit := func(cs cellStyle, text string, w int) {
		if run.Len() > 0 && cs != runCS {
			flush()
		}
		runCS = cs
		run.WriteString(text)
		used += w
	}

	for col := row.seg.start; col < row.seg.end; col++ {
		c := cells[col]
		x := c.x - origin - left
		if x+c.width <= 0 {
			continue
		}
		if x >= width {
			break
		}
		cs := r.compose(r.base(c, &toks), col, ov)
		text := c.text
		if x < 0 {
			// wide cell cut by the left edge
			text = strings.Repeat(" ", x+c.width)
		}
		emit(cs, text, lipgloss.Width(text))
	}

	// cursor after the last character
	if row.last && ov.cursor == len(cells) {
		x := lineWidth(cells) - origin - left
		if x >= 0 && x < width {
			cs := r.compose(cellStyle{fg: r.m.theme.Color(theme.RoleForeground), bg: r.m.theme.Color(theme.RoleBackground)}, ov.cursor, ov)
			emit(cs, " ", 1)
		}
	}
	flush()

	line := ansi.Truncate(b.String(), width, "")
	return line + r.fill(width-min(used, width), ov.current)
}

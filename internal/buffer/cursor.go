package buffer

import (
	"strings"
	"unicode/utf8"
)

// Cursor returns the cursor position.
func (d *Document) Cursor() Position {
	return d.cursor
}

// CursorOffset returns the cursor as an absolute offset.
func (d *Document) CursorOffset() int {
	return d.LineStart(d.cursor.Line) + d.cursor.Col
}

// SetCursor moves the cursor, clamping line and column into the document.
// It does not touch the selection.
func (d *Document) SetCursor(line, col int) {
	line = max(min(line, len(d.lines)-1), 0)
	col = max(min(col, utf8.RuneCountInString(d.lines[line])), 0)
	d.cursor = Position{Line: line, Col: col}
	d.goal = -1
}

// SetCursorOffset moves the cursor to offset, clamped to [0, Len()].
func (d *Document) SetCursorOffset(offset int) {
	d.setCursorOffset(max(min(offset, d.Len()), 0))
}

func (d *Document) setCursorOffset(offset int) {
	d.cursor = d.OffsetToLineCol(offset)
	d.goal = -1
}

// Selection returns the current selection, if any.
func (d *Document) Selection() (Selection, bool) {
	if d.selection == nil {
		return Selection{}, false
	}
	return *d.selection, true
}

// HasSelection reports whether a non-empty selection is active.
func (d *Document) HasSelection() bool {
	return d.selection != nil && !d.selection.Empty()
}

// SetSelection selects from anchor to active (both clamped) and puts the
// cursor on the active end.
func (d *Document) SetSelection(anchor, active int) {
	n := d.Len()
	anchor = max(min(anchor, n), 0)
	active = max(min(active, n), 0)
	d.selection = &Selection{Anchor: anchor, Active: active}
	d.setCursorOffset(active)
}

// ClearSelection drops the selection and leaves the cursor where it is.
func (d *Document) ClearSelection() {
	d.selection = nil
}

// SelectedText returns the selected text, or "" without a selection.
func (d *Document) SelectedText() string {
	if !d.HasSelection() {
		return ""
	}
	start, end := d.selection.Bounds()
	sp := d.OffsetToLineCol(start)
	ep := d.OffsetToLineCol(end)
	if sp.Line == ep.Line {
		l := d.lines[sp.Line]
		return l[runeToByte(l, sp.Col):runeToByte(l, ep.Col)]
	}
	var sb strings.Builder
	first := d.lines[sp.Line]
	sb.WriteString(first[runeToByte(first, sp.Col):])
	for i := sp.Line + 1; i < ep.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(d.lines[i])
	}
	last := d.lines[ep.Line]
	sb.WriteByte('\n')
	sb.WriteString(last[:runeToByte(last, ep.Col)])
	return sb.String()
}

// SelectionLines returns the first and last line touched by the selection,
// or the cursor line twice when nothing is selected. A selection ending at
// column 0 of a line still touches that line.
func (d *Document) SelectionLines() (first, last int) {
	if !d.HasSelection() {
		return d.cursor.Line, d.cursor.Line
	}
	start, end := d.selection.Bounds()
	return d.OffsetToLineCol(start).Line, d.OffsetToLineCol(end).Line
}

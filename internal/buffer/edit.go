package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/onecode/onecode/internal/log"
)

// InsertText inserts text at offset. Line breaks in text split lines.
// The cursor and selection ends at or after offset shift right by the
// inserted length, so typing at the cursor leaves it after the new text.
func (d *Document) InsertText(offset int, text string) {
	d.checkOffset(offset)
	if text == "" {
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	cur := d.CursorOffset()
	pos := d.OffsetToLineCol(offset)
	line := d.lines[pos.Line]
	b := runeToByte(line, pos.Col)
	before, after := line[:b], line[b:]
	parts := strings.Split(text, "\n")
	n := utf8.RuneCountInString(text)

	var affected []int
	if len(parts) == 1 {
		d.lines[pos.Line] = before + text + after
		affected = []int{pos.Line}
	} else {
		newLines := make([]string, 0, len(d.lines)+len(parts)-1)
		newLines = append(newLines, d.lines[:pos.Line]...)
		newLines = append(newLines, before+parts[0])
		newLines = append(newLines, parts[1:len(parts)-1]...)
		newLines = append(newLines, parts[len(parts)-1]+after)
		newLines = append(newLines, d.lines[pos.Line+1:]...)
		d.lines = newLines
		affected = lineRange(pos.Line, pos.Line+len(parts)-1)
	}

	shift := func(p int) int {
		if p >= offset {
			return p + n
		}
		return p
	}
	d.setCursorOffset(shift(cur))
	if d.selection != nil {
		d.selection.Anchor = shift(d.selection.Anchor)
		d.selection.Active = shift(d.selection.Active)
	}

	log.Debug(log.CatBuffer, "insert", "offset", offset, "runes", n, "lines", len(affected))
	d.emit(affected, len(parts) > 1)
}

// DeleteRange removes the text in [start, end).
func (d *Document) DeleteRange(start, end int) {
	d.checkOffset(start)
	d.checkOffset(end)
	if start > end {
		panic(fmt.Sprintf("buffer: inverted range [%d, %d)", start, end))
	}
	if start == end {
		return
	}

	cur := d.CursorOffset()
	sp := d.OffsetToLineCol(start)
	ep := d.OffsetToLineCol(end)
	first := d.lines[sp.Line]
	last := d.lines[ep.Line]
	merged := first[:runeToByte(first, sp.Col)] + last[runeToByte(last, ep.Col):]

	newLines := make([]string, 0, len(d.lines)-(ep.Line-sp.Line))
	newLines = append(newLines, d.lines[:sp.Line]...)
	newLines = append(newLines, merged)
	newLines = append(newLines, d.lines[ep.Line+1:]...)
	d.lines = newLines

	width := end - start
	shift := func(p int) int {
		switch {
		case p >= end:
			return p - width
		case p > start:
			return start
		default:
			return p
		}
	}
	d.setCursorOffset(shift(cur))
	if d.selection != nil {
		d.selection.Anchor = shift(d.selection.Anchor)
		d.selection.Active = shift(d.selection.Active)
	}

	log.Debug(log.CatBuffer, "delete", "start", start, "end", end)
	d.emit([]int{sp.Line}, ep.Line != sp.Line)
}

// ReplaceLine replaces the full text of line i, keeping its line break.
// A cursor on that line keeps its column, clamped to the new length, and
// selection ends on later lines keep their line and column.
func (d *Document) ReplaceLine(i int, text string) {
	d.checkLine(i)
	if strings.ContainsAny(text, "\r\n") {
		start := d.LineStart(i)
		d.DeleteRange(start, start+d.LineLen(i))
		d.InsertText(start, text)
		return
	}
	if d.lines[i] == text {
		return
	}

	start := d.LineStart(i)
	oldEnd := start + utf8.RuneCountInString(d.lines[i])
	newEnd := start + utf8.RuneCountInString(text)
	// offsets past the line shift by the length change; offsets on the line
	// keep their column, clamped
	shift := func(p int) int {
		if p > oldEnd {
			return p + newEnd - oldEnd
		}
		return min(p, newEnd)
	}

	d.lines[i] = text
	if d.cursor.Line == i {
		d.cursor.Col = min(d.cursor.Col, utf8.RuneCountInString(text))
	}
	if d.selection != nil {
		d.selection.Anchor = shift(d.selection.Anchor)
		d.selection.Active = shift(d.selection.Active)
	}

	d.emit([]int{i}, false)
}

// SetText replaces the whole document. The change event lists only the
// lines that differ from the previous content.
func (d *Document) SetText(text string) {
	old := d.Text()
	next := splitLines(text)
	if old == strings.Join(next, "\n") {
		return
	}

	affected := changedLines(old, strings.Join(next, "\n"), len(next))
	countChanged := len(next) != len(d.lines)
	d.lines = next
	d.SetCursor(d.cursor.Line, d.cursor.Col)
	if d.selection != nil {
		n := d.Len()
		d.selection.Anchor = min(d.selection.Anchor, n)
		d.selection.Active = min(d.selection.Active, n)
	}

	log.Debug(log.CatBuffer, "set text", "lines", len(next), "affected", len(affected))
	d.emit(affected, countChanged)
}

// ReplaceSelection replaces the selected text with text, or inserts text at
// the cursor when nothing is selected. The cursor ends after the new text.
func (d *Document) ReplaceSelection(text string) {
	if !d.HasSelection() {
		d.ClearSelection()
		d.InsertText(d.CursorOffset(), text)
		return
	}
	start, end := d.selection.Bounds()
	d.ClearSelection()
	d.DeleteRange(start, end)
	d.SetCursorOffset(start)
	d.InsertText(start, text)
}

func lineRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

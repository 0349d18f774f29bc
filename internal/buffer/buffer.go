// Package buffer owns the text of one open document: its lines, cursor,
// selection and the edit primitives every other editor component builds on.
//
// Offsets are absolute rune offsets into the flattened text, where lines are
// joined by a single '\n'. Columns are rune indices within a line.
//
// Passing an out-of-range offset or line index to an edit primitive is a
// programming error and panics. Cursor and selection setters clamp instead,
// because they are fed directly from user input.
package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position is a cursor location in line/column form (both 0-indexed).
type Position struct {
	Line int
	Col  int
}

// Selection is a range between an anchor and an active end.
// Both ends are absolute offsets; Active is where the cursor sits.
type Selection struct {
	Anchor int
	Active int
}

// Bounds returns the selection as an ordered [start, end) pair.
func (s Selection) Bounds() (start, end int) {
	if s.Anchor <= s.Active {
		return s.Anchor, s.Active
	}
	return s.Active, s.Anchor
}

// Empty reports whether the selection covers no text.
func (s Selection) Empty() bool {
	return s.Anchor == s.Active
}

// ChangeEvent describes one mutation of a Document.
type ChangeEvent struct {
	// Lines are the indices, in the post-edit document, of every line whose
	// text changed or that was inserted. Sorted ascending, no duplicates.
	Lines []int

	// LineCountChanged is true when the edit added or removed lines.
	LineCountChanged bool

	// LineCount is the line count after the edit.
	LineCount int

	// Modified is the document's dirty flag after the edit.
	Modified bool
}

// Document is a mutable, line-indexed text buffer with one cursor and an
// optional selection. A Document always has at least one line.
type Document struct {
	lines     []string
	cursor    Position
	goal      int // column kept across vertical moves, -1 when unset
	selection *Selection
	modified  bool

	listeners map[int]func(ChangeEvent)
	nextID    int
}

// New creates a document holding text. The new document is not modified.
func New(text string) *Document {
	return &Document{
		lines:     splitLines(text),
		goal:      -1,
		listeners: make(map[int]func(ChangeEvent)),
	}
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF, the
// form a Document stores.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// splitLines normalizes line endings and splits text into lines.
// The empty string yields exactly one empty line.
func splitLines(text string) []string {
	return strings.Split(NormalizeNewlines(text), "\n")
}

// OnChange registers fn to be called synchronously after every mutation.
// The returned function removes the subscription.
func (d *Document) OnChange(fn func(ChangeEvent)) func() {
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	return func() { delete(d.listeners, id) }
}

func (d *Document) emit(lines []int, countChanged bool) {
	d.modified = true
	ev := ChangeEvent{
		Lines:            lines,
		LineCountChanged: countChanged,
		LineCount:        len(d.lines),
		Modified:         d.modified,
	}
	for _, fn := range d.listeners {
		fn(ev)
	}
}

// Text returns the whole document with lines joined by '\n'.
func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}

// Lines returns a copy of the document lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// LineCount returns the number of lines. Always >= 1.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// LineAt returns the text of line i without its line break.
func (d *Document) LineAt(i int) string {
	d.checkLine(i)
	return d.lines[i]
}

// Len returns the length of the flattened text in runes.
func (d *Document) Len() int {
	n := len(d.lines) - 1
	for _, l := range d.lines {
		n += utf8.RuneCountInString(l)
	}
	return n
}

// LineStart returns the offset of the first character of line i.
func (d *Document) LineStart(i int) int {
	d.checkLine(i)
	off := 0
	for _, l := range d.lines[:i] {
		off += utf8.RuneCountInString(l) + 1
	}
	return off
}

// LineLen returns the rune length of line i.
func (d *Document) LineLen(i int) int {
	d.checkLine(i)
	return utf8.RuneCountInString(d.lines[i])
}

// OffsetToLineCol converts an absolute offset to a line/column position.
// An offset equal to a line's length addresses the position before its break.
func (d *Document) OffsetToLineCol(offset int) Position {
	d.checkOffset(offset)
	for i, l := range d.lines {
		n := utf8.RuneCountInString(l)
		if offset <= n {
			return Position{Line: i, Col: offset}
		}
		offset -= n + 1
	}
	// unreachable: checkOffset guarantees offset <= Len()
	last := len(d.lines) - 1
	return Position{Line: last, Col: utf8.RuneCountInString(d.lines[last])}
}

// LineColToOffset converts a line/column position to an absolute offset.
func (d *Document) LineColToOffset(line, col int) int {
	d.checkLine(line)
	if n := utf8.RuneCountInString(d.lines[line]); col < 0 || col > n {
		panic(fmt.Sprintf("buffer: column %d out of range [0, %d] on line %d", col, n, line))
	}
	return d.LineStart(line) + col
}

// Modified reports whether the document changed since it was created or
// last marked saved.
func (d *Document) Modified() bool {
	return d.modified
}

// MarkSaved clears the modified flag.
func (d *Document) MarkSaved() {
	d.modified = false
}

func (d *Document) checkLine(i int) {
	if i < 0 || i >= len(d.lines) {
		panic(fmt.Sprintf("buffer: line %d out of range [0, %d)", i, len(d.lines)))
	}
}

func (d *Document) checkOffset(off int) {
	if n := d.Len(); off < 0 || off > n {
		panic(fmt.Sprintf("buffer: offset %d out of range [0, %d]", off, n))
	}
}

// runeToByte returns the byte index of rune index col in s.
func runeToByte(s string, col int) int {
	if col <= 0 {
		return 0
	}
	i := 0
	for b := range s {
		if i == col {
			return b
		}
		i++
	}
	return len(s)
}

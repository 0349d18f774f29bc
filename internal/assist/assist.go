// Package assist implements the editing shortcuts layered over plain text
// input: bracket auto-pairing, indentation-aware newline and tab, line
// comment toggling and line duplication/deletion.
//
// Every assist mutates a buffer.Document through its public edit
// primitives, so highlighters and search see ordinary change events.
package assist

import (
	"strings"
	"unicode"

	"github.com/onecode/onecode/internal/buffer"
)

// Pairs maps each auto-paired opener to its closer.
var Pairs = map[rune]rune{
	'(':  ')',
	'[':  ']',
	'{':  '}',
	'\'': '\'',
	'"':  '"',
	'`':  '`',
}

// AutoPair handles typing ch. For an opener with no active selection it
// inserts the opener and its closer and leaves the cursor between them,
// returning true. Otherwise it does nothing and returns false, and the
// caller inserts ch normally.
func AutoPair(doc *buffer.Document, ch rune) bool {
	closer, ok := Pairs[ch]
	if !ok || doc.HasSelection() {
		return false
	}
	doc.ClearSelection()
	at := doc.CursorOffset()
	doc.InsertText(at, string([]rune{ch, closer}))
	doc.SetCursorOffset(at + 1)
	return true
}

// Newline breaks the line at the cursor, replacing any selection. The new
// line starts with the leading whitespace of the line the cursor was on,
// tabs expanded to tabSize spaces, plus one more indent unit when that
// line's trimmed text ends in ':' or '{'.
func Newline(doc *buffer.Document, tabSize int) {
	line := lineBeforeBreak(doc)
	indent := expandedIndent(line, tabSize)
	if trimmed := strings.TrimRightFunc(line, unicode.IsSpace); strings.HasSuffix(trimmed, ":") || strings.HasSuffix(trimmed, "{") {
		indent += tabSize
	}
	doc.ReplaceSelection("\n" + strings.Repeat(" ", indent))
}

// Tab inserts tabSize spaces at the cursor, replacing any selection.
func Tab(doc *buffer.Document, tabSize int) {
	doc.ReplaceSelection(strings.Repeat(" ", tabSize))
}

// lineBeforeBreak is the full text of the line the break lands on: the
// selection start's line, or the cursor's.
func lineBeforeBreak(doc *buffer.Document) string {
	if sel, ok := doc.Selection(); ok && !sel.Empty() {
		start, _ := sel.Bounds()
		return doc.LineAt(doc.OffsetToLineCol(start).Line)
	}
	return doc.LineAt(doc.Cursor().Line)
}

// expandedIndent returns the width in spaces of line's leading whitespace.
func expandedIndent(line string, tabSize int) int {
	n := 0
	for _, c := range line {
		switch c {
		case ' ':
			n++
		case '\t':
			n += tabSize
		default:
			if !unicode.IsSpace(c) {
				return n
			}
			n++
		}
	}
	return n
}

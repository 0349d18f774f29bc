package assist

import (
	"strings"

	"github.com/onecode/onecode/internal/buffer"
)

var slashCommentExts = []string{".cpp", ".js", ".c"}

// CommentPrefix returns the line comment marker for path: "//" for C, C++
// and JavaScript files, "#" for everything else.
func CommentPrefix(path string) string {
	for _, ext := range slashCommentExts {
		if strings.HasSuffix(path, ext) {
			return "//"
		}
	}
	return "#"
}

// ToggleComment comments or uncomments every line touched by the selection,
// or the cursor line without one. A line whose trimmed text starts with
// prefix loses the prefix, and the single space after it when present.
// Any other line gets prefix+" " inserted at column 0, ahead of its
// indentation. Removing the space along with the prefix, rather than the
// prefix alone, makes a second toggle restore the line exactly.
func ToggleComment(doc *buffer.Document, prefix string) {
	first, last := doc.SelectionLines()
	for i := first; i <= last; i++ {
		line := doc.LineAt(i)
		if !strings.HasPrefix(strings.TrimSpace(line), prefix) {
			doc.ReplaceLine(i, prefix+" "+line)
			continue
		}
		at := strings.Index(line, prefix)
		rest := line[at+len(prefix):]
		rest = strings.TrimPrefix(rest, " ")
		doc.ReplaceLine(i, line[:at]+rest)
	}
}

// DuplicateLine inserts a copy of the cursor line below it. The cursor
// stays on the original line, at its end.
func DuplicateLine(doc *buffer.Document) {
	line := doc.Cursor().Line
	end := doc.LineStart(line) + doc.LineLen(line)
	doc.ClearSelection()
	doc.InsertText(end, "\n"+doc.LineAt(line))
	doc.SetCursor(line, doc.LineLen(line))
}

// DeleteLine removes the cursor line and one adjacent line break, so the
// line count drops by exactly one. The last remaining line is emptied
// instead. The cursor keeps its line index, clamped, at column 0.
func DeleteLine(doc *buffer.Document) {
	line := doc.Cursor().Line
	doc.ClearSelection()

	switch {
	case doc.LineCount() == 1:
		doc.DeleteRange(0, doc.Len())
	case line < doc.LineCount()-1:
		start := doc.LineStart(line)
		doc.DeleteRange(start, doc.LineStart(line+1))
	default:
		// last line: take the break before it
		start := doc.LineStart(line) - 1
		doc.DeleteRange(start, doc.Len())
	}
	doc.SetCursor(line, 0)
}

package assist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onecode/onecode/internal/buffer"
)

func TestAutoPair_NoSelection(t *testing.T) {
	for open, closer := range Pairs {
		doc := buffer.New("x")
		doc.SetCursorOffset(1)

		handled := AutoPair(doc, open)

		require.True(t, handled)
		require.Equal(t, "x"+string(open)+string(closer), doc.Text())
		require.Equal(t, 2, doc.CursorOffset(), "cursor sits between the pair")
	}
}

func TestAutoPair_WithSelectionDoesNotPair(t *testing.T) {
	doc := buffer.New("hello")
	doc.SetSelection(0, 5)

	handled := AutoPair(doc, '(')

	require.False(t, handled)
	require.Equal(t, "hello", doc.Text(), "caller performs the normal replace")

	doc.ReplaceSelection("(")
	require.Equal(t, "(", doc.Text())
}

func TestAutoPair_NonOpener(t *testing.T) {
	doc := buffer.New("")

	require.False(t, AutoPair(doc, 'a'))
	require.False(t, AutoPair(doc, ')'))
	require.Equal(t, "", doc.Text())
}

func TestNewline_AfterColonAddsIndentUnit(t *testing.T) {
	doc := buffer.New("if x:")
	doc.SetCursorOffset(5)

	Newline(doc, 4)

	require.Equal(t, []string{"if x:", "    "}, doc.Lines())
	require.Equal(t, buffer.Position{Line: 1, Col: 4}, doc.Cursor())
}

func TestNewline_CopiesLeadingWhitespace(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		tabSize int
		want    string
	}{
		{"plain", "    x = 1", 4, "    "},
		{"brace", "  func() {", 2, "    "},
		{"trailing space after colon", "else:   ", 4, "    "},
		{"tab expands", "\tx", 4, "    "},
		{"tab and brace", "\tif {", 8, "                "},
		{"no indent", "x", 4, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buffer.New(tt.line)
			doc.SetCursor(0, doc.LineLen(0))

			Newline(doc, tt.tabSize)

			require.Equal(t, tt.want, doc.LineAt(1))
			require.NotContains(t, doc.LineAt(1), "\t")
		})
	}
}

func TestNewline_MidLineCarriesRemainder(t *testing.T) {
	doc := buffer.New("  foo(bar)")
	doc.SetCursorOffset(6)

	Newline(doc, 4)

	require.Equal(t, []string{"  foo(", "  bar)"}, doc.Lines())
}

func TestNewline_ReplacesSelection(t *testing.T) {
	doc := buffer.New("a:bc")
	doc.SetSelection(2, 4)

	Newline(doc, 2)

	require.Equal(t, []string{"a:", ""}, doc.Lines())
}

func TestTab(t *testing.T) {
	doc := buffer.New("x")

	Tab(doc, 4)
	require.Equal(t, "    x", doc.Text())

	doc.SetSelection(0, 5)
	Tab(doc, 2)
	require.Equal(t, "  ", doc.Text(), "a selection is replaced, never indented")
}

func TestCommentPrefix(t *testing.T) {
	require.Equal(t, "//", CommentPrefix("main.c"))
	require.Equal(t, "//", CommentPrefix("/src/app.cpp"))
	require.Equal(t, "//", CommentPrefix("index.js"))
	require.Equal(t, "#", CommentPrefix("main.py"))
	require.Equal(t, "#", CommentPrefix("main.go"))
	require.Equal(t, "#", CommentPrefix(""))
}

func TestToggleComment_InsertsAtColumnZero(t *testing.T) {
	doc := buffer.New("    x = 1")

	ToggleComment(doc, "#")

	require.Equal(t, "#     x = 1", doc.Text())
}

func TestToggleComment_StripsIndentedPrefix(t *testing.T) {
	doc := buffer.New("    // call()")

	ToggleComment(doc, "//")

	require.Equal(t, "    call()", doc.Text())
}

func TestToggleComment_StripsPrefixWithoutSpace(t *testing.T) {
	doc := buffer.New("#x")

	ToggleComment(doc, "#")

	require.Equal(t, "x", doc.Text())
}

func TestToggleComment_TwiceRestoresHashLine(t *testing.T) {
	doc := buffer.New("x = 1")

	ToggleComment(doc, "#")
	require.Equal(t, "# x = 1", doc.Text())
	ToggleComment(doc, "#")

	require.Equal(t, "x = 1", doc.Text(), "the space after # goes with the prefix")
}

func TestToggleComment_SelectionTouchesEveryLine(t *testing.T) {
	doc := buffer.New("a\nb\nc\nd")
	doc.SetSelection(doc.LineStart(1)+1, doc.LineStart(2))

	ToggleComment(doc, "#")

	require.Equal(t, []string{"a", "# b", "# c", "d"}, doc.Lines())
}

func TestToggleComment_MixedLines(t *testing.T) {
	doc := buffer.New("# a\nb")
	doc.SetSelection(0, doc.Len())

	ToggleComment(doc, "#")

	require.Equal(t, []string{"a", "# b"}, doc.Lines())
}

func TestDuplicateLine(t *testing.T) {
	doc := buffer.New("one\ntwo\nthree")
	doc.SetCursor(1, 1)

	DuplicateLine(doc)

	require.Equal(t, []string{"one", "two", "two", "three"}, doc.Lines())
	require.Equal(t, buffer.Position{Line: 1, Col: 3}, doc.Cursor())
}

func TestDeleteLine(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		line   int
		want   []string
		cursor buffer.Position
	}{
		{"first", "a\nb\nc", 0, []string{"b", "c"}, buffer.Position{Line: 0}},
		{"middle", "a\nb\nc", 1, []string{"a", "c"}, buffer.Position{Line: 1}},
		{"last", "a\nb\nc", 2, []string{"a", "b"}, buffer.Position{Line: 1}},
		{"only", "abc", 0, []string{""}, buffer.Position{}},
		{"only empty", "", 0, []string{""}, buffer.Position{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buffer.New(tt.text)
			doc.SetCursor(tt.line, 1)

			DeleteLine(doc)

			require.Equal(t, tt.want, doc.Lines())
			require.Equal(t, tt.cursor, doc.Cursor())
		})
	}
}

func TestDeleteLine_RepeatedNeverLeavesZeroLines(t *testing.T) {
	doc := buffer.New("x")

	for range 5 {
		DeleteLine(doc)
		require.Equal(t, 1, doc.LineCount())
	}
	require.Equal(t, "", doc.Text())
}

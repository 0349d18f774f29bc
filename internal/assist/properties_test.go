package assist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/onecode/onecode/internal/buffer"
)

func genLines(t *rapid.T) []string {
	return rapid.SliceOfN(rapid.StringMatching(`[ \ta-z#/:{]{0,12}`), 1, 8).Draw(t, "lines")
}

func TestProperty_DeleteLineKeepsAtLeastOneLine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := buffer.New(strings.Join(genLines(t), "\n"))
		steps := rapid.IntRange(1, 12).Draw(t, "steps")

		for range steps {
			before := doc.LineCount()
			doc.SetCursor(rapid.IntRange(0, before-1).Draw(t, "line"), 0)
			DeleteLine(doc)

			require.GreaterOrEqual(t, doc.LineCount(), 1)
			if before > 1 {
				require.Equal(t, before-1, doc.LineCount())
			}
		}
	})
}

func TestProperty_DuplicateThenDeleteRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := strings.Join(genLines(t), "\n")
		doc := buffer.New(text)
		line := rapid.IntRange(0, doc.LineCount()-1).Draw(t, "line")
		doc.SetCursor(line, 0)

		DuplicateLine(doc)
		doc.SetCursor(line+1, 0)
		DeleteLine(doc)

		require.Equal(t, text, doc.Text())
	})
}

func TestProperty_ToggleCommentIsInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := rapid.SampledFrom([]string{"#", "//"}).Draw(t, "prefix")
		lines := genLines(t)
		for i, l := range lines {
			if strings.HasPrefix(strings.TrimSpace(l), prefix) {
				lines[i] = "x" + l
			}
		}
		text := strings.Join(lines, "\n")
		doc := buffer.New(text)
		doc.SetSelection(0, doc.Len())

		ToggleComment(doc, prefix)
		ToggleComment(doc, prefix)

		require.Equal(t, text, doc.Text())
	})
}

func TestProperty_NewlineIndentIsSpacesOnly(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringMatching(`[ \t]{0,4}[a-z]{0,6}[:{]?`).Draw(t, "line")
		tabSize := rapid.IntRange(1, 8).Draw(t, "tabSize")
		doc := buffer.New(line)
		doc.SetCursor(0, doc.LineLen(0))

		Newline(doc, tabSize)

		next := doc.LineAt(1)
		require.Equal(t, strings.Repeat(" ", len(next)), next)
		require.GreaterOrEqual(t, len(next), expandedIndent(line, tabSize))
	})
}

package buffer

import (
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// changedLines returns the indices of lines in next that were inserted or
// modified relative to old, plus the line at each pure deletion point.
// newCount is the line count of next.
func changedLines(old, next string, newCount int) []int {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(old, next)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	seen := make(map[int]struct{})
	line := 0
	for _, diff := range diffs {
		n := countLines(diff.Text)
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			line += n
		case diffmatchpatch.DiffInsert:
			for i := line; i < line+n; i++ {
				seen[i] = struct{}{}
			}
			line += n
		case diffmatchpatch.DiffDelete:
			seen[min(line, newCount-1)] = struct{}{}
		}
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		if i >= 0 && i < newCount {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// countLines counts the lines in a line-mode diff chunk. Every line but the
// document's last ends with '\n'.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

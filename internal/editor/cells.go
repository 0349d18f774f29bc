package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Columns in the document are rune indices, but the screen is measured in
// terminal cells: ASCII is one cell, CJK and most emoji are two, combining
// marks are zero and a tab advances to the next tab stop.

// cell is one rune of a line laid out on screen.
type cell struct {
	byte  int    // byte offset of the rune in the line
	x     int    // first screen column, relative to the line start
	width int    // screen columns taken
	text  string // what to draw (a tab becomes spaces)
}

// layoutLine lays out every rune of line. The result is indexed by rune
// column.
func layoutLine(line string, tabSize int) []cell {
	cells := make([]cell, 0, len(line))
	x := 0
	for b, r := range line {
		c := cell{byte: b, x: x}
		switch {
		case r == '\t':
			c.width = tabSize - x%max(tabSize, 1)
			c.text = strings.Repeat(" ", c.width)
		case r < ' ' || r == 0x7f:
			// control characters would break the frame
			c.width = 1
			c.text = "?"
		default:
			c.width = runewidth.RuneWidth(r)
			c.text = string(r)
		}
		x += c.width
		cells = append(cells, c)
	}
	return cells
}

// lineWidth returns the screen width of laid out cells.
func lineWidth(cells []cell) int {
	if len(cells) == 0 {
		return 0
	}
	last := cells[len(cells)-1]
	return last.x + last.width
}

// cursorX returns the screen column of rune column col.
func cursorX(cells []cell, col int) int {
	if col < len(cells) {
		return cells[col].x
	}
	return lineWidth(cells)
}

// segment is a run of rune columns [start, end) drawn on one screen row.
type segment struct {
	start, end int
}

// wrapCells splits cells into rows of at most width screen columns. A
// grapheme cluster is never split across rows. An empty line yields one
// empty segment.
func wrapCells(line string, cells []cell, width int) []segment {
	if len(cells) == 0 || width <= 0 {
		return []segment{{0, len(cells)}}
	}

	var segs []segment
	start, used, col := 0, 0, 0
	state := -1
	rest := line
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		n := len([]rune(cluster))
		w := 0
		for _, c := range cells[col : col+n] {
			w += c.width
		}
		if used+w > width && col > start {
			segs = append(segs, segment{start, col})
			start, used = col, 0
		}
		used += w
		col += n
	}
	return append(segs, segment{start, len(cells)})
}

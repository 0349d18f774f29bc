package buffer

// Motion identifies a cursor movement.
type Motion int

const (
	MoveLeft Motion = iota
	MoveRight
	MoveUp
	MoveDown
	MoveLineStart
	MoveLineEnd
	MoveDocStart
	MoveDocEnd
)

// Move applies a motion. With extend, the selection grows from its anchor
// (or from the current cursor when nothing is selected) to the new cursor.
// Without extend, an active selection is dropped; Left/Right first collapse
// it to its start/end instead of moving.
func (d *Document) Move(m Motion, extend bool) {
	from := d.CursorOffset()

	if !extend && d.HasSelection() && (m == MoveLeft || m == MoveRight) {
		start, end := d.selection.Bounds()
		d.ClearSelection()
		d.goal = -1
		if m == MoveLeft {
			d.setCursorOffset(start)
		} else {
			d.setCursorOffset(end)
		}
		return
	}

	d.applyMotion(m)

	if !extend {
		d.ClearSelection()
		return
	}
	anchor := from
	if d.selection != nil {
		anchor = d.selection.Anchor
	}
	d.selection = &Selection{Anchor: anchor, Active: d.CursorOffset()}
}

// MoveLines moves the cursor n lines down (negative: up), keeping the goal
// column. Used for page up/down.
func (d *Document) MoveLines(n int, extend bool) {
	m := MoveDown
	if n < 0 {
		m, n = MoveUp, -n
	}
	for range n {
		d.Move(m, extend)
	}
}

func (d *Document) applyMotion(m Motion) {
	c := d.cursor
	switch m {
	case MoveLeft:
		d.goal = -1
		if c.Col > 0 {
			d.cursor.Col--
		} else if c.Line > 0 {
			d.cursor = Position{Line: c.Line - 1, Col: d.LineLen(c.Line - 1)}
		}
	case MoveRight:
		d.goal = -1
		if c.Col < d.LineLen(c.Line) {
			d.cursor.Col++
		} else if c.Line < len(d.lines)-1 {
			d.cursor = Position{Line: c.Line + 1}
		}
	case MoveUp, MoveDown:
		if d.goal < 0 {
			d.goal = c.Col
		}
		line := c.Line - 1
		if m == MoveDown {
			line = c.Line + 1
		}
		switch {
		case line < 0:
			d.cursor = Position{}
		case line >= len(d.lines):
			d.cursor = Position{Line: len(d.lines) - 1, Col: d.LineLen(len(d.lines) - 1)}
		default:
			d.cursor = Position{Line: line, Col: min(d.goal, d.LineLen(line))}
		}
	case MoveLineStart:
		d.goal = -1
		d.cursor.Col = 0
	case MoveLineEnd:
		d.goal = -1
		d.cursor.Col = d.LineLen(c.Line)
	case MoveDocStart:
		d.goal = -1
		d.cursor = Position{}
	case MoveDocEnd:
		d.goal = -1
		last := len(d.lines) - 1
		d.cursor = Position{Line: last, Col: d.LineLen(last)}
	}
}

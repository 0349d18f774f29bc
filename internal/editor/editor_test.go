package editor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/onecode/onecode/internal/buffer"
	"github.com/onecode/onecode/internal/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func newTestEditor(t *testing.T, path, text string) (*Model, *theme.Manager) {
	t.Helper()
	themes := theme.NewManager(theme.Dark)
	m := New(buffer.New(text), Config{
		ID:           "ed",
		Path:         path,
		TabSize:      4,
		MinimapDelay: time.Millisecond,
	}, themes, nil)
	t.Cleanup(m.Close)
	m.SetSize(40, 5)
	m.Focus()
	return m, themes
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func send(m *Model, msg tea.KeyMsg) []tea.Msg {
	_, cmd := m.Update(msg)
	return collect(cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// fgSeq is the truecolor foreground sequence lipgloss emits for hex.
func fgSeq(t *testing.T, hex string) string {
	t.Helper()
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	require.NoError(t, err)
	return fmt.Sprintf("38;2;%d;%d;%d", v>>16, (v>>8)&0xff, v&0xff)
}

func TestEditor_TypingOpenerAutoPairs(t *testing.T) {
	m, _ := newTestEditor(t, "main.py", "")

	msgs := send(m, runes("("))

	require.Equal(t, "()", m.Document().Text())
	require.Equal(t, buffer.Position{Line: 0, Col: 1}, m.Document().Cursor())
	require.Contains(t, msgs, ChangedMsg{ID: "ed", Modified: true})
	require.Contains(t, msgs, CursorMovedMsg{ID: "ed", Line: 1, Col: 2})
}

func TestEditor_TypingReplacesSelection(t *testing.T) {
	m, _ := newTestEditor(t, "main.py", "hello")
	m.Document().SetSelection(0, 5)

	send(m, runes("("))

	require.Equal(t, "(", m.Document().Text())
}

func TestEditor_NewlineAfterColonIndents(t *testing.T) {
	m, _ := newTestEditor(t, "main.py", "if x:")
	m.Document().SetCursor(0, 5)

	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, "if x:\n    ", m.Document().Text())
	require.Equal(t, buffer.Position{Line: 1, Col: 4}, m.Document().Cursor())
}

func TestEditor_TabInsertsSpaces(t *testing.T) {
	m, _ := newTestEditor(t, "main.go", "")

	send(m, tea.KeyMsg{Type: tea.KeyTab})

	require.Equal(t, "    ", m.Document().Text())
}

func TestEditor_BackspaceAndDelete(t *testing.T) {
	m, _ := newTestEditor(t, "", "abc")
	m.Document().SetCursor(0, 2)

	send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, "ac", m.Document().Text())

	send(m, tea.KeyMsg{Type: tea.KeyDelete})
	require.Equal(t, "a", m.Document().Text())

	send(m, tea.KeyMsg{Type: tea.KeyDelete})
	require.Equal(t, "a", m.Document().Text(), "delete at end of document is a no-op")
}

func TestEditor_LineCommands(t *testing.T) {
	m, _ := newTestEditor(t, "script.py", "x = 1\ny = 2")

	send(m, tea.KeyMsg{Type: tea.KeyCtrlUnderscore})
	require.Equal(t, "# x = 1\ny = 2", m.Document().Text())

	send(m, tea.KeyMsg{Type: tea.KeyCtrlD})
	require.Equal(t, "# x = 1\n# x = 1\ny = 2", m.Document().Text())

	send(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	send(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	require.Equal(t, "y = 2", m.Document().Text())
}

func TestEditor_CommentPrefixFollowsExtension(t *testing.T) {
	m, _ := newTestEditor(t, "main.js", "x")

	send(m, tea.KeyMsg{Type: tea.KeyCtrlUnderscore})

	require.Equal(t, "// x", m.Document().Text())
}

func TestEditor_ShiftArrowsSelect(t *testing.T) {
	m, _ := newTestEditor(t, "", "abc")

	send(m, tea.KeyMsg{Type: tea.KeyShiftRight})
	send(m, tea.KeyMsg{Type: tea.KeyShiftRight})

	require.Equal(t, "ab", m.Document().SelectedText())

	send(m, tea.KeyMsg{Type: tea.KeyCtrlA})
	require.Equal(t, "abc", m.Document().SelectedText())
}

func TestEditor_UnfocusedIgnoresKeys(t *testing.T) {
	m, _ := newTestEditor(t, "", "")
	m.Blur()

	msgs := send(m, runes("x"))

	require.Empty(t, m.Document().Text())
	require.Empty(t, msgs)
}

func TestEditor_CursorMoveWithoutEditDoesNotReportChange(t *testing.T) {
	m, _ := newTestEditor(t, "", "ab")

	msgs := send(m, tea.KeyMsg{Type: tea.KeyRight})

	require.Equal(t, []tea.Msg{CursorMovedMsg{ID: "ed", Line: 1, Col: 2}}, msgs)
}

func TestEditor_ThemeToggleRecolorsKeyword(t *testing.T) {
	m, themes := newTestEditor(t, "main.py", "def f():\n    pass")
	m.Blur()

	dark := m.View()
	require.Contains(t, dark, fgSeq(t, theme.Dark.Color(theme.RoleKeyword)))

	themes.Toggle()
	light := m.View()

	require.Equal(t, "light", m.Theme())
	require.Contains(t, light, fgSeq(t, theme.Light.Color(theme.RoleKeyword)))
	require.NotContains(t, light, fgSeq(t, theme.Dark.Color(theme.RoleKeyword)))
	require.NotContains(t, light, fgSeq(t, theme.Dark.Color(theme.RoleForeground)))
}

// bgSeq is the truecolor background parameters lipgloss emits for hex.
func bgSeq(t *testing.T, hex string) string {
	t.Helper()
	return "4" + strings.TrimPrefix(fgSeq(t, hex), "3")
}

var sgrRun = regexp.MustCompile("\x1b\\[([0-9;]*)m([^\x1b]*)")

type paintedCell struct {
	ch      rune
	bg      string
	reverse bool
}

// paint decodes one rendered row into its printed cells and their
// background and reverse attributes.
func paint(row string) []paintedCell {
	var out []paintedCell
	for _, sm := range sgrRun.FindAllStringSubmatch(row, -1) {
		var bg string
		reverse := false
		params := strings.Split(sm[1], ";")
		for i := 0; i < len(params); i++ {
			switch {
			case (params[i] == "38" || params[i] == "48") && i+4 < len(params) && params[i+1] == "2":
				if params[i] == "48" {
					bg = strings.Join(params[i:i+5], ";")
				}
				i += 4
			case params[i] == "7":
				reverse = true
			}
		}
		for _, r := range sm[2] {
			out = append(out, paintedCell{ch: r, bg: bg, reverse: reverse})
		}
	}
	return out
}

func TestEditor_OverlaysStackInOrder(t *testing.T) {
	m, _ := newTestEditor(t, "", "a foo bar\nnext")
	m.Search("foo", true)
	m.Document().SetSelection(4, 7)

	row := paint(strings.Split(m.View(), "\n")[0])
	require.GreaterOrEqual(t, len(row), 9)
	require.Equal(t, "a foo bar", string([]rune{
		row[0].ch, row[1].ch, row[2].ch, row[3].ch, row[4].ch,
		row[5].ch, row[6].ch, row[7].ch, row[8].ch,
	}))

	current := bgSeq(t, theme.Dark.Color(theme.RoleCurrentLine))
	match := bgSeq(t, theme.Dark.Color(theme.RoleMatch))
	selection := bgSeq(t, theme.Dark.Color(theme.RoleSelection))
	want := []string{
		current, current, // "a "
		match, match, // "fo", matched only
		selection,            // "o", matched and selected
		selection, selection, // " b"
		selection, // "a", cursor
		current,   // "r"
	}
	for col, bg := range want {
		require.Equal(t, bg, row[col].bg, "background of column %d", col)
		require.Equal(t, col == 7, row[col].reverse, "reverse video at column %d", col)
	}
}

func TestCompose_LayerPrecedence(t *testing.T) {
	m, _ := newTestEditor(t, "", "x")
	r := &renderer{m: m}
	base := cellStyle{fg: "#ABCDEF", bg: theme.Dark.Color(theme.RoleBackground), bold: true}
	on := []bool{true}

	tests := []struct {
		name    string
		ov      lineOverlay
		bg      theme.Role
		reverse bool
	}{
		{"no layers", lineOverlay{cursor: -1}, theme.RoleBackground, false},
		{"current line", lineOverlay{current: true, cursor: -1}, theme.RoleCurrentLine, false},
		{"match over current line", lineOverlay{current: true, match: on, cursor: -1}, theme.RoleMatch, false},
		{"selection over match", lineOverlay{current: true, match: on, selection: on, cursor: -1}, theme.RoleSelection, false},
		{"all layers with cursor", lineOverlay{current: true, match: on, selection: on, cursor: 0}, theme.RoleSelection, true},
		{"cursor on another column", lineOverlay{current: true, match: on, cursor: 3}, theme.RoleMatch, false},
		{"selection without current line", lineOverlay{selection: on, cursor: -1}, theme.RoleSelection, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.compose(base, 0, tt.ov)

			require.Equal(t, theme.Dark.Color(tt.bg), got.bg)
			require.Equal(t, tt.reverse, got.reverse)
			require.Equal(t, base.fg, got.fg, "overlays never change the foreground")
			require.True(t, got.bold)
		})
	}
}

func TestEditor_CloseUnsubscribesFromThemes(t *testing.T) {
	m, themes := newTestEditor(t, "", "")
	m.Close()

	themes.Set(theme.Light)

	require.Equal(t, "dark", m.Theme())
}

func TestEditor_SearchSelectsAndWraps(t *testing.T) {
	m, _ := newTestEditor(t, "", "foo bar foo")

	collect(m.Search("foo", true))
	sel, ok := m.Document().Selection()
	require.True(t, ok)
	require.Equal(t, buffer.Selection{Anchor: 0, Active: 3}, sel)

	collect(m.FindNext())
	sel, _ = m.Document().Selection()
	require.Equal(t, buffer.Selection{Anchor: 8, Active: 11}, sel)

	collect(m.FindNext())
	sel, _ = m.Document().Selection()
	require.Equal(t, buffer.Selection{Anchor: 0, Active: 3}, sel)

	collect(m.FindPrev())
	sel, _ = m.Document().Selection()
	require.Equal(t, buffer.Selection{Anchor: 8, Active: 11}, sel)
}

func TestEditor_SearchFollowsEdits(t *testing.T) {
	m, _ := newTestEditor(t, "", "ab")
	m.Search("a", true)
	require.Len(t, m.SearchEngine().Matches(), 1)

	m.Document().ClearSelection()
	m.Document().SetCursor(0, 2)
	send(m, runes("a"))

	require.Len(t, m.SearchEngine().Matches(), 2)

	m.ClearSearch()
	require.Empty(t, m.SearchEngine().Matches())
}

func TestEditor_MinimapRefreshIsDebounced(t *testing.T) {
	m, _ := newTestEditor(t, "", "")
	m.SetShowMinimap(true)
	require.Equal(t, []string{strings.Repeat("\u2800", MinimapWidth)}, m.minimap.rows)

	send(m, runes("x"))
	send(m, runes("y"))
	require.Equal(t, strings.Repeat("\u2800", MinimapWidth), m.minimap.rows[0], "minimap lags until the quiet period ends")

	m.Update(MinimapRefreshMsg{ID: "ed", Seq: m.debounce.seq - 1})
	require.Equal(t, strings.Repeat("\u2800", MinimapWidth), m.minimap.rows[0], "superseded tick is ignored")

	m.Update(MinimapRefreshMsg{ID: "ed", Seq: m.debounce.seq})
	require.NotEqual(t, strings.Repeat("\u2800", MinimapWidth), m.minimap.rows[0])
}

func TestEditor_Reload(t *testing.T) {
	m, _ := newTestEditor(t, "", "old")
	send(m, runes("x"))
	require.True(t, m.Modified())

	msgs := collect(m.Reload("new\ntext"))

	require.Equal(t, "new\ntext", m.Document().Text())
	require.False(t, m.Modified())
	require.Contains(t, msgs, ChangedMsg{ID: "ed", Modified: false})
}

func TestEditor_SetPathChangesLanguage(t *testing.T) {
	m, _ := newTestEditor(t, "", "x")
	require.True(t, m.Language().IsPlain())

	m.SetPath("x.go")

	require.Equal(t, "x.go", m.Path())
	require.False(t, m.Language().IsPlain())
}

func TestEditor_ViewFillsItsBox(t *testing.T) {
	m, _ := newTestEditor(t, "main.go", "package main\n\nfunc main() {\n\tprintln(\"日本語\")\n}")
	m.SetShowLineNumbers(true)
	m.SetShowMinimap(true)

	for _, wrap := range []bool{false, true} {
		m.SetWordWrap(wrap)
		lines := strings.Split(m.View(), "\n")
		require.Len(t, lines, 5)
		for _, l := range lines {
			require.Equal(t, 40, lipgloss.Width(l), "wrap=%v line %q", wrap, l)
		}
	}
}

func TestEditor_HorizontalScrollFollowsCursor(t *testing.T) {
	m, _ := newTestEditor(t, "", strings.Repeat("x", 100))
	m.SetSize(20, 3)

	send(m, tea.KeyMsg{Type: tea.KeyEnd})

	require.Equal(t, 81, m.left)
	for _, l := range strings.Split(m.View(), "\n") {
		require.Equal(t, 20, lipgloss.Width(l))
	}

	send(m, tea.KeyMsg{Type: tea.KeyHome})
	require.Equal(t, 0, m.left)
}

func TestEditor_VerticalScrollFollowsCursor(t *testing.T) {
	m, _ := newTestEditor(t, "", strings.Repeat("line\n", 20))

	send(m, tea.KeyMsg{Type: tea.KeyCtrlEnd})
	require.Equal(t, 16, m.top)

	send(m, tea.KeyMsg{Type: tea.KeyCtrlHome})
	require.Equal(t, 0, m.top)
}

func TestEditor_WordWrapLayout(t *testing.T) {
	m, _ := newTestEditor(t, "", "abcdefghij\nxy")
	m.SetSize(4, 5)
	m.SetWordWrap(true)

	rows := m.layout()

	require.Len(t, rows, 4)
	require.Equal(t, segment{0, 4}, rows[0].seg)
	require.Equal(t, segment{8, 10}, rows[2].seg)
	require.True(t, rows[2].last)
	require.True(t, rows[3].first)
	require.Equal(t, 0, cursorRow(rows, 0, 0))
	require.Equal(t, 1, cursorRow(rows, 0, 4))
	require.Equal(t, 2, cursorRow(rows, 0, 10))
}

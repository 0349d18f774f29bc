// Package editor provides the Bubble Tea view of one open document: the
// text area with syntax colors, the line-number gutter, the minimap, and
// the key handling that routes input through the edit assists.
//
// A Model holds direct references to its Document, Highlighter and search
// Engine. Document changes flow to the highlighter and the search engine
// through the document's change subscription; theme changes arrive through
// the theme manager's subscription and are applied before Set returns.
package editor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/onecode/onecode/internal/assist"
	"github.com/onecode/onecode/internal/buffer"
	"github.com/onecode/onecode/internal/keys"
	"github.com/onecode/onecode/internal/log"
	"github.com/onecode/onecode/internal/search"
	"github.com/onecode/onecode/internal/syntax"
	"github.com/onecode/onecode/internal/theme"
)

// Config defines an editor view.
type Config struct {
	// ID identifies the view in the messages it emits. A random ID is used
	// when empty.
	ID string

	// Path is the file the document came from. It selects the lexer and
	// the comment prefix. Empty for untitled documents.
	Path string

	// TabSize is the indent unit in spaces. Defaults to 4.
	TabSize int

	WordWrap        bool
	ShowMinimap     bool
	ShowLineNumbers bool

	// MinimapDelay is the quiet period before the minimap redraws.
	// Defaults to DefaultMinimapDelay.
	MinimapDelay time.Duration
}

// ChangedMsg is emitted after every update that mutated the document.
type ChangedMsg struct {
	ID       string
	Modified bool
}

// CursorMovedMsg is emitted when the cursor moves. Line and Col are 1-based.
type CursorMovedMsg struct {
	ID   string
	Line int
	Col  int
}

// Model is the editor view state.
type Model struct {
	cfg  Config
	keys keys.EditorKeyMap

	doc    *buffer.Document
	lang   syntax.Language
	hl     *syntax.Highlighter
	search *search.Engine

	themes  *theme.Manager
	theme   theme.Theme
	styles  theme.StyleMap
	gutter  gutterStyles
	mmStyle minimapStyles

	minimap  minimap
	debounce *Debouncer

	unsubDoc   func()
	unsubTheme func()

	width   int
	height  int
	top     int // first visible screen row
	left    int // first visible screen column, without word wrap
	focused bool
	changed bool
}

// New creates a view of doc. The view subscribes to doc and to themes
// until Close. cache may be shared between views; nil disables caching.
func New(doc *buffer.Document, cfg Config, themes *theme.Manager, cache syntax.TokenCache) *Model {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	if cfg.TabSize <= 0 {
		cfg.TabSize = 4
	}
	if cfg.MinimapDelay <= 0 {
		cfg.MinimapDelay = DefaultMinimapDelay
	}

	lang := syntax.ForExtension(cfg.Path)
	m := &Model{
		cfg:      cfg,
		keys:     keys.DefaultEditorKeyMap(),
		doc:      doc,
		lang:     lang,
		hl:       syntax.NewHighlighter(lang, doc.LineCount(), cache),
		search:   search.NewEngine(doc),
		themes:   themes,
		debounce: NewDebouncer(cfg.ID, cfg.MinimapDelay),
	}
	m.unsubDoc = doc.OnChange(m.onDocumentChange)
	m.applyTheme(themes.Active())
	m.unsubTheme = themes.Subscribe(m.applyTheme)

	log.Debug(log.CatEditor, "editor opened", "id", cfg.ID, "path", cfg.Path, "language", lang.Label)
	return m
}

// Close drops the document and theme subscriptions.
func (m *Model) Close() {
	if m.unsubDoc != nil {
		m.unsubDoc()
		m.unsubDoc = nil
	}
	if m.unsubTheme != nil {
		m.unsubTheme()
		m.unsubTheme = nil
	}
}

func (m *Model) onDocumentChange(ev buffer.ChangeEvent) {
	m.hl.Apply(ev)
	m.search.Refresh()
	m.changed = true
}

// applyTheme restyles the view. It runs inside theme.Manager.Set, so
// every open view is restyled before the next frame.
func (m *Model) applyTheme(t theme.Theme) {
	m.theme = t
	m.styles = theme.Build(t)
	m.gutter = newGutterStyles(t)
	m.mmStyle = newMinimapStyles(t)
	m.minimap = buildMinimap(m.doc.Lines(), m.cfg.TabSize)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		before := m.doc.Cursor()
		m.handleKey(msg)
		return m, m.afterUpdate(before)

	case MinimapRefreshMsg:
		if m.debounce.Fire(msg) {
			m.minimap = buildMinimap(m.doc.Lines(), m.cfg.TabSize)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Up):
		m.doc.Move(buffer.MoveUp, false)
	case key.Matches(msg, k.Down):
		m.doc.Move(buffer.MoveDown, false)
	case key.Matches(msg, k.Left):
		m.doc.Move(buffer.MoveLeft, false)
	case key.Matches(msg, k.Right):
		m.doc.Move(buffer.MoveRight, false)
	case key.Matches(msg, k.Home):
		m.doc.Move(buffer.MoveLineStart, false)
	case key.Matches(msg, k.End):
		m.doc.Move(buffer.MoveLineEnd, false)
	case key.Matches(msg, k.DocStart):
		m.doc.Move(buffer.MoveDocStart, false)
	case key.Matches(msg, k.DocEnd):
		m.doc.Move(buffer.MoveDocEnd, false)
	case key.Matches(msg, k.PageUp):
		m.doc.MoveLines(-max(m.height-1, 1), false)
	case key.Matches(msg, k.PageDown):
		m.doc.MoveLines(max(m.height-1, 1), false)

	case key.Matches(msg, k.SelectUp):
		m.doc.Move(buffer.MoveUp, true)
	case key.Matches(msg, k.SelectDown):
		m.doc.Move(buffer.MoveDown, true)
	case key.Matches(msg, k.SelectLeft):
		m.doc.Move(buffer.MoveLeft, true)
	case key.Matches(msg, k.SelectRight):
		m.doc.Move(buffer.MoveRight, true)
	case key.Matches(msg, k.SelectHome):
		m.doc.Move(buffer.MoveLineStart, true)
	case key.Matches(msg, k.SelectEnd):
		m.doc.Move(buffer.MoveLineEnd, true)
	case key.Matches(msg, k.SelectAll):
		m.doc.SetSelection(0, m.doc.Len())

	case key.Matches(msg, k.Newline):
		assist.Newline(m.doc, m.cfg.TabSize)
	case key.Matches(msg, k.Tab):
		assist.Tab(m.doc, m.cfg.TabSize)
	case key.Matches(msg, k.Backspace):
		m.deleteBackward()
	case key.Matches(msg, k.Delete):
		m.deleteForward()
	case key.Matches(msg, k.ToggleComment):
		assist.ToggleComment(m.doc, assist.CommentPrefix(m.cfg.Path))
	case key.Matches(msg, k.DuplicateLine):
		assist.DuplicateLine(m.doc)
	case key.Matches(msg, k.DeleteLine):
		assist.DeleteLine(m.doc)

	case msg.Type == tea.KeySpace:
		m.typeRunes([]rune{' '}, false)
	case msg.Type == tea.KeyRunes:
		m.typeRunes(msg.Runes, msg.Paste)
	}
}

// typeRunes inserts typed text. Pasted text goes in verbatim; typed
// openers are auto-paired.
func (m *Model) typeRunes(runes []rune, paste bool) {
	if paste {
		m.doc.ReplaceSelection(string(runes))
		return
	}
	for _, r := range runes {
		if !assist.AutoPair(m.doc, r) {
			m.doc.ReplaceSelection(string(r))
		}
	}
}

func (m *Model) deleteBackward() {
	if m.doc.HasSelection() {
		m.doc.ReplaceSelection("")
		return
	}
	m.doc.ClearSelection()
	if off := m.doc.CursorOffset(); off > 0 {
		m.doc.DeleteRange(off-1, off)
	}
}

func (m *Model) deleteForward() {
	if m.doc.HasSelection() {
		m.doc.ReplaceSelection("")
		return
	}
	m.doc.ClearSelection()
	if off := m.doc.CursorOffset(); off < m.doc.Len() {
		m.doc.DeleteRange(off, off+1)
	}
}

// afterUpdate scrolls the cursor into view, re-lexes the visible dirty
// lines and collects the notifications owed for this update.
func (m *Model) afterUpdate(before buffer.Position) tea.Cmd {
	m.ensureCursorVisible()
	m.refreshHighlight()

	var cmds []tea.Cmd
	if m.changed {
		m.changed = false
		id, modified := m.cfg.ID, m.doc.Modified()
		cmds = append(cmds,
			func() tea.Msg { return ChangedMsg{ID: id, Modified: modified} },
			m.debounce.Schedule(),
		)
	}
	if cur := m.doc.Cursor(); cur != before {
		cmds = append(cmds, m.cursorMovedCmd())
	}
	return tea.Batch(cmds...)
}

func (m *Model) cursorMovedCmd() tea.Cmd {
	line, col := m.CursorPosition()
	id := m.cfg.ID
	return func() tea.Msg { return CursorMovedMsg{ID: id, Line: line, Col: col} }
}

func (m *Model) refreshHighlight() {
	rows := m.layout()
	if len(rows) == 0 {
		return
	}
	top := min(m.top, len(rows)-1)
	bottom := min(top+max(m.height, 1), len(rows)) - 1
	m.hl.Refresh(context.Background(), rows[top].line, rows[bottom].line+1, m.doc.LineAt)
}

// Reload replaces the document text with text read from disk and marks it
// saved.
func (m *Model) Reload(text string) tea.Cmd {
	before := m.doc.Cursor()
	m.doc.SetText(text)
	m.doc.MarkSaved()
	return m.afterUpdate(before)
}

// Search runs query and selects the first match at or after the cursor.
// An empty query clears the matches.
func (m *Model) Search(query string, caseSensitive bool) tea.Cmd {
	m.search.Search(query, caseSensitive)
	return m.FindNext()
}

// FindNext selects the next match, wrapping around the document.
func (m *Model) FindNext() tea.Cmd {
	mt, ok := m.search.Next(m.searchOrigin())
	if !ok {
		return nil
	}
	return m.selectMatch(mt)
}

// FindPrev selects the previous match, wrapping around the document.
func (m *Model) FindPrev() tea.Cmd {
	mt, ok := m.search.Prev(m.searchOrigin())
	if !ok {
		return nil
	}
	return m.selectMatch(mt)
}

// ClearSearch drops the query and its highlights.
func (m *Model) ClearSearch() {
	m.search.Clear()
}

// SearchEngine exposes the match list for the search bar.
func (m *Model) SearchEngine() *search.Engine {
	return m.search
}

// searchOrigin is where a fresh search starts: the selection start, so
// re-running the query as it is typed keeps the same match.
func (m *Model) searchOrigin() int {
	if sel, ok := m.doc.Selection(); ok {
		start, _ := sel.Bounds()
		return start
	}
	return m.doc.CursorOffset()
}

func (m *Model) selectMatch(mt search.Match) tea.Cmd {
	before := m.doc.Cursor()
	m.doc.SetSelection(mt.Start, mt.End)
	return m.afterUpdate(before)
}

// SetSize sets the view dimensions, including gutter and minimap.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureCursorVisible()
	m.refreshHighlight()
}

// Focus gives the view keyboard input.
func (m *Model) Focus() { m.focused = true }

// Blur stops the view from handling keys.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the view handles keys.
func (m *Model) Focused() bool { return m.focused }

// ID returns the view ID carried by its messages.
func (m *Model) ID() string { return m.cfg.ID }

// Path returns the file path, empty for untitled documents.
func (m *Model) Path() string { return m.cfg.Path }

// SetPath changes the file path, re-resolving the language.
func (m *Model) SetPath(path string) {
	m.cfg.Path = path
	m.lang = syntax.ForExtension(path)
	m.hl.SetLanguage(m.lang, m.doc.LineCount())
	m.refreshHighlight()
}

// Document returns the edited document.
func (m *Model) Document() *buffer.Document { return m.doc }

// Language returns the resolved language.
func (m *Model) Language() syntax.Language { return m.lang }

// Modified reports the document's dirty flag.
func (m *Model) Modified() bool { return m.doc.Modified() }

// CursorPosition returns the cursor as 1-based line and column.
func (m *Model) CursorPosition() (line, col int) {
	c := m.doc.Cursor()
	return c.Line + 1, c.Col + 1
}

// WordWrap reports whether long lines wrap.
func (m *Model) WordWrap() bool { return m.cfg.WordWrap }

// SetWordWrap turns soft wrapping on or off.
func (m *Model) SetWordWrap(on bool) {
	m.cfg.WordWrap = on
	m.top, m.left = 0, 0
	m.ensureCursorVisible()
	m.refreshHighlight()
}

// ShowMinimap reports whether the minimap is drawn.
func (m *Model) ShowMinimap() bool { return m.cfg.ShowMinimap }

// SetShowMinimap shows or hides the minimap.
func (m *Model) SetShowMinimap(on bool) {
	m.cfg.ShowMinimap = on
	if on {
		m.minimap = buildMinimap(m.doc.Lines(), m.cfg.TabSize)
	}
	m.ensureCursorVisible()
}

// SetShowLineNumbers shows or hides the gutter.
func (m *Model) SetShowLineNumbers(on bool) {
	m.cfg.ShowLineNumbers = on
	m.ensureCursorVisible()
}

// Theme returns the name of the theme the view is styled with.
func (m *Model) Theme() string { return m.styles.Theme() }

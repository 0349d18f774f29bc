// Package app contains the root application model: the tab strip of open
// editors, the search bar, the status bar and the dialogs around them.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/onecode/onecode/internal/config"
	"github.com/onecode/onecode/internal/editor"
	"github.com/onecode/onecode/internal/keys"
	"github.com/onecode/onecode/internal/log"
	"github.com/onecode/onecode/internal/pubsub"
	"github.com/onecode/onecode/internal/syntax"
	"github.com/onecode/onecode/internal/theme"
	"github.com/onecode/onecode/internal/workspace"
)

// Options are the collaborators of the root model.
type Options struct {
	Config config.Config

	// ConfigPath is where theme, toggles and recent files are saved.
	// Empty disables persistence.
	ConfigPath string

	// Files are opened as tabs on start. A path that does not exist yet
	// opens as an empty document that is created on first save.
	Files []string

	Themes *theme.Manager
	Cache  syntax.TokenCache

	// Watcher and Events report external changes to open files. Both may
	// be nil.
	Watcher *workspace.Watcher
	Events  *pubsub.Broker[workspace.FileEvent]
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	files      []string
	recent     []string

	themes  *theme.Manager
	cache   syntax.TokenCache
	keys    keys.AppKeyMap
	watcher *workspace.Watcher

	// Open documents. Editors are held by reference; the active one owns
	// keyboard focus unless a bar or dialog is open.
	tabs         []tab
	active       int
	nextUntitled int

	search  searchBar
	saveAs  *savePrompt
	help    *helpView
	showing bool // help overlay visible
	confirm *confirmation
	status  status

	eventsCtx    context.Context
	eventsCancel context.CancelFunc
	listener     *pubsub.ContinuousListener[workspace.FileEvent]

	width  int
	height int
}

// New creates the root model. With no files an untitled document is open.
func New(opts Options) Model {
	themes := opts.Themes
	if themes == nil {
		themes = theme.NewManager(opts.Config.ActiveTheme())
	}

	m := Model{
		cfg:          opts.Config,
		configPath:   opts.ConfigPath,
		files:        opts.Files,
		recent:       opts.Config.RecentFiles,
		themes:       themes,
		cache:        opts.Cache,
		keys:         keys.DefaultAppKeyMap(),
		watcher:      opts.Watcher,
		nextUntitled: 1,
		search:       newSearchBar(),
		help:         newHelpView(),
	}

	if opts.Events != nil {
		m.eventsCtx, m.eventsCancel = context.WithCancel(context.Background())
		m.listener = pubsub.NewContinuousListener(m.eventsCtx, opts.Events)
	}

	if len(opts.Files) == 0 {
		m.newTab("", "")
		m.syncFocus()
	}
	return m
}

type autoSaveMsg struct{}

func (m Model) autoSaveCmd() tea.Cmd {
	if !m.cfg.AutoSave || m.cfg.AutoSaveInterval <= 0 {
		return nil
	}
	return tea.Tick(m.cfg.AutoSaveInterval, func(time.Time) tea.Msg { return autoSaveMsg{} })
}

// Init implements tea.Model. It opens the files given on the command line
// and starts the file event listener and the auto-save timer.
func (m Model) Init() tea.Cmd {
	opens := make([]tea.Cmd, 0, len(m.files))
	for _, path := range m.files {
		opens = append(opens, openFileCmd(path))
	}
	var cmds []tea.Cmd
	if len(opens) > 0 {
		cmds = append(cmds, tea.Sequence(opens...))
	}
	if m.listener != nil {
		cmds = append(cmds, m.listener.Listen())
	}
	cmds = append(cmds, m.autoSaveCmd())
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case fileOpenedMsg:
		return m.handleFileOpened(msg)

	case diskReadMsg:
		return m.handleDiskRead(msg)

	case editor.ChangedMsg:
		if t, ok := m.tabByID(msg.ID); ok {
			log.Debug(log.CatApp, "document changed", "tab", t.name(), "modified", msg.Modified)
		}
		return m, nil

	case editor.CursorMovedMsg:
		if ed := m.activeEditor(); ed != nil && ed.ID() == msg.ID {
			m.status.line, m.status.col = msg.Line, msg.Col
		}
		return m, nil

	case editor.MinimapRefreshMsg:
		if t, ok := m.tabByID(msg.ID); ok {
			_, cmd := t.ed.Update(msg)
			return m, cmd
		}
		return m, nil

	case autoSaveMsg:
		m.autoSave()
		return m, m.autoSaveCmd()

	case pubsub.Event[workspace.FileEvent]:
		cmd := m.handleFileEvent(msg)
		if m.listener == nil {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.listener.Listen())
	}

	if m.search.open {
		_, cmd := m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}
	if m.showing {
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.showing = false
			m.syncFocus()
		}
		return m, nil
	}
	if m.saveAs != nil {
		return m.handleSaveAsKey(msg)
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m.quit()
	case key.Matches(msg, k.New):
		m.newTab("", "")
		return m, m.activated()
	case key.Matches(msg, k.Save):
		return m, m.save(m.active, false)
	case key.Matches(msg, k.SaveAll):
		m.saveAll()
		return m, nil
	case key.Matches(msg, k.CloseTab):
		return m.requestClose(m.active)
	case key.Matches(msg, k.NextTab):
		return m, m.switchTab(m.active + 1)
	case key.Matches(msg, k.PrevTab):
		return m, m.switchTab(m.active - 1)
	case key.Matches(msg, k.Find):
		return m, m.openSearch()
	case key.Matches(msg, k.ToggleTheme):
		m.toggleTheme()
		return m, nil
	case key.Matches(msg, k.ToggleMinimap):
		m.toggleMinimap()
		return m, nil
	case key.Matches(msg, k.ToggleWrap):
		m.toggleWrap()
		return m, nil
	case key.Matches(msg, k.Help):
		m.showing = true
		m.syncFocus()
		return m, nil
	}

	if m.search.open {
		return m.handleSearchKey(msg)
	}

	ed := m.activeEditor()
	if ed == nil {
		return m, nil
	}
	// With the bar closed the last search can still be stepped through;
	// enter stays with the editor.
	if ed.SearchEngine().Active() {
		switch {
		case key.Matches(msg, k.FindNext) && msg.Type != tea.KeyEnter:
			return m, ed.FindNext()
		case key.Matches(msg, k.FindPrev):
			return m, ed.FindPrev()
		}
	}
	if key.Matches(msg, k.Escape) {
		ed.ClearSearch()
		m.clearStatus()
		return m, nil
	}

	_, cmd := ed.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	ed := m.activeEditor()
	switch {
	case key.Matches(msg, k.Escape):
		m.closeSearch()
		return m, nil
	case key.Matches(msg, k.FindNext):
		if ed == nil {
			return m, nil
		}
		return m, ed.FindNext()
	case key.Matches(msg, k.FindPrev):
		if ed == nil {
			return m, nil
		}
		return m, ed.FindPrev()
	case key.Matches(msg, k.ToggleCase):
		m.search.caseSensitive = !m.search.caseSensitive
		return m, m.runSearch()
	}

	changed, cmd := m.search.Update(msg)
	if changed {
		return m, tea.Batch(cmd, m.runSearch())
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil || m.saveAs != nil || m.showing {
		return m, nil
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	i, ok := m.tabAt(func(id string) bool {
		z := zone.Get(id)
		return z != nil && z.InBounds(msg)
	})
	if !ok {
		return m, nil
	}
	return m, m.switchTab(i)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.confirm
	switch msg.String() {
	case "s", "S":
		m.confirm = nil
		if c.quitting() {
			m.saveAll()
			if n := m.unsaved(); n > 0 {
				m.setStatus(levelWarn, "Untitled or failed files are still unsaved")
				m.syncFocus()
				return m, nil
			}
			return m, tea.Quit
		}
		if cmd := m.save(c.tab, true); m.saveAs != nil {
			return m, cmd
		}
		if m.tabs[c.tab].ed.Modified() {
			m.syncFocus()
			return m, nil
		}
		m.closeTab(c.tab)
		return m, m.activated()
	case "d", "D":
		m.confirm = nil
		if c.quitting() {
			return m, tea.Quit
		}
		m.closeTab(c.tab)
		return m, m.activated()
	case "c", "C", "esc":
		m.confirm = nil
		m.syncFocus()
	}
	return m, nil
}

func (m Model) requestClose(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.tabs) {
		return m, nil
	}
	if m.tabs[i].ed.Modified() {
		m.confirm = confirmClose(i, m.tabs[i].name())
		m.syncFocus()
		return m, nil
	}
	m.closeTab(i)
	return m, m.activated()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if n := m.unsaved(); n > 0 {
		m.confirm = confirmQuit(n)
		m.syncFocus()
		return m, nil
	}
	return m, tea.Quit
}

func (m Model) unsaved() int {
	n := 0
	for _, t := range m.tabs {
		if t.ed.Modified() {
			n++
		}
	}
	return n
}

// openSearch shows the search bar. A single-line selection becomes the
// query.
func (m *Model) openSearch() tea.Cmd {
	initial := ""
	if ed := m.activeEditor(); ed != nil {
		doc := ed.Document()
		if doc.HasSelection() {
			if sel := doc.SelectedText(); sel != "" && !strings.Contains(sel, "\n") {
				initial = sel
			}
		}
	}
	cmd := m.search.Open(initial)
	m.syncFocus()
	m.resize()
	if initial != "" {
		return tea.Batch(cmd, m.runSearch())
	}
	return cmd
}

func (m *Model) closeSearch() {
	m.search.Close()
	if ed := m.activeEditor(); ed != nil {
		ed.ClearSearch()
	}
	m.syncFocus()
	m.resize()
}

func (m *Model) runSearch() tea.Cmd {
	ed := m.activeEditor()
	if ed == nil {
		return nil
	}
	return ed.Search(m.search.Query(), m.search.caseSensitive)
}

func (m *Model) toggleTheme() {
	t := m.themes.Toggle()
	m.cfg.Theme = t.Name()
	m.persist("theme", func(path string) error { return config.SaveTheme(path, t.Name()) })
	m.setStatus(levelInfo, "Theme: "+t.Name())
}

func (m *Model) toggleMinimap() {
	on := !m.cfg.ShowMinimap
	m.cfg.ShowMinimap = on
	for _, t := range m.tabs {
		t.ed.SetShowMinimap(on)
	}
	m.persist("show_minimap", func(path string) error { return config.SaveSetting(path, "show_minimap", on) })
}

func (m *Model) toggleWrap() {
	on := !m.cfg.WordWrap
	m.cfg.WordWrap = on
	for _, t := range m.tabs {
		t.ed.SetWordWrap(on)
	}
	m.persist("word_wrap", func(path string) error { return config.SaveSetting(path, "word_wrap", on) })
}

// persist writes a setting to the config file. Failures only reach the
// status bar.
func (m *Model) persist(key string, save func(path string) error) {
	if m.configPath == "" {
		return
	}
	if err := save(m.configPath); err != nil {
		log.ErrorErr(log.CatConfig, "save setting", err, "key", key)
		m.setStatus(levelError, "Saving settings failed: "+err.Error())
	}
}

func (m *Model) setStatus(level statusLevel, message string) {
	m.status.level = level
	m.status.message = message
}

func (m *Model) clearStatus() {
	m.status.level = levelInfo
	m.status.message = ""
}

// syncFocus gives keyboard focus to the active editor unless a bar or
// dialog holds it.
func (m *Model) syncFocus() {
	free := !m.search.open && m.saveAs == nil && m.confirm == nil && !m.showing
	for i, t := range m.tabs {
		if free && i == m.active {
			t.ed.Focus()
		} else {
			t.ed.Blur()
		}
	}
}

// bodyHeight is the editor area between the tab bar and the bottom bars.
func (m Model) bodyHeight() int {
	h := m.height - 2
	if m.search.open || m.saveAs != nil {
		h--
	}
	return max(h, 1)
}

func (m *Model) resize() {
	for _, t := range m.tabs {
		t.ed.SetSize(m.width, m.bodyHeight())
	}
}

func (m Model) activeEditor() *editor.Model {
	if m.active < 0 || m.active >= len(m.tabs) {
		return nil
	}
	return m.tabs[m.active].ed
}

func (m Model) tabByID(id string) (tab, bool) {
	for _, t := range m.tabs {
		if t.ed.ID() == id {
			return t, true
		}
	}
	return tab{}, false
}

// Close releases the event subscription and the editors.
func (m *Model) Close() error {
	if m.eventsCancel != nil {
		m.eventsCancel()
	}
	for _, t := range m.tabs {
		if p := t.ed.Path(); p != "" && m.watcher != nil {
			m.watcher.Remove(p)
		}
		t.ed.Close()
	}
	return nil
}

// savePrompt asks for a path for an untitled document.
type savePrompt struct {
	input      textinput.Model
	tab        int
	closeAfter bool
}

package app

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/onecode/onecode/internal/buffer"
	"github.com/onecode/onecode/internal/config"
	"github.com/onecode/onecode/internal/editor"
	"github.com/onecode/onecode/internal/log"
	"github.com/onecode/onecode/internal/pubsub"
	"github.com/onecode/onecode/internal/workspace"
)

// fileOpenedMsg carries the result of reading a file for a new tab.
type fileOpenedMsg struct {
	Path string
	Text string
	Err  error
}

// diskReadMsg carries the content of an open file after an external change.
type diskReadMsg struct {
	Path string
	Text string
	Err  error
}

func openFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fileOpenedMsg{Path: path, Err: err}
		}
		text, err := workspace.Read(context.Background(), abs)
		return fileOpenedMsg{Path: abs, Text: text, Err: err}
	}
}

func diskReadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		text, err := workspace.Read(context.Background(), path)
		return diskReadMsg{Path: path, Text: text, Err: err}
	}
}

// newTab opens an editor on text and makes it active. An empty path makes
// an untitled document.
func (m *Model) newTab(path, text string) {
	ed := editor.New(buffer.New(text), editor.Config{
		Path:            path,
		TabSize:         m.cfg.TabSize,
		WordWrap:        m.cfg.WordWrap,
		ShowMinimap:     m.cfg.ShowMinimap,
		ShowLineNumbers: m.cfg.ShowLineNumbers,
	}, m.themes, m.cache)
	ed.SetSize(m.width, m.bodyHeight())

	t := tab{ed: ed}
	if path == "" {
		t.untitled = m.nextUntitled
		m.nextUntitled++
	} else {
		m.watch(path)
	}
	if m.search.open {
		if cur := m.activeEditor(); cur != nil {
			cur.ClearSearch()
		}
	}
	m.tabs = append(m.tabs, t)
	m.active = len(m.tabs) - 1
	log.Info(log.CatApp, "tab opened", "tab", t.name(), "tabs", len(m.tabs))
}

// activated refreshes focus and the status bar after the active tab
// changed. A search in progress moves to the new tab.
func (m *Model) activated() tea.Cmd {
	m.syncFocus()
	ed := m.activeEditor()
	if ed == nil {
		m.status.line, m.status.col = 0, 0
		return nil
	}
	m.status.line, m.status.col = ed.CursorPosition()
	if m.search.open {
		return m.runSearch()
	}
	return nil
}

// switchTab activates tab i, wrapping around at both ends.
func (m *Model) switchTab(i int) tea.Cmd {
	n := len(m.tabs)
	if n == 0 {
		return nil
	}
	i = ((i % n) + n) % n
	if i == m.active {
		return nil
	}
	if m.search.open {
		m.tabs[m.active].ed.ClearSearch()
	}
	m.active = i
	return m.activated()
}

func (m *Model) closeTab(i int) {
	t := m.tabs[i]
	if p := t.ed.Path(); p != "" && m.watcher != nil {
		m.watcher.Remove(p)
	}
	t.ed.Close()
	m.tabs = append(m.tabs[:i:i], m.tabs[i+1:]...)
	if m.active > i || m.active >= len(m.tabs) {
		m.active = max(m.active-1, 0)
	}
	log.Info(log.CatApp, "tab closed", "tab", t.name(), "tabs", len(m.tabs))
}

func (m Model) tabByPath(path string) (int, bool) {
	for i, t := range m.tabs {
		if t.ed.Path() == path {
			return i, true
		}
	}
	return 0, false
}

func (m *Model) watch(path string) {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Add(path); err != nil {
		log.Warn(log.CatWorkspace, "not watching file", "path", path, "error", err)
	}
}

func (m Model) handleFileOpened(msg fileOpenedMsg) (tea.Model, tea.Cmd) {
	if i, ok := m.tabByPath(msg.Path); ok {
		return m, m.switchTab(i)
	}
	switch {
	case errors.Is(msg.Err, fs.ErrNotExist):
		m.newTab(msg.Path, "")
		m.setStatus(levelInfo, "New file: "+filepath.Base(msg.Path))
	case msg.Err != nil:
		log.ErrorErr(log.CatWorkspace, "open failed", msg.Err, "path", msg.Path)
		m.setStatus(levelError, "Opening "+filepath.Base(msg.Path)+" failed: "+msg.Err.Error())
		return m, nil
	default:
		m.newTab(msg.Path, msg.Text)
		m.remember(msg.Path)
	}
	return m, m.activated()
}

// remember moves path to the front of the recent files list.
func (m *Model) remember(path string) {
	m.recent = config.AddRecent(m.recent, path)
	m.persist("recent_files", func(configPath string) error {
		return config.SaveRecentFiles(configPath, m.recent)
	})
}

// save writes tab i. An untitled tab opens the save-as prompt instead;
// closeAfter closes the tab once that prompt saves it.
func (m *Model) save(i int, closeAfter bool) tea.Cmd {
	if i < 0 || i >= len(m.tabs) {
		return nil
	}
	t := m.tabs[i]
	if t.ed.Path() == "" {
		return m.promptSaveAs(i, closeAfter)
	}
	if err := m.write(t); err == nil {
		m.setStatus(levelInfo, "Saved "+t.name())
	}
	return nil
}

// saveAll writes every modified tab that has a path.
func (m *Model) saveAll() {
	saved, skipped := 0, 0
	for _, t := range m.tabs {
		if !t.ed.Modified() {
			continue
		}
		if t.ed.Path() == "" {
			skipped++
			continue
		}
		if err := m.write(t); err != nil {
			return
		}
		saved++
	}
	switch {
	case skipped > 0:
		m.setStatus(levelWarn, "Saved "+plural(saved, "file")+", "+plural(skipped, "untitled file")+" skipped")
	default:
		m.setStatus(levelInfo, "Saved "+plural(saved, "file"))
	}
}

// autoSave writes modified tabs that have a path. Only failures are
// reported.
func (m *Model) autoSave() {
	for _, t := range m.tabs {
		if t.ed.Modified() && t.ed.Path() != "" {
			if err := m.write(t); err != nil {
				return
			}
		}
	}
}

// write saves the document of t to its path and marks it saved.
func (m *Model) write(t tab) error {
	path := t.ed.Path()
	if err := workspace.Write(context.Background(), path, t.ed.Document().Text()); err != nil {
		log.ErrorErr(log.CatWorkspace, "save failed", err, "path", path)
		m.setStatus(levelError, "Saving "+t.name()+" failed: "+err.Error())
		return err
	}
	t.ed.Document().MarkSaved()
	m.remember(path)
	return nil
}

func (m *Model) promptSaveAs(i int, closeAfter bool) tea.Cmd {
	ti := textinput.New()
	ti.Prompt = " Save as: "
	ti.Placeholder = "path/to/file"
	ti.CharLimit = 4096
	cmd := ti.Focus()
	m.saveAs = &savePrompt{input: ti, tab: i, closeAfter: closeAfter}
	m.syncFocus()
	m.resize()
	return cmd
}

func (m Model) handleSaveAsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.saveAs
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.saveAs = nil
		m.syncFocus()
		m.resize()
		return m, nil
	case msg.Type == tea.KeyEnter:
		path := strings.TrimSpace(p.input.Value())
		m.saveAs = nil
		m.resize()
		if path == "" {
			m.syncFocus()
			return m, nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			m.setStatus(levelError, "Invalid path: "+err.Error())
			m.syncFocus()
			return m, nil
		}
		if p.tab >= len(m.tabs) {
			m.syncFocus()
			return m, nil
		}
		t := m.tabs[p.tab]
		t.ed.SetPath(abs)
		m.watch(abs)
		if err := m.write(t); err != nil {
			m.syncFocus()
			return m, nil
		}
		m.setStatus(levelInfo, "Saved "+t.name())
		if p.closeAfter {
			m.closeTab(p.tab)
		}
		return m, m.activated()
	}

	var cmd tea.Cmd
	m.saveAs = &savePrompt{tab: p.tab, closeAfter: p.closeAfter}
	m.saveAs.input, cmd = p.input.Update(msg)
	return m, cmd
}

// handleFileEvent reacts to an external change of an open file. Changed
// files are read back off the update loop.
func (m *Model) handleFileEvent(ev pubsub.Event[workspace.FileEvent]) tea.Cmd {
	switch ev.Type {
	case pubsub.ChangedEvent:
		if _, ok := m.tabByPath(ev.Payload.Path); ok {
			return diskReadCmd(ev.Payload.Path)
		}
	case pubsub.RemovedEvent:
		if i, ok := m.tabByPath(ev.Payload.Path); ok {
			m.setStatus(levelWarn, m.tabs[i].name()+" was deleted or renamed on disk")
		}
	case pubsub.ErrorEvent:
		log.ErrorErr(log.CatWorkspace, "watcher error", ev.Payload.Err)
		m.setStatus(levelError, "File watcher: "+ev.Payload.Err.Error())
	}
	return nil
}

// handleDiskRead reloads a clean document from disk. Our own saves come
// back here with identical text and are ignored, as is a file differing
// only in line endings; a modified document keeps its edits.
func (m Model) handleDiskRead(msg diskReadMsg) (tea.Model, tea.Cmd) {
	i, ok := m.tabByPath(msg.Path)
	if !ok {
		return m, nil
	}
	if msg.Err != nil {
		log.Warn(log.CatWorkspace, "reload failed", "path", msg.Path, "error", msg.Err)
		return m, nil
	}
	t := m.tabs[i]
	if buffer.NormalizeNewlines(msg.Text) == t.ed.Document().Text() {
		return m, nil
	}
	if t.ed.Modified() {
		m.setStatus(levelWarn, t.name()+" changed on disk; unsaved edits kept")
		return m, nil
	}
	m.setStatus(levelInfo, "Reloaded "+t.name())
	return m, t.ed.Reload(msg.Text)
}

// Package log provides structured logging for onecode.
// Entries carry a level and a category and are only written when logging was
// enabled with --debug or ONECODE_DEBUG; the editor never logs to the terminal.
package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatBuffer    Category = "buffer"    // Document mutations
	CatSyntax    Category = "syntax"    // Lexer resolution and re-tokenization
	CatTheme     Category = "theme"     // Theme swaps and style map rebuilds
	CatSearch    Category = "search"    // Search runs
	CatEditor    Category = "editor"    // Editor view updates
	CatWorkspace Category = "workspace" // File reads, writes and watch events
	CatConfig    Category = "config"    // Configuration loading/saving
	CatCache     Category = "cache"     // Token cache operations
	CatApp       Category = "app"       // Host shell: tabs, status bar, auto-save
)

// Logger writes formatted entries to a writer.
type Logger struct {
	mu       sync.Mutex
	w        io.Writer
	closer   io.Closer
	enabled  bool
	minLevel Level
}

// current is the process logger. Nil until one of the Init functions runs,
// and every call is a no-op until then.
var current atomic.Pointer[Logger]

// InitWithTeaLog opens path through tea.LogToFile and logs there at
// minLevel. The returned func closes the file.
func InitWithTeaLog(path, prefix string, minLevel Level) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	l := &Logger{w: f, closer: f, enabled: true, minLevel: minLevel}
	current.Store(l)
	return func() {
		current.CompareAndSwap(l, nil)
		_ = l.closer.Close()
	}, nil
}

// InitWriter points the process logger at w. Used by tests.
func InitWriter(w io.Writer, minLevel Level) {
	current.Store(&Logger{w: w, enabled: true, minLevel: minLevel})
}

// ParseLevel maps "debug", "info", "warn" and "error" to a level. Anything
// else, including "1" or "true", means debug.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelDebug
	}
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current.Load(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current.Load(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	current.Load().write(LevelDebug, cat, msg, fields)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	current.Load().write(LevelInfo, cat, msg, fields)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	current.Load().write(LevelWarn, cat, msg, fields)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	current.Load().write(LevelError, cat, msg, fields)
}

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	errText := "<nil>"
	if err != nil {
		errText = err.Error()
	}
	current.Load().write(LevelError, cat, msg, append(fields, "error", errText))
}

// write formats one entry:
//
//	2025-12-06T10:45:00 [ERROR] [search] message key=value key2="two words"
func (l *Logger) write(level Level, cat Category, msg string, fields []any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel || l.w == nil {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			fmt.Fprintf(&b, " %v=<missing>", fields[i])
			break
		}
		fmt.Fprintf(&b, " %v=%s", fields[i], formatValue(fields[i+1]))
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(l.w, b.String())
}

// formatValue quotes values that would break the key=value layout.
func formatValue(v any) string {
	s := fmt.Sprint(v)
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

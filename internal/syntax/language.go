package syntax

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainText is the label shown for documents without a language.
const PlainText = "Plain Text"

// Language identifies how a document is highlighted. The zero value is
// plain text: no lexer, no highlighting.
type Language struct {
	// ID is the chroma lexer name, empty for plain text.
	ID string

	// Label is the human-readable name shown in the status bar.
	Label string
}

// IsPlain reports whether the language disables highlighting.
func (l Language) IsPlain() bool {
	return l.ID == ""
}

func (l Language) String() string {
	if l.Label == "" {
		return PlainText
	}
	return l.Label
}

// Lexer returns a lexer for the language, or nil for plain text.
func (l Language) Lexer() Lexer {
	if l.IsPlain() {
		return nil
	}
	lex := newChromaLexer(l.ID)
	if lex == nil {
		return nil
	}
	return lex
}

var extensions = map[string]string{
	".py":   "python",
	".c":    "cpp",
	".cpp":  "cpp",
	".h":    "cpp",
	".hpp":  "cpp",
	".html": "html",
	".htm":  "html",
	".css":  "css",
	".js":   "javascript",
	".json": "javascript",
	".java": "java",
	".php":  "php",
	".rb":   "ruby",
	".go":   "go",
	".rs":   "rust",
	".ts":   "typescript",
	".sql":  "sql",
	".sh":   "bash",
	".bat":  "batch",
	".xml":  "xml",
	".yaml": "yaml",
	".yml":  "yaml",
	".md":   "markdown",
}

// ForExtension resolves the language for path by its extension. Unknown
// extensions, and names chroma does not know, yield plain text.
func ForExtension(path string) Language {
	id, ok := extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Language{}
	}
	lex := lexers.Get(id)
	if lex == nil {
		return Language{}
	}
	return Language{ID: id, Label: lex.Config().Name}
}

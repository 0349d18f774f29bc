package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/onecode/onecode/internal/syntax"
)

// Style is how one token kind is drawn.
type Style struct {
	Foreground string
	Bold       bool
	Italic     bool
}

// Lipgloss converts s to a lipgloss style.
func (s Style) Lipgloss() lipgloss.Style {
	st := lipgloss.NewStyle().Bold(s.Bold).Italic(s.Italic)
	if s.Foreground != "" {
		st = st.Foreground(lipgloss.Color(s.Foreground))
	}
	return st
}

// StyleMap maps token kinds to styles for one theme.
type StyleMap struct {
	theme  string
	styles map[syntax.Kind]Style
}

// Build derives the token styles of t. Only the coarse kinds and a few
// fine-grained ones are mapped; the rest inherit through the kind parent
// table.
func Build(t Theme) StyleMap {
	keyword := t.Color(RoleKeyword)
	function := t.Color(RoleFunction)
	comment := t.Color(RoleComment)
	str := t.Color(RoleString)
	number := t.Color(RoleNumber)

	return StyleMap{
		theme: t.Name(),
		styles: map[syntax.Kind]Style{
			syntax.Keyword:          {Foreground: keyword, Bold: true},
			syntax.KeywordNamespace: {Foreground: keyword, Bold: true},
			syntax.FunctionName:     {Foreground: function},
			syntax.ClassName:        {Foreground: function, Bold: true},
			syntax.Comment:          {Foreground: comment, Italic: true},
			syntax.CommentSingle:    {Foreground: comment, Italic: true},
			syntax.String:           {Foreground: str},
			syntax.StringDouble:     {Foreground: str},
			syntax.Number:           {Foreground: number},
			syntax.Operator:         {Foreground: t.Color(RoleOperator)},
		},
	}
}

// Theme returns the name of the theme the map was built from.
func (m StyleMap) Theme() string {
	return m.theme
}

// Resolve returns the style for k, walking the kind parent chain on a miss.
// False means the token renders unstyled.
func (m StyleMap) Resolve(k syntax.Kind) (Style, bool) {
	return syntax.Lookup(k, func(k syntax.Kind) (Style, bool) {
		s, ok := m.styles[k]
		return s, ok
	})
}

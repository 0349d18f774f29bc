package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/onecode/onecode/internal/syntax"
)

func TestBuild_DarkFormats(t *testing.T) {
	m := Build(Dark)

	kw, ok := m.Resolve(syntax.Keyword)
	require.True(t, ok)
	require.Equal(t, Style{Foreground: "#C586C0", Bold: true}, kw)

	cls, _ := m.Resolve(syntax.ClassName)
	require.Equal(t, Style{Foreground: "#DCDCAA", Bold: true}, cls)

	cm, _ := m.Resolve(syntax.CommentSingle)
	require.True(t, cm.Italic)
}

func TestResolve_WalksParentChain(t *testing.T) {
	m := Build(Dark)

	tests := []struct {
		kind syntax.Kind
		fg   string
	}{
		{syntax.StringSingle, "#CE9178"},
		{syntax.NumberInteger, "#B5CEA8"},
		{syntax.NumberFloat, "#B5CEA8"},
		{syntax.CommentMultiline, "#6A9955"},
	}
	for _, tt := range tests {
		s, ok := m.Resolve(tt.kind)
		require.True(t, ok, tt.kind.String())
		require.Equal(t, tt.fg, s.Foreground, tt.kind.String())
	}
}

func TestResolve_OtherIsUnstyled(t *testing.T) {
	_, ok := Build(Light).Resolve(syntax.Other)
	require.False(t, ok)
}

func TestStyle_Lipgloss(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	out := Style{Foreground: "#0000FF", Bold: true}.Lipgloss().Render("if")

	require.Contains(t, out, "38;2;0;0;255")
	require.Contains(t, out, "if")
}

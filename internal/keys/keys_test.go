package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestEditorKeyMap_Assignments(t *testing.T) {
	k := DefaultEditorKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"toggle comment accepts the ctrl+_ terminals send", k.ToggleComment, []string{"ctrl+_", "ctrl+/"}},
		{"duplicate line", k.DuplicateLine, []string{"ctrl+d"}},
		{"delete line", k.DeleteLine, []string{"ctrl+k"}},
		{"newline", k.Newline, []string{"enter"}},
		{"tab", k.Tab, []string{"tab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestAppKeyMap_NoDuplicateKeys(t *testing.T) {
	seen := make(map[string]string)
	for _, group := range DefaultAppKeyMap().FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				if prev, ok := seen[k]; ok && k != "enter" {
					t.Fatalf("key %q bound to both %q and %q", k, prev, b.Help().Desc)
				}
				seen[k] = b.Help().Desc
			}
		}
	}
}

func TestAppAndEditorKeysDoNotCollide(t *testing.T) {
	app := make(map[string]bool)
	for _, group := range DefaultAppKeyMap().FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				app[k] = true
			}
		}
	}
	for _, group := range DefaultEditorKeyMap().FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				if k == "enter" {
					continue // find-next only applies inside the search bar
				}
				require.False(t, app[k], "editor key %q shadowed by the window", k)
			}
		}
	}
}

func TestHelpTextIsSet(t *testing.T) {
	for _, group := range DefaultAppKeyMap().FullHelp() {
		for _, b := range group {
			require.NotEmpty(t, b.Help().Key)
			require.NotEmpty(t, b.Help().Desc)
		}
	}
	for _, b := range DefaultAppKeyMap().ShortHelp() {
		require.True(t, b.Enabled())
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTheme_CreatesNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, SaveTheme(path, "light"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "theme: light\n", string(data))
}

func TestSaveTheme_PreservesCommentsAndOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveTheme(path, "light"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "theme: light")
	assert.NotContains(t, content, "theme: dark")
	assert.Contains(t, content, "# Spaces inserted per indent level")
	assert.Contains(t, content, "tab_size: 4")

	cfg := load(t, path)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 4, cfg.TabSize)
}

func TestSaveRecentFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	files := make([]string, 0, 12)
	for i := range 12 {
		files = append(files, filepath.Join("/src", string(rune('a'+i))+".go"))
	}
	require.NoError(t, SaveRecentFiles(path, files))

	cfg := load(t, path)
	require.Len(t, cfg.RecentFiles, MaxRecentFiles)
	require.Equal(t, "/src/a.go", cfg.RecentFiles[0])

	require.NoError(t, SaveRecentFiles(path, nil))
	cfg = load(t, path)
	require.Empty(t, cfg.RecentFiles)
}

func TestSaveSetting_AppendsMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("# mine\ntab_size: 2\n"), 0o600))

	require.NoError(t, SaveSetting(path, "show_minimap", false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# mine")
	assert.Contains(t, string(data), "tab_size: 2")
	assert.Contains(t, string(data), "show_minimap: false")
}

func TestSaveSetting_RejectsNonMappingRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o600))

	require.Error(t, SaveSetting(path, "theme", "dark"))
}

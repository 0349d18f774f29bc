package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_ReplacesInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("ok \xff\xfe done\n"), 0o644))

	text, err := Read(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "ok �� done\n", text)
}

func TestRead_DropsByteOrderMark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.py")
	require.NoError(t, os.WriteFile(path, []byte("\xef\xbb\xbfprint(1)"), 0o644))

	text, err := Read(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "print(1)", text)
}

func TestRead_UTF16MarkIsNotHonored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("\xff\xfeab\n"), 0o644))

	text, err := Read(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "\uFFFD\uFFFDab\n", text)
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(context.Background(), dir)
	require.ErrorIs(t, err, ErrIsDirectory)

	_, err = Read(context.Background(), filepath.Join(dir, "missing.go"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWrite_ReplacesAtomicallyAndKeepsMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.sh")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o755))

	require.NoError(t, Write(context.Background(), path, "echo hi\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "echo hi\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWrite_CreatesMissingDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "new.txt")

	require.NoError(t, Write(context.Background(), path, "x"))

	text, err := Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "x", text)
}

func TestWrite_RefusesDirectory(t *testing.T) {
	err := Write(context.Background(), t.TempDir(), "x")
	require.ErrorIs(t, err, ErrIsDirectory)
}

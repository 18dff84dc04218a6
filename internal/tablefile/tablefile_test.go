package tablefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, "chores"))

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, "chores", got)
}

func TestWrite_InvalidName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"", "  ", " padded", "two\nlines"} {
		assert.Error(t, Write(dir, name), "name %q", name)
	}
	_, err := os.Stat(filepath.Join(dir, FileName))
	assert.True(t, os.IsNotExist(err))
}

func TestRead_Missing(t *testing.T) {
	got, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRead_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, FileName), []byte("  chores \n\n"), 0644)

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, "chores", got)
}

func TestFind_CurrentDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, "work"))

	table, foundDir, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, "work", table)
	assert.Equal(t, dir, foundDir)
}

func TestFind_ParentDir(t *testing.T) {
	parent := t.TempDir()
	child := filepath.Join(parent, "sub", "deep")
	require.NoError(t, os.MkdirAll(child, 0755))
	require.NoError(t, Write(parent, "work"))

	table, foundDir, err := Find(child)
	require.NoError(t, err)
	assert.Equal(t, "work", table)
	assert.Equal(t, parent, foundDir)
}

func TestFind_NotFound(t *testing.T) {
	table, foundDir, err := Find(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, table)
	assert.Empty(t, foundDir)
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	removed, err := Remove(dir)
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, Write(dir, "work"))
	removed, err = Remove(dir)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Empty(t, got)
}

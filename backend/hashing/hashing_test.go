package hashing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestHashFileKnownDigest(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.mp3", []byte("hello"))

	digest, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d", digest)
}

func TestHashFileDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.mp3", []byte("same bytes"))
	b := writeFile(t, dir, "b.flac", []byte("same bytes"))

	da, err := HashFile(a)
	require.NoError(t, err)
	db, err := HashFile(b)
	require.NoError(t, err)

	// Digest depends on content only, not name or extension.
	assert.Equal(t, da, db)

	again, err := HashFile(a)
	require.NoError(t, err)
	assert.Equal(t, da, again)
}

func TestHashFileSingleByteDifference(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.mp3", []byte("same bytes"))
	c := writeFile(t, dir, "c.mp3", []byte("same bytez"))

	da, err := HashFile(a)
	require.NoError(t, err)
	dc, err := HashFile(c)
	require.NoError(t, err)
	assert.NotEqual(t, da, dc)
}

func TestHashFileMissing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.Error(t, err)
}

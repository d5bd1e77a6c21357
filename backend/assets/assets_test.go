package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveImage(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "assets"))

	path, err := m.SaveImage("artist-1", []byte("png bytes"), "png")
	require.NoError(t, err)
	assert.Equal(t, "artist-1.png", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), data)
}

func TestSaveImageOverwrites(t *testing.T) {
	m := NewManager(t.TempDir())

	first, err := m.SaveImage("owner", []byte("old"), "jpg")
	require.NoError(t, err)
	second, err := m.SaveImage("owner", []byte("new"), "jpg")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestSaveImageReplacesOtherExtension(t *testing.T) {
	m := NewManager(t.TempDir())

	old, err := m.SaveImage("owner", []byte("jpeg"), ".jpg")
	require.NoError(t, err)
	_, err = m.SaveImage("owner", []byte("png"), "png")
	require.NoError(t, err)

	_, err = os.Stat(old)
	assert.True(t, os.IsNotExist(err), "stale jpg variant should be removed")
}

func TestSaveImageDefaultExtension(t *testing.T) {
	m := NewManager(t.TempDir())

	path, err := m.SaveImage("owner", []byte("img"), "")
	require.NoError(t, err)
	assert.Equal(t, "owner.jpg", filepath.Base(path))
}

package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.mp3"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "c.flac"), []byte("x"), 0o644))

	paths, err := Scan(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a.mp3"),
		filepath.Join(root, "sub", "c.flac"),
	}, paths)
}

func TestScanCaseInsensitiveExtensions(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "LOUD.MP3"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "quiet.Ogg"), []byte("x"), 0o644))

	paths, err := Scan(root)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"song.M4A", true},
		{"song.flac", true},
		{"song.wav", true},
		{"song.ogg", true},
		{"song.opus", false},
		{"notes.txt", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Supported(tt.path))
		})
	}
}

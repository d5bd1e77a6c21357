package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractZeroByteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty track.mp3")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	rec := Extract(path)

	assert.Equal(t, "empty track", rec.Title)
	assert.Equal(t, "Unknown Artist", rec.Artist)
	assert.Equal(t, "Unknown Album", rec.Album)
	assert.Equal(t, path, rec.FilePath)
	assert.Nil(t, rec.Artwork)
}

func TestExtractGarbageBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.flac")
	require.NoError(t, os.WriteFile(path, []byte("definitely not flac"), 0o644))

	rec := Extract(path)

	assert.Equal(t, "noise", rec.Title)
	assert.Equal(t, "Unknown Artist", rec.Artist)
	assert.Equal(t, "Unknown Album", rec.Album)
	assert.GreaterOrEqual(t, rec.Duration, 0.0)
}

func TestExtractMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.ogg")

	rec := Extract(path)

	// Extraction degrades instead of failing, even when the file is absent.
	assert.Equal(t, "gone", rec.Title)
	assert.NotEmpty(t, rec.Artist)
	assert.NotEmpty(t, rec.Album)
}

func TestWriteTagsNonMP3IsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.wav")
	require.NoError(t, os.WriteFile(path, []byte("pcm-ish"), 0o644))

	assert.NoError(t, WriteTags(path, "T", "A", "B", "G", 2001))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("a", "b"))
	assert.Equal(t, "b", firstNonEmpty("", "b"))
	assert.Equal(t, "b", firstNonEmpty("   ", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}

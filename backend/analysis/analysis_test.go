package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeUnsupportedFormat(t *testing.T) {
	props, err := Probe("/music/track.m4a")
	require.NoError(t, err)
	assert.Zero(t, props.Duration)
	assert.Zero(t, props.Bitrate)
	assert.Zero(t, props.SampleRate)
}

func TestProbeMissingFile(t *testing.T) {
	_, err := Probe(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.Error(t, err)
}

func TestProbeEmptyMP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.mp3")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	props, err := Probe(path)
	require.NoError(t, err)
	assert.Zero(t, props.Duration)
}

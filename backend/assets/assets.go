// Package assets persists externally supplied image blobs (artist images,
// album artwork) under an application-owned directory.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

var logger = log.WithPrefix("assets")

// Manager writes id-addressed binary blobs under dir.
type Manager struct {
	dir string
}

func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// SaveImage writes the bytes as <ownerID>.<ext> under the asset directory
// and returns the stored path. Re-saving for the same owner replaces the
// prior file, including one stored under a different extension.
func (m *Manager) SaveImage(ownerID string, data []byte, ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		ext = "jpg"
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create asset dir: %w", err)
	}

	// Drop any earlier image stored for this owner under another extension
	// so one owner never accumulates stale variants.
	if stale, err := filepath.Glob(filepath.Join(m.dir, ownerID+".*")); err == nil {
		for _, p := range stale {
			if filepath.Ext(p) != "."+ext {
				os.Remove(p)
			}
		}
	}

	path := filepath.Join(m.dir, ownerID+"."+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write asset %s: %w", path, err)
	}

	logger.Debug("asset saved", "owner", ownerID, "bytes", len(data))
	return path, nil
}

// Package scanner finds importable audio files under a directory tree.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

var logger = log.WithPrefix("scanner")

// supportedExtensions is the fixed allow-list of importable formats.
var supportedExtensions = []string{".mp3", ".m4a", ".flac", ".wav", ".ogg"}

// Supported reports whether the path has an importable audio extension.
func Supported(path string) bool {
	return slices.Contains(supportedExtensions, strings.ToLower(filepath.Ext(path)))
}

// Scan walks root recursively and returns every regular file whose
// lowercased extension is on the allow-list. Unreadable entries are skipped
// without aborting the walk; a missing or unreadable root is an error.
func Scan(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("scan root %s: %w", root, err)
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug("skipping unreadable entry", "path", path, "err", err)
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if Supported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	logger.Info("scan complete", "root", root, "files", len(paths))
	return paths, nil
}

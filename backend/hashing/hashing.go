// Package hashing computes content digests of audio files so duplicate
// imports can be detected regardless of the file's name or location.
package hashing

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

const chunkSize = 64 * 1024

// HashFile streams the file through SHA-1 in fixed-size chunks and returns
// the hex digest. The digest depends on the file bytes only. Unlike tag
// extraction, read failures here are surfaced to the caller.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha1.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

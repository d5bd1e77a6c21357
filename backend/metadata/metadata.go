package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resonate/backend/analysis"

	"github.com/bogem/id3v2"
	"github.com/charmbracelet/log"
	"github.com/dhowden/tag"
)

var logger = log.WithPrefix("metadata")

const (
	unknownArtist = "Unknown Artist"
	unknownAlbum  = "Unknown Album"

	maxArtworkBytes = 8 * 1024 * 1024
)

// TagRecord is the best-effort metadata extracted from one audio file.
type TagRecord struct {
	FilePath    string
	Title       string
	Artist      string
	Album       string
	Genre       string
	Year        int
	Duration    float64
	Artwork     []byte
	ArtworkMIME string
}

// Extract reads the tags of the file at path. It never fails: on open or
// parse errors it degrades to a record with the title taken from the
// filename and placeholder artist/album. Duration is probed from the audio
// frames independently of tag parsing, so a corrupt tag block still yields
// a duration and vice versa.
func Extract(path string) TagRecord {
	rec := fallbackRecord(path)

	f, err := os.Open(path)
	if err != nil {
		logger.Warn("open failed, using filename fallback", "path", path, "err", err)
		rec.Duration = probeDuration(path)
		return rec
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		logger.Debug("tag read failed, using filename fallback", "path", path, "err", err)
		rec.Duration = probeDuration(path)
		return rec
	}

	rec.Title = firstNonEmpty(m.Title(), rec.Title)
	rec.Artist = firstNonEmpty(m.Artist(), unknownArtist)
	rec.Album = firstNonEmpty(m.Album(), unknownAlbum)
	rec.Genre = m.Genre()
	rec.Year = m.Year()
	rec.Duration = probeDuration(path)

	if pic := m.Picture(); pic != nil {
		if len(pic.Data) > maxArtworkBytes {
			logger.Warn("embedded artwork too large, skipping", "path", path, "bytes", len(pic.Data))
		} else {
			rec.Artwork = pic.Data
			rec.ArtworkMIME = firstNonEmpty(pic.MIMEType, "image/jpeg")
		}
	}

	return rec
}

func probeDuration(path string) float64 {
	props, err := analysis.Probe(path)
	if err != nil {
		logger.Debug("duration probe failed", "path", path, "err", err)
		return 0
	}
	return props.Duration
}

func fallbackRecord(path string) TagRecord {
	return TagRecord{
		FilePath: path,
		Title:    trimExt(filepath.Base(path)),
		Artist:   unknownArtist,
		Album:    unknownAlbum,
	}
}

// WriteTags writes the mutable song fields back into the file's ID3v2 tag.
// Only mp3 carries writable tags here; other formats are left untouched.
func WriteTags(path, title, artist, album, genre string, year int) error {
	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return nil
	}

	id3Tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open id3v2 tag: %w", err)
	}
	defer id3Tag.Close()

	id3Tag.SetTitle(title)
	id3Tag.SetArtist(artist)
	id3Tag.SetAlbum(album)
	id3Tag.SetGenre(genre)
	if year > 0 {
		id3Tag.SetYear(fmt.Sprintf("%d", year))
	}

	if err := id3Tag.Save(); err != nil {
		return fmt.Errorf("save id3v2 tag: %w", err)
	}
	logger.Info("tags written", "path", filepath.Base(path))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

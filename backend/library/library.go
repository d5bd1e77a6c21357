// Package library orchestrates batch imports: extract metadata per file,
// reconcile artist and album identity against the store, and insert songs.
package library

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"resonate/backend/assets"
	"resonate/backend/hashing"
	"resonate/backend/metadata"
	"resonate/backend/scanner"
	"resonate/backend/store"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var logger = log.WithPrefix("library")

// ImportError records why one file of a batch was not imported.
type ImportError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// ImportResult aggregates the songs created by one batch alongside the
// per-file failures. A batch never fails as a whole because of one file.
type ImportResult struct {
	Songs  []store.Song  `json:"songs"`
	Errors []ImportError `json:"errors"`
}

type extracted struct {
	rec  metadata.TagRecord
	hash string
}

// Manager coordinates imports against a shared store. Extraction and
// hashing fan out over a worker pool; store mutations stay serialized in
// path order.
type Manager struct {
	store  *store.Store
	assets *assets.Manager

	extract func(string) metadata.TagRecord
	hash    func(string) (string, error)
}

func NewManager(st *store.Store, am *assets.Manager) *Manager {
	return &Manager{
		store:   st,
		assets:  am,
		extract: metadata.Extract,
		hash:    hashing.HashFile,
	}
}

// Import processes each path independently: extract, find-or-create the
// artist by name, find-or-create the album by (name, artist), then save the
// song. A failure aborts only that file; artists and albums already created
// for it stay. Cancellation is checked between files and leaves already
// committed songs in place.
func (m *Manager) Import(ctx context.Context, paths []string) (*ImportResult, error) {
	result := &ImportResult{Songs: []store.Song{}, Errors: []ImportError{}}
	unique := dedupe(paths)
	if len(unique) == 0 {
		return result, nil
	}

	prepared := m.extractAll(unique)

	for _, path := range unique {
		if err := ctx.Err(); err != nil {
			logger.Warn("import cancelled", "remaining", len(unique)-len(result.Songs)-len(result.Errors))
			return result, nil
		}

		song, err := m.importOne(prepared[path])
		if err != nil {
			result.Errors = append(result.Errors, ImportError{Path: path, Reason: err.Error()})
			continue
		}
		result.Songs = append(result.Songs, song)
	}

	logger.Info("import finished", "songs", len(result.Songs), "errors", len(result.Errors))
	return result, nil
}

// ScanAndImport chains the directory scanner into a batch import.
func (m *Manager) ScanAndImport(ctx context.Context, root string) (*ImportResult, error) {
	paths, err := scanner.Scan(root)
	if err != nil {
		return nil, err
	}
	return m.Import(ctx, paths)
}

// extractAll runs extraction and hashing over a worker pool. Neither step
// touches the store, so this part is free to run fully parallel.
func (m *Manager) extractAll(paths []string) map[string]extracted {
	workerCount := runtime.NumCPU() * 2
	if len(paths) < workerCount {
		workerCount = len(paths)
	}

	type keyed struct {
		path string
		ext  extracted
	}

	jobs := make(chan string)
	results := make(chan keyed, len(paths))
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				e := extracted{rec: m.extract(path)}
				if digest, err := m.hash(path); err == nil {
					e.hash = digest
				} else {
					logger.Debug("content hash unavailable", "path", path, "err", err)
				}
				results <- keyed{path: path, ext: e}
			}
		}()
	}

	for _, p := range paths {
		jobs <- p
	}
	close(jobs)
	wg.Wait()
	close(results)

	prepared := make(map[string]extracted, len(paths))
	for r := range results {
		prepared[r.path] = r.ext
	}
	return prepared
}

// importOne reconciles one file against the store. Either both foreign keys
// are attached or the song is not saved at all.
func (m *Manager) importOne(e extracted) (store.Song, error) {
	rec := e.rec

	artist, err := m.store.FindOrCreateArtist(rec.Artist)
	if err != nil {
		return store.Song{}, fmt.Errorf("reconcile artist: %w", err)
	}

	album, err := m.store.FindOrCreateAlbum(rec.Album, artist.ID, artist.Name)
	if err != nil {
		return store.Song{}, fmt.Errorf("reconcile album: %w", err)
	}

	song := store.Song{
		ID:          uuid.New().String(),
		Title:       rec.Title,
		Artist:      artist.Name,
		ArtistID:    artist.ID,
		Album:       album.Name,
		AlbumID:     album.ID,
		Genre:       rec.Genre,
		Year:        rec.Year,
		Duration:    rec.Duration,
		FilePath:    rec.FilePath,
		ContentHash: e.hash,
	}

	if len(rec.Artwork) > 0 && m.assets != nil {
		if artPath, err := m.assets.SaveImage(song.ID, rec.Artwork, extensionForMIME(rec.ArtworkMIME)); err == nil {
			song.ArtworkPath = artPath
			if album.CoverPath == "" {
				if err := m.store.SetAlbumCover(album.ID, artPath); err != nil {
					logger.Debug("album cover not set", "album", album.Name, "err", err)
				}
			}
		} else {
			logger.Warn("artwork save failed", "path", filepath.Base(rec.FilePath), "err", err)
		}
	}

	saved, err := m.store.SaveSong(song)
	if err != nil {
		return store.Song{}, fmt.Errorf("save song: %w", err)
	}
	return saved, nil
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var unique []string
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}

func extensionForMIME(mimeType string) string {
	switch mimeType {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	default:
		return "jpg"
	}
}

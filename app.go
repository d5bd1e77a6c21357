package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resonate/backend/assets"
	"resonate/backend/hashing"
	"resonate/backend/library"
	"resonate/backend/metadata"
	"resonate/backend/storage"
	"resonate/backend/store"

	"github.com/charmbracelet/log"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

var errNotReady = errors.New("library store unavailable")

type App struct {
	ctx     context.Context
	store   *store.Store
	library *library.Manager
	assets  *assets.Manager
	logger  *log.Logger
}

func NewApp() *App {
	return &App{logger: log.WithPrefix("app")}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	st, err := store.Open(storage.DatabasePath())
	if err != nil {
		a.logger.Error("open library store failed", "err", err)
		return
	}
	a.store = st
	a.assets = assets.NewManager(storage.AssetsDir())
	a.library = library.NewManager(st, a.assets)
}

func (a *App) shutdown(ctx context.Context) {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("close library store failed", "err", err)
		}
	}
}

func (a *App) ready() error {
	if a.store == nil {
		return errNotReady
	}
	return nil
}

func (a *App) SelectFiles() ([]string, error) {
	return runtime.OpenMultipleFilesDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Select Music Files",
		Filters: []runtime.FileFilter{
			{DisplayName: "Music Files", Pattern: "*.mp3;*.m4a;*.flac;*.wav;*.ogg"},
		},
	})
}

func (a *App) SelectDirectory() (string, error) {
	return runtime.OpenDirectoryDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Select Music Folder",
	})
}

func (a *App) ImportFiles(paths []string) (*library.ImportResult, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	return a.library.Import(a.ctx, paths)
}

func (a *App) ScanDirectory(root string) (*library.ImportResult, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	return a.library.ScanAndImport(a.ctx, root)
}

func (a *App) GetAllSongs() ([]store.Song, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	return a.store.GetAllSongs()
}

func (a *App) GetAllArtists() ([]store.Artist, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	return a.store.GetAllArtists()
}

func (a *App) GetAllAlbums() ([]store.Album, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	return a.store.GetAllAlbums()
}

func (a *App) GetAllPlaylists() ([]store.Playlist, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	return a.store.GetAllPlaylists()
}

// GetPlaylistSongs resolves a playlist's ordered song ids to songs. Ids left
// dangling by a song delete are filtered out here, not in the store.
func (a *App) GetPlaylistSongs(playlistID string) ([]store.Song, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	p, err := a.store.GetPlaylist(playlistID)
	if err != nil {
		return nil, err
	}

	songs := make([]store.Song, 0, len(p.SongIDs))
	for _, id := range p.SongIDs {
		s, err := a.store.FindSongByID(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		songs = append(songs, s)
	}
	return songs, nil
}

func (a *App) CreateArtist(name, genre string) (store.Artist, error) {
	if err := a.ready(); err != nil {
		return store.Artist{}, err
	}
	return a.store.InsertArtist(name, genre)
}

func (a *App) CreatePlaylist(name, description, color string) (store.Playlist, error) {
	if err := a.ready(); err != nil {
		return store.Playlist{}, err
	}
	return a.store.CreatePlaylist(name, description, color)
}

func (a *App) AddSongToPlaylist(playlistID, songID string) error {
	if err := a.ready(); err != nil {
		return err
	}
	return a.store.AddSongToPlaylist(playlistID, songID)
}

func (a *App) RemoveSongFromPlaylist(playlistID, songID string) error {
	if err := a.ready(); err != nil {
		return err
	}
	return a.store.RemoveSongFromPlaylist(playlistID, songID)
}

func (a *App) DeletePlaylist(playlistID string) error {
	if err := a.ready(); err != nil {
		return err
	}
	return a.store.DeletePlaylist(playlistID)
}

func (a *App) DeleteSong(songID string) error {
	if err := a.ready(); err != nil {
		return err
	}
	return a.store.DeleteSong(songID)
}

// UpdateSong mutates the named fields of an existing song and writes the
// same fields back into the file's tags where the format supports it.
func (a *App) UpdateSong(song store.Song) (store.Song, error) {
	if err := a.ready(); err != nil {
		return store.Song{}, err
	}
	if err := a.store.UpdateSong(song); err != nil {
		return store.Song{}, err
	}
	updated, err := a.store.FindSongByID(song.ID)
	if err != nil {
		return store.Song{}, err
	}
	if err := metadata.WriteTags(updated.FilePath, updated.Title, updated.Artist, updated.Album, updated.Genre, updated.Year); err != nil {
		a.logger.Warn("tag write-back failed", "path", updated.FilePath, "err", err)
	}
	return updated, nil
}

func (a *App) SaveArtistImage(artistID, dataURL string) (string, error) {
	if err := a.ready(); err != nil {
		return "", err
	}
	mimeType, data, err := parseDataURL(dataURL)
	if err != nil {
		return "", err
	}
	path, err := a.assets.SaveImage(artistID, data, extensionFromMime(mimeType))
	if err != nil {
		return "", err
	}
	if err := a.store.SetArtistImage(artistID, path); err != nil {
		return "", err
	}
	return path, nil
}

func (a *App) SaveAlbumCover(albumID, dataURL string) (string, error) {
	if err := a.ready(); err != nil {
		return "", err
	}
	mimeType, data, err := parseDataURL(dataURL)
	if err != nil {
		return "", err
	}
	path, err := a.assets.SaveImage(albumID, data, extensionFromMime(mimeType))
	if err != nil {
		return "", err
	}
	if err := a.store.SetAlbumCover(albumID, path); err != nil {
		return "", err
	}
	return path, nil
}

func (a *App) HashFile(path string) (string, error) {
	return hashing.HashFile(path)
}

// ReadAudioFile returns the file bytes as a data URL for the front-end's
// audio element. The backend does not decode or stream the audio itself.
func (a *App) ReadAudioFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read audio %s: %w", path, err)
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeForPath(path), base64.StdEncoding.EncodeToString(data)), nil
}

func (a *App) SaveLibraryState(blob string) error {
	return storage.SaveLibraryState([]byte(blob))
}

func (a *App) LoadLibraryState() (string, error) {
	data, err := storage.LoadLibraryState()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *App) GetSettings() (storage.Settings, error) {
	return storage.LoadSettings()
}

func (a *App) SaveSettings(s storage.Settings) error {
	return storage.SaveSettings(s)
}

func parseDataURL(dataURL string) (string, []byte, error) {
	parts := strings.SplitN(dataURL, ",", 2)
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:") {
		return "", nil, fmt.Errorf("malformed data URL")
	}
	mimeType := strings.TrimSuffix(strings.TrimPrefix(parts[0], "data:"), ";base64")
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL: %w", err)
	}
	return mimeType, data, nil
}

func extensionFromMime(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	}
	return "jpg"
}

func mimeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	case ".flac":
		return "audio/flac"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	}
	return "application/octet-stream"
}

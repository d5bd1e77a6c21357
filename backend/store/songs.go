package store

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

type Song struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	ArtistID    string  `json:"artistId"`
	Album       string  `json:"album"`
	AlbumID     string  `json:"albumId"`
	Genre       string  `json:"genre"`
	Year        int     `json:"year"`
	Duration    float64 `json:"duration"`
	FilePath    string  `json:"filePath"`
	ContentHash string  `json:"contentHash"`
	ArtworkPath string  `json:"artworkPath"`
}

const songColumns = `id, title, artist, artist_id, album, album_id, genre, year, duration, file_path, content_hash, artwork_path`

func scanSong(row interface{ Scan(...any) error }) (Song, error) {
	var so Song
	err := row.Scan(&so.ID, &so.Title, &so.Artist, &so.ArtistID, &so.Album, &so.AlbumID,
		&so.Genre, &so.Year, &so.Duration, &so.FilePath, &so.ContentHash, &so.ArtworkPath)
	return so, err
}

// SaveSong inserts a song, or updates the existing row when one already
// holds the same file path. Re-importing a file never duplicates it; the
// original id survives the upsert. Returns the stored song.
func (s *Store) SaveSong(song Song) (Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existingID string
	err := s.db.QueryRow(`SELECT id FROM songs WHERE file_path = ?`, song.FilePath).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		if song.ID == "" {
			song.ID = uuid.New().String()
		}
		_, err = s.db.Exec(
			`INSERT INTO songs (`+songColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			song.ID, song.Title, song.Artist, song.ArtistID, song.Album, song.AlbumID,
			song.Genre, song.Year, song.Duration, song.FilePath, song.ContentHash, song.ArtworkPath,
		)
		if err != nil {
			return Song{}, fmt.Errorf("insert song %q: %w", song.FilePath, err)
		}
	case err != nil:
		return Song{}, fmt.Errorf("lookup song by path %q: %w", song.FilePath, err)
	default:
		song.ID = existingID
		_, err = s.db.Exec(
			`UPDATE songs SET title = ?, artist = ?, artist_id = ?, album = ?, album_id = ?,
			 genre = ?, year = ?, duration = ?, content_hash = ?, artwork_path = ? WHERE id = ?`,
			song.Title, song.Artist, song.ArtistID, song.Album, song.AlbumID,
			song.Genre, song.Year, song.Duration, song.ContentHash, song.ArtworkPath, song.ID,
		)
		if err != nil {
			return Song{}, fmt.Errorf("update song %q: %w", song.FilePath, err)
		}
		logger.Debug("re-import updated existing song", "path", filepath.Base(song.FilePath), "id", song.ID)
	}
	return song, nil
}

func (s *Store) FindSongByID(id string) (Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	so, err := scanSong(s.db.QueryRow(`SELECT `+songColumns+` FROM songs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return Song{}, ErrNotFound
	}
	if err != nil {
		return Song{}, fmt.Errorf("find song %s: %w", id, err)
	}
	return so, nil
}

func (s *Store) FindSongByPath(path string) (Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	so, err := scanSong(s.db.QueryRow(`SELECT `+songColumns+` FROM songs WHERE file_path = ?`, path))
	if err == sql.ErrNoRows {
		return Song{}, ErrNotFound
	}
	if err != nil {
		return Song{}, fmt.Errorf("find song by path %q: %w", path, err)
	}
	return so, nil
}

func (s *Store) GetAllSongs() ([]Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT ` + songColumns + ` FROM songs ORDER BY artist, album, title`)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	songs := make([]Song, 0)
	for rows.Next() {
		so, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, so)
	}
	return songs, rows.Err()
}

// UpdateSong overwrites the mutable fields of an existing song by id.
// The id, file path and content hash are not updatable this way.
func (s *Store) UpdateSong(song Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`UPDATE songs SET title = ?, artist = ?, artist_id = ?, album = ?, album_id = ?,
		 genre = ?, year = ?, artwork_path = ? WHERE id = ?`,
		song.Title, song.Artist, song.ArtistID, song.Album, song.AlbumID,
		song.Genre, song.Year, song.ArtworkPath, song.ID,
	)
	if err != nil {
		return fmt.Errorf("update song %s: %w", song.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSong removes the song row. Playlist membership is left untouched;
// dangling song ids in playlists are tolerated and filtered at read time.
// Artists and albums are never cleaned up here.
func (s *Store) DeleteSong(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

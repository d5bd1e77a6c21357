package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Album struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ArtistID   string `json:"artistId"`
	ArtistName string `json:"artistName"`
	Year       int    `json:"year"`
	CoverPath  string `json:"coverPath"`
}

// FindAlbumByNameAndArtist looks an album up by its dedup key. The same
// album title under a different artist is a distinct album.
func (s *Store) FindAlbumByNameAndArtist(name, artistID string) (Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findAlbumLocked(name, artistID)
}

func (s *Store) findAlbumLocked(name, artistID string) (Album, error) {
	var a Album
	err := s.db.QueryRow(
		`SELECT id, name, artist_id, artist_name, year, cover_path
		 FROM albums WHERE name = ? AND artist_id = ?`, name, artistID,
	).Scan(&a.ID, &a.Name, &a.ArtistID, &a.ArtistName, &a.Year, &a.CoverPath)
	if err == sql.ErrNoRows {
		return Album{}, ErrNotFound
	}
	if err != nil {
		return Album{}, fmt.Errorf("find album %q: %w", name, err)
	}
	return a, nil
}

// FindOrCreateAlbum returns the album with the given (name, artistID) key,
// creating it with a fresh id (year unset, cover unset) if absent. Lookup
// and insert share one lock hold.
func (s *Store) FindOrCreateAlbum(name, artistID, artistName string) (Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.findAlbumLocked(name, artistID)
	if err == nil {
		return a, nil
	}
	if err != ErrNotFound {
		return Album{}, err
	}

	a = Album{ID: uuid.New().String(), Name: name, ArtistID: artistID, ArtistName: artistName}
	_, err = s.db.Exec(
		`INSERT INTO albums (id, name, artist_id, artist_name, year, cover_path) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.ArtistID, a.ArtistName, a.Year, a.CoverPath,
	)
	if err != nil {
		return Album{}, fmt.Errorf("insert album %q: %w", name, err)
	}
	return a, nil
}

func (s *Store) GetAllAlbums() ([]Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, name, artist_id, artist_name, year, cover_path FROM albums ORDER BY artist_name, name`)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	albums := make([]Album, 0)
	for rows.Next() {
		var a Album
		if err := rows.Scan(&a.ID, &a.Name, &a.ArtistID, &a.ArtistName, &a.Year, &a.CoverPath); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

// SetAlbumCover records the stored cover path for an album.
func (s *Store) SetAlbumCover(id, coverPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE albums SET cover_path = ? WHERE id = ?`, coverPath, id)
	if err != nil {
		return fmt.Errorf("set album cover: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAlbum(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM albums WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

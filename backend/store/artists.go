package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Artist struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Genre     string `json:"genre"`
	ImagePath string `json:"imagePath"`
}

// FindArtistByName looks an artist up by exact, case-sensitive name.
// Near-duplicates ("The Beatles" vs "Beatles") are distinct artists; no
// normalization or merging is attempted.
func (s *Store) FindArtistByName(name string) (Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findArtistByNameLocked(name)
}

func (s *Store) findArtistByNameLocked(name string) (Artist, error) {
	var a Artist
	err := s.db.QueryRow(
		`SELECT id, name, genre, image_path FROM artists WHERE name = ?`, name,
	).Scan(&a.ID, &a.Name, &a.Genre, &a.ImagePath)
	if err == sql.ErrNoRows {
		return Artist{}, ErrNotFound
	}
	if err != nil {
		return Artist{}, fmt.Errorf("find artist %q: %w", name, err)
	}
	return a, nil
}

// InsertArtist creates an artist with a fresh id.
func (s *Store) InsertArtist(name, genre string) (Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertArtistLocked(name, genre)
}

func (s *Store) insertArtistLocked(name, genre string) (Artist, error) {
	a := Artist{ID: uuid.New().String(), Name: name, Genre: genre}
	_, err := s.db.Exec(
		`INSERT INTO artists (id, name, genre, image_path) VALUES (?, ?, ?, ?)`,
		a.ID, a.Name, a.Genre, a.ImagePath,
	)
	if err != nil {
		return Artist{}, fmt.Errorf("insert artist %q: %w", name, err)
	}
	return a, nil
}

// FindOrCreateArtist returns the artist with the given name, creating it
// with a fresh id (and no genre or image) if absent. The lookup and the
// insert happen under one lock hold.
func (s *Store) FindOrCreateArtist(name string) (Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.findArtistByNameLocked(name)
	if err == nil {
		return a, nil
	}
	if err != ErrNotFound {
		return Artist{}, err
	}
	return s.insertArtistLocked(name, "")
}

func (s *Store) GetAllArtists() ([]Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, name, genre, image_path FROM artists ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	artists := make([]Artist, 0)
	for rows.Next() {
		var a Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.Genre, &a.ImagePath); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

// SetArtistImage records the stored image path for an artist.
func (s *Store) SetArtistImage(id, imagePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE artists SET image_path = ? WHERE id = ?`, imagePath, id)
	if err != nil {
		return fmt.Errorf("set artist image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteArtist removes the artist row only. Songs and albums keep their
// denormalized name and dangling foreign keys; artists are normally never
// deleted, even when their last song goes.
func (s *Store) DeleteArtist(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM artists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

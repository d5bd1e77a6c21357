package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	SongIDs     []string  `json:"songIds"`
	DateCreated time.Time `json:"dateCreated"`
}

func (s *Store) CreatePlaylist(name, description, color string) (Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Playlist{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Color:       color,
		SongIDs:     []string{},
		DateCreated: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO playlists (id, name, description, color, date_created) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Color, p.DateCreated,
	)
	if err != nil {
		return Playlist{}, fmt.Errorf("insert playlist %q: %w", name, err)
	}
	return p, nil
}

func (s *Store) GetPlaylist(id string) (Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getPlaylistLocked(id)
}

func (s *Store) getPlaylistLocked(id string) (Playlist, error) {
	var p Playlist
	err := s.db.QueryRow(
		`SELECT id, name, description, color, date_created FROM playlists WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Color, &p.DateCreated)
	if err == sql.ErrNoRows {
		return Playlist{}, ErrNotFound
	}
	if err != nil {
		return Playlist{}, fmt.Errorf("find playlist %s: %w", id, err)
	}
	p.SongIDs, err = s.playlistSongIDsLocked(id)
	if err != nil {
		return Playlist{}, err
	}
	return p, nil
}

func (s *Store) playlistSongIDsLocked(id string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT song_id FROM playlist_songs WHERE playlist_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var sid string
		if err := rows.Scan(&sid); err != nil {
			return nil, fmt.Errorf("scan playlist song: %w", err)
		}
		ids = append(ids, sid)
	}
	return ids, rows.Err()
}

func (s *Store) GetAllPlaylists() ([]Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, name, description, color, date_created FROM playlists ORDER BY date_created`)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]Playlist, 0)
	for rows.Next() {
		var p Playlist
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Color, &p.DateCreated); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range playlists {
		ids, err := s.playlistSongIDsLocked(playlists[i].ID)
		if err != nil {
			return nil, err
		}
		playlists[i].SongIDs = ids
	}
	return playlists, nil
}

// AddSongToPlaylist appends the song id to the end of the playlist's order.
// The same id may appear more than once; referential integrity against the
// songs table is not checked here.
func (s *Store) AddSongToPlaylist(playlistID, songID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getPlaylistRowLocked(playlistID); err != nil {
		return err
	}

	var next int
	err := s.db.QueryRow(
		`SELECT COALESCE(MAX(position), -1) + 1 FROM playlist_songs WHERE playlist_id = ?`,
		playlistID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("next playlist position: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO playlist_songs (playlist_id, position, song_id) VALUES (?, ?, ?)`,
		playlistID, next, songID,
	)
	if err != nil {
		return fmt.Errorf("add song to playlist: %w", err)
	}
	return nil
}

// RemoveSongFromPlaylist drops every occurrence of the song id from the
// playlist and compacts the remaining positions. Removing an id that is not
// a member is not an error.
func (s *Store) RemoveSongFromPlaylist(playlistID, songID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getPlaylistRowLocked(playlistID); err != nil {
		return err
	}

	ids, err := s.playlistSongIDsLocked(playlistID)
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != songID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(ids) {
		return nil
	}
	return s.replacePlaylistSongsLocked(playlistID, kept)
}

func (s *Store) replacePlaylistSongsLocked(playlistID string, ids []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin playlist rewrite: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM playlist_songs WHERE playlist_id = ?`, playlistID); err != nil {
		return fmt.Errorf("clear playlist songs: %w", err)
	}
	for i, id := range ids {
		if _, err := tx.Exec(
			`INSERT INTO playlist_songs (playlist_id, position, song_id) VALUES (?, ?, ?)`,
			playlistID, i, id,
		); err != nil {
			return fmt.Errorf("rewrite playlist songs: %w", err)
		}
	}
	return tx.Commit()
}

func (s *Store) getPlaylistRowLocked(id string) (string, error) {
	var got string
	err := s.db.QueryRow(`SELECT id FROM playlists WHERE id = ?`, id).Scan(&got)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find playlist %s: %w", id, err)
	}
	return got, nil
}

func (s *Store) DeletePlaylist(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM playlists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	_, err = s.db.Exec(`DELETE FROM playlist_songs WHERE playlist_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete playlist songs: %w", err)
	}
	return nil
}

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a lookup by id or natural key matches no row.
var ErrNotFound = errors.New("record not found")

var logger = log.WithPrefix("store")

const schema = `
CREATE TABLE IF NOT EXISTS artists(
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	genre TEXT NOT NULL DEFAULT '',
	image_path TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS albums(
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	artist_id TEXT NOT NULL,
	artist_name TEXT NOT NULL DEFAULT '',
	year INTEGER NOT NULL DEFAULT 0,
	cover_path TEXT NOT NULL DEFAULT '',
	UNIQUE(name, artist_id)
);
CREATE TABLE IF NOT EXISTS songs(
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	artist TEXT NOT NULL DEFAULT '',
	artist_id TEXT NOT NULL DEFAULT '',
	album TEXT NOT NULL DEFAULT '',
	album_id TEXT NOT NULL DEFAULT '',
	genre TEXT NOT NULL DEFAULT '',
	year INTEGER NOT NULL DEFAULT 0,
	duration REAL NOT NULL DEFAULT 0,
	file_path TEXT NOT NULL UNIQUE,
	content_hash TEXT NOT NULL DEFAULT '',
	artwork_path TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS playlists(
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	date_created TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS playlist_songs(
	playlist_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	song_id TEXT NOT NULL,
	PRIMARY KEY(playlist_id, position)
);`

// Store is the embedded library database. Every logical operation holds mu
// for its full duration, including both halves of a find-or-create pair, so
// concurrent imports cannot race an artist or album into existence twice.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (or creates) the library database at path and ensures the
// schema exists. Path may be ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// All access is serialized through mu anyway; a single connection also
	// keeps ":memory:" databases from splitting per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	logger.Info("library database opened", "path", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

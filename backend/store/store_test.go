package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFindOrCreateArtistIdempotent(t *testing.T) {
	s := openTestStore(t)

	first, err := s.FindOrCreateArtist("Night Drive")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "Night Drive", first.Name)

	second, err := s.FindOrCreateArtist("Night Drive")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	artists, err := s.GetAllArtists()
	require.NoError(t, err)
	assert.Len(t, artists, 1)
}

func TestFindArtistByNameIsCaseSensitive(t *testing.T) {
	s := openTestStore(t)

	_, err := s.InsertArtist("The Beatles", "")
	require.NoError(t, err)

	_, err = s.FindArtistByName("the beatles")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindOrCreateAlbumDedupKey(t *testing.T) {
	s := openTestStore(t)

	a1, err := s.FindOrCreateArtist("Artist One")
	require.NoError(t, err)
	a2, err := s.FindOrCreateArtist("Artist Two")
	require.NoError(t, err)

	// Same title under different artists is two distinct albums.
	alb1, err := s.FindOrCreateAlbum("Greatest Hits", a1.ID, a1.Name)
	require.NoError(t, err)
	alb2, err := s.FindOrCreateAlbum("Greatest Hits", a2.ID, a2.Name)
	require.NoError(t, err)
	assert.NotEqual(t, alb1.ID, alb2.ID)

	again, err := s.FindOrCreateAlbum("Greatest Hits", a1.ID, a1.Name)
	require.NoError(t, err)
	assert.Equal(t, alb1.ID, again.ID)

	albums, err := s.GetAllAlbums()
	require.NoError(t, err)
	assert.Len(t, albums, 2)
}

func TestSaveSongUpsertByPath(t *testing.T) {
	s := openTestStore(t)

	first, err := s.SaveSong(Song{Title: "Original", FilePath: "/music/track.mp3"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	// Re-importing the same path updates the row and keeps the id stable.
	second, err := s.SaveSong(Song{Title: "Retagged", FilePath: "/music/track.mp3"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	songs, err := s.GetAllSongs()
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "Retagged", songs[0].Title)
}

func TestUpdateSong(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.SaveSong(Song{Title: "Before", FilePath: "/music/a.mp3"})
	require.NoError(t, err)

	saved.Title = "After"
	saved.Genre = "Ambient"
	require.NoError(t, s.UpdateSong(saved))

	got, err := s.FindSongByID(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, "Ambient", got.Genre)
}

func TestUpdateSongNotFound(t *testing.T) {
	s := openTestStore(t)

	err := s.UpdateSong(Song{ID: "no-such-id", Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSongNotFound(t *testing.T) {
	s := openTestStore(t)
	assert.ErrorIs(t, s.DeleteSong("missing"), ErrNotFound)
}

func TestPlaylistOrderAndDuplicates(t *testing.T) {
	s := openTestStore(t)

	p, err := s.CreatePlaylist("Focus", "deep work", "#222222")
	require.NoError(t, err)
	assert.False(t, p.DateCreated.IsZero())

	require.NoError(t, s.AddSongToPlaylist(p.ID, "song-a"))
	require.NoError(t, s.AddSongToPlaylist(p.ID, "song-b"))
	require.NoError(t, s.AddSongToPlaylist(p.ID, "song-a"))

	got, err := s.GetPlaylist(p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"song-a", "song-b", "song-a"}, got.SongIDs)
}

func TestRemoveSongFromPlaylist(t *testing.T) {
	s := openTestStore(t)

	p, err := s.CreatePlaylist("Mix", "", "")
	require.NoError(t, err)
	require.NoError(t, s.AddSongToPlaylist(p.ID, "song-a"))
	require.NoError(t, s.AddSongToPlaylist(p.ID, "song-b"))
	require.NoError(t, s.AddSongToPlaylist(p.ID, "song-a"))

	require.NoError(t, s.RemoveSongFromPlaylist(p.ID, "song-a"))

	got, err := s.GetPlaylist(p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"song-b"}, got.SongIDs)

	// Removing an id that is not a member is not an error.
	assert.NoError(t, s.RemoveSongFromPlaylist(p.ID, "song-z"))
}

func TestDeleteSongLeavesPlaylistMembership(t *testing.T) {
	s := openTestStore(t)

	song, err := s.SaveSong(Song{Title: "Ghost", FilePath: "/music/ghost.mp3"})
	require.NoError(t, err)

	p, err := s.CreatePlaylist("Haunted", "", "")
	require.NoError(t, err)
	require.NoError(t, s.AddSongToPlaylist(p.ID, song.ID))

	require.NoError(t, s.DeleteSong(song.ID))

	// The dangling id stays; consumers filter it at read time.
	got, err := s.GetPlaylist(p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{song.ID}, got.SongIDs)
}

func TestPlaylistNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetPlaylist("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.AddSongToPlaylist("missing", "song"), ErrNotFound)
	assert.ErrorIs(t, s.DeletePlaylist("missing"), ErrNotFound)
}

func TestDeletePlaylistDropsMembership(t *testing.T) {
	s := openTestStore(t)

	p, err := s.CreatePlaylist("Temp", "", "")
	require.NoError(t, err)
	require.NoError(t, s.AddSongToPlaylist(p.ID, "song-a"))
	require.NoError(t, s.DeletePlaylist(p.ID))

	playlists, err := s.GetAllPlaylists()
	require.NoError(t, err)
	assert.Empty(t, playlists)
}

func TestSetArtistImage(t *testing.T) {
	s := openTestStore(t)

	a, err := s.InsertArtist("Portrait", "")
	require.NoError(t, err)
	require.NoError(t, s.SetArtistImage(a.ID, "/assets/p.jpg"))

	artists, err := s.GetAllArtists()
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "/assets/p.jpg", artists[0].ImagePath)

	assert.ErrorIs(t, s.SetArtistImage("missing", "/assets/x.jpg"), ErrNotFound)
}

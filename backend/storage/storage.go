package storage

import (
	"os"
	"path/filepath"
)

// AppDataDir is the application-owned directory for the database, assets
// and serialized state. Falls back to the working directory when the user
// config dir is unavailable.
func AppDataDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		return "Resonate"
	}
	return filepath.Join(configDir, "Resonate")
}

// DatabasePath is the location of the embedded library database.
func DatabasePath() string {
	return filepath.Join(AppDataDir(), "library.db")
}

// AssetsDir holds saved artist images and album covers.
func AssetsDir() string {
	return filepath.Join(AppDataDir(), "assets")
}

func libraryStatePath() string {
	return filepath.Join(AppDataDir(), "library.json")
}

// SaveLibraryState persists an opaque serialized blob of front-end state.
// The backend does not interpret it.
func SaveLibraryState(blob []byte) error {
	path := libraryStatePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0o644)
}

// LoadLibraryState returns the previously saved state blob, or an empty
// blob when none has been saved yet.
func LoadLibraryState() ([]byte, error) {
	data, err := os.ReadFile(libraryStatePath())
	if err != nil {
		if os.IsNotExist(err) {
			return []byte{}, nil
		}
		return nil, err
	}
	return data, nil
}

// ClearLibraryState removes the saved state blob.
func ClearLibraryState() error {
	if err := os.Remove(libraryStatePath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

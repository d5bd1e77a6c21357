package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type Settings struct {
	Library LibrarySettings `json:"library"`
}

type LibrarySettings struct {
	WatchFolder string `json:"watchFolder"`
	AutoScan    bool   `json:"autoScan"`
}

func settingsPath() string {
	return filepath.Join(AppDataDir(), "settings.json")
}

func LoadSettings() (Settings, error) {
	data, err := os.ReadFile(settingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, err
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func SaveSettings(s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	path := settingsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func ClearSettings() error {
	if err := os.Remove(settingsPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

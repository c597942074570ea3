package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	configDirName  = "muserc"
	configFileName = "config.json"
)

func DefaultConfig() Config {
	return Config{
		Theme:            "dark",
		ConfirmDelete:    true,
		ShowDescriptions: true,
		LogLevel:         "warn",
	}
}

func ConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

func LoadConfig() (Config, error) {
	config := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return config, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}
	var stored fileConfig
	if err := json.Unmarshal(data, &stored); err != nil {
		return config, err
	}
	return mergeConfig(config, stored), nil
}

func SaveConfig(config Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeConfig(base Config, stored fileConfig) Config {
	merged := base
	if stored.Theme != nil {
		merged.Theme = *stored.Theme
	}
	if stored.ConfirmDelete != nil {
		merged.ConfirmDelete = *stored.ConfirmDelete
	}
	if stored.ShowDescriptions != nil {
		merged.ShowDescriptions = *stored.ShowDescriptions
	}
	if stored.LogLevel != nil {
		merged.LogLevel = *stored.LogLevel
	}
	if stored.LogFile != nil {
		merged.LogFile = *stored.LogFile
	}
	if stored.LastBackupDir != nil {
		merged.LastBackupDir = *stored.LastBackupDir
	}
	return merged
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const appName = "srp6a"

// UserConfigDir returns the OS-specific user configuration directory for srp6a.
// On Linux: ~/.config/srp6a
// On macOS: ~/Library/Application Support/srp6a
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

// DefaultPath returns the user config file location.
func DefaultPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadOrDefault loads path when given. Otherwise it loads the user config
// file if one exists, falling back to Default with environment overrides.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	if userPath, err := DefaultPath(); err == nil {
		if _, statErr := os.Stat(userPath); statErr == nil {
			return Load(userPath)
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", statErr)
		}
	}

	cfg := Default()
	cfg.ApplyEnv()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

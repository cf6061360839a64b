// Package config provides configuration path utilities.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DataDir returns the directory for local application data (snapshot
// cache, session state), honoring XDG_DATA_HOME.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "patrio")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".patrio")
	}
	return filepath.Join(home, ".local", "share", "patrio")
}

// ConfigDir returns the directory where the config file lives, honoring
// XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "patrio")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".patrio")
	}
	return filepath.Join(home, ".config", "patrio")
}

package config

import (
	"os"
	"path/filepath"
)

// Path returns the config file location: $FAMILYTREE_CONFIG, or
// config.toml under the XDG config dir.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), AppName, "config.toml")
}

// DataDir returns the XDG data directory (~/.local/share/familytree/).
func DataDir() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), AppName)
}

// CacheDir returns the XDG cache directory (~/.cache/familytree/).
func CacheDir() string {
	return filepath.Join(xdgDir("XDG_CACHE_HOME", ".cache"), AppName)
}

// xdgDir returns $env, or ~/fallback. Without a home directory it falls
// back to the working directory.
func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fallback
	}
	return filepath.Join(home, fallback)
}

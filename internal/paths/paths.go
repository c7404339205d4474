// Package paths provides sudo-aware path resolution for jellyrename.
//
// When running with sudo, these functions resolve to the original user's
// directories (via SUDO_USER) instead of root's, so a rename run under sudo
// still reads the caller's config and token.
package paths

import (
	"os"
	"os/user"
	"path/filepath"
)

// UserHomeDir returns the home directory of the actual user.
// If running with sudo, returns the SUDO_USER's home directory, not root's.
func UserHomeDir() (string, error) {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && sudoUser != "root" {
		u, err := user.Lookup(sudoUser)
		if err == nil {
			return u.HomeDir, nil
		}
	}

	return os.UserHomeDir()
}

// AppDir returns ~/.config/jellyrename for the actual user.
func AppDir() (string, error) {
	homeDir, err := UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "jellyrename"), nil
}

// ConfigPath returns ~/.config/jellyrename/config.toml.
func ConfigPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns ~/.config/jellyrename/logs/jellyrename.log.
func LogPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "jellyrename.log"), nil
}

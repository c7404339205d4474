package paths

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHomeDir_NoSudo(t *testing.T) {
	t.Setenv("SUDO_USER", "")

	got, err := UserHomeDir()
	require.NoError(t, err)

	expected, _ := os.UserHomeDir()
	assert.Equal(t, expected, got)
}

func TestUserHomeDir_WithSudoUser(t *testing.T) {
	currentUser, err := user.Current()
	if err != nil {
		t.Skip("Cannot get current user")
	}
	if currentUser.Username == "root" {
		t.Skip("SUDO_USER=root falls back to the current user")
	}

	t.Setenv("SUDO_USER", currentUser.Username)

	got, err := UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, currentUser.HomeDir, got)
}

func TestUserHomeDir_SudoUserRoot(t *testing.T) {
	t.Setenv("SUDO_USER", "root")

	got, err := UserHomeDir()
	require.NoError(t, err)

	expected, _ := os.UserHomeDir()
	assert.Equal(t, expected, got)
}

func TestUserHomeDir_NonexistentUser(t *testing.T) {
	t.Setenv("SUDO_USER", "nonexistent_user_12345")

	got, err := UserHomeDir()
	require.NoError(t, err)

	expected, _ := os.UserHomeDir()
	assert.Equal(t, expected, got)
}

func TestAppPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SUDO_USER", "")
	t.Setenv("HOME", home)

	configPath, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "jellyrename", "config.toml"), configPath)

	logPath, err := LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "jellyrename", "logs", "jellyrename.log"), logPath)
}

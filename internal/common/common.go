package common

import (
	"os"
	"path/filepath"
)

const (
	// AppName names the socket file and the per-user state directories.
	AppName   = "hanswap"
	socketEnv = "HANSWAP_SOCKET"
)

// DefaultSocketPath returns the unix socket the conversion server listens
// on when none is configured.
func DefaultSocketPath() string {
	if env := os.Getenv(socketEnv); env != "" {
		return env
	}
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return filepath.Join(runtimeDir, AppName+".sock")
	}
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		return filepath.Join(stateDir, AppName, AppName+".sock")
	}
	if configDir, err := os.UserConfigDir(); err == nil && configDir != "" {
		return filepath.Join(configDir, AppName, AppName+".sock")
	}
	return filepath.Join(os.TempDir(), AppName+".sock")
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/hanswap/hanswap.ini, or an
// empty string when no config directory is known.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		return ""
	}
	return filepath.Join(configDir, AppName, AppName+".ini")
}

// EnsureSocketDir creates the directory holding the socket.
func EnsureSocketDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" || dir == string(filepath.Separator) {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSocketPathEnv(t *testing.T) {
	t.Setenv("HANSWAP_SOCKET", "/run/custom.sock")
	assert.Equal(t, "/run/custom.sock", DefaultSocketPath())
}

func TestDefaultSocketPathRuntimeDir(t *testing.T) {
	t.Setenv("HANSWAP_SOCKET", "")
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	assert.Equal(t, "/run/user/1000/hanswap.sock", DefaultSocketPath())
}

func TestDefaultSocketPathStateDir(t *testing.T) {
	t.Setenv("HANSWAP_SOCKET", "")
	t.Setenv("XDG_RUNTIME_DIR", "")
	t.Setenv("XDG_STATE_HOME", "/home/u/.local/state")
	assert.Equal(t, "/home/u/.local/state/hanswap/hanswap.sock", DefaultSocketPath())
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/home/u/.config")
	assert.Equal(t, "/home/u/.config/hanswap/hanswap.ini", DefaultConfigPath())
}

func TestEnsureSocketDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureSocketDir(filepath.Join(dir, "hanswap.sock")))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, EnsureSocketDir("hanswap.sock"))
}

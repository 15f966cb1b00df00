package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"to", "spawn"}, cfg.DenyList)
	assert.True(t, cfg.Filter)
	assert.False(t, cfg.FoldWidth)
	assert.False(t, cfg.CheckOriginal)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	require.NoError(t, cfg.Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "absent.ini"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadINI(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hanswap.ini", `[filter]
deny = to, spawn, tp
check_original = true
enabled = true

[input]
fold_width = true

[server]
socket = /tmp/hanswap-test.sock

[log]
level = DEBUG
format = json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"to", "spawn", "tp"}, cfg.DenyList)
	assert.True(t, cfg.CheckOriginal)
	assert.True(t, cfg.Filter)
	assert.True(t, cfg.FoldWidth)
	assert.Equal(t, "/tmp/hanswap-test.sock", cfg.SocketPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	require.NoError(t, cfg.Validate())
}

func TestLoadINIKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hanswap.ini", "[input]\nfold_width = true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().DenyList, cfg.DenyList)
	assert.True(t, cfg.Filter)
	assert.True(t, cfg.FoldWidth)
}

func TestLoadINIDenyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "deny.txt", "# extra words\nhome\nwarp\n")
	path := writeFile(t, dir, "hanswap.ini", "[filter]\ndeny = to\ndeny_file = deny.txt\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"to", "home", "warp"}, cfg.DenyList)
}

func TestLoadINIMissingDenyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hanswap.ini", "[filter]\ndeny_file = nope.txt\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadINIMalformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hanswap.ini", "[filter\nthis is not ini\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hanswap.toml", `
[filter]
deny = ["spawn"]
enabled = false

[input]
fold_width = true

[log]
level = "warn"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"spawn"}, cfg.DenyList)
	assert.False(t, cfg.Filter)
	assert.True(t, cfg.FoldWidth)
	assert.False(t, cfg.CheckOriginal)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
}

func TestLoadTOMLUnknownKey(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hanswap.toml", "[filter]\ndenny = [\"to\"]\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter.denny")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogFormat = "xml"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.DenyList = []string{"to", " "}
	assert.Error(t, cfg.Validate())
}

func TestConverterFromConfig(t *testing.T) {
	cfg := Default()
	cfg.DenyList = []string{"ㅋ"}
	conv := cfg.Converter()
	assert.Equal(t, "zzz ", conv.ConvertText("zzz"))

	cfg.Filter = false
	assert.Equal(t, "ㅗ디ㅣㅐ ", cfg.Converter().ConvertText("hello"))
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hanswap.ini", "[log]\nlevel = info\n")

	changes := make(chan Config, 4)
	w, err := WatchFile(path, func(cfg Config) { changes <- cfg })
	require.NoError(t, err)
	w.Debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = debug\n"), 0o600))

	select {
	case cfg := <-changes:
		assert.Equal(t, "debug", cfg.LogLevel)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherReportsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hanswap.ini", "[log]\nlevel = info\n")

	w, err := WatchFile(path, func(Config) { t.Error("invalid config must not be applied") })
	require.NoError(t, err)
	w.Debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = loud\n"), 0o600))

	select {
	case err := <-w.Errors():
		assert.Contains(t, err.Error(), "loud")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload error")
	}
}

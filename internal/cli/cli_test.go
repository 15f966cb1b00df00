package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hanswap/internal/types"
)

func TestParseDefaults(t *testing.T) {
	opts, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, types.ModeConvert, opts.Mode)
	assert.Empty(t, opts.ConfigPath)
	assert.Empty(t, opts.Args)
	assert.False(t, opts.NoFilter)
}

func TestParseConvertArgs(t *testing.T) {
	opts, err := Parse([]string{"--fold-width", "--deny", "to, spawn,,tp", "dkssud", "gktpdy"})
	require.NoError(t, err)
	assert.Equal(t, types.ModeConvert, opts.Mode)
	assert.True(t, opts.FoldWidth)
	assert.Equal(t, []string{"to", "spawn", "tp"}, opts.Deny)
	assert.Equal(t, []string{"dkssud", "gktpdy"}, opts.Args)
}

func TestParseModes(t *testing.T) {
	opts, err := Parse([]string{"--serve", "--socket", "/tmp/h.sock", "--watch", "-c", "h.ini"})
	require.NoError(t, err)
	assert.Equal(t, types.ModeServe, opts.Mode)
	assert.Equal(t, "/tmp/h.sock", opts.SocketPath)
	assert.Equal(t, "h.ini", opts.ConfigPath)
	assert.True(t, opts.Watch)

	opts, err = Parse([]string{"-r", "rk"})
	require.NoError(t, err)
	assert.Equal(t, types.ModeRemote, opts.Mode)

	opts, err = Parse([]string{"-i"})
	require.NoError(t, err)
	assert.Equal(t, types.ModeInteractive, opts.Mode)
}

func TestParseConflictingModes(t *testing.T) {
	_, err := Parse([]string{"--serve", "--remote"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serve, remote")
}

func TestParseWatchRequiresServe(t *testing.T) {
	_, err := Parse([]string{"--watch"})
	assert.Error(t, err)
}

func TestParseInteractiveRejectsArgs(t *testing.T) {
	_, err := Parse([]string{"--interactive", "rk"})
	assert.Error(t, err)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("HANSWAP_LOG_LEVEL", "debug")
	t.Setenv("HANSWAP_NO_FILTER", "true")

	opts, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", opts.LogLevel)
	assert.True(t, opts.NoFilter)
}

func TestParseHelp(t *testing.T) {
	_, err := Parse([]string{"--help"})
	assert.True(t, errors.Is(err, ErrHelp))
}

func TestParseUnknownFlag(t *testing.T) {
	_, err := Parse([]string{"--layout", "dubeolsik"})
	assert.Error(t, err)
}

func TestUsage(t *testing.T) {
	usage := Usage()
	assert.Contains(t, usage, "--serve")
	assert.Contains(t, usage, "--fold-width")
	assert.Contains(t, usage, "hanswap [flags]")
}

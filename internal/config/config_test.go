package config

import (
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 20, cfg.PoolCapacity)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "pool_capacity = 5\nthickness = 3.5\ncolor = \"#ff000080\"\nshare = false\nlog_level = \"debug\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.PoolCapacity)
	assert.False(t, cfg.Share)
	assert.Equal(t, 8888, cfg.Port, "unset keys keep defaults")
	assert.Equal(t, slog.LevelDebug, cfg.Level())

	st := cfg.Style()
	assert.Equal(t, float32(3.5), st.Thickness)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0x80}, st.Color)
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("thickness = -1\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "thickness")

	require.NoError(t, os.WriteFile(path, []byte("color = \"blue\"\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "invalid color")

	require.NoError(t, os.WriteFile(path, []byte("port = \n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/x.toml")
	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.toml", p)
}

func TestLevelFallback(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "loud"}.Level())
	assert.Equal(t, slog.LevelWarn, Config{LogLevel: "warn"}.Level())
}

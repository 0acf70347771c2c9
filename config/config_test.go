package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("LINGUATASK_SERVER", "")

	cfg := Load()
	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, 120*time.Second, cfg.Timeout())
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("LINGUATASK_SERVER", "")

	path := filepath.Join(dir, "linguatask", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("server_url: https://api.example.com/\ntimeout_seconds: 30\n"), 0o644))

	cfg := Load()
	assert.Equal(t, "https://api.example.com", cfg.ServerURL, "trailing slash is trimmed")
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("LINGUATASK_SERVER", "")

	path := filepath.Join(dir, "linguatask", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{{{not yaml"), 0o644))

	cfg := Load()
	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
}

func TestEnvOverridesServerURL(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("LINGUATASK_SERVER", "https://env.example.com")

	cfg := Load()
	assert.Equal(t, "https://env.example.com", cfg.ServerURL)
}

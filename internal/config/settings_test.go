package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".orbit"), cfg.DataDir)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Log.Human)
	assert.Equal(t, 30*time.Minute, cfg.HandoffTTL)
}

func TestLoadDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultConfigPath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: sqlite\nhandoff_ttl: 5m\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, 5*time.Minute, cfg.HandoffTTL)
}

func TestLoadExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "orbit.yaml")
	content := "data_dir: " + filepath.Join(dir, "data") + "\nlog:\n  level: DEBUG\n  human: false\n  file: ~/orbit.log\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Human)
	assert.True(t, filepath.IsAbs(cfg.Log.File))
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dataDir := t.TempDir()
	t.Setenv("ORBIT_DATA_DIR", dataDir)
	t.Setenv("ORBIT_STORAGE_BACKEND", "sqlite")
	t.Setenv("ORBIT_LOG_LEVEL", "error")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknownBackend", content: "storage:\n  backend: redis\n"},
		{name: "unknownLevel", content: "log:\n  level: loud\n"},
		{name: "zeroTTL", content: "handoff_ttl: 0s\n"},
		{name: "badYAML", content: "storage: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/designs")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "designs"), got)

	got, err = ExpandPath("/var/lib/../orbit")
	require.NoError(t, err)
	assert.Equal(t, "/var/orbit", got)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenNoPathGiven(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_sketch_dequeues: 25\nlog_level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.MaxSketchDequeues)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, Default().CacheSize, cfg.CacheSize)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_sketch_dequeues: 25\n"), 0o644))

	t.Setenv("CYPHERSYNTH_MAX_SKETCH_DEQUEUES", "40")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.MaxSketchDequeues)
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveMaxSketchDequeues(t *testing.T) {
	cfg := Default()
	cfg.MaxSketchDequeues = 0
	assert.Error(t, cfg.Validate())
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Run.Retries)
	assert.Equal(t, 5.0, cfg.Run.RetryDelaySeconds)
	assert.Equal(t, 300.0, cfg.Run.TimeoutSeconds)
	assert.Equal(t, 500, cfg.Run.ExcerptChars)
	assert.False(t, cfg.TPU.Configured())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[tpu]
project = "ml-research"
zone = "us-central2-b"
name = "pod-v4-32"

[run]
retries = 1
timeout_seconds = 60.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ml-research", cfg.TPU.Project)
	assert.Equal(t, "us-central2-b", cfg.TPU.Zone)
	assert.Equal(t, "pod-v4-32", cfg.TPU.Name)
	assert.True(t, cfg.TPU.Configured())
	assert.Equal(t, 1, cfg.Run.Retries)
	assert.Equal(t, 60.0, cfg.Run.TimeoutSeconds)
	// Unset values still get defaults
	assert.Equal(t, 5.0, cfg.Run.RetryDelaySeconds)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	tpu := TPUConfig{Project: "ml-research", Zone: "europe-west4-a", Name: "pod-v5e-16"}
	require.NoError(t, SaveTo(path, tpu))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, tpu, cfg.TPU)
}

func TestSavePreservesOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[run]\nretries = 9\n"), 0644))

	require.NoError(t, SaveTo(path, TPUConfig{Project: "p", Zone: "z", Name: "n"}))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Run.Retries)
	assert.Equal(t, "p", cfg.TPU.Project)
}

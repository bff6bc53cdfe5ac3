package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chrct/chrct/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_DefaultsWhenMissing(t *testing.T) {
	loader := NewLoaderWithDir(t.TempDir())

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Debounce())
	assert.Equal(t, 60*time.Second, cfg.GateWindow())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Remote.URL)
}

func TestLoader_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[remote]
url = "https://chrct.example.com"
token = "secret"

[sync]
debounce_ms = 250

[gate]
window_seconds = 30

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o600))

	cfg, err := NewLoaderWithDir(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "https://chrct.example.com", cfg.Remote.URL)
	assert.Equal(t, "secret", cfg.Remote.Token)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 30*time.Second, cfg.GateWindow())
	assert.Equal(t, "debug", cfg.Log.Level)

	// Sections not in the file keep their defaults.
	assert.Equal(t, domain.DefaultMaxSubtasks, cfg.AI.MaxSubtasks)
	assert.Equal(t, time.Duration(domain.DefaultWatchInterval)*time.Second, cfg.WatchInterval())
}

func TestLoader_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte("not = [valid"), 0o600))

	_, err := NewLoaderWithDir(dir).Load()
	assert.Error(t, err)
}

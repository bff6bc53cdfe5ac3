package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chrct/chrct/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_HelpWithFreshDirs(t *testing.T) {
	configHome := t.TempDir()
	dataHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", dataHome)

	originalArgs := os.Args
	t.Cleanup(func() { os.Args = originalArgs })
	os.Args = []string{"chrct", "--help"}

	err := run()

	require.NoError(t, err)
	// Startup initializes the local store under the data directory.
	storePath := domain.StorePath(filepath.Join(dataHome, "chrct"))
	_, statErr := os.Stat(storePath)
	assert.NoError(t, statErr)
}

func TestRun_FailsOnBrokenConfig(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dir := filepath.Join(configHome, "chrct")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte("not = [valid"), 0o600))

	originalArgs := os.Args
	t.Cleanup(func() { os.Args = originalArgs })
	os.Args = []string{"chrct", "--help"}

	err := run()
	assert.Error(t, err)
}

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitWritesTemplate(t *testing.T) {
	dataDir := t.TempDir()

	out, err := executeInDataDir(t, dataDir, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	data, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "excluded_dirs")
	assert.Contains(t, string(data), "cache_expiry_minutes")
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	dataDir := t.TempDir()

	_, err := executeInDataDir(t, dataDir, "config", "init")
	require.NoError(t, err)

	_, err = executeInDataDir(t, dataDir, "config", "init")
	require.Error(t, err)

	_, err = executeInDataDir(t, dataDir, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigShowPrintsDefaults(t *testing.T) {
	out, err := executeInDataDir(t, t.TempDir(), "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "max_files: 100000")
	assert.Contains(t, out, "debounce: 5s")
}

package preflight

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedsCheckBeforeAndAfterMark(t *testing.T) {
	dataDir := t.TempDir()

	assert.True(t, NeedsCheck(dataDir), "fresh data dir must require checks")

	require.NoError(t, MarkPassed(dataDir))
	assert.False(t, NeedsCheck(dataDir))
}

func TestMarkPassedCreatesMissingDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", ".launchindex")

	require.NoError(t, MarkPassed(dataDir))

	raw, err := os.ReadFile(filepath.Join(dataDir, MarkerFile))
	require.NoError(t, err)
	_, err = time.Parse(time.RFC3339, string(raw))
	assert.NoError(t, err, "marker must hold an RFC3339 timestamp")
}

func TestClearMarkerForcesRecheck(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, MarkPassed(dataDir))

	require.NoError(t, ClearMarker(dataDir))
	assert.True(t, NeedsCheck(dataDir))

	// Clearing twice is a no-op.
	assert.NoError(t, ClearMarker(dataDir))
}

func TestMarkerAge(t *testing.T) {
	dataDir := t.TempDir()
	assert.Zero(t, MarkerAge(dataDir), "missing marker has no age")

	stamp := time.Now().Add(-time.Hour).Format(time.RFC3339)
	path := filepath.Join(dataDir, MarkerFile)
	require.NoError(t, os.WriteFile(path, []byte(stamp), 0o644))
	assert.Greater(t, MarkerAge(dataDir), 59*time.Minute)
}

func TestMarkerAgeGarbageContent(t *testing.T) {
	dataDir := t.TempDir()
	path := filepath.Join(dataDir, MarkerFile)
	require.NoError(t, os.WriteFile(path, []byte("not a time"), 0o644))

	assert.Zero(t, MarkerAge(dataDir))
}

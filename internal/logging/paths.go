package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.launchindex/logs/),
// honoring LAUNCHINDEX_DATA_DIR. Falls back to the temp directory if the
// home directory is unavailable.
func DefaultLogDir() string {
	if dir := os.Getenv("LAUNCHINDEX_DATA_DIR"); dir != "" {
		return filepath.Join(dir, "logs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".launchindex", "logs")
	}
	return filepath.Join(home, ".launchindex", "logs")
}

// DefaultLogPath returns the default indexer log path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "index.log")
}

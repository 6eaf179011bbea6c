package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MarkerFile records that the system checks passed for this data dir.
// Its content is the RFC3339 time of the passing run.
const MarkerFile = ".syscheck-ok"

// NeedsCheck reports whether the daemon should run the system checks
// before opening its stores. Any unreadable marker counts as missing.
func NeedsCheck(dataDir string) bool {
	_, err := os.Stat(filepath.Join(dataDir, MarkerFile))
	return err != nil
}

// MarkPassed stamps the data dir so subsequent daemon starts skip the
// checks. Creates the data dir if it does not exist yet.
func MarkPassed(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	stamp := time.Now().Format(time.RFC3339)
	return os.WriteFile(filepath.Join(dataDir, MarkerFile), []byte(stamp), 0o644)
}

// ClearMarker forces the checks to run again on the next daemon start.
// Clearing an absent marker is a no-op.
func ClearMarker(dataDir string) error {
	err := os.Remove(filepath.Join(dataDir, MarkerFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove check marker: %w", err)
	}
	return nil
}

// MarkerAge returns the time since the checks last passed, or zero when
// the marker is missing or unparsable.
func MarkerAge(dataDir string) time.Duration {
	raw, err := os.ReadFile(filepath.Join(dataDir, MarkerFile))
	if err != nil {
		return 0
	}
	passed, err := time.Parse(time.RFC3339, strings.TrimSpace(string(raw)))
	if err != nil {
		return 0
	}
	return time.Since(passed)
}

package preflight

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStatusString(t *testing.T) {
	assert.Equal(t, "PASS", StatusPass.String())
	assert.Equal(t, "WARN", StatusWarn.String())
	assert.Equal(t, "FAIL", StatusFail.String())
	assert.Equal(t, "UNKNOWN", CheckStatus(42).String())
}

func TestCheckResultIsCritical(t *testing.T) {
	tests := []struct {
		name     string
		result   CheckResult
		critical bool
	}{
		{"required pass", CheckResult{Status: StatusPass, Required: true}, false},
		{"required warn", CheckResult{Status: StatusWarn, Required: true}, false},
		{"required fail", CheckResult{Status: StatusFail, Required: true}, true},
		{"optional fail", CheckResult{Status: StatusFail}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.critical, tt.result.IsCritical())
		})
	}
}

func TestCheckerOptions(t *testing.T) {
	plain := New()
	assert.False(t, plain.verbose)

	buf := &bytes.Buffer{}
	custom := New(WithVerbose(true), WithOutput(buf))
	assert.True(t, custom.verbose)
	assert.Equal(t, buf, custom.output)
}

func TestHasCriticalFailures(t *testing.T) {
	checker := New()

	healthy := []CheckResult{
		{Status: StatusPass, Required: true},
		{Status: StatusWarn},
		{Status: StatusFail}, // optional
	}
	assert.False(t, checker.HasCriticalFailures(nil))
	assert.False(t, checker.HasCriticalFailures(healthy))

	broken := append(healthy, CheckResult{Status: StatusFail, Required: true})
	assert.True(t, checker.HasCriticalFailures(broken))
}

func TestSummaryStatus(t *testing.T) {
	checker := New()

	tests := []struct {
		name    string
		results []CheckResult
		want    string
	}{
		{"all pass", []CheckResult{{Status: StatusPass}, {Status: StatusPass}}, "ready"},
		{"warning", []CheckResult{{Status: StatusPass}, {Status: StatusWarn}}, "ready_with_warnings"},
		{"optional failure", []CheckResult{{Status: StatusFail}}, "ready_with_warnings"},
		{"critical failure", []CheckResult{{Status: StatusFail, Required: true}}, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checker.SummaryStatus(tt.results))
		})
	}
}

func TestCheckWritePermissionsCreatesMissingDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", ".launchindex")

	result := New().CheckWritePermissions(dataDir)

	assert.Equal(t, StatusPass, result.Status)
	assert.True(t, result.Required)
	assert.DirExists(t, dataDir)
}

func TestCheckWritePermissionsReadOnlyDir(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	readOnly := filepath.Join(t.TempDir(), "frozen")
	require.NoError(t, os.Mkdir(readOnly, 0o555))
	t.Cleanup(func() { _ = os.Chmod(readOnly, 0o755) })

	result := New().CheckWritePermissions(readOnly)

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "permission denied")
}

func TestRunAllCoversDataDirChecks(t *testing.T) {
	checker := New(WithOutput(&bytes.Buffer{}))

	results := checker.RunAll(context.Background(), t.TempDir())

	names := make(map[string]bool, len(results))
	for _, r := range results {
		names[r.Name] = true
	}
	assert.True(t, names["disk_space"])
	assert.True(t, names["write_permissions"])
	assert.True(t, names["file_descriptors"])
}

func TestPrintResultsListsFailures(t *testing.T) {
	results := []CheckResult{
		{Name: "disk_space", Status: StatusPass, Message: "42.0 GB free"},
		{Name: "file_descriptors", Status: StatusWarn, Message: "256 (minimum: 1024)"},
		{Name: "write_permissions", Status: StatusFail, Message: "permission denied", Required: true},
	}

	buf := &bytes.Buffer{}
	New(WithOutput(buf)).PrintResults(results)

	out := buf.String()
	assert.Contains(t, out, "[PASS] disk_space")
	assert.Contains(t, out, "[WARN] file_descriptors")
	assert.Contains(t, out, "[FAIL] write_permissions")
	assert.Contains(t, out, "Status: FAILED")
	assert.Contains(t, out, "1 error(s):")
	assert.Contains(t, out, "1 warning(s):")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 bytes", formatBytes(512))
	assert.Equal(t, "1.0 KB", formatBytes(1024))
	assert.Equal(t, "100.0 MB", formatBytes(MinDiskSpaceBytes))
	assert.Equal(t, "2.0 GB", formatBytes(2*1024*1024*1024))
}

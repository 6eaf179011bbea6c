package preflight

import (
	"fmt"
	"syscall"
)

// MinDiskSpaceBytes is the free-space floor for the data dir. The file
// index, its WAL, the browser cache, and history snapshot copies all
// land there.
const MinDiskSpaceBytes = 100 * 1024 * 1024

// CheckDiskSpace verifies the filesystem holding the data dir has room
// for the databases to grow.
func (c *Checker) CheckDiskSpace(path string) CheckResult {
	res := CheckResult{Name: "disk_space", Required: true}

	var fs syscall.Statfs_t
	if err := syscall.Statfs(path, &fs); err != nil {
		res.Status = StatusFail
		res.Message = fmt.Sprintf("cannot stat filesystem: %v", err)
		return res
	}

	free := fs.Bavail * uint64(fs.Bsize)
	res.Message = fmt.Sprintf("%s free (minimum: %s)",
		formatBytes(free), formatBytes(MinDiskSpaceBytes))
	if free < MinDiskSpaceBytes {
		res.Status = StatusFail
		return res
	}

	res.Status = StatusPass
	return res
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d bytes", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit && exp < 3; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}

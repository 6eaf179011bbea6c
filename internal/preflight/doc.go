// Package preflight provides system validation checks run before the
// launchindex daemon starts long-lived indexing.
//
// The package validates:
//   - Disk space availability in the data directory (minimum 100MB)
//   - Write permissions in the data directory
//   - File descriptor limits (the filesystem watcher holds one per
//     watched directory; minimum 1024)
//
// Use the Checker type to run all validations:
//
//	checker := preflight.New()
//	results := checker.RunAll(ctx, dataDir)
//	if checker.HasCriticalFailures(results) {
//	    // Handle failures
//	}
package preflight

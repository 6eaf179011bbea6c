// Package errors provides structured error handling for launchindex.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (file read, metadata, snapshot copy)
//   - 3XX: Store errors (schema, query, write)
//   - 4XX: Platform errors (browser or path unavailable on this OS)
//   - 5XX: Parse errors (malformed bookmark or history data)
//   - 6XX: Internal errors (lock contention, unexpected state)
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryStore indicates embedded store errors.
	CategoryStore Category = "STORE"
	// CategoryPlatform indicates a source unavailable on the current OS.
	CategoryPlatform Category = "PLATFORM"
	// CategoryParse indicates malformed browser data.
	CategoryParse Category = "PARSE"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but the process can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeFileNotFound   = "ERR_201_FILE_NOT_FOUND"
	ErrCodeFilePermission = "ERR_202_FILE_PERMISSION"
	ErrCodeSnapshotCopy   = "ERR_203_SNAPSHOT_COPY"
	ErrCodeDataDir        = "ERR_204_DATA_DIR"

	// Store errors (300-399)
	ErrCodeStoreOpen   = "ERR_301_STORE_OPEN"
	ErrCodeStoreSchema = "ERR_302_STORE_SCHEMA"
	ErrCodeStoreQuery  = "ERR_303_STORE_QUERY"
	ErrCodeStoreWrite  = "ERR_304_STORE_WRITE"

	// Platform errors (400-499)
	ErrCodeUnsupportedPlatform = "ERR_401_UNSUPPORTED_PLATFORM"
	ErrCodeProfileNotFound     = "ERR_402_PROFILE_NOT_FOUND"

	// Parse errors (500-599)
	ErrCodeBookmarkParse = "ERR_501_BOOKMARK_PARSE"
	ErrCodeHistoryParse  = "ERR_502_HISTORY_PARSE"

	// Internal errors (600-699)
	ErrCodeInternal = "ERR_601_INTERNAL"
	ErrCodeLockHeld = "ERR_602_LOCK_HELD"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Numeric portion, e.g. "301" from "ERR_301_STORE_OPEN"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryStore
	case '4':
		return CategoryPlatform
	case '5':
		return CategoryParse
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeStoreOpen, ErrCodeStoreSchema, ErrCodeDataDir, ErrCodeLockHeld:
		// The store or data dir being unusable aborts the whole operation.
		return SeverityFatal
	case ErrCodeUnsupportedPlatform, ErrCodeProfileNotFound,
		ErrCodeBookmarkParse, ErrCodeHistoryParse:
		// Single-source failures degrade to partial results.
		return SeverityWarning
	}
	return SeverityError
}

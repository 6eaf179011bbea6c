package errors

import (
	"fmt"
)

// IndexError is the structured error type for launchindex.
// It provides context for error handling, logging, and user presentation.
type IndexError struct {
	// Code is the unique error code (e.g., "ERR_301_STORE_OPEN").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Store, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *IndexError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with IndexError.
func (e *IndexError) Is(target error) bool {
	if t, ok := target.(*IndexError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *IndexError) WithDetail(key, value string) *IndexError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new IndexError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *IndexError {
	return &IndexError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates an IndexError from an existing error.
// The error's message becomes the IndexError message.
func Wrap(code string, err error) *IndexError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *IndexError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates a file I/O error.
func IOError(message string, cause error) *IndexError {
	return New(ErrCodeFileNotFound, message, cause)
}

// StoreError creates an embedded-store error.
func StoreError(message string, cause error) *IndexError {
	return New(ErrCodeStoreQuery, message, cause)
}

// PlatformError creates an unsupported-platform error.
func PlatformError(message string) *IndexError {
	return New(ErrCodeUnsupportedPlatform, message, nil)
}

// ParseError creates a malformed-data error.
func ParseError(message string, cause error) *IndexError {
	return New(ErrCodeBookmarkParse, message, cause)
}

// LockError creates a lock-contention error.
func LockError(message string, cause error) *IndexError {
	return New(ErrCodeLockHeld, message, cause)
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort the current operation.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if ie, ok := err.(*IndexError); ok {
		return ie.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from an IndexError.
// Returns empty string if not an IndexError.
func GetCode(err error) string {
	if ie, ok := err.(*IndexError); ok {
		return ie.Code
	}
	return ""
}

// GetCategory extracts the category from an IndexError.
// Returns empty string if not an IndexError.
func GetCategory(err error) Category {
	if ie, ok := err.(*IndexError); ok {
		return ie.Category
	}
	return ""
}

// Package indexer keeps the file index a near-real-time mirror of the
// configured directory trees. It runs two long-lived background tasks: a
// periodic full scanner and a filesystem-event watcher, both writing to the
// same store through idempotent upserts.
package indexer

import "time"

// Operation represents a file system operation type.
type Operation int

const (
	// OpCreate indicates a new file or directory was created.
	OpCreate Operation = iota
	// OpModify indicates an existing file was modified.
	OpModify
	// OpDelete indicates a file or directory was deleted.
	OpDelete
)

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// FileEvent is a single watcher-sourced file change.
type FileEvent struct {
	// Path is the absolute path of the affected file.
	Path string

	// Operation is the type of file system operation.
	Operation Operation

	// Timestamp is when the event was detected.
	Timestamp time.Time
}

// Progress is an advisory scan progress notification for UI consumption.
// Notifications may be dropped without affecting correctness.
type Progress struct {
	// Current is the number of files indexed so far in this pass.
	Current int `json:"current"`

	// Total is the expected total, or 0 when unknown.
	Total int `json:"total"`

	// Path is the directory currently being visited.
	Path string `json:"path"`

	// Stage labels the phase, e.g. "scanning".
	Stage string `json:"stage"`
}

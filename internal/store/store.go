// Package store provides the embedded SQLite stores backing launchindex.
//
// Two independent databases are kept per data domain: the file index and the
// browser cache. Both are accessed through database/sql connection pools, so
// every operation runs on a short-lived connection and no cross-goroutine
// connection-sharing discipline is needed. Concurrent writers rely on WAL
// mode and a busy timeout.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

// openDB opens (and creates if needed) a SQLite database at path.
// An empty path opens an in-memory database for testing.
func openDB(path string) (*sql.DB, error) {
	dsn := ":memory:"
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		dsn = path
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each pool connection gets its own private in-memory database, so
	// in-memory stores must stay on a single connection.
	if path == "" {
		db.SetMaxOpenConns(1)
	}

	// Applied with Exec after open so they hold for every connection the
	// pool hands out. The busy timeout covers watcher/scanner write races.
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	return db, nil
}

// nullableString converts an empty string to a SQL NULL.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullableInt64 converts a zero value to a SQL NULL.
func nullableInt64(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}

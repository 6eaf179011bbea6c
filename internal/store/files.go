package store

import (
	"context"
	"database/sql"
	"fmt"
)

// FileEntry is one row of the file index, keyed by absolute path.
type FileEntry struct {
	ID        int64
	Path      string
	Filename  string
	Extension string // empty when the file has no extension
	Size      int64
	Modified  int64 // Unix seconds
	Hidden    bool
	Indexed   int64 // Unix seconds of last write
}

// FileStats summarizes the file index.
type FileStats struct {
	TotalFiles int64 `json:"total_files"`
	TotalSize  int64 `json:"total_size"`
}

// FileStore persists the file index.
type FileStore struct {
	db *sql.DB
}

// OpenFileStore opens the file index database at path and initializes the
// schema. Schema creation is idempotent. An empty path opens an in-memory
// store for testing.
func OpenFileStore(path string) (*FileStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT UNIQUE NOT NULL,
		filename TEXT NOT NULL,
		extension TEXT,
		size INTEGER NOT NULL,
		modified INTEGER NOT NULL,
		hidden BOOLEAN DEFAULT 0,
		indexed INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_filename ON files(filename);
	CREATE INDEX IF NOT EXISTS idx_extension ON files(extension);
	CREATE INDEX IF NOT EXISTS idx_path ON files(path);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize files schema: %w", err)
	}

	return &FileStore{db: db}, nil
}

// Close closes the underlying database.
func (s *FileStore) Close() error {
	return s.db.Close()
}

// Upsert inserts or updates a file entry by path.
// Re-indexing the same path overwrites in place, never duplicates.
func (s *FileStore) Upsert(ctx context.Context, entry *FileEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (path, filename, extension, size, modified, hidden, indexed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			filename = excluded.filename,
			extension = excluded.extension,
			size = excluded.size,
			modified = excluded.modified,
			hidden = excluded.hidden,
			indexed = excluded.indexed`,
		entry.Path, entry.Filename, nullableString(entry.Extension),
		entry.Size, entry.Modified, entry.Hidden, entry.Indexed)
	if err != nil {
		return fmt.Errorf("upsert file %s: %w", entry.Path, err)
	}
	return nil
}

// Delete removes a file entry by path. Deleting a missing path is a no-op.
func (s *FileStore) Delete(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM files WHERE path = ?`, path); err != nil {
		return fmt.Errorf("delete file %s: %w", path, err)
	}
	return nil
}

// Search returns entries whose filename contains the query substring,
// ordered by filename ascending, capped at limit.
func (s *FileStore) Search(ctx context.Context, query string, limit int) ([]FileEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, filename, extension, size, modified, hidden, indexed
		FROM files
		WHERE filename LIKE ?
		ORDER BY filename ASC
		LIMIT ?`,
		"%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []FileEntry
	for rows.Next() {
		var e FileEntry
		var ext sql.NullString
		if err := rows.Scan(&e.ID, &e.Path, &e.Filename, &ext,
			&e.Size, &e.Modified, &e.Hidden, &e.Indexed); err != nil {
			return nil, fmt.Errorf("scan file row: %w", err)
		}
		e.Extension = ext.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the entry for an exact path, or nil if not indexed.
func (s *FileStore) Get(ctx context.Context, path string) (*FileEntry, error) {
	var e FileEntry
	var ext sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, path, filename, extension, size, modified, hidden, indexed
		FROM files WHERE path = ?`, path).
		Scan(&e.ID, &e.Path, &e.Filename, &ext, &e.Size, &e.Modified, &e.Hidden, &e.Indexed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", path, err)
	}
	e.Extension = ext.String
	return &e, nil
}

// Stats returns row count and cumulative size of the index.
func (s *FileStore) Stats(ctx context.Context) (FileStats, error) {
	var stats FileStats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(size), 0) FROM files`).
		Scan(&stats.TotalFiles, &stats.TotalSize)
	if err != nil {
		return FileStats{}, fmt.Errorf("file stats: %w", err)
	}
	return stats, nil
}

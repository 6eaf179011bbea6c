package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Entry types for browser records.
const (
	EntryTypeBookmark = "bookmark"
	EntryTypeHistory  = "history"
)

// BrowserEntry is one cached browser record, keyed by (url, browser).
// A bookmark and a history entry for the same URL in the same browser
// collapse into one row; the last extraction wins.
type BrowserEntry struct {
	ID          int64
	URL         string
	Title       string
	Favicon     string // empty when not captured
	Browser     string // source identifier, e.g. "chrome"
	Type        string // EntryTypeBookmark or EntryTypeHistory
	VisitCount  int64
	LastVisited int64 // Unix seconds; 0 when unknown
	Folder      string
	Cached      int64 // Unix seconds of capture
}

// BrowserStats summarizes the browser cache by entry type.
type BrowserStats struct {
	Bookmarks int64 `json:"bookmarks"`
	History   int64 `json:"history"`
}

// BrowserStore persists cached browser bookmarks and history.
type BrowserStore struct {
	db *sql.DB
}

// OpenBrowserStore opens the browser cache database at path and initializes
// the schema. An empty path opens an in-memory store for testing.
func OpenBrowserStore(path string) (*BrowserStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS browser_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		title TEXT NOT NULL,
		favicon TEXT,
		browser TEXT NOT NULL,
		type TEXT NOT NULL,
		visitCount INTEGER DEFAULT 0,
		lastVisited INTEGER,
		folder TEXT,
		cached INTEGER NOT NULL,
		UNIQUE(url, browser)
	);
	CREATE INDEX IF NOT EXISTS idx_url ON browser_data(url);
	CREATE INDEX IF NOT EXISTS idx_title ON browser_data(title);
	CREATE INDEX IF NOT EXISTS idx_browser_type ON browser_data(browser, type);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize browser schema: %w", err)
	}

	return &BrowserStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BrowserStore) Close() error {
	return s.db.Close()
}

// Upsert inserts or updates a browser entry by (url, browser).
func (s *BrowserStore) Upsert(ctx context.Context, entry *BrowserEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO browser_data (url, title, favicon, browser, type, visitCount, lastVisited, folder, cached)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url, browser) DO UPDATE SET
			title = excluded.title,
			favicon = excluded.favicon,
			type = excluded.type,
			visitCount = excluded.visitCount,
			lastVisited = excluded.lastVisited,
			folder = excluded.folder,
			cached = excluded.cached`,
		entry.URL, entry.Title, nullableString(entry.Favicon), entry.Browser,
		entry.Type, entry.VisitCount, nullableInt64(entry.LastVisited),
		nullableString(entry.Folder), entry.Cached)
	if err != nil {
		return fmt.Errorf("upsert browser entry %s: %w", entry.URL, err)
	}
	return nil
}

// ExpireBefore deletes all entries cached before the cutoff (Unix seconds).
// Eviction is time-based only; whether the browser still holds the entry is
// not consulted. Returns the number of evicted rows.
func (s *BrowserStore) ExpireBefore(ctx context.Context, cutoff int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM browser_data WHERE cached < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("expire browser cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// Search returns entries whose title or URL contains the query substring,
// ordered by visit count descending then recency descending, capped at limit.
func (s *BrowserStore) Search(ctx context.Context, query string, limit int) ([]BrowserEntry, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, title, favicon, browser, type, visitCount, lastVisited, folder, cached
		FROM browser_data
		WHERE title LIKE ? OR url LIKE ?
		ORDER BY visitCount DESC, lastVisited DESC
		LIMIT ?`,
		pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search browser data: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []BrowserEntry
	for rows.Next() {
		var e BrowserEntry
		var favicon, folder sql.NullString
		var lastVisited sql.NullInt64
		if err := rows.Scan(&e.ID, &e.URL, &e.Title, &favicon, &e.Browser,
			&e.Type, &e.VisitCount, &lastVisited, &folder, &e.Cached); err != nil {
			return nil, fmt.Errorf("scan browser row: %w", err)
		}
		e.Favicon = favicon.String
		e.Folder = folder.String
		e.LastVisited = lastVisited.Int64
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats returns bookmark and history row counts.
func (s *BrowserStore) Stats(ctx context.Context) (BrowserStats, error) {
	var stats BrowserStats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'bookmark' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'history' THEN 1 ELSE 0 END), 0)
		FROM browser_data`).
		Scan(&stats.Bookmarks, &stats.History)
	if err != nil {
		return BrowserStats{}, fmt.Errorf("browser stats: %w", err)
	}
	return stats, nil
}

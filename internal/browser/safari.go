package browser

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	ierr "github.com/Aman-CERP/launchindex/internal/errors"
	"github.com/Aman-CERP/launchindex/internal/store"
)

// safariSource extracts history from Safari's History.db on macOS.
// Timestamps are seconds since 2001-01-01. Safari bookmarks live in a
// binary plist (Bookmarks.plist) and are not extracted.
type safariSource struct {
	dir string
}

func (s *safariSource) Name() string { return SourceSafari }

func (s *safariSource) Read(ctx context.Context, limit int, now time.Time) ([]store.BrowserEntry, error) {
	historyPath := filepath.Join(s.dir, "History.db")
	if _, err := os.Stat(historyPath); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ierr.IOError("cannot stat safari history", err)
	}

	snapshot, cleanup, err := snapshotCopy(historyPath)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	db, err := sql.Open("sqlite", snapshot+"?mode=ro")
	if err != nil {
		return nil, ierr.New(ierr.ErrCodeHistoryParse, "cannot open history snapshot", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, `
		SELECT url, title, visit_count, last_visit_time
		FROM history_items
		ORDER BY last_visit_time DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, ierr.New(ierr.ErrCodeHistoryParse, "cannot query history", err)
	}
	defer func() { _ = rows.Close() }()

	cached := now.Unix()
	var entries []store.BrowserEntry
	for rows.Next() {
		var url string
		var title sql.NullString
		var visitCount int64
		var lastVisit sql.NullFloat64
		if err := rows.Scan(&url, &title, &visitCount, &lastVisit); err != nil {
			continue
		}
		entries = append(entries, store.BrowserEntry{
			URL:         url,
			Title:       orUntitled(title.String),
			Browser:     SourceSafari,
			Type:        store.EntryTypeHistory,
			VisitCount:  visitCount,
			LastVisited: safariTimeToUnix(lastVisit.Float64),
			Cached:      cached,
		})
	}
	return entries, rows.Err()
}

package browser

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	ierr "github.com/Aman-CERP/launchindex/internal/errors"
	"github.com/Aman-CERP/launchindex/internal/store"
)

// firefoxSource extracts bookmarks and history from a Firefox profile.
// Both live in places.sqlite; timestamps are microseconds since the Unix
// epoch.
type firefoxSource struct {
	dir string
}

func (s *firefoxSource) Name() string { return SourceFirefox }

func (s *firefoxSource) Read(ctx context.Context, limit int, now time.Time) ([]store.BrowserEntry, error) {
	placesPath, err := findPlacesDB(s.dir)
	if err != nil {
		return nil, err
	}

	snapshot, cleanup, err := snapshotCopy(placesPath)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	db, err := sql.Open("sqlite", snapshot+"?mode=ro")
	if err != nil {
		return nil, ierr.New(ierr.ErrCodeHistoryParse, "cannot open places snapshot", err)
	}
	defer func() { _ = db.Close() }()

	cached := now.Unix()
	var entries []store.BrowserEntry

	if bookmarks, err := firefoxBookmarks(ctx, db, limit, cached); err != nil {
		slog.Warn("bookmark_read_failed",
			slog.String("browser", SourceFirefox),
			slog.String("error", err.Error()))
	} else {
		entries = append(entries, bookmarks...)
	}

	if history, err := firefoxHistory(ctx, db, limit, cached); err != nil {
		slog.Warn("history_read_failed",
			slog.String("browser", SourceFirefox),
			slog.String("error", err.Error()))
	} else {
		entries = append(entries, history...)
	}

	return entries, nil
}

// findPlacesDB locates the default profile's places.sqlite. Profiles live
// under a Profiles/ subdirectory on macOS and Windows, or directly under
// the Firefox dir on Linux.
func findPlacesDB(dir string) (string, error) {
	candidates := []string{filepath.Join(dir, "Profiles"), dir}
	for _, base := range candidates {
		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			places := filepath.Join(base, e.Name(), "places.sqlite")
			if _, err := os.Stat(places); err == nil {
				return places, nil
			}
		}
	}
	return "", ierr.New(ierr.ErrCodeProfileNotFound, "no firefox profile with places.sqlite", nil).
		WithDetail("dir", dir)
}

func firefoxBookmarks(ctx context.Context, db *sql.DB, limit int, cached int64) ([]store.BrowserEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT b.title, p.url, b.dateAdded
		FROM moz_bookmarks b
		JOIN moz_places p ON b.fk = p.id
		WHERE b.type = 1 AND p.url IS NOT NULL
		ORDER BY b.dateAdded DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, ierr.New(ierr.ErrCodeBookmarkParse, "cannot query bookmarks", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []store.BrowserEntry
	for rows.Next() {
		var title sql.NullString
		var url string
		var dateAdded int64
		if err := rows.Scan(&title, &url, &dateAdded); err != nil {
			continue
		}
		entries = append(entries, store.BrowserEntry{
			URL:         url,
			Title:       orUntitled(title.String),
			Browser:     SourceFirefox,
			Type:        store.EntryTypeBookmark,
			LastVisited: firefoxTimeToUnix(dateAdded),
			Cached:      cached,
		})
	}
	return entries, rows.Err()
}

func firefoxHistory(ctx context.Context, db *sql.DB, limit int, cached int64) ([]store.BrowserEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT url, title, visit_count, last_visit_date
		FROM moz_places
		WHERE visit_count > 0
		ORDER BY last_visit_date DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, ierr.New(ierr.ErrCodeHistoryParse, "cannot query history", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []store.BrowserEntry
	for rows.Next() {
		var url string
		var title sql.NullString
		var visitCount int64
		var lastVisit sql.NullInt64
		if err := rows.Scan(&url, &title, &visitCount, &lastVisit); err != nil {
			continue
		}
		entries = append(entries, store.BrowserEntry{
			URL:         url,
			Title:       orUntitled(title.String),
			Browser:     SourceFirefox,
			Type:        store.EntryTypeHistory,
			VisitCount:  visitCount,
			LastVisited: firefoxTimeToUnix(lastVisit.Int64),
			Cached:      cached,
		})
	}
	return entries, rows.Err()
}

package browser

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	ierr "github.com/Aman-CERP/launchindex/internal/errors"
	"github.com/Aman-CERP/launchindex/internal/store"
)

// chromiumSource extracts bookmarks and history from a Chromium-family
// profile (Chrome, Edge, Brave). Bookmarks live in a JSON tree; history in
// a SQLite database that must be snapshot-copied while the browser runs.
type chromiumSource struct {
	name string
	dir  string
}

func (s *chromiumSource) Name() string { return s.name }

func (s *chromiumSource) Read(ctx context.Context, limit int, now time.Time) ([]store.BrowserEntry, error) {
	if _, err := os.Stat(s.dir); err != nil {
		return nil, ierr.New(ierr.ErrCodeProfileNotFound, "profile directory not found", err).
			WithDetail("browser", s.name)
	}

	var entries []store.BrowserEntry
	cached := now.Unix()

	bookmarksPath := filepath.Join(s.dir, "Default", "Bookmarks")
	if bookmarks, err := readChromiumBookmarks(bookmarksPath, s.name, cached); err != nil {
		slog.Warn("bookmark_read_failed",
			slog.String("browser", s.name),
			slog.String("error", err.Error()))
	} else {
		entries = append(entries, bookmarks...)
	}

	historyPath := filepath.Join(s.dir, "Default", "History")
	if history, err := readChromiumHistory(ctx, historyPath, s.name, limit, cached); err != nil {
		slog.Warn("history_read_failed",
			slog.String("browser", s.name),
			slog.String("error", err.Error()))
	} else {
		entries = append(entries, history...)
	}

	return entries, nil
}

// chromiumBookmarkNode is one node of the Bookmarks JSON tree: either a
// folder with children or a leaf with a URL.
type chromiumBookmarkNode struct {
	Type     string                 `json:"type"`
	Name     string                 `json:"name"`
	URL      string                 `json:"url"`
	Children []chromiumBookmarkNode `json:"children"`
}

type chromiumBookmarkFile struct {
	Roots map[string]chromiumBookmarkNode `json:"roots"`
}

// readChromiumBookmarks flattens the folder tree into flat bookmark records.
func readChromiumBookmarks(path, browser string, cached int64) ([]store.BrowserEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ierr.IOError("cannot read bookmarks file", err)
	}

	var file chromiumBookmarkFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, ierr.New(ierr.ErrCodeBookmarkParse, "malformed bookmarks JSON", err).
			WithDetail("path", path)
	}

	var entries []store.BrowserEntry
	for _, root := range file.Roots {
		flattenBookmarks(root.Children, "", browser, cached, &entries)
	}
	return entries, nil
}

// flattenBookmarks walks the folder tree, recording the innermost folder
// name on each leaf.
func flattenBookmarks(nodes []chromiumBookmarkNode, folder, browser string, cached int64, out *[]store.BrowserEntry) {
	for _, node := range nodes {
		if node.Type == "folder" {
			flattenBookmarks(node.Children, node.Name, browser, cached, out)
			continue
		}
		if node.URL == "" {
			continue
		}
		title := node.Name
		if title == "" {
			title = "Untitled"
		}
		*out = append(*out, store.BrowserEntry{
			URL:     node.URL,
			Title:   title,
			Browser: browser,
			Type:    store.EntryTypeBookmark,
			Folder:  folder,
			Cached:  cached,
		})
	}
}

// readChromiumHistory snapshot-copies the History database and queries the
// most-recent rows. Timestamps are microseconds since 1601-01-01.
func readChromiumHistory(ctx context.Context, path, browser string, limit int, cached int64) ([]store.BrowserEntry, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ierr.IOError("cannot stat history database", err)
	}

	snapshot, cleanup, err := snapshotCopy(path)
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
		FROM urls
		ORDER BY last_visit_time DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, ierr.New(ierr.ErrCodeHistoryParse, "cannot query history", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []store.BrowserEntry
	for rows.Next() {
		var url string
		var title sql.NullString
		var visitCount, lastVisit int64
		if err := rows.Scan(&url, &title, &visitCount, &lastVisit); err != nil {
			continue // Skip malformed rows
		}
		entries = append(entries, store.BrowserEntry{
			URL:         url,
			Title:       orUntitled(title.String),
			Browser:     browser,
			Type:        store.EntryTypeHistory,
			VisitCount:  visitCount,
			LastVisited: chromiumTimeToUnix(lastVisit),
			Cached:      cached,
		})
	}
	return entries, rows.Err()
}

// orUntitled substitutes a placeholder for missing titles.
func orUntitled(title string) string {
	if title == "" {
		return "Untitled"
	}
	return title
}

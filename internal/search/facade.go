package search

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/launchindex/internal/store"
)

// Facade issues one query against every source concurrently and merges
// the ranked results. A failing source degrades to partial results rather
// than failing the query.
type Facade struct {
	files   *store.FileStore
	browser *store.BrowserStore
	apps    AppSource
}

// NewFacade builds a facade over the given sources. Any source may be nil;
// nil sources are skipped.
func NewFacade(files *store.FileStore, browser *store.BrowserStore, apps AppSource) *Facade {
	return &Facade{files: files, browser: browser, apps: apps}
}

// Search fans out to the file index, the browser cache, and the app list,
// then merges everything sorted by score descending, capped at limit.
func (f *Facade) Search(ctx context.Context, query string, limit int) (*Response, error) {
	start := time.Now()
	if limit <= 0 {
		limit = 50
	}

	g, gctx := errgroup.WithContext(ctx)

	var fileResults, browserResults, appResults []Result

	if f.files != nil {
		g.Go(func() error {
			entries, err := f.files.Search(gctx, query, limit)
			if err != nil {
				// Partial results beat a failed query.
				slog.Warn("file_search_failed", slog.String("error", err.Error()))
				return nil
			}
			fileResults = fileToResults(entries, query)
			return nil
		})
	}

	if f.browser != nil {
		g.Go(func() error {
			entries, err := f.browser.Search(gctx, query, limit)
			if err != nil {
				slog.Warn("browser_search_failed", slog.String("error", err.Error()))
				return nil
			}
			browserResults = browserToResults(entries, query)
			return nil
		})
	}

	if f.apps != nil {
		g.Go(func() error {
			appResults = rankApps(f.apps.Apps(), query, limit)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]Result, 0, len(fileResults)+len(browserResults)+len(appResults))
	merged = append(merged, appResults...)
	merged = append(merged, fileResults...)
	merged = append(merged, browserResults...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}

	return &Response{
		Results:   merged,
		Total:     len(merged),
		QueryTime: time.Since(start).Milliseconds(),
	}, nil
}

// rankApps scores every app against the query and keeps the matches.
// An empty query returns all apps unranked.
func rankApps(apps []App, query string, limit int) []Result {
	var results []Result
	for _, app := range apps {
		score := 0.0
		if strings.TrimSpace(query) != "" {
			score = ScoreApp(app, query)
			if score <= 0 {
				continue
			}
		}
		results = append(results, Result{
			ID:       app.ID,
			Title:    app.Name,
			Subtitle: app.Path,
			Type:     TypeApp,
			Score:    score,
			Path:     app.Path,
			Icon:     app.Icon,
		})
		if len(results) >= limit {
			break
		}
	}
	return results
}

// fileToResults ranks file rows by the same name ladder used for apps.
func fileToResults(entries []store.FileEntry, query string) []Result {
	q := strings.ToLower(query)
	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		results = append(results, Result{
			ID:       strconv.FormatInt(e.ID, 10),
			Title:    e.Filename,
			Subtitle: e.Path,
			Type:     TypeFile,
			Score:    scoreName(strings.ToLower(e.Filename), q),
			Path:     e.Path,
		})
	}
	return results
}

// browserToResults ranks cached browser rows by title match plus a visit
// frequency boost mirroring the app usage boost.
func browserToResults(entries []store.BrowserEntry, query string) []Result {
	q := strings.ToLower(query)
	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		score := scoreName(strings.ToLower(e.Title), q)
		if e.VisitCount > 0 {
			score += math.Log10(float64(e.VisitCount)) / 10
		}
		results = append(results, Result{
			ID:       strconv.FormatInt(e.ID, 10),
			Title:    e.Title,
			Subtitle: e.URL,
			Type:     TypeBrowser,
			Score:    score,
			Path:     e.URL,
			Icon:     e.Favicon,
		})
	}
	return results
}

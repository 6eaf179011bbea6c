// Package browser extracts bookmarks and history from installed browsers
// and maintains a TTL-based cache of the results.
package browser

import (
	"context"
	"log/slog"
	"time"

	"github.com/Aman-CERP/launchindex/internal/config"
	ierr "github.com/Aman-CERP/launchindex/internal/errors"
	"github.com/Aman-CERP/launchindex/internal/store"
)

// Source reads browser records from one installed browser. Read returns
// whatever could be extracted; a missing browser yields an error, a missing
// data file within an installed browser yields an empty slice.
type Source interface {
	Name() string
	Read(ctx context.Context, limit int, now time.Time) ([]store.BrowserEntry, error)
}

// Reader refreshes the browser cache from the configured sources.
type Reader struct {
	cfg     config.BrowserConfig
	store   *store.BrowserStore
	sources []Source
	now     func() time.Time
}

// NewReader builds a Reader over the browsers enabled in cfg. Browsers
// that have no profile location on this OS are skipped with a warning.
func NewReader(cfg config.BrowserConfig, st *store.BrowserStore) *Reader {
	r := &Reader{
		cfg:   cfg,
		store: st,
		now:   time.Now,
	}
	for _, name := range cfg.Enabled {
		src, err := sourceFor(name)
		if err != nil {
			slog.Warn("browser_source_unavailable",
				slog.String("browser", name),
				slog.String("error", err.Error()))
			continue
		}
		r.sources = append(r.sources, src)
	}
	return r
}

// sourceFor resolves a browser name to its extraction source.
func sourceFor(name string) (Source, error) {
	dir, err := profileDir(name)
	if err != nil {
		return nil, err
	}
	switch name {
	case SourceChrome, SourceEdge, SourceBrave:
		return &chromiumSource{name: name, dir: dir}, nil
	case SourceFirefox:
		return &firefoxSource{dir: dir}, nil
	case SourceSafari:
		return &safariSource{dir: dir}, nil
	}
	return nil, ierr.PlatformError("unknown browser: " + name)
}

// UpdateCache evicts expired entries, then re-reads every available source
// and upserts its records. A failing source is logged and skipped so that
// the remaining browsers still refresh. Returns the number of records
// written.
func (r *Reader) UpdateCache(ctx context.Context) (int, error) {
	now := r.now()
	cutoff := now.Add(-r.cfg.CacheExpiry()).Unix()
	evicted, err := r.store.ExpireBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if evicted > 0 {
		slog.Debug("browser_cache_expired", slog.Int64("evicted", evicted))
	}

	total := 0
	for _, src := range r.sources {
		entries, err := src.Read(ctx, r.cfg.HistoryLimit, now)
		if err != nil {
			slog.Warn("browser_read_failed",
				slog.String("browser", src.Name()),
				slog.String("error", err.Error()))
			continue
		}
		for i := range entries {
			if err := r.store.Upsert(ctx, &entries[i]); err != nil {
				return total, err
			}
			total++
		}
		slog.Info("browser_cache_updated",
			slog.String("browser", src.Name()),
			slog.Int("entries", len(entries)))
	}
	return total, nil
}

// Search queries the cache without refreshing it.
func (r *Reader) Search(ctx context.Context, query string, limit int) ([]store.BrowserEntry, error) {
	return r.store.Search(ctx, query, limit)
}

// CacheStats reports bookmark and history counts in the cache.
func (r *Reader) CacheStats(ctx context.Context) (store.BrowserStats, error) {
	return r.store.Stats(ctx)
}

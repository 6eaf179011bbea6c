package indexer

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/Aman-CERP/launchindex/internal/config"
	ierr "github.com/Aman-CERP/launchindex/internal/errors"
	"github.com/Aman-CERP/launchindex/internal/store"
)

// Indexer mirrors the configured directory trees into the file store.
type Indexer struct {
	cfg   *config.Config
	store *store.FileStore

	seen     *seenCache
	excluded map[string]struct{}
	lock     *flock.Flock

	progress chan Progress
	stopCh   chan struct{}
	wg       sync.WaitGroup

	mu      sync.Mutex
	running bool
}

// New creates an Indexer writing to the given file store.
func New(cfg *config.Config, fileStore *store.FileStore) (*Indexer, error) {
	seen, err := newSeenCache(cfg.Indexer.MaxFiles)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]struct{}, len(cfg.Indexer.ExcludedDirs))
	for _, name := range cfg.Indexer.ExcludedDirs {
		excluded[name] = struct{}{}
	}

	return &Indexer{
		cfg:      cfg,
		store:    fileStore,
		seen:     seen,
		excluded: excluded,
		progress: make(chan Progress, 64),
	}, nil
}

// Progress returns the advisory scan progress stream. Notifications are
// dropped when the consumer falls behind, and the stream is closed by Stop
// so range loops over it terminate.
func (i *Indexer) Progress() <-chan Progress {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.progress
}

// Start launches the periodic full scanner and the filesystem watcher.
// Calling Start while already running is a no-op. An instance lock in the
// data dir prevents two indexer processes from writing the same store.
func (i *Indexer) Start(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.running {
		return nil
	}

	if _, err := i.cfg.EnsureDataDir(); err != nil {
		return ierr.New(ierr.ErrCodeDataDir, "cannot create data directory", err)
	}

	lock := flock.New(i.cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return ierr.LockError("cannot acquire indexer lock", err)
	}
	if !locked {
		return ierr.LockError("another indexer instance holds the lock", nil).
			WithDetail("lock_path", i.cfg.LockPath())
	}
	i.lock = lock

	i.stopCh = make(chan struct{})
	if i.progress == nil {
		i.progress = make(chan Progress, 64)
	}
	i.running = true

	i.wg.Add(2)
	go i.scanLoop(ctx)
	go i.watchLoop(ctx)

	slog.Info("indexer_started",
		slog.Any("paths", i.cfg.Indexer.Paths),
		slog.Duration("debounce", i.cfg.Indexer.DebounceInterval()))
	return nil
}

// Stop signals both background tasks and waits for them to observe the
// signal at their next poll boundary. In-flight upserts complete normally;
// no writes are issued after the signal is observed. Safe to call when not
// running.
func (i *Indexer) Stop() {
	i.mu.Lock()
	if !i.running {
		i.mu.Unlock()
		return
	}
	i.running = false
	close(i.stopCh)
	i.mu.Unlock()

	i.wg.Wait()

	i.mu.Lock()
	close(i.progress)
	i.progress = nil
	i.mu.Unlock()

	if i.lock != nil {
		_ = i.lock.Unlock()
		i.lock = nil
	}
	slog.Info("indexer_stopped")
}

// scanLoop runs a full scan immediately, then repeats at the debounce
// interval until stopped.
func (i *Indexer) scanLoop(ctx context.Context) {
	defer i.wg.Done()

	interval := i.cfg.Indexer.DebounceInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	i.scanPass(ctx)

	for {
		select {
		case <-i.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			i.scanPass(ctx)
		}
	}
}

// scanPass walks every configured root once, upserting files not yet in the
// seen cache. Per-entry I/O errors are skipped; no ordering is guaranteed
// across directories.
func (i *Indexer) scanPass(ctx context.Context) {
	indexed := 0
	for _, root := range i.cfg.Indexer.Paths {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		n, err := i.scanTree(ctx, root, i.seen)
		indexed += n
		if err != nil {
			slog.Warn("scan_failed",
				slog.String("root", root),
				slog.String("error", err.Error()))
		}
	}
	if indexed > 0 {
		slog.Debug("scan_pass_complete", slog.Int("indexed", indexed))
	}
}

// scanTree walks one root and returns the number of files upserted.
// seen may be nil to force re-indexing (used by IndexPaths).
func (i *Indexer) scanTree(ctx context.Context, root string, seen *seenCache) (int, error) {
	indexed := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-i.stopOrDone(ctx):
			return filepath.SkipAll
		default:
		}

		if err != nil {
			return nil // Skip entries we can't access
		}

		if d.IsDir() {
			if path != root && i.isExcludedName(d.Name()) {
				return filepath.SkipDir
			}
			i.emitProgress(Progress{Current: indexed, Path: path, Stage: "scanning"})
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if seen != nil && seen.Contains(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil // File vanished between listing and stat
		}

		if upsertErr := i.store.Upsert(ctx, newFileEntry(path, info)); upsertErr != nil {
			slog.Warn("upsert_failed",
				slog.String("path", path),
				slog.String("error", upsertErr.Error()))
			return nil
		}

		if seen != nil {
			seen.Add(path)
		}
		indexed++
		return nil
	})
	return indexed, err
}

// IndexPaths synchronously indexes explicit files or directories, bypassing
// the configured roots and the seen cache. Returns the number of entries
// indexed.
func (i *Indexer) IndexPaths(ctx context.Context, paths []string) (int, error) {
	total := 0
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			continue
		}

		if info.IsDir() {
			n, err := i.scanTree(ctx, abs, nil)
			total += n
			if err != nil {
				return total, ierr.Wrap(ierr.ErrCodeStoreWrite, err)
			}
			continue
		}

		if err := i.store.Upsert(ctx, newFileEntry(abs, info)); err != nil {
			return total, ierr.Wrap(ierr.ErrCodeStoreWrite, err)
		}
		i.seen.Add(abs)
		total++
	}
	return total, nil
}

// Search returns indexed files whose name contains the query substring.
func (i *Indexer) Search(ctx context.Context, query string, limit int) ([]store.FileEntry, error) {
	return i.store.Search(ctx, query, limit)
}

// Stats returns file index statistics.
func (i *Indexer) Stats(ctx context.Context) (store.FileStats, error) {
	return i.store.Stats(ctx)
}

// isExcludedName reports whether a single path segment is excluded.
func (i *Indexer) isExcludedName(name string) bool {
	_, ok := i.excluded[name]
	return ok
}

// isExcludedPath reports whether any segment of the path is excluded.
func (i *Indexer) isExcludedPath(path string) bool {
	for _, segment := range strings.Split(path, string(filepath.Separator)) {
		if i.isExcludedName(segment) {
			return true
		}
	}
	return false
}

// emitProgress sends an advisory progress notification without blocking.
// The lock keeps the send from racing the close in Stop.
func (i *Indexer) emitProgress(p Progress) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.progress == nil {
		return
	}
	select {
	case i.progress <- p:
	default:
	}
}

// stopOrDone returns a channel that closes when the indexer stops or the
// context is cancelled. Returns nil (never ready) when the indexer was not
// started, as in one-shot IndexPaths calls.
func (i *Indexer) stopOrDone(ctx context.Context) <-chan struct{} {
	if ctx.Err() != nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stopCh
}

// newFileEntry builds a store row from file metadata.
func newFileEntry(path string, info fs.FileInfo) *store.FileEntry {
	filename := filepath.Base(path)
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")

	return &store.FileEntry{
		Path:      path,
		Filename:  filename,
		Extension: ext,
		Size:      info.Size(),
		Modified:  info.ModTime().Unix(),
		Hidden:    strings.HasPrefix(filename, "."),
		Indexed:   time.Now().Unix(),
	}
}

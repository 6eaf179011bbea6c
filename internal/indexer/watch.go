package indexer

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounceWindow coalesces bursts of editor events (write + rename
// + chmod storms) before they hit the store.
const watchDebounceWindow = 200 * time.Millisecond

// watchLoop subscribes to native filesystem notifications for all configured
// roots and applies single-row updates as events arrive. It runs until Stop
// is called; a watcher setup failure disables event-driven updates but the
// periodic scanner still converges the index.
func (i *Indexer) watchLoop(ctx context.Context) {
	defer i.wg.Done()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("watcher_unavailable", slog.String("error", err.Error()))
		return
	}
	defer func() { _ = fsw.Close() }()

	for _, root := range i.cfg.Indexer.Paths {
		if _, statErr := os.Stat(root); statErr != nil {
			continue
		}
		if addErr := i.watchRecursive(fsw, root); addErr != nil {
			slog.Warn("watch_add_failed",
				slog.String("root", root),
				slog.String("error", addErr.Error()))
		}
	}

	deb := newEventDebouncer(watchDebounceWindow)
	defer deb.Stop()

	for {
		select {
		case <-i.stopCh:
			return
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			i.handleFsnotifyEvent(fsw, event, deb)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher_error", slog.String("error", err.Error()))
		case batch, ok := <-deb.Output():
			if !ok {
				return
			}
			i.applyEvents(ctx, batch)
		}
	}
}

// watchRecursive adds root and all non-excluded subdirectories to the watch.
func (i *Indexer) watchRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip directories we can't access
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && i.isExcludedName(d.Name()) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

// handleFsnotifyEvent converts a native event and feeds the debouncer.
// Newly created directories are added to the watch immediately so files
// written into them are not missed.
func (i *Indexer) handleFsnotifyEvent(fsw *fsnotify.Watcher, event fsnotify.Event, deb *eventDebouncer) {
	if i.isExcludedPath(event.Name) {
		return
	}

	var op Operation
	switch {
	case event.Op&fsnotify.Create != 0:
		op = OpCreate
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := i.watchRecursive(fsw, event.Name); err != nil {
				slog.Warn("watch_add_failed",
					slog.String("root", event.Name),
					slog.String("error", err.Error()))
			}
			return
		}
	case event.Op&fsnotify.Write != 0:
		op = OpModify
	case event.Op&fsnotify.Remove != 0, event.Op&fsnotify.Rename != 0:
		// A rename looks like a delete at the old path; the create event
		// for the new path arrives separately.
		op = OpDelete
	default:
		return // Chmod and other noise
	}

	deb.Add(FileEvent{Path: event.Name, Operation: op, Timestamp: time.Now()})
}

// applyEvents applies a debounced batch of watcher events to the store.
// Upserts and deletes are keyed by path, so races with a concurrent full
// scan converge to the most-recent write.
func (i *Indexer) applyEvents(ctx context.Context, events []FileEvent) {
	for _, ev := range events {
		switch ev.Operation {
		case OpCreate, OpModify:
			info, err := os.Stat(ev.Path)
			if err != nil || info.IsDir() {
				continue // Vanished before we could stat it, or a directory
			}
			if err := i.store.Upsert(ctx, newFileEntry(ev.Path, info)); err != nil {
				slog.Warn("upsert_failed",
					slog.String("path", ev.Path),
					slog.String("error", err.Error()))
				continue
			}
			i.seen.Add(ev.Path)
		case OpDelete:
			if err := i.store.Delete(ctx, ev.Path); err != nil {
				slog.Warn("delete_failed",
					slog.String("path", ev.Path),
					slog.String("error", err.Error()))
				continue
			}
			i.seen.Remove(ev.Path)
		}
	}
}

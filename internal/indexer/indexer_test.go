package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/launchindex/internal/config"
	"github.com/Aman-CERP/launchindex/internal/store"
)

// newTestIndexer builds an indexer over a fresh temp data dir and root.
func newTestIndexer(t *testing.T, roots ...string) (*Indexer, *store.FileStore) {
	t.Helper()

	cfg := config.NewConfig()
	cfg.DataDir = t.TempDir()
	cfg.Indexer.Paths = roots
	cfg.Indexer.Debounce = "100ms"

	s, err := store.OpenFileStore(cfg.FilesDBPath())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	idx, err := New(cfg, s)
	require.NoError(t, err)
	return idx, s
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestIndexPaths_SkipsExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello")
	writeFile(t, filepath.Join(root, "node_modules", "b.txt"), "dep")

	idx, s := newTestIndexer(t, root)
	ctx := context.Background()

	n, err := idx.IndexPaths(ctx, []string{root})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalFiles)

	results, err := idx.Search(ctx, "a.txt", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(root, "a.txt"), results[0].Path)

	excluded, err := idx.Search(ctx, "b.txt", 10)
	require.NoError(t, err)
	assert.Empty(t, excluded, "files under excluded dirs must never be indexed")
}

func TestIndexPaths_IdempotentReindex(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "report.md"), "content")

	idx, s := newTestIndexer(t, root)
	ctx := context.Background()

	_, err := idx.IndexPaths(ctx, []string{root})
	require.NoError(t, err)
	first, err := s.Get(ctx, filepath.Join(root, "report.md"))
	require.NoError(t, err)
	require.NotNil(t, first)

	_, err = idx.IndexPaths(ctx, []string{root})
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalFiles, "re-indexing must not duplicate")

	second, err := s.Get(ctx, filepath.Join(root, "report.md"))
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.Filename, second.Filename)
	assert.Equal(t, first.Size, second.Size)
	assert.Equal(t, first.Modified, second.Modified)
	assert.Equal(t, first.Hidden, second.Hidden)
}

func TestIndexPaths_SingleFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "single.log")
	writeFile(t, path, "x")

	idx, _ := newTestIndexer(t)
	ctx := context.Background()

	n, err := idx.IndexPaths(ctx, []string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	results, err := idx.Search(ctx, "single", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "log", results[0].Extension)
}

func TestIndexPaths_MissingPathIsSkipped(t *testing.T) {
	idx, _ := newTestIndexer(t)

	n, err := idx.IndexPaths(context.Background(), []string{"/does/not/exist"})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStartScansAndWatcherRemoves(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "watched.txt")
	writeFile(t, path, "hello")

	idx, s := newTestIndexer(t, root)
	ctx := context.Background()

	require.NoError(t, idx.Start(ctx))
	defer idx.Stop()

	// Initial scan picks the file up
	require.Eventually(t, func() bool {
		stats, err := s.Stats(ctx)
		return err == nil && stats.TotalFiles == 1
	}, 5*time.Second, 50*time.Millisecond, "scan should index the file")

	// Removing the file on disk removes the row via the watcher
	require.NoError(t, os.Remove(path))
	require.Eventually(t, func() bool {
		entry, err := s.Get(ctx, path)
		return err == nil && entry == nil
	}, 5*time.Second, 50*time.Millisecond, "watcher should delete the row")
}

func TestStartIsIdempotent(t *testing.T) {
	root := t.TempDir()
	idx, _ := newTestIndexer(t, root)
	ctx := context.Background()

	require.NoError(t, idx.Start(ctx))
	require.NoError(t, idx.Start(ctx), "second Start must be a no-op")
	idx.Stop()
	idx.Stop() // Stop when not running is also a no-op
}

func TestStartRefusesSecondInstance(t *testing.T) {
	root := t.TempDir()
	idx1, _ := newTestIndexer(t, root)
	ctx := context.Background()

	require.NoError(t, idx1.Start(ctx))
	defer idx1.Stop()

	// Second indexer over the same data dir must fail to lock
	cfg2 := config.NewConfig()
	cfg2.DataDir = idx1.cfg.DataDir
	cfg2.Indexer.Paths = []string{root}
	cfg2.Indexer.Debounce = "100ms"

	s2, err := store.OpenFileStore(filepath.Join(t.TempDir(), "other.db"))
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()

	idx2, err := New(cfg2, s2)
	require.NoError(t, err)
	assert.Error(t, idx2.Start(ctx))
}

func TestScanEmitsProgress(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "docs", "readme.md"), "x")

	idx, _ := newTestIndexer(t, root)
	ctx := context.Background()

	_, err := idx.IndexPaths(ctx, []string{root})
	require.NoError(t, err)

	select {
	case p := <-idx.Progress():
		assert.Equal(t, "scanning", p.Stage)
		assert.NotEmpty(t, p.Path)
	default:
		t.Fatal("expected at least one progress notification")
	}
}

func TestStopClosesProgressStream(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "notes.txt"), "x")

	idx, _ := newTestIndexer(t, root)
	require.NoError(t, idx.Start(context.Background()))

	progress := idx.Progress()
	idx.Stop()

	// A drain loop over the stream must terminate once Stop returns.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-progress:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("progress stream still open after Stop")
		}
	}
}

func TestRestartReopensProgressStream(t *testing.T) {
	root := t.TempDir()
	idx, _ := newTestIndexer(t, root)
	ctx := context.Background()

	require.NoError(t, idx.Start(ctx))
	idx.Stop()

	require.NoError(t, idx.Start(ctx))
	defer idx.Stop()

	select {
	case _, ok := <-idx.Progress():
		assert.True(t, ok, "restarted stream must be open")
	default:
	}
}

func TestNewFileEntryMetadata(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".hidden.conf")
	writeFile(t, path, "secret")

	info, err := os.Stat(path)
	require.NoError(t, err)

	entry := newFileEntry(path, info)
	assert.Equal(t, path, entry.Path)
	assert.Equal(t, ".hidden.conf", entry.Filename)
	assert.Equal(t, "conf", entry.Extension)
	assert.True(t, entry.Hidden)
	assert.Equal(t, int64(6), entry.Size)
	assert.NotZero(t, entry.Indexed)
}

func TestIsExcludedPath(t *testing.T) {
	idx, _ := newTestIndexer(t)

	sep := string(filepath.Separator)
	assert.True(t, idx.isExcludedPath(filepath.Join(sep, "proj", "node_modules", "x.js")))
	assert.True(t, idx.isExcludedPath(filepath.Join(sep, "proj", ".git", "HEAD")))
	assert.False(t, idx.isExcludedPath(filepath.Join(sep, "proj", "src", "x.js")))
	assert.False(t, idx.isExcludedPath(filepath.Join(sep, "proj", "node_modules_backup", "x.js")))
}

func TestSeenCacheBoundsAndForgets(t *testing.T) {
	seen, err := newSeenCache(2)
	require.NoError(t, err)

	seen.Add("/a")
	seen.Add("/b")
	assert.True(t, seen.Contains("/a"))

	seen.Add("/c") // Evicts the least recently used entry
	assert.Equal(t, 2, seen.Len())

	seen.Remove("/c")
	assert.False(t, seen.Contains("/c"))
}

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := OpenFileStore(filepath.Join(t.TempDir(), "files_index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testFileEntry(path string) *FileEntry {
	return &FileEntry{
		Path:      path,
		Filename:  filepath.Base(path),
		Extension: "txt",
		Size:      42,
		Modified:  time.Now().Unix(),
		Indexed:   time.Now().Unix(),
	}
}

func TestFileStore_UpsertIsIdempotent(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	entry := testFileEntry("/tmp/proj/a.txt")
	require.NoError(t, s.Upsert(ctx, entry))
	require.NoError(t, s.Upsert(ctx, entry))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalFiles, "same path must not duplicate")

	got, err := s.Get(ctx, "/tmp/proj/a.txt")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a.txt", got.Filename)
	assert.Equal(t, int64(42), got.Size)
}

func TestFileStore_UpsertOverwritesInPlace(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	entry := testFileEntry("/tmp/proj/a.txt")
	require.NoError(t, s.Upsert(ctx, entry))

	entry.Size = 100
	entry.Hidden = true
	require.NoError(t, s.Upsert(ctx, entry))

	got, err := s.Get(ctx, "/tmp/proj/a.txt")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(100), got.Size)
	assert.True(t, got.Hidden)
}

func TestFileStore_Delete(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, testFileEntry("/tmp/proj/a.txt")))
	require.NoError(t, s.Delete(ctx, "/tmp/proj/a.txt"))

	got, err := s.Get(ctx, "/tmp/proj/a.txt")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is a no-op
	assert.NoError(t, s.Delete(ctx, "/tmp/proj/a.txt"))
}

func TestFileStore_SearchSubstringOrderedAndLimited(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	for _, name := range []string{"repo-b.md", "notes.txt", "repo-a.md", "repository.go"} {
		require.NoError(t, s.Upsert(ctx, testFileEntry("/tmp/"+name)))
	}

	results, err := s.Search(ctx, "repo", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "repo-a.md", results[0].Filename)
	assert.Equal(t, "repo-b.md", results[1].Filename)
	assert.Equal(t, "repository.go", results[2].Filename)

	limited, err := s.Search(ctx, "repo", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestFileStore_SearchNoMatches(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, testFileEntry("/tmp/a.txt")))

	results, err := s.Search(ctx, "zzz", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFileStore_EmptyExtensionStoredAsNull(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	entry := testFileEntry("/tmp/Makefile")
	entry.Extension = ""
	require.NoError(t, s.Upsert(ctx, entry))

	got, err := s.Get(ctx, "/tmp/Makefile")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Extension)
}

func TestFileStore_SchemaInitIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "files_index.db")

	s1, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.Upsert(context.Background(), testFileEntry("/tmp/a.txt")))
	require.NoError(t, s1.Close())

	// Reopening must keep existing rows
	s2, err := OpenFileStore(path)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()

	stats, err := s2.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalFiles)
}

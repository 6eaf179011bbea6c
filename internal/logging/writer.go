package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// RotatingWriter implements io.Writer with size-based rotation.
// Rotated files are kept as <name>.1 (newest) through <name>.N (oldest).
type RotatingWriter struct {
	path     string
	maxSize  int64
	maxFiles int

	mu      sync.Mutex
	file    *os.File
	written int64
}

// NewRotatingWriter creates a new rotating log writer.
// maxSizeMB is the maximum size in megabytes before rotation.
// maxFiles is the maximum number of rotated files to keep.
func NewRotatingWriter(path string, maxSizeMB, maxFiles int) (*RotatingWriter, error) {
	w := &RotatingWriter{
		path:     path,
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		maxFiles: maxFiles,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if err := w.openFile(); err != nil {
		return nil, err
	}

	return w, nil
}

// Write implements io.Writer with automatic rotation.
func (w *RotatingWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.written+int64(len(p)) > w.maxSize {
		if err := w.rotate(); err != nil {
			// Keep writing to the current file if rotation fails
			_, _ = fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
		}
	}

	n, err = w.file.Write(p)
	w.written += int64(n)
	return
}

// Close closes the underlying file.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// Sync flushes the file to disk.
func (w *RotatingWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file != nil {
		return w.file.Sync()
	}
	return nil
}

// openFile opens or creates the log file.
func (w *RotatingWriter) openFile() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	w.file = f
	w.written = info.Size()
	return nil
}

// rotate shifts index.log -> index.log.1 -> index.log.2 and drops the oldest.
func (w *RotatingWriter) rotate() error {
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
		w.file = nil
	}

	dir := filepath.Dir(w.path)
	base := filepath.Base(w.path)

	matches, err := filepath.Glob(filepath.Join(dir, base+".*"))
	if err != nil {
		return fmt.Errorf("failed to find rotated files: %w", err)
	}

	type rotatedFile struct {
		path string
		num  int
	}
	var files []rotatedFile
	for _, m := range matches {
		suffix := strings.TrimPrefix(filepath.Base(m), base+".")
		num, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		files = append(files, rotatedFile{path: m, num: num})
	}

	// Rename highest first to avoid overwriting
	sort.Slice(files, func(i, j int) bool {
		return files[i].num > files[j].num
	})

	for _, f := range files {
		if f.num >= w.maxFiles {
			_ = os.Remove(f.path)
			continue
		}
		_ = os.Rename(f.path, fmt.Sprintf("%s.%d", w.path, f.num+1))
	}

	if _, err := os.Stat(w.path); err == nil {
		if err := os.Rename(w.path, w.path+".1"); err != nil {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	w.written = 0
	return w.openFile()
}

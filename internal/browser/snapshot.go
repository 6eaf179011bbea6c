package browser

import (
	"io"
	"os"

	ierr "github.com/Aman-CERP/launchindex/internal/errors"
)

// snapshotCopy copies the file at path byte-for-byte into a private
// temporary file and returns the copy's path with a cleanup function.
//
// Browser history stores are live SQLite databases that the running browser
// may hold exclusively locked. Reading a private copy avoids both failing
// on the lock and corrupting the original.
func snapshotCopy(path string) (string, func(), error) {
	src, err := os.Open(path)
	if err != nil {
		return "", nil, ierr.New(ierr.ErrCodeSnapshotCopy, "cannot open source database", err).
			WithDetail("path", path)
	}
	defer func() { _ = src.Close() }()

	tmp, err := os.CreateTemp("", "launchindex-snapshot-*.db")
	if err != nil {
		return "", nil, ierr.New(ierr.ErrCodeSnapshotCopy, "cannot create temp file", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", nil, ierr.New(ierr.ErrCodeSnapshotCopy, "cannot copy database", err).
			WithDetail("path", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", nil, ierr.New(ierr.ErrCodeSnapshotCopy, "cannot finalize temp file", err)
	}

	cleanup := func() { _ = os.Remove(tmp.Name()) }
	return tmp.Name(), cleanup, nil
}

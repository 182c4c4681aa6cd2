package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// stagingPrefix marks in-progress uploads inside the storage directory.
// Staging in the same directory keeps the final rename on one filesystem,
// so a finished upload appears atomically under its real name.
const stagingPrefix = ".upload-"

// localStorage implements Storage on a flat local directory.
// It is safe for concurrent use; the filesystem arbitrates racing writes.
type localStorage struct {
	dir string
}

// NewLocal creates a local filesystem storage rooted at cfg.Dir.
// The directory is created if it does not exist.
func NewLocal(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &localStorage{dir: dir}, nil
}

// Put writes content to a staging file first, then renames it into place.
// An existing file with the same name is replaced atomically.
func (l *localStorage) Put(ctx context.Context, name string, r io.Reader, opt PutOptions) (FileInfo, error) {
	tmp, err := os.CreateTemp(l.dir, stagingPrefix+"*")
	if err != nil {
		return FileInfo{}, fmt.Errorf("create staging file: %w", err)
	}

	written, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return FileInfo{}, fmt.Errorf("write staging file: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return FileInfo{}, fmt.Errorf("chmod staging file: %w", err)
	}

	dst := filepath.Join(l.dir, name)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return FileInfo{}, fmt.Errorf("move file into place: %w", err)
	}

	return FileInfo{
		Name:         name,
		Size:         written,
		ContentType:  opt.ContentType,
		LastModified: time.Now().UTC(),
	}, nil
}

// Get opens a stored file. Directories are reported as absent.
func (l *localStorage) Get(ctx context.Context, name string) (io.ReadCloser, FileInfo, error) {
	f, err := os.Open(filepath.Join(l.dir, name))
	if err != nil {
		return nil, FileInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, FileInfo{}, err
	}
	if !st.Mode().IsRegular() {
		f.Close()
		return nil, FileInfo{}, os.ErrNotExist
	}
	return f, FileInfo{
		Name:         name,
		Size:         st.Size(),
		LastModified: st.ModTime(),
	}, nil
}

// List returns all regular files in the storage directory. Staging files are
// hidden; an entry that disappears or cannot be inspected mid-listing is
// skipped rather than failing the whole listing.
func (l *localStorage) List(ctx context.Context) ([]FileInfo, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read storage directory: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if strings.HasPrefix(e.Name(), stagingPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Name:         e.Name(),
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
	}
	return files, nil
}

// Delete removes a stored file. Absent names and directories yield os.ErrNotExist.
func (l *localStorage) Delete(ctx context.Context, name string) error {
	path := filepath.Join(l.dir, name)
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !st.Mode().IsRegular() {
		return os.ErrNotExist
	}
	return os.Remove(path)
}

// Ping verifies the storage directory still exists and is a directory.
func (l *localStorage) Ping(ctx context.Context) error {
	st, err := os.Stat(l.dir)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("storage path %s is not a directory", l.dir)
	}
	return nil
}

// Package storage contains the file storage abstraction shared by the local
// filesystem backend and the S3-compatible backend. Names form a single flat
// namespace; there are no directories and no metadata sidecar.
package storage

import (
	"context"
	"io"
	"time"
)

// PutOptions define optional parameters for storing a file.
// Size should be the exact number of bytes if known; ContentType is advisory
// and may be empty.
type PutOptions struct {
	Size        int64
	ContentType string
}

// FileInfo contains basic information about a stored file.
type FileInfo struct {
	Name         string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage is the file storage backend interface. Implementations are safe for
// concurrent use and stream content; nothing is buffered in memory.
//
// Get and Delete report an absent name with an error satisfying
// errors.Is(err, os.ErrNotExist). A name that resolves to a directory or other
// non-regular entry is reported the same way; it is never served or removed.
type Storage interface {
	// Put stores content under the given name, replacing any existing file
	// with that name.
	Put(ctx context.Context, name string, r io.Reader, opt PutOptions) (FileInfo, error)
	// Get opens a stored file for reading alongside its info.
	Get(ctx context.Context, name string) (io.ReadCloser, FileInfo, error)
	// List enumerates all stored files. Order is backend-defined.
	List(ctx context.Context) ([]FileInfo, error)
	// Delete removes a file by name.
	Delete(ctx context.Context, name string) error
	// Ping verifies the backend is reachable and usable.
	Ping(ctx context.Context) error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"sharebox/internal/model"
	"sharebox/internal/storage"
)

var (
	ErrNameRequired = errors.New("file name is required")
	ErrInvalidName  = errors.New("invalid file name")
	ErrNotFound     = errors.New("file not found")
	ErrReaderNil    = errors.New("reader is nil")
	ErrTooLarge     = errors.New("file exceeds maximum size")
)

// FileService defines the use cases for handling stored files.
type FileService interface {
	// Upload stores content under its original name, replacing any existing
	// file with that name. The name is used as-is; there is no collision
	// renaming.
	Upload(ctx context.Context, r io.Reader, name string, contentType string, size int64) (*model.File, error)

	// List returns all stored files ordered by name.
	List(ctx context.Context) ([]model.File, error)

	// Download opens a stored file for streaming alongside its info.
	// The caller owns the returned ReadCloser.
	Download(ctx context.Context, name string) (io.ReadCloser, *model.File, error)

	// Delete removes a stored file by name.
	Delete(ctx context.Context, name string) error
}

// fileService is a concrete implementation of FileService.
type fileService struct {
	store    storage.Storage
	maxBytes int64
}

// NewFileService constructs a new FileService. maxBytes caps the size of a
// single upload; zero or negative disables the check.
func NewFileService(store storage.Storage, maxBytes int64) FileService {
	return &fileService{store: store, maxBytes: maxBytes}
}

// validName reports whether name is usable as a flat storage key.
// Path separators and the dot entries would escape the namespace.
func validName(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

func (s *fileService) Upload(ctx context.Context, r io.Reader, name string, contentType string, size int64) (*model.File, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if !validName(name) {
		return nil, ErrInvalidName
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, ErrTooLarge
	}

	info, err := s.store.Put(ctx, name, r, storage.PutOptions{
		Size:        size,
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("write to storage: %w", err)
	}

	return &model.File{
		Name:        info.Name,
		Size:        info.Size,
		ContentType: info.ContentType,
		ModifiedAt:  info.LastModified,
	}, nil
}

// List returns stored files in stable lexical order by name.
func (s *fileService) List(ctx context.Context) ([]model.File, error) {
	infos, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	files := make([]model.File, 0, len(infos))
	for _, info := range infos {
		files = append(files, model.File{
			Name:        info.Name,
			Size:        info.Size,
			ContentType: info.ContentType,
			ModifiedAt:  info.LastModified,
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Download opens a file by name. Invalid names can never be stored, so they
// report not-found like absent ones.
func (s *fileService) Download(ctx context.Context, name string) (io.ReadCloser, *model.File, error) {
	if name == "" {
		return nil, nil, ErrNameRequired
	}
	if !validName(name) {
		return nil, nil, ErrNotFound
	}

	rc, info, err := s.store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	return rc, &model.File{
		Name:        info.Name,
		Size:        info.Size,
		ContentType: info.ContentType,
		ModifiedAt:  info.LastModified,
	}, nil
}

// Delete removes a file by name.
func (s *fileService) Delete(ctx context.Context, name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if !validName(name) {
		return ErrNotFound
	}

	if err := s.store.Delete(ctx, name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete from storage: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"sharebox/internal/config"
)

// minioStorage implements Storage on an S3-compatible backend (MinIO, AWS S3, etc.).
// Files live as objects in a single flat bucket; the object key is the file name.
// It is safe for concurrent use by multiple goroutines.
type minioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates an S3-compatible storage backend backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ms := &minioStorage{client: cli, bucket: cfg.Bucket}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return ms, nil
}

// isNoSuchKey reports whether err is the backend's object-not-found response.
func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

// Put uploads an object under the file name using streaming I/O only.
// S3 object writes replace any existing object with the same key.
func (m *minioStorage) Put(ctx context.Context, name string, r io.Reader, opt PutOptions) (FileInfo, error) {
	info, err := m.client.PutObject(ctx, m.bucket, name, r, opt.Size, minio.PutObjectOptions{
		ContentType: opt.ContentType,
	})
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{
		Name:         name,
		Size:         info.Size,
		ContentType:  opt.ContentType,
		LastModified: time.Now().UTC(),
	}, nil
}

// Get downloads an object's content as a ReadCloser along with basic info.
// A missing object surfaces as os.ErrNotExist.
func (m *minioStorage) Get(ctx context.Context, name string) (io.ReadCloser, FileInfo, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, FileInfo{}, err
	}
	// GetObject is lazy; Stat performs the actual lookup.
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		if isNoSuchKey(err) {
			return nil, FileInfo{}, os.ErrNotExist
		}
		return nil, FileInfo{}, err
	}
	return obj, FileInfo{
		Name:         name,
		Size:         st.Size,
		ContentType:  st.ContentType,
		LastModified: st.LastModified,
	}, nil
}

// List enumerates all objects in the bucket.
func (m *minioStorage) List(ctx context.Context) ([]FileInfo, error) {
	var files []FileInfo
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		// Common prefixes (pseudo-directories) carry a trailing slash.
		if obj.Key == "" || obj.Key[len(obj.Key)-1] == '/' {
			continue
		}
		files = append(files, FileInfo{
			Name:         obj.Key,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
		})
	}
	if files == nil {
		files = []FileInfo{}
	}
	return files, nil
}

// Delete removes an object by name. RemoveObject succeeds for absent keys, so
// the object is stat'ed first to keep the not-found contract.
func (m *minioStorage) Delete(ctx context.Context, name string) error {
	if _, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return os.ErrNotExist
		}
		return err
	}
	return m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{})
}

// Ping verifies the bucket is reachable.
func (m *minioStorage) Ping(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", m.bucket)
	}
	return nil
}

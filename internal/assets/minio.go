// Package assets stores uploaded files (rich-content images, documents)
// in an S3-compatible object store and serves them under /uploads/.
package assets

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Object is a stored asset opened for reading.
type Object struct {
	io.ReadCloser
	ContentType string
	Size        int64
}

type Store struct {
	client *minio.Client
	bucket string
}

func New(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Store, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object store: %w", err)
	}
	return &Store{client: client, bucket: bucket}, nil
}

// EnsureBucket creates the bucket on first boot.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// Put stores the upload under a collision-free name and returns the
// public path it will be served from.
func (s *Store) Put(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	name := objectName(filename)
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("store asset: %w", err)
	}
	return "/uploads/" + name, nil
}

// Get opens a stored asset by the name it is served under.
func (s *Store) Get(ctx context.Context, name string) (*Object, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("open asset: %w", err)
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("stat asset: %w", err)
	}
	return &Object{
		ReadCloser:  obj,
		ContentType: stat.ContentType,
		Size:        stat.Size,
	}, nil
}

// objectName keeps the original extension but replaces the rest with a
// uuid so uploads never overwrite each other.
func objectName(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	return uuid.NewString() + ext
}

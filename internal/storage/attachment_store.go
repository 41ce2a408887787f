package storage

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// AttachmentStore stores attachment and document binaries in MinIO. The
// database row is the source of truth; the store is a best-effort mirror and
// removals must never fail a database transaction.
type AttachmentStore struct {
	client *minio.Client
	bucket string
}

// NewAttachmentStore creates an AttachmentStore on the given client and bucket.
func NewAttachmentStore(client *minio.Client, bucket string) *AttachmentStore {
	return &AttachmentStore{client: client, bucket: bucket}
}

// Get streams the file stored under the given key.
func (s *AttachmentStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch from MinIO")
	}
	return obj, nil
}

// Remove deletes the file stored under the given key.
func (s *AttachmentStore) Remove(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrapf(err, "failed to remove %s from MinIO", key)
	}
	return nil
}

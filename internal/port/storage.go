package port

import (
	"context"
	"io"
	"time"
)

// PutObjectInput carries one submitted document into object storage.
type PutObjectInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// ObjectStorage retains submitted documents so page geometry and highlight
// lookups can re-read the original bytes for a job, and so the frontend
// viewer can fetch the document through a presigned URL.
type ObjectStorage interface {
	Put(ctx context.Context, input PutObjectInput) (string, error)
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

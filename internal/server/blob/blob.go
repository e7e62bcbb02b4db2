// Package blob abstracts where image bytes live: a local directory in
// development, an S3-compatible bucket (MinIO) in deployments.
package blob

import (
	"context"
	"io"
)

// Sink stores and retrieves image bytes by key. Keys are the storage
// paths generated at upload time, e.g. "img/<uuid>".
type Sink interface {
	Save(ctx context.Context, key string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

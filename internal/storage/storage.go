// Package storage defines the interface for file storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"io"
)

// Storage is the interface for persisting and removing uploaded files.
// Keys are slash-separated paths relative to the storage root, e.g.
// "alice/images/aB3xY9.png".
type Storage interface {
	// Save streams data to the store under the given key.
	Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Remove deletes the file identified by key.
	Remove(ctx context.Context, key string) error
}

package ports

import (
	"context"
	"io"
)

// BlobStore abstracts the external object-storage provider used for
// file-backed materials.
type BlobStore interface {
	// Upload streams content to the store under key and returns the stored
	// object's locator URL.
	Upload(ctx context.Context, key string, content io.Reader, size int64, contentType string) (string, error)
	// PresignGet returns a short-lived signed download URL for key.
	PresignGet(ctx context.Context, key string) (string, error)
	// Get opens the object for reading. The caller must close the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

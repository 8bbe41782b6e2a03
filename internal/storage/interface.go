package storage

import (
	"context"
	"io"
)

// BlobStorage is the narrow blob-store capability the application
// consumes: store a binary object under a key, get a retrievable URL
// back. Event images, uploaded documents and note attachments all go
// through it; no workflow logic depends on blob contents.
type BlobStorage interface {
	// Save stores the object under key and returns its retrievable URL.
	Save(ctx context.Context, key string, reader io.Reader) (string, error)

	// Open returns a reader for the stored object.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether the object is present, and its size.
	Exists(ctx context.Context, key string) (bool, int64, error)

	// Delete removes the object. Deleting a missing object is not an
	// error.
	Delete(ctx context.Context, key string) error

	// URL returns the retrievable URL for a stored key.
	URL(key string) string
}

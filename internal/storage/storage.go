package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

var ErrObjectNotFound = errors.New("object not found in storage")

// FileStorage defines the object storage operations: exercise demo media is
// served through presigned URLs and catalog seed files can be read from the
// bucket.
type FileStorage interface {
	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// GetObject opens an object for reading. The caller closes the reader.
	GetObject(ctx context.Context, objectKey string) (io.ReadCloser, error)
}

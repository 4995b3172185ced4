package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotExist reports an absent blob, regardless of backend
var ErrNotExist = errors.New("blob does not exist")

// Store abstracts where document blobs live (local disk or S3-compatible).
// Open returns ErrNotExist when the key has no blob behind it.
type Store interface {
	Save(ctx context.Context, key string, body io.Reader, contentType string, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// GenerateKey creates a unique storage key for an uploaded file,
// keeping the original extension
func GenerateKey(filename string) string {
	return uuid.New().String() + filepath.Ext(filename)
}

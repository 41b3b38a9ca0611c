package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/docuwise/legal-assistant/pkg/logger"
	"github.com/docuwise/legal-assistant/pkg/storage/local"
	"github.com/docuwise/legal-assistant/pkg/storage/minio"
)

// Type selects a storage backend.
type Type string

const (
	TypeLocal Type = "local"
	TypeMinio Type = "minio"
)

// Storage persists uploaded documents under session-scoped names.
type Storage interface {
	// Save stores the content of r under name and returns the stored
	// location (path or object key).
	Save(ctx context.Context, r io.Reader, name string) (string, error)
	// Open returns a fresh reader over a stored document.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Remove deletes a stored document. Removing an absent document is
	// not an error.
	Remove(ctx context.Context, name string) error
}

// New creates a storage backend. uploadDir applies to the local backend;
// the MinIO backend reads its settings from config.
func New(storageType Type, uploadDir string, log logger.Logger) (Storage, error) {
	switch storageType {
	case TypeLocal:
		return local.New(uploadDir, log)
	case TypeMinio:
		return minio.New(log)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

package storage

import (
	"context"
)

// StorageClient defines the interface for basic storage operations.
// Names are relative to the client's base directory.
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// CreateDir creates a directory (and any necessary parent directories)
	CreateDir(ctx context.Context, dirPath string) error

	// StoreFile stores a file under name and returns the path it was written to
	StoreFile(ctx context.Context, name string, fileData []byte) (string, error)

	// FileExists checks if a file exists under name
	FileExists(ctx context.Context, name string) (bool, error)
}

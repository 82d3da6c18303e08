package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"csvreport/internal/logger"
	"csvreport/internal/models"
)

// LocalStorageClient handles local file system storage operations
type LocalStorageClient struct {
	baseDir string
	log     *logger.Logger
}

// NewLocalStorageClient creates a new local storage client. The base
// directory is created on the first write.
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("%w: base directory is empty", models.ErrFileSystem)
	}

	return &LocalStorageClient{
		baseDir: filepath.Clean(baseDir),
		log:     logger.GetGlobalLogger().WithComponent("storage"),
	}, nil
}

// BaseDir returns the directory files are stored under
func (l *LocalStorageClient) BaseDir() string {
	return l.baseDir
}

// Close is a no-op for local storage
func (l *LocalStorageClient) Close() error {
	return nil
}

// CreateDir creates dirPath under the base directory
func (l *LocalStorageClient) CreateDir(ctx context.Context, dirPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full := filepath.Join(l.baseDir, dirPath)
	if err := os.MkdirAll(full, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory %s: %w", models.ErrFileSystem, full, err)
	}
	return nil
}

// StoreFile writes fileData to name atomically: the data goes to a temporary
// file in the target directory which is then renamed over name. A failed
// write leaves no partial file behind.
func (l *LocalStorageClient) StoreFile(ctx context.Context, name string, fileData []byte) (string, error) {
	if err := ValidateFileName(name); err != nil {
		return "", err
	}
	if err := l.CreateDir(ctx, filepath.Dir(name)); err != nil {
		return "", err
	}

	filePath := filepath.Join(l.baseDir, name)
	tmp, err := os.CreateTemp(filepath.Dir(filePath), "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: failed to create temporary file for %s: %w", models.ErrFileSystem, filePath, err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(fileData); err != nil {
		return "", fmt.Errorf("%w: failed to write file %s: %w", models.ErrFileSystem, filePath, err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("%w: failed to sync file %s: %w", models.ErrFileSystem, filePath, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: failed to close file %s: %w", models.ErrFileSystem, filePath, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return "", fmt.Errorf("%w: failed to set permissions on %s: %w", models.ErrFileSystem, filePath, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		return "", fmt.Errorf("%w: failed to move file into place at %s: %w", models.ErrFileSystem, filePath, err)
	}
	committed = true

	l.log.Debug("Stored file", map[string]interface{}{"path": filePath, "bytes": len(fileData)})
	return filePath, nil
}

// FileExists checks if a regular file exists under name
func (l *LocalStorageClient) FileExists(ctx context.Context, name string) (bool, error) {
	if err := ValidateFileName(name); err != nil {
		return false, err
	}

	info, err := os.Stat(filepath.Join(l.baseDir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: failed to stat %s: %w", models.ErrFileSystem, name, err)
	}
	return info.Mode().IsRegular(), nil
}

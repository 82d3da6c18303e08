package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"csvreport/internal/models"
)

// ValidateFileName checks that name is a relative path that stays inside the
// storage base directory
func ValidateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: file name is empty", models.ErrFileSystem)
	}
	if !filepath.IsLocal(name) {
		return fmt.Errorf("%w: file name %q must be a relative path inside the output directory", models.ErrFileSystem, name)
	}
	if strings.HasSuffix(name, string(filepath.Separator)) || strings.HasSuffix(name, "/") {
		return fmt.Errorf("%w: file name %q names a directory", models.ErrFileSystem, name)
	}
	return nil
}

// Package adapter defines the filesystem port consumed by the rename engine.
package adapter

import (
	"context"

	"github.com/lzyyzznl/work-tools/internal/domain"
)

// FileSystem is the capability the engine renames through. Implementations
// must return domain-level errors for consistent error handling.
type FileSystem interface {
	// Exists checks if a path exists
	Exists(ctx context.Context, path string) (bool, error)

	// Rename moves a file from oldPath to newPath
	// Returns domain.ErrFileMissing if oldPath does not exist
	// Returns domain.ErrFileExists if newPath is already occupied
	Rename(ctx context.Context, oldPath, newPath string) error

	// List recursively returns metadata for every regular file under root
	// Returns domain.ErrNotFound if root doesn't exist
	// Returns domain.ErrNotDirectory if root is a file
	List(ctx context.Context, root string) ([]domain.FileMetadata, error)

	// Close releases any resources held by the adapter
	Close() error
}

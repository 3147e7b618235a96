// Package local implements the filesystem port on the host OS.
package local

import (
	"context"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/lzyyzznl/work-tools/internal/domain"
)

// Adapter implements adapter.FileSystem for the local filesystem
type Adapter struct{}

// New creates a new local filesystem adapter
func New() *Adapter {
	return &Adapter{}
}

// Exists checks if a path exists
func (a *Adapter) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Rename moves oldPath to newPath. The source must exist and the destination
// must be free; os.Rename alone would silently clobber an existing target on
// most platforms.
func (a *Adapter) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := os.Stat(oldPath); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrFileMissing
		}
		return err
	}
	if _, err := os.Stat(newPath); err == nil {
		return domain.ErrFileExists
	} else if !os.IsNotExist(err) {
		return err
	}

	return os.Rename(oldPath, newPath)
}

// List recursively collects metadata for every regular file under root
func (a *Adapter) List(ctx context.Context, root string) ([]domain.FileMetadata, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, domain.ErrNotDirectory
	}

	var files []domain.FileMetadata
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			// Entry vanished between readdir and stat; skip it
			return nil
		}
		if !fi.Mode().IsRegular() {
			return nil
		}

		files = append(files, domain.FileMetadata{
			Name:         d.Name(),
			Path:         path,
			Size:         fi.Size(),
			LastModified: fi.ModTime(),
			MimeType:     mime.TypeByExtension(filepath.Ext(d.Name())),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Close is a no-op for the local adapter
func (a *Adapter) Close() error {
	return nil
}

// Package conflict detects filename collisions a transform would produce
// across a batch before any filesystem mutation happens.
package conflict

import (
	"path/filepath"

	"github.com/lzyyzznl/work-tools/internal/core/transform"
	"github.com/lzyyzznl/work-tools/internal/domain"
)

// Check computes every file's prospective path under the transform, with
// index equal to the file's position in the batch, and reports each path
// that repeats. Collisions are keyed by the resulting full path, so equal
// names in different directories do not collide. A repeat is reported on its
// second and later occurrences; a file whose name is unchanged still counts
// against other files' prospective paths.
func Check(files []*domain.FileRecord, mode domain.Mode, params domain.Params) domain.ConflictReport {
	seen := make(map[string]struct{}, len(files))
	var conflicts []string

	for i, f := range files {
		newName := transform.NewName(f.Name, mode, params, i)
		newPath := ProspectivePath(f.Path, newName)

		if _, dup := seen[newPath]; dup {
			conflicts = append(conflicts, newPath)
		} else {
			seen[newPath] = struct{}{}
		}
	}

	return domain.ConflictReport{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	}
}

// ProspectivePath is the path a file would occupy after taking newName
func ProspectivePath(currentPath, newName string) string {
	return filepath.Join(filepath.Dir(currentPath), newName)
}

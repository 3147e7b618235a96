// Package collection holds the in-memory registry of loaded files and the
// active selection set that the match and rename engines operate over.
package collection

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/lzyyzznl/work-tools/internal/domain"
)

// Collection is the ordered set of loaded files. Order is insertion order
// and doubles as the stable batch order during preview and execute.
type Collection struct {
	records  []*domain.FileRecord
	selected map[string]struct{}
}

// New creates an empty collection
func New() *Collection {
	return &Collection{selected: make(map[string]struct{})}
}

// Add registers file metadata and returns the record id. A candidate whose
// name, size and lastModified all match an existing record is already
// present: it is skipped and the existing id is returned with added=false.
func (c *Collection) Add(meta domain.FileMetadata) (id string, added bool) {
	for _, r := range c.records {
		if r.SameFile(meta) {
			return r.ID, false
		}
	}

	record := &domain.FileRecord{
		ID:           uuid.NewString(),
		Name:         meta.Name,
		Path:         meta.Path,
		Size:         meta.Size,
		LastModified: meta.LastModified,
		MimeType:     meta.MimeType,
	}
	c.records = append(c.records, record)
	return record.ID, true
}

// AddAll registers a batch of metadata and returns the ids in input order
func (c *Collection) AddAll(metas []domain.FileMetadata) []string {
	ids := make([]string, 0, len(metas))
	for _, m := range metas {
		id, _ := c.Add(m)
		ids = append(ids, id)
	}
	return ids
}

// Remove drops a record and its selection membership. It returns the removed
// record's path so callers can prune history referencing it.
func (c *Collection) Remove(id string) (path string, ok bool) {
	for i, r := range c.records {
		if r.ID == id {
			path = r.Path
			c.records = append(c.records[:i], c.records[i+1:]...)
			delete(c.selected, id)
			return path, true
		}
	}
	return "", false
}

// Clear drops every record and the selection
func (c *Collection) Clear() {
	c.records = nil
	c.selected = make(map[string]struct{})
}

// Len returns the number of records
func (c *Collection) Len() int {
	return len(c.records)
}

// Get returns the record with the given id
func (c *Collection) Get(id string) (*domain.FileRecord, bool) {
	for _, r := range c.records {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// All returns every record in insertion order
func (c *Collection) All() []*domain.FileRecord {
	out := make([]*domain.FileRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Select adds the id to the selection set
func (c *Collection) Select(id string) {
	if _, ok := c.Get(id); ok {
		c.selected[id] = struct{}{}
	}
}

// Unselect removes the id from the selection set
func (c *Collection) Unselect(id string) {
	delete(c.selected, id)
}

// ToggleSelection flips the id's selection membership
func (c *Collection) ToggleSelection(id string) {
	if _, ok := c.selected[id]; ok {
		c.Unselect(id)
	} else {
		c.Select(id)
	}
}

// SelectAll selects every record
func (c *Collection) SelectAll() {
	for _, r := range c.records {
		c.selected[r.ID] = struct{}{}
	}
}

// UnselectAll empties the selection
func (c *Collection) UnselectAll() {
	c.selected = make(map[string]struct{})
}

// Selected returns the selected records in collection order
func (c *Collection) Selected() []*domain.FileRecord {
	var out []*domain.FileRecord
	for _, r := range c.records {
		if _, ok := c.selected[r.ID]; ok {
			out = append(out, r)
		}
	}
	return out
}

// ToProcess returns the batch a rename operates on: the selection when it is
// non-empty, otherwise every record.
func (c *Collection) ToProcess() []*domain.FileRecord {
	if len(c.selected) > 0 {
		return c.Selected()
	}
	return c.All()
}

// Stats summarizes the collection
func (c *Collection) Stats() domain.FileStats {
	stats := domain.FileStats{
		Total:    len(c.records),
		Selected: len(c.selected),
	}
	for _, r := range c.records {
		if r.Matched {
			stats.Matched++
		}
	}
	stats.Unmatched = stats.Total - stats.Matched
	return stats
}

// SetMatchResult stores a match outcome on a record
func (c *Collection) SetMatchResult(id string, result domain.MatchResult) {
	if r, ok := c.Get(id); ok {
		r.Matched = result.Matched
		r.MatchInfo = result.MatchInfo
	}
}

// SetPreview stores a prospective name on a record
func (c *Collection) SetPreview(id, previewName string) {
	if r, ok := c.Get(id); ok {
		r.PreviewName = previewName
	}
}

// Rename updates a record's name and path after a successful filesystem
// rename; the stale preview is cleared.
func (c *Collection) Rename(id, newName string) {
	r, ok := c.Get(id)
	if !ok {
		return
	}
	r.Name = newName
	r.Path = filepath.Join(filepath.Dir(r.Path), newName)
	r.PreviewName = ""
}

// RenameByPath updates whichever record currently sits at fromPath; undo
// uses it because record ids are not recorded in history entries.
func (c *Collection) RenameByPath(fromPath, newName string) {
	for _, r := range c.records {
		if r.Path == fromPath {
			c.Rename(r.ID, newName)
			return
		}
	}
}

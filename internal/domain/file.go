package domain

import "time"

// FileMetadata is what the filesystem adapter reports for a single entry
type FileMetadata struct {
	// Name is the base name including extension
	Name string

	// Path is the full path of the file
	Path string

	// Size in bytes
	Size int64

	// LastModified is the modification time captured at listing
	LastModified time.Time

	// MimeType is derived from the extension, empty when unknown
	MimeType string
}

// FileRecord is one entry of the in-memory file collection.
// Name and Path are mutated only by a successful rename.
type FileRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	MimeType     string    `json:"mimeType,omitempty"`

	// Matched and MatchInfo are set by running the rule set against Name
	Matched   bool       `json:"matched"`
	MatchInfo *MatchInfo `json:"matchInfo,omitempty"`

	// PreviewName is the prospective name from the last preview pass;
	// it goes stale when Name changes
	PreviewName string `json:"previewName,omitempty"`
}

// SameFile reports whether the record and the candidate metadata describe the
// same file for add-time de-duplication: name, size and lastModified must all
// agree.
func (f FileRecord) SameFile(meta FileMetadata) bool {
	return f.Name == meta.Name &&
		f.Size == meta.Size &&
		f.LastModified.Equal(meta.LastModified)
}

// FileStats summarizes the collection for display
type FileStats struct {
	Total     int
	Matched   int
	Unmatched int
	Selected  int
}

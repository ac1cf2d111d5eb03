package notes

import (
	"strings"
	"time"
)

// File is a single note. FolderID nil means the file lives at the root.
type File struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	FolderID  *string   `json:"folder_id"`
	Path      string    `json:"path,omitempty"` // Computed parent folder path, not stored
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// NormalizeTags trims tags, drops empties and duplicates, and keeps the
// order of first appearance.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// InFolder reports whether the file's parent is folderID (nil = root).
func (f *File) InFolder(folderID *string) bool {
	return SameParent(f.FolderID, folderID)
}

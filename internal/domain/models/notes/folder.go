package notes

import (
	"time"
)

// Folder is a named container. ParentID is a lookup reference to another
// folder (nil = root); the full path is derived from the slug chain.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  *string   `json:"parent_id"`
	Path      string    `json:"path,omitempty"` // Computed full path, not stored
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InFolder reports whether the folder's parent is parentID (nil = root).
func (f *Folder) InFolder(parentID *string) bool {
	return SameParent(f.ParentID, parentID)
}

// SameParent compares two optional parent references; nil and "" are both root.
func SameParent(a, b *string) bool {
	av, bv := "", ""
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// RootID normalizes an empty parent reference to nil.
func RootID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

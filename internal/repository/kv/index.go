package kv

import (
	"sort"
	"strings"

	models "notevault/internal/domain/models/notes"
	"notevault/internal/utils"
)

// folderIndex is an arena view over the folder collection keyed by id,
// with children grouped by parent ("" = root). Pointers alias the slice
// it was built from, so it must be rebuilt after the slice grows.
type folderIndex struct {
	byID     map[string]*models.Folder
	children map[string][]*models.Folder
}

func newFolderIndex(folders []models.Folder) *folderIndex {
	ix := &folderIndex{
		byID:     make(map[string]*models.Folder, len(folders)),
		children: make(map[string][]*models.Folder),
	}
	for i := range folders {
		f := &folders[i]
		ix.byID[f.ID] = f
		key := parentKey(f.ParentID)
		ix.children[key] = append(ix.children[key], f)
	}
	for _, siblings := range ix.children {
		sort.SliceStable(siblings, func(i, j int) bool {
			return strings.ToLower(siblings[i].Name) < strings.ToLower(siblings[j].Name)
		})
	}
	return ix
}

func parentKey(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

// path builds "/slug1/.../slugN" by walking parent references. ok is false
// when id is missing, a parent is dangling, or the chain loops.
func (ix *folderIndex) path(id string) (string, bool) {
	var slugs []string
	seen := make(map[string]struct{})
	for current := id; current != ""; {
		if _, loop := seen[current]; loop {
			return "", false
		}
		seen[current] = struct{}{}

		f, ok := ix.byID[current]
		if !ok {
			return "", false
		}
		slugs = append(slugs, f.Slug)
		current = parentKey(f.ParentID)
	}
	for i, j := 0, len(slugs)-1; i < j; i, j = i+1, j-1 {
		slugs[i], slugs[j] = slugs[j], slugs[i]
	}
	return utils.RootPath + strings.Join(slugs, "/"), true
}

// isDescendant reports whether id is ancestorID or lies beneath it
func (ix *folderIndex) isDescendant(id, ancestorID string) bool {
	seen := make(map[string]struct{})
	for current := id; current != ""; {
		if current == ancestorID {
			return true
		}
		if _, loop := seen[current]; loop {
			return false
		}
		seen[current] = struct{}{}
		f, ok := ix.byID[current]
		if !ok {
			return false
		}
		current = parentKey(f.ParentID)
	}
	return false
}

// descendants lists every folder id below id in depth-first pre-order
func (ix *folderIndex) descendants(id string) []string {
	var ids []string
	seen := map[string]struct{}{id: {}}
	var walk func(parent string)
	walk = func(parent string) {
		for _, child := range ix.children[parent] {
			if _, ok := seen[child.ID]; ok {
				continue
			}
			seen[child.ID] = struct{}{}
			ids = append(ids, child.ID)
			walk(child.ID)
		}
	}
	walk(id)
	return ids
}

// childBySlug finds the sibling under parentID with slug, ignoring excludeID
func (ix *folderIndex) childBySlug(parentID *string, slug, excludeID string) *models.Folder {
	for _, child := range ix.children[parentKey(parentID)] {
		if child.ID != excludeID && child.Slug == slug {
			return child
		}
	}
	return nil
}

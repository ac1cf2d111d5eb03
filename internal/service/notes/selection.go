package notes

import (
	"context"

	models "notevault/internal/domain/models/notes"
	notesRepo "notevault/internal/domain/repositories/notes"
)

// selection is a resolved mix of selected files and folders
type selection struct {
	files          []models.File
	folders        []models.Folder
	missingFiles   []string
	missingFolders []string

	// subtree maps each selected folder to the ids of its descendants
	subtree map[string]map[string]bool
	// covered holds every selected folder and everything below them
	covered map[string]bool
}

func loadSelection(
	ctx context.Context,
	fileRepo notesRepo.FileRepository,
	folderRepo notesRepo.FolderRepository,
	fileIDs, folderIDs []string,
) (*selection, error) {
	files, err := fileRepo.GetByIDs(ctx, dedupe(fileIDs))
	if err != nil {
		return nil, err
	}
	folders, err := folderRepo.GetByIDs(ctx, dedupe(folderIDs))
	if err != nil {
		return nil, err
	}

	sel := &selection{
		files:   files,
		folders: folders,
		subtree: make(map[string]map[string]bool, len(folders)),
		covered: make(map[string]bool),
	}
	sel.missingFiles = missingIDs(fileIDs, files, func(f models.File) string { return f.ID })
	sel.missingFolders = missingIDs(folderIDs, folders, func(f models.Folder) string { return f.ID })

	for _, f := range folders {
		descendants, err := folderRepo.ListDescendantIDs(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		set := make(map[string]bool, len(descendants))
		for _, id := range descendants {
			set[id] = true
			sel.covered[id] = true
		}
		sel.subtree[f.ID] = set
		sel.covered[f.ID] = true
	}
	return sel, nil
}

// rootFiles are the selected files not already inside a selected folder
func (s *selection) rootFiles() []models.File {
	result := make([]models.File, 0, len(s.files))
	for _, f := range s.files {
		if f.FolderID != nil && s.covered[*f.FolderID] {
			continue
		}
		result = append(result, f)
	}
	return result
}

// rootFolders are the selected folders not beneath another selected folder
func (s *selection) rootFolders() []models.Folder {
	result := make([]models.Folder, 0, len(s.folders))
	for _, f := range s.folders {
		nested := false
		for otherID, below := range s.subtree {
			if otherID != f.ID && below[f.ID] {
				nested = true
				break
			}
		}
		if !nested {
			result = append(result, f)
		}
	}
	return result
}

// coveredFolderIDs lists every selected folder and its descendants
func (s *selection) coveredFolderIDs() []string {
	ids := make([]string, 0, len(s.covered))
	for _, f := range s.folders {
		ids = append(ids, f.ID)
	}
	for _, f := range s.folders {
		for id := range s.subtree[f.ID] {
			ids = append(ids, id)
		}
	}
	return dedupe(ids)
}

// filesInFolders returns the ids of every file whose parent is in folderIDs
func filesInFolders(ctx context.Context, fileRepo notesRepo.FileRepository, folderIDs []string) ([]string, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}
	inSet := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		inSet[id] = true
	}
	all, err := fileRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, f := range all {
		if f.FolderID != nil && inSet[*f.FolderID] {
			ids = append(ids, f.ID)
		}
	}
	return ids, nil
}

func missingIDs[T any](ids []string, found []T, idOf func(T) string) []string {
	present := make(map[string]bool, len(found))
	for _, item := range found {
		present[idOf(item)] = true
	}
	var missing []string
	for _, id := range dedupe(ids) {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// dedupe drops repeated and empty ids, keeping first-seen order
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// without returns ids minus the entries of drop
func without(ids, drop []string) []string {
	if len(drop) == 0 {
		return ids
	}
	skip := make(map[string]bool, len(drop))
	for _, id := range drop {
		skip[id] = true
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !skip[id] {
			out = append(out, id)
		}
	}
	return out
}

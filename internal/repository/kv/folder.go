package kv

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"notevault/internal/config"
	"notevault/internal/domain"
	models "notevault/internal/domain/models/notes"
	repos "notevault/internal/domain/repositories/notes"
	"notevault/internal/utils"
)

// FolderRepository implements notes.FolderRepository over a folder collection
type FolderRepository struct {
	folders *Collection[models.Folder]
	now     func() time.Time
	logger  *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(cfg *RepositoryConfig) repos.FolderRepository {
	return newFolderRepository(cfg)
}

func newFolderRepository(cfg *RepositoryConfig) *FolderRepository {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &FolderRepository{
		folders: NewCollection[models.Folder](cfg.keys().Folders, cfg.Store, cfg.TxManager),
		now:     cfg.clock(),
		logger:  logger,
	}
}

// GetAll retrieves every folder with its computed path
func (r *FolderRepository) GetAll(ctx context.Context) ([]models.Folder, error) {
	folders, err := r.folders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	r.withPaths(folders)
	return folders, nil
}

// GetByID retrieves a folder by ID, or nil if it does not exist
func (r *FolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	folders, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range folders {
		if folders[i].ID == id {
			return &folders[i], nil
		}
	}
	return nil, nil
}

// GetByIDs retrieves the folders that exist among ids, in ids order
func (r *FolderRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Folder, error) {
	folders, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ix := newFolderIndex(folders)
	result := make([]models.Folder, 0, len(ids))
	for _, id := range ids {
		if f, ok := ix.byID[id]; ok {
			result = append(result, *f)
		}
	}
	return result, nil
}

// ListChildren lists immediate child folders of parentID, ordered by name
func (r *FolderRepository) ListChildren(ctx context.Context, parentID *string) ([]models.Folder, error) {
	folders, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ix := newFolderIndex(folders)
	children := ix.children[parentKey(models.RootID(parentID))]
	result := make([]models.Folder, 0, len(children))
	for _, child := range children {
		result = append(result, *child)
	}
	return result, nil
}

// GetBySlug finds the child of parentID with slug, or nil
func (r *FolderRepository) GetBySlug(ctx context.Context, parentID *string, slug string) (*models.Folder, error) {
	folders, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if f := newFolderIndex(folders).childBySlug(models.RootID(parentID), slug, ""); f != nil {
		found := *f
		return &found, nil
	}
	return nil, nil
}

// Create derives the slug, assigns id and timestamps, and persists the folder
func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	name := strings.TrimSpace(folder.Name)
	slug := utils.SlugFor(name)
	if slug == "" {
		return domain.NewValidationError("folder name %q does not produce a usable slug", folder.Name)
	}
	parentID := models.RootID(folder.ParentID)

	err := r.folders.Mutate(ctx, func(folders []models.Folder) ([]models.Folder, error) {
		ix := newFolderIndex(folders)
		if err := checkParent(ix, parentID); err != nil {
			return nil, err
		}
		if existing := ix.childBySlug(parentID, slug, ""); existing != nil {
			return nil, folderConflict(name, existing.ID)
		}

		now := r.now().UTC()
		folder.ID = uuid.NewString()
		folder.Name = name
		folder.Slug = slug
		folder.ParentID = parentID
		folder.CreatedAt = now
		folder.UpdatedAt = now

		record := *folder
		record.Path = ""
		folders = append(folders, record)

		folder.Path, _ = newFolderIndex(folders).path(folder.ID)
		return folders, nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("folder created", "id", folder.ID, "slug", folder.Slug, "path", folder.Path)
	return nil
}

// CreateIfNotExists returns the sibling whose slug matches name, creating
// it when absent
func (r *FolderRepository) CreateIfNotExists(ctx context.Context, parentID *string, name string) (*models.Folder, error) {
	existing, err := r.GetBySlug(ctx, parentID, utils.SlugFor(name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	folder := &models.Folder{Name: name, ParentID: parentID}
	if err := r.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// Update overwrites name and parent of an existing folder
func (r *FolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	var updated models.Folder
	err := r.folders.Mutate(ctx, func(folders []models.Folder) ([]models.Folder, error) {
		ix := newFolderIndex(folders)
		current, ok := ix.byID[folder.ID]
		if !ok {
			return nil, &domain.NotFoundError{ResourceType: "folder", ResourceID: folder.ID}
		}
		if err := r.apply(ix, current, folder.Name, folder.ParentID); err != nil {
			return nil, err
		}
		updated = *current
		return folders, nil
	})
	if err != nil {
		return err
	}

	*folder = updated
	r.withPath(ctx, folder)
	return nil
}

// BatchUpdate updates every existing folder and returns the ids skipped
func (r *FolderRepository) BatchUpdate(ctx context.Context, updates []models.Folder) ([]string, error) {
	var skipped []string
	err := r.folders.Mutate(ctx, func(folders []models.Folder) ([]models.Folder, error) {
		skipped = skipped[:0]
		ix := newFolderIndex(folders)
		for _, u := range updates {
			current, ok := ix.byID[u.ID]
			if !ok {
				skipped = append(skipped, u.ID)
				continue
			}
			if err := r.apply(ix, current, u.Name, u.ParentID); err != nil {
				return nil, err
			}
			// Re-index so later entries see the new sibling layout
			ix = newFolderIndex(folders)
		}
		return folders, nil
	})
	if err != nil {
		return nil, err
	}
	if len(skipped) > 0 {
		r.logger.Debug("batch update skipped missing folders", "ids", skipped)
	}
	return skipped, nil
}

// Delete removes a folder record. Children and files are left alone.
func (r *FolderRepository) Delete(ctx context.Context, id string) error {
	_, err := r.BatchDelete(ctx, []string{id})
	return err
}

// BatchDelete removes folder records and returns the ids that did not exist
func (r *FolderRepository) BatchDelete(ctx context.Context, ids []string) ([]string, error) {
	var skipped []string
	err := r.folders.Mutate(ctx, func(folders []models.Folder) ([]models.Folder, error) {
		kept, missing := removeByID(folders, ids, func(f models.Folder) string { return f.ID })
		skipped = missing
		return kept, nil
	})
	if err != nil {
		return nil, err
	}
	return skipped, nil
}

// Copy duplicates folder records next to their sources with names
// disambiguated among the destination siblings
func (r *FolderRepository) Copy(ctx context.Context, ids []string) ([]models.Folder, []string, error) {
	var copies []models.Folder
	var skipped []string
	err := r.folders.Mutate(ctx, func(folders []models.Folder) ([]models.Folder, error) {
		copies, skipped = copies[:0], skipped[:0]
		ix := newFolderIndex(folders)
		now := r.now().UTC()
		for _, id := range ids {
			source, ok := ix.byID[id]
			if !ok {
				skipped = append(skipped, id)
				continue
			}
			name := disambiguate(source.Name, config.MaxFolderNameLength, func(candidate string) bool {
				return ix.childBySlug(source.ParentID, utils.SlugFor(candidate), "") != nil
			})
			copied := models.Folder{
				ID:        uuid.NewString(),
				Name:      name,
				Slug:      utils.SlugFor(name),
				ParentID:  source.ParentID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			folders = append(folders, copied)
			copies = append(copies, copied)
			ix = newFolderIndex(folders)
		}
		return folders, nil
	})
	if err != nil {
		return nil, nil, err
	}
	r.withPaths(copies)
	return copies, skipped, nil
}

// Move reassigns a folder's parent. The subtree follows implicitly because
// descendant paths are derived from the parent chain.
func (r *FolderRepository) Move(ctx context.Context, id string, parentID *string) (*models.Folder, error) {
	var moved models.Folder
	err := r.folders.Mutate(ctx, func(folders []models.Folder) ([]models.Folder, error) {
		ix := newFolderIndex(folders)
		current, ok := ix.byID[id]
		if !ok {
			return nil, &domain.NotFoundError{ResourceType: "folder", ResourceID: id}
		}
		if err := r.apply(ix, current, current.Name, parentID); err != nil {
			return nil, err
		}
		moved = *current
		return folders, nil
	})
	if err != nil {
		return nil, err
	}
	r.withPath(ctx, &moved)
	return &moved, nil
}

// GetPath computes the full path for a folder ("/" for nil)
func (r *FolderRepository) GetPath(ctx context.Context, folderID *string) (string, error) {
	folderID = models.RootID(folderID)
	if folderID == nil {
		return utils.RootPath, nil
	}
	folders, err := r.folders.GetAll(ctx)
	if err != nil {
		return "", err
	}
	path, ok := newFolderIndex(folders).path(*folderID)
	if !ok {
		return "", &domain.NotFoundError{ResourceType: "folder", ResourceID: *folderID}
	}
	return path, nil
}

// GetByPath walks path segment by segment. A segment matches a child whose
// slug equals the segment or the segment's own slug, so "/My Notes" and
// "/my-notes" resolve to the same folder.
func (r *FolderRepository) GetByPath(ctx context.Context, path string) (*models.Folder, error) {
	segments := utils.SplitPath(path)
	if len(segments) == 0 {
		return nil, nil
	}

	folders, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ix := newFolderIndex(folders)

	var current *models.Folder
	var parentID *string
	for _, segment := range segments {
		current = ix.childBySlug(parentID, segment, "")
		if current == nil {
			current = ix.childBySlug(parentID, utils.SlugFor(segment), "")
		}
		if current == nil {
			return nil, nil
		}
		parentID = &current.ID
	}

	found := *current
	return &found, nil
}

// ListDescendantIDs returns every folder id below id, depth-first
func (r *FolderRepository) ListDescendantIDs(ctx context.Context, id string) ([]string, error) {
	folders, err := r.folders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return newFolderIndex(folders).descendants(id), nil
}

// apply renames and/or reparents current in place after checking the
// target parent, cycles and sibling slugs against ix
func (r *FolderRepository) apply(ix *folderIndex, current *models.Folder, name string, parentID *string) error {
	name = strings.TrimSpace(name)
	slug := utils.SlugFor(name)
	if slug == "" {
		return domain.NewValidationError("folder name %q does not produce a usable slug", name)
	}
	parentID = models.RootID(parentID)

	if parentID != nil {
		if err := checkParent(ix, parentID); err != nil {
			return err
		}
		if ix.isDescendant(*parentID, current.ID) {
			return domain.NewValidationError("cannot move folder '%s' into itself or a descendant", current.Name)
		}
	}
	if existing := ix.childBySlug(parentID, slug, current.ID); existing != nil {
		return folderConflict(name, existing.ID)
	}

	current.Name = name
	current.Slug = slug
	current.ParentID = parentID
	current.UpdatedAt = nextUpdatedAt(current.UpdatedAt, r.now())
	return nil
}

// withPaths fills the computed Path of each folder
func (r *FolderRepository) withPaths(folders []models.Folder) {
	ix := newFolderIndex(folders)
	for i := range folders {
		path, ok := ix.path(folders[i].ID)
		if !ok {
			r.logger.Warn("folder path unresolved", "id", folders[i].ID, "parent_id", parentKey(folders[i].ParentID))
			continue
		}
		folders[i].Path = path
	}
}

func (r *FolderRepository) withPath(ctx context.Context, folder *models.Folder) {
	path, err := r.GetPath(ctx, &folder.ID)
	if err != nil {
		r.logger.Warn("failed to compute folder path", "id", folder.ID, "error", err)
		return
	}
	folder.Path = path
}

func checkParent(ix *folderIndex, parentID *string) error {
	if parentID == nil {
		return nil
	}
	if _, ok := ix.byID[*parentID]; !ok {
		return &domain.NotFoundError{ResourceType: "folder", ResourceID: *parentID}
	}
	return nil
}

func folderConflict(name, existingID string) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("folder '%s' already exists", name),
		ResourceType: "folder",
		ResourceID:   existingID,
	}
}

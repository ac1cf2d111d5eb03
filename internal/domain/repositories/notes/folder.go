package notes

import (
	"context"

	models "notevault/internal/domain/models/notes"
)

// FolderRepository defines data access operations for folders.
// Paths are derived from the parent chain on demand and never stored.
type FolderRepository interface {
	// GetAll retrieves every folder (flat list)
	GetAll(ctx context.Context) ([]models.Folder, error)

	// GetByID retrieves a folder by ID, or nil if it does not exist
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// GetByIDs retrieves the folders that exist among ids, in ids order
	GetByIDs(ctx context.Context, ids []string) ([]models.Folder, error)

	// ListChildren lists immediate child folders of parentID (nil = root)
	ListChildren(ctx context.Context, parentID *string) ([]models.Folder, error)

	// GetBySlug finds the child of parentID with the given slug, or nil
	GetBySlug(ctx context.Context, parentID *string, slug string) (*models.Folder, error)

	// Create derives the slug and persists a new folder; sibling slug
	// collisions return a domain.ConflictError
	Create(ctx context.Context, folder *models.Folder) error

	// CreateIfNotExists returns the sibling with name's slug, creating it if absent
	CreateIfNotExists(ctx context.Context, parentID *string, name string) (*models.Folder, error)

	// Update overwrites an existing folder, re-deriving its slug
	Update(ctx context.Context, folder *models.Folder) error

	// BatchUpdate updates every existing folder and returns the ids skipped
	BatchUpdate(ctx context.Context, folders []models.Folder) ([]string, error)

	// Delete removes a folder record; deleting a missing id is a no-op
	Delete(ctx context.Context, id string) error

	// BatchDelete removes folder records and returns the ids that did not exist
	BatchDelete(ctx context.Context, ids []string) ([]string, error)

	// Copy duplicates folder records next to their sources
	Copy(ctx context.Context, ids []string) ([]models.Folder, []string, error)

	// Move reassigns a folder's parent; its subtree follows implicitly
	Move(ctx context.Context, id string, parentID *string) (*models.Folder, error)

	// GetPath computes the full path for a folder ("/" for nil)
	GetPath(ctx context.Context, folderID *string) (string, error)

	// GetByPath resolves a full path to a folder, or nil if absent.
	// The root path resolves to nil without error.
	GetByPath(ctx context.Context, path string) (*models.Folder, error)

	// ListDescendantIDs returns every folder id below id, depth-first
	ListDescendantIDs(ctx context.Context, id string) ([]string, error)
}

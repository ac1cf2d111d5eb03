package notes

import (
	"context"

	models "notevault/internal/domain/models/notes"
)

// FileRepository defines data access operations for files.
// Reads return nil/empty on not-found; single-entity mutations return
// domain.ErrNotFound; batch mutations report the ids they skipped.
type FileRepository interface {
	// GetAll retrieves every file (flat list)
	GetAll(ctx context.Context) ([]models.File, error)

	// GetByID retrieves a file by ID, or nil if it does not exist
	GetByID(ctx context.Context, id string) (*models.File, error)

	// GetByIDs retrieves the files that exist among ids, in ids order
	GetByIDs(ctx context.Context, ids []string) ([]models.File, error)

	// ListByFolder lists files whose parent is folderID (nil = root)
	ListByFolder(ctx context.Context, folderID *string) ([]models.File, error)

	// ListByFolderPath lists files inside the folder at path; unknown paths
	// yield an empty list
	ListByFolderPath(ctx context.Context, path string) ([]models.File, error)

	// Create assigns ID, timestamps and version 1, then persists the file
	Create(ctx context.Context, file *models.File) error

	// Update overwrites an existing file, bumping version and updated_at
	Update(ctx context.Context, file *models.File) error

	// BatchUpdate updates every existing file and returns the ids skipped
	BatchUpdate(ctx context.Context, files []models.File) ([]string, error)

	// Delete removes a file; deleting a missing id is a no-op
	Delete(ctx context.Context, id string) error

	// BatchDelete removes files and returns the ids that did not exist
	BatchDelete(ctx context.Context, ids []string) ([]string, error)

	// Copy duplicates files into their own folders with disambiguated titles
	Copy(ctx context.Context, ids []string) ([]models.File, []string, error)

	// Move reassigns a file's parent folder
	Move(ctx context.Context, id string, folderID *string) (*models.File, error)
}

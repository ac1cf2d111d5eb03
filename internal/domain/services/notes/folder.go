package notes

import (
	"context"

	models "notevault/internal/domain/models/notes"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a folder under parentPath. name may use path
	// notation ("a/b/c"); missing intermediate folders are created.
	CreateFolder(ctx context.Context, name, parentPath string) (*models.Folder, error)

	// GetFolder retrieves a folder with its computed path
	GetFolder(ctx context.Context, id string) (*models.Folder, error)

	// GetFolderByPath resolves a full path to a folder
	GetFolderByPath(ctx context.Context, path string) (*models.Folder, error)

	// RenameFolder validates and applies a new name. Descendant paths
	// follow implicitly.
	RenameFolder(ctx context.Context, id, name string) (*models.Folder, error)

	// MoveFolder moves a folder and its subtree under targetPath
	MoveFolder(ctx context.Context, id, targetPath string) (*models.Folder, error)

	// DeleteFolder deletes an empty folder, or the whole subtree when
	// deleteContents is set
	DeleteFolder(ctx context.Context, id string, deleteContents bool) (*DeleteResult, error)

	// ListChildren lists the folders and files directly inside path
	ListChildren(ctx context.Context, path string) (*FolderContents, error)
}

// FolderContents represents a folder with its children
type FolderContents struct {
	Folder  *models.Folder  `json:"folder,omitempty"` // null for root
	Path    string          `json:"path"`
	Folders []models.Folder `json:"folders"`
	Files   []models.File   `json:"files"`
}

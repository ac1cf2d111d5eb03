package notes

import (
	"context"

	models "notevault/internal/domain/models/notes"
)

// FileService handles file business logic
type FileService interface {
	// CreateFile validates the title, checks for a duplicate in the target
	// folder and creates the file
	CreateFile(ctx context.Context, req *CreateFileRequest) (*models.File, error)

	// GetFile retrieves a file with its computed folder path
	GetFile(ctx context.Context, id string) (*models.File, error)

	// ListFiles lists files directly inside the folder at folderPath ("/" = root)
	ListFiles(ctx context.Context, folderPath string) ([]models.File, error)

	// UpdateFile changes content and/or tags
	UpdateFile(ctx context.Context, id string, req *UpdateFileRequest) (*models.File, error)

	// RenameFile validates and applies a new title
	RenameFile(ctx context.Context, id, title string) (*models.File, error)

	// MoveFile moves a file to the folder at targetPath
	MoveFile(ctx context.Context, id, targetPath string) (*models.File, error)

	// DeleteFile deletes a file
	DeleteFile(ctx context.Context, id string) error

	// CreateFileWithPath parses "a/b/name", creates missing folders and
	// then the file
	CreateFileWithPath(ctx context.Context, inputPath, content string, tags []string) (*models.File, error)

	// CopyFiles copies files next to their sources. Any missing id rejects
	// the whole batch with a ValidationError.
	CopyFiles(ctx context.Context, ids []string) (*CopyResult, error)
}

// CreateFileRequest represents a file creation request
type CreateFileRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	FolderID   *string  `json:"folder_id,omitempty"`   // Direct folder assignment
	FolderPath *string  `json:"folder_path,omitempty"` // Alternative: resolve (and create) path
}

// UpdateFileRequest represents a partial file update
type UpdateFileRequest struct {
	Content *string   `json:"content,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

// CopyResult lists the created copies
type CopyResult struct {
	Files []models.File `json:"files"`
}

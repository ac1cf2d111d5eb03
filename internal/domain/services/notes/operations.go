package notes

import (
	"context"

	models "notevault/internal/domain/models/notes"
)

// OperationsService runs multi-selection operations
type OperationsService interface {
	// DeleteSelectedItems deletes the selected files and folders plus every
	// folder and file beneath the selected folders
	DeleteSelectedItems(ctx context.Context, req *SelectionRequest) (*DeleteResult, error)

	// MoveSelectedItems validates and moves the selection under TargetPath.
	// Folders carry their subtree.
	MoveSelectedItems(ctx context.Context, req *MoveSelectionRequest) (*MoveResult, error)
}

// SelectionRequest identifies a mixed selection of files and folders
type SelectionRequest struct {
	FileIDs   []string `json:"file_ids"`
	FolderIDs []string `json:"folder_ids"`
}

// MoveSelectionRequest moves a selection into the folder at TargetPath
type MoveSelectionRequest struct {
	SelectionRequest
	TargetPath string `json:"target_path"`
}

// DeleteResult reports what a delete removed and which ids were already gone
type DeleteResult struct {
	DeletedFileIDs   []string `json:"deleted_file_ids"`
	DeletedFolderIDs []string `json:"deleted_folder_ids"`
	SkippedFileIDs   []string `json:"skipped_file_ids"`
	SkippedFolderIDs []string `json:"skipped_folder_ids"`
}

// MoveResult lists the moved entities in their new location
type MoveResult struct {
	Files   []models.File   `json:"files"`
	Folders []models.Folder `json:"folders"`
}

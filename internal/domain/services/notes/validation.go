package notes

import (
	"context"

	models "notevault/internal/domain/models/notes"
)

// ValidationResult is a validation outcome returned as a value
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// FileDuplicateResult reports a sibling file with the same title
type FileDuplicateResult struct {
	IsDuplicate bool         `json:"is_duplicate"`
	Existing    *models.File `json:"existing,omitempty"`
}

// FolderDuplicateResult reports a sibling folder with the same slug
type FolderDuplicateResult struct {
	IsDuplicate bool           `json:"is_duplicate"`
	Existing    *models.Folder `json:"existing,omitempty"`
}

// Validator holds the name and operation rules shared by the services.
// Name checks never fail; checks that read storage return its errors.
type Validator interface {
	ValidateFileName(name string) ValidationResult
	ValidateFolderName(name string) ValidationResult

	// CheckFileDuplicate scans files in folderID for title, ignoring excludeID
	CheckFileDuplicate(ctx context.Context, title string, folderID *string, excludeID string) (*FileDuplicateResult, error)

	// CheckFolderDuplicate scans folders under parentID for name's slug,
	// ignoring excludeID
	CheckFolderDuplicate(ctx context.Context, name string, parentID *string, excludeID string) (*FolderDuplicateResult, error)

	// ValidateMoveOperation checks a selection can move into targetID and
	// aggregates every problem found
	ValidateMoveOperation(ctx context.Context, fileIDs, folderIDs []string, targetID *string) (ValidationResult, error)

	// ValidateCopyOperation checks every id resolves to a file
	ValidateCopyOperation(ctx context.Context, fileIDs []string) (ValidationResult, error)
}

// PathResolver maps virtual folder paths to folder ids
type PathResolver interface {
	// ResolveFolderPath returns the folder id for path, creating missing
	// folders. The root resolves to nil.
	ResolveFolderPath(ctx context.Context, path string) (*string, error)

	// LookupFolderPath returns the folder id for an existing path or a
	// NotFoundError. The root resolves to nil.
	LookupFolderPath(ctx context.Context, path string) (*string, error)
}

package notes

import (
	"context"
	"fmt"

	"notevault/internal/config"
	"notevault/internal/domain"
	"notevault/internal/domain/repositories"
	notesRepo "notevault/internal/domain/repositories/notes"
	notesSvc "notevault/internal/domain/services/notes"
	"notevault/internal/utils"
)

type pathResolverService struct {
	folderRepo notesRepo.FolderRepository
	validator  notesSvc.Validator
	txManager  repositories.TransactionManager
}

// NewPathResolver creates a new path resolver service
func NewPathResolver(
	folderRepo notesRepo.FolderRepository,
	validator notesSvc.Validator,
	txManager repositories.TransactionManager,
) notesSvc.PathResolver {
	return &pathResolverService{
		folderRepo: folderRepo,
		validator:  validator,
		txManager:  txManager,
	}
}

// ResolveFolderPath resolves a folder path to a folder ID, creating folders if needed.
// Existing folders are reused by slug, so "/My Notes" and "/my-notes" land
// in the same place.
func (s *pathResolverService) ResolveFolderPath(ctx context.Context, path string) (*string, error) {
	segments := utils.SplitPath(path)
	if len(segments) == 0 {
		return nil, nil
	}
	if len(segments) > config.MaxPathDepth {
		return nil, domain.NewValidationError("path '%s' is deeper than %d folders", path, config.MaxPathDepth)
	}

	// Validate every segment before creating anything
	for _, segment := range segments {
		if result := s.validator.ValidateFolderName(segment); !result.Valid {
			return nil, domain.NewValidationError("invalid folder '%s': %s", segment, result.Error)
		}
	}

	var resultFolderID *string
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var currentParentID *string
		for _, segment := range segments {
			folder, err := s.folderRepo.CreateIfNotExists(txCtx, currentParentID, segment)
			if err != nil {
				return fmt.Errorf("failed to create/get folder '%s': %w", segment, err)
			}
			currentParentID = &folder.ID
		}
		resultFolderID = currentParentID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resultFolderID, nil
}

// LookupFolderPath resolves an existing folder path without creating anything
func (s *pathResolverService) LookupFolderPath(ctx context.Context, path string) (*string, error) {
	if utils.IsRootPath(path) {
		return nil, nil
	}
	folder, err := s.folderRepo.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, &domain.NotFoundError{ResourceType: "folder", ResourceID: utils.NormalizePath(path)}
	}
	return &folder.ID, nil
}

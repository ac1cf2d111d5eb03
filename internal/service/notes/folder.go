package notes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"notevault/internal/domain"
	models "notevault/internal/domain/models/notes"
	"notevault/internal/domain/repositories"
	notesRepo "notevault/internal/domain/repositories/notes"
	notesSvc "notevault/internal/domain/services/notes"
	"notevault/internal/utils"
)

type folderService struct {
	folderRepo   notesRepo.FolderRepository
	fileRepo     notesRepo.FileRepository
	pathResolver notesSvc.PathResolver
	validator    notesSvc.Validator
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo notesRepo.FolderRepository,
	fileRepo notesRepo.FileRepository,
	pathResolver notesSvc.PathResolver,
	validator notesSvc.Validator,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) notesSvc.FolderService {
	return &folderService{
		folderRepo:   folderRepo,
		fileRepo:     fileRepo,
		pathResolver: pathResolver,
		validator:    validator,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreateFolder creates a new folder
// Supports Unix-style path notation:
//   - "name" → create folder with given name under parentPath
//   - "a/b/c" → auto-create intermediate folders (a, b) and final folder (c) under parentPath
//   - "/a/b/c" → absolute path from root (ignore parentPath)
//
// parentPath itself must already exist.
func (s *folderService) CreateFolder(ctx context.Context, name, parentPath string) (*models.Folder, error) {
	segments := utils.SplitPath(name)
	if len(segments) == 0 {
		return nil, domain.NewValidationError("folder name cannot be empty")
	}
	for _, segment := range segments {
		if result := s.validator.ValidateFolderName(segment); !result.Valid {
			return nil, domain.NewValidationError("%s", result.Error)
		}
	}
	if strings.HasPrefix(strings.TrimSpace(name), "/") {
		parentPath = utils.RootPath
	}
	finalName := segments[len(segments)-1]

	folder := &models.Folder{Name: finalName}
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		parentID, err := s.pathResolver.LookupFolderPath(txCtx, parentPath)
		if err != nil {
			return err
		}
		for _, segment := range segments[:len(segments)-1] {
			intermediate, err := s.folderRepo.CreateIfNotExists(txCtx, parentID, segment)
			if err != nil {
				return fmt.Errorf("failed to create/get folder '%s': %w", segment, err)
			}
			parentID = &intermediate.ID
		}

		dup, err := s.validator.CheckFolderDuplicate(txCtx, finalName, parentID, "")
		if err != nil {
			return err
		}
		if dup.IsDuplicate {
			return folderConflict(finalName, dup.Existing.ID)
		}

		folder.ParentID = parentID
		return s.folderRepo.Create(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_folder_id", folder.ParentID,
		"path", folder.Path,
	)
	return folder, nil
}

// GetFolder retrieves a folder with its computed path
func (s *folderService) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	return s.getExisting(ctx, id)
}

// GetFolderByPath resolves a full path to a folder
func (s *folderService) GetFolderByPath(ctx context.Context, path string) (*models.Folder, error) {
	if utils.IsRootPath(path) {
		return nil, domain.NewValidationError("the root path does not name a folder")
	}
	folder, err := s.folderRepo.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, &domain.NotFoundError{ResourceType: "folder", ResourceID: utils.NormalizePath(path)}
	}
	return folder, nil
}

// RenameFolder validates the new name, rejects a sibling slug clash and
// renames the folder. Descendants need no rewrite because their paths are
// derived from the parent chain.
func (s *folderService) RenameFolder(ctx context.Context, id, name string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if result := s.validator.ValidateFolderName(name); !result.Valid {
		return nil, domain.NewValidationError("%s", result.Error)
	}

	var folder *models.Folder
	var oldPath string
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		folder, err = s.getExisting(txCtx, id)
		if err != nil {
			return err
		}
		oldPath = folder.Path

		dup, err := s.validator.CheckFolderDuplicate(txCtx, name, folder.ParentID, folder.ID)
		if err != nil {
			return err
		}
		if dup.IsDuplicate {
			return folderConflict(name, dup.Existing.ID)
		}

		folder.Name = name
		return s.folderRepo.Update(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder renamed",
		"id", folder.ID,
		"name", folder.Name,
		"old_path", oldPath,
		"path", folder.Path,
	)
	return folder, nil
}

// MoveFolder moves a folder and its subtree under the existing folder at targetPath
func (s *folderService) MoveFolder(ctx context.Context, id, targetPath string) (*models.Folder, error) {
	var moved *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.getExisting(txCtx, id); err != nil {
			return err
		}
		targetID, err := s.pathResolver.LookupFolderPath(txCtx, targetPath)
		if err != nil {
			return err
		}
		result, err := s.validator.ValidateMoveOperation(txCtx, nil, []string{id}, targetID)
		if err != nil {
			return err
		}
		if !result.Valid {
			return &domain.ValidationError{Message: result.Error}
		}
		moved, err = s.folderRepo.Move(txCtx, id, targetID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder moved",
		"id", moved.ID,
		"path", moved.Path,
	)
	return moved, nil
}

// DeleteFolder deletes an empty folder. With deleteContents it deletes the
// folder, every folder beneath it and every file inside any of them.
func (s *folderService) DeleteFolder(ctx context.Context, id string, deleteContents bool) (*notesSvc.DeleteResult, error) {
	result := &notesSvc.DeleteResult{
		DeletedFileIDs:   []string{},
		DeletedFolderIDs: []string{},
		SkippedFileIDs:   []string{},
		SkippedFolderIDs: []string{},
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.getExisting(txCtx, id); err != nil {
			return err
		}

		descendants, err := s.folderRepo.ListDescendantIDs(txCtx, id)
		if err != nil {
			return err
		}
		folderIDs := append([]string{id}, descendants...)
		fileIDs, err := filesInFolders(txCtx, s.fileRepo, folderIDs)
		if err != nil {
			return err
		}

		if !deleteContents && (len(descendants) > 0 || len(fileIDs) > 0) {
			children, err := s.folderRepo.ListChildren(txCtx, &id)
			if err != nil {
				return err
			}
			files, err := s.fileRepo.ListByFolder(txCtx, &id)
			if err != nil {
				return err
			}
			return &domain.FolderNotEmptyError{
				FolderID:    id,
				FolderCount: len(children),
				FileCount:   len(files),
			}
		}

		if _, err := s.fileRepo.BatchDelete(txCtx, fileIDs); err != nil {
			return err
		}
		if _, err := s.folderRepo.BatchDelete(txCtx, folderIDs); err != nil {
			return err
		}
		result.DeletedFileIDs = append(result.DeletedFileIDs, fileIDs...)
		result.DeletedFolderIDs = append(result.DeletedFolderIDs, folderIDs...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder deleted",
		"id", id,
		"delete_contents", deleteContents,
		"folders_deleted", len(result.DeletedFolderIDs),
		"files_deleted", len(result.DeletedFileIDs),
	)
	return result, nil
}

// ListChildren lists the folders and files directly inside path
func (s *folderService) ListChildren(ctx context.Context, path string) (*notesSvc.FolderContents, error) {
	contents := &notesSvc.FolderContents{Path: utils.RootPath}

	var parentID *string
	if !utils.IsRootPath(path) {
		folder, err := s.GetFolderByPath(ctx, path)
		if err != nil {
			return nil, err
		}
		contents.Folder = folder
		contents.Path = folder.Path
		parentID = &folder.ID
	}

	folders, err := s.folderRepo.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	files, err := s.fileRepo.ListByFolder(ctx, parentID)
	if err != nil {
		return nil, err
	}
	for i := range files {
		files[i].Path = contents.Path
	}

	contents.Folders = folders
	contents.Files = files
	return contents, nil
}

func (s *folderService) getExisting(ctx context.Context, id string) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, &domain.NotFoundError{ResourceType: "folder", ResourceID: id}
	}
	return folder, nil
}

func folderConflict(name, existingID string) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
		ResourceType: "folder",
		ResourceID:   existingID,
	}
}

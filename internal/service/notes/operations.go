package notes

import (
	"context"
	"log/slog"

	"notevault/internal/domain"
	models "notevault/internal/domain/models/notes"
	"notevault/internal/domain/repositories"
	notesRepo "notevault/internal/domain/repositories/notes"
	notesSvc "notevault/internal/domain/services/notes"
)

type operationsService struct {
	fileRepo     notesRepo.FileRepository
	folderRepo   notesRepo.FolderRepository
	pathResolver notesSvc.PathResolver
	validator    notesSvc.Validator
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewOperationsService creates the multi-selection operations service
func NewOperationsService(
	fileRepo notesRepo.FileRepository,
	folderRepo notesRepo.FolderRepository,
	pathResolver notesSvc.PathResolver,
	validator notesSvc.Validator,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) notesSvc.OperationsService {
	return &operationsService{
		fileRepo:     fileRepo,
		folderRepo:   folderRepo,
		pathResolver: pathResolver,
		validator:    validator,
		txManager:    txManager,
		logger:       logger,
	}
}

// DeleteSelectedItems deletes the explicit selection plus every folder
// beneath a selected folder and every file inside any of those folders,
// with one batch delete per collection. Ids that no longer exist are
// reported as skipped.
func (s *operationsService) DeleteSelectedItems(ctx context.Context, req *notesSvc.SelectionRequest) (*notesSvc.DeleteResult, error) {
	result := &notesSvc.DeleteResult{}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		sel, err := loadSelection(txCtx, s.fileRepo, s.folderRepo, req.FileIDs, req.FolderIDs)
		if err != nil {
			return err
		}

		folderIDs := sel.coveredFolderIDs()
		discovered, err := filesInFolders(txCtx, s.fileRepo, folderIDs)
		if err != nil {
			return err
		}
		fileIDs := dedupe(append(dedupe(req.FileIDs), discovered...))

		skippedFiles, err := s.fileRepo.BatchDelete(txCtx, fileIDs)
		if err != nil {
			return err
		}
		if _, err := s.folderRepo.BatchDelete(txCtx, folderIDs); err != nil {
			return err
		}

		result.DeletedFileIDs = without(fileIDs, skippedFiles)
		result.DeletedFolderIDs = folderIDs
		result.SkippedFileIDs = nonNil(skippedFiles)
		result.SkippedFolderIDs = nonNil(sel.missingFolders)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("selection deleted",
		"files_deleted", len(result.DeletedFileIDs),
		"folders_deleted", len(result.DeletedFolderIDs),
		"files_skipped", len(result.SkippedFileIDs),
		"folders_skipped", len(result.SkippedFolderIDs),
	)
	return result, nil
}

// MoveSelectedItems validates the whole selection against the target, then
// moves it. Folders carry their subtree; selected items already inside a
// selected folder move with it rather than on their own.
func (s *operationsService) MoveSelectedItems(ctx context.Context, req *notesSvc.MoveSelectionRequest) (*notesSvc.MoveResult, error) {
	result := &notesSvc.MoveResult{
		Files:   []models.File{},
		Folders: []models.Folder{},
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		targetID, err := s.pathResolver.LookupFolderPath(txCtx, req.TargetPath)
		if err != nil {
			return err
		}

		check, err := s.validator.ValidateMoveOperation(txCtx, req.FileIDs, req.FolderIDs, targetID)
		if err != nil {
			return err
		}
		if !check.Valid {
			return &domain.ValidationError{Message: check.Error}
		}

		sel, err := loadSelection(txCtx, s.fileRepo, s.folderRepo, req.FileIDs, req.FolderIDs)
		if err != nil {
			return err
		}
		for _, f := range sel.rootFolders() {
			moved, err := s.folderRepo.Move(txCtx, f.ID, targetID)
			if err != nil {
				return err
			}
			result.Folders = append(result.Folders, *moved)
		}
		for _, f := range sel.rootFiles() {
			moved, err := s.fileRepo.Move(txCtx, f.ID, targetID)
			if err != nil {
				return err
			}
			result.Files = append(result.Files, *moved)
		}

		path, err := s.folderRepo.GetPath(txCtx, targetID)
		if err != nil {
			return err
		}
		for i := range result.Files {
			result.Files[i].Path = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("selection moved",
		"target_path", req.TargetPath,
		"files_moved", len(result.Files),
		"folders_moved", len(result.Folders),
	)
	return result, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

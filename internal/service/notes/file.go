package notes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"notevault/internal/config"
	"notevault/internal/domain"
	models "notevault/internal/domain/models/notes"
	"notevault/internal/domain/repositories"
	notesRepo "notevault/internal/domain/repositories/notes"
	notesSvc "notevault/internal/domain/services/notes"
	"notevault/internal/utils"
)

type fileService struct {
	fileRepo     notesRepo.FileRepository
	folderRepo   notesRepo.FolderRepository
	pathResolver notesSvc.PathResolver
	validator    notesSvc.Validator
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo notesRepo.FileRepository,
	folderRepo notesRepo.FolderRepository,
	pathResolver notesSvc.PathResolver,
	validator notesSvc.Validator,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) notesSvc.FileService {
	return &fileService{
		fileRepo:     fileRepo,
		folderRepo:   folderRepo,
		pathResolver: pathResolver,
		validator:    validator,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreateFile creates a file in FolderID, or in FolderPath (creating missing
// folders) when that is set
func (s *fileService) CreateFile(ctx context.Context, req *notesSvc.CreateFileRequest) (*models.File, error) {
	title := strings.TrimSpace(req.Title)
	if result := s.validator.ValidateFileName(title); !result.Valid {
		return nil, domain.NewValidationError("%s", result.Error)
	}

	file := &models.File{
		Title:   title,
		Content: req.Content,
		Tags:    req.Tags,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folderID, err := s.resolveTarget(txCtx, req.FolderID, req.FolderPath)
		if err != nil {
			return err
		}
		file.FolderID = folderID
		return s.createInFolder(txCtx, file)
	})
	if err != nil {
		return nil, err
	}

	s.withPath(ctx, file)
	s.logger.Info("file created",
		"id", file.ID,
		"title", file.Title,
		"folder_id", file.FolderID,
		"path", file.Path,
	)
	return file, nil
}

// resolveTarget picks the parent folder: a path wins over an id; an id
// must name an existing folder
func (s *fileService) resolveTarget(ctx context.Context, folderID, folderPath *string) (*string, error) {
	if folderPath != nil {
		return s.pathResolver.ResolveFolderPath(ctx, *folderPath)
	}
	folderID = models.RootID(folderID)
	if folderID == nil {
		return nil, nil
	}
	folder, err := s.folderRepo.GetByID(ctx, *folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, &domain.NotFoundError{ResourceType: "folder", ResourceID: *folderID}
	}
	return folderID, nil
}

// createInFolder rejects a sibling title clash, then persists file
func (s *fileService) createInFolder(ctx context.Context, file *models.File) error {
	dup, err := s.validator.CheckFileDuplicate(ctx, file.Title, file.FolderID, "")
	if err != nil {
		return err
	}
	if dup.IsDuplicate {
		return fileConflict(file.Title, dup.Existing.ID)
	}
	return s.fileRepo.Create(ctx, file)
}

// GetFile retrieves a file with its computed folder path
func (s *fileService) GetFile(ctx context.Context, id string) (*models.File, error) {
	file, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	s.withPath(ctx, file)
	return file, nil
}

// ListFiles lists the files directly inside folderPath. A path that names
// no folder yields an empty list.
func (s *fileService) ListFiles(ctx context.Context, folderPath string) ([]models.File, error) {
	files, err := s.fileRepo.ListByFolderPath(ctx, folderPath)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return files, nil
	}

	// Report the canonical slug path rather than the caller's spelling
	path, err := s.folderRepo.GetPath(ctx, files[0].FolderID)
	if err != nil {
		path = utils.NormalizePath(folderPath)
	}
	for i := range files {
		files[i].Path = path
	}
	return files, nil
}

// UpdateFile changes content and/or tags
func (s *fileService) UpdateFile(ctx context.Context, id string, req *notesSvc.UpdateFileRequest) (*models.File, error) {
	var file *models.File
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		file, err = s.getExisting(txCtx, id)
		if err != nil {
			return err
		}
		if req.Content != nil {
			file.Content = *req.Content
		}
		if req.Tags != nil {
			file.Tags = *req.Tags
		}
		return s.fileRepo.Update(txCtx, file)
	})
	if err != nil {
		return nil, err
	}

	s.withPath(ctx, file)
	s.logger.Info("file updated",
		"id", file.ID,
		"version", file.Version,
	)
	return file, nil
}

// RenameFile validates the title, rejects a clash in the same folder and
// renames the file. Renaming to the current title is allowed.
func (s *fileService) RenameFile(ctx context.Context, id, title string) (*models.File, error) {
	title = strings.TrimSpace(title)
	if result := s.validator.ValidateFileName(title); !result.Valid {
		return nil, domain.NewValidationError("%s", result.Error)
	}

	var file *models.File
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		file, err = s.getExisting(txCtx, id)
		if err != nil {
			return err
		}

		dup, err := s.validator.CheckFileDuplicate(txCtx, title, file.FolderID, file.ID)
		if err != nil {
			return err
		}
		if dup.IsDuplicate {
			return fileConflict(title, dup.Existing.ID)
		}

		file.Title = title
		return s.fileRepo.Update(txCtx, file)
	})
	if err != nil {
		return nil, err
	}

	s.withPath(ctx, file)
	s.logger.Info("file renamed",
		"id", file.ID,
		"title", file.Title,
	)
	return file, nil
}

// MoveFile moves a file into the existing folder at targetPath
func (s *fileService) MoveFile(ctx context.Context, id, targetPath string) (*models.File, error) {
	var moved *models.File
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.getExisting(txCtx, id); err != nil {
			return err
		}
		targetID, err := s.pathResolver.LookupFolderPath(txCtx, targetPath)
		if err != nil {
			return err
		}
		result, err := s.validator.ValidateMoveOperation(txCtx, []string{id}, nil, targetID)
		if err != nil {
			return err
		}
		if !result.Valid {
			return &domain.ValidationError{Message: result.Error}
		}
		moved, err = s.fileRepo.Move(txCtx, id, targetID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.withPath(ctx, moved)
	s.logger.Info("file moved",
		"id", moved.ID,
		"path", moved.Path,
	)
	return moved, nil
}

// DeleteFile deletes a file. Deleting a missing file is a no-op.
func (s *fileService) DeleteFile(ctx context.Context, id string) error {
	if err := s.fileRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("file deleted", "id", id)
	return nil
}

// CreateFileWithPath parses "a/b/name" into folder segments and a file
// name, creates whichever folders are missing (reusing existing ones by
// slug) and then creates the file. Nothing is written if any step fails.
//
// Examples:
//   - "todo" → root-level file "todo"
//   - "work/2026/plan" → file "plan" in /work/2026
func (s *fileService) CreateFileWithPath(ctx context.Context, inputPath, content string, tags []string) (*models.File, error) {
	if len(inputPath) > config.MaxPathLength {
		return nil, domain.NewValidationError("path cannot exceed %d characters", config.MaxPathLength)
	}
	segments := utils.SplitPath(inputPath)
	if len(segments) == 0 {
		return nil, domain.NewValidationError("path must include a file name")
	}

	title := segments[len(segments)-1]
	folderPath := utils.ParentPath(inputPath)

	s.logger.Debug("creating file from path",
		"input_path", inputPath,
		"folder_path", folderPath,
		"title", title,
	)

	return s.CreateFile(ctx, &notesSvc.CreateFileRequest{
		Title:      title,
		Content:    content,
		Tags:       tags,
		FolderPath: &folderPath,
	})
}

// CopyFiles copies every selected file into its own folder as
// "Copy of <title>" (with a numeric suffix when that is taken)
func (s *fileService) CopyFiles(ctx context.Context, ids []string) (*notesSvc.CopyResult, error) {
	ids = dedupe(ids)

	var result notesSvc.CopyResult
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		check, err := s.validator.ValidateCopyOperation(txCtx, ids)
		if err != nil {
			return err
		}
		if !check.Valid {
			return &domain.ValidationError{Message: check.Error}
		}

		// Validation already rejected missing ids, so nothing is skipped
		result.Files, _, err = s.fileRepo.Copy(txCtx, ids)
		return err
	})
	if err != nil {
		return nil, err
	}

	for i := range result.Files {
		s.withPath(ctx, &result.Files[i])
	}

	s.logger.Info("files copied",
		"source_count", len(ids),
		"copy_count", len(result.Files),
	)
	return &result, nil
}

func (s *fileService) getExisting(ctx context.Context, id string) (*models.File, error) {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, &domain.NotFoundError{ResourceType: "file", ResourceID: id}
	}
	return file, nil
}

// withPath fills the computed parent folder path
func (s *fileService) withPath(ctx context.Context, file *models.File) {
	path, err := s.folderRepo.GetPath(ctx, file.FolderID)
	if err != nil {
		s.logger.Warn("failed to compute path", "file_id", file.ID, "error", err)
		return
	}
	file.Path = path
}

func fileConflict(title, existingID string) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("a file named %q already exists in this location", title),
		ResourceType: "file",
		ResourceID:   existingID,
	}
}

package kv

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"notevault/internal/config"
	"notevault/internal/domain"
	models "notevault/internal/domain/models/notes"
	repos "notevault/internal/domain/repositories/notes"
	"notevault/internal/utils"
)

// FileRepository implements notes.FileRepository over a file collection
type FileRepository struct {
	files   *Collection[models.File]
	folders *FolderRepository
	now     func() time.Time
	logger  *slog.Logger
}

// NewFileRepository creates a new file repository
func NewFileRepository(cfg *RepositoryConfig) repos.FileRepository {
	return newFileRepository(cfg)
}

func newFileRepository(cfg *RepositoryConfig) *FileRepository {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &FileRepository{
		files:   NewCollection[models.File](cfg.keys().Files, cfg.Store, cfg.TxManager),
		folders: newFolderRepository(cfg),
		now:     cfg.clock(),
		logger:  logger,
	}
}

// GetAll retrieves every file
func (r *FileRepository) GetAll(ctx context.Context) ([]models.File, error) {
	return r.files.GetAll(ctx)
}

// GetByID retrieves a file by ID, or nil if it does not exist
func (r *FileRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	files, err := r.files.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOfFile(files, id); i >= 0 {
		return &files[i], nil
	}
	return nil, nil
}

// GetByIDs retrieves the files that exist among ids, in ids order
func (r *FileRepository) GetByIDs(ctx context.Context, ids []string) ([]models.File, error) {
	files, err := r.files.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(files))
	for i := range files {
		byID[files[i].ID] = i
	}
	result := make([]models.File, 0, len(ids))
	for _, id := range ids {
		if i, ok := byID[id]; ok {
			result = append(result, files[i])
		}
	}
	return result, nil
}

// ListByFolder lists files whose parent is folderID (nil = root)
func (r *FileRepository) ListByFolder(ctx context.Context, folderID *string) ([]models.File, error) {
	files, err := r.files.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.File, 0)
	for i := range files {
		if files[i].InFolder(folderID) {
			result = append(result, files[i])
		}
	}
	return result, nil
}

// ListByFolderPath lists files directly inside the folder at path ("/" is
// the root). A path that names no folder yields an empty list.
func (r *FileRepository) ListByFolderPath(ctx context.Context, path string) ([]models.File, error) {
	if utils.IsRootPath(path) {
		return r.ListByFolder(ctx, nil)
	}
	folder, err := r.folders.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return []models.File{}, nil
	}
	return r.ListByFolder(ctx, &folder.ID)
}

// Create assigns ID, timestamps and version 1, then persists the file
func (r *FileRepository) Create(ctx context.Context, file *models.File) error {
	now := r.now().UTC()
	file.ID = uuid.NewString()
	file.Tags = models.NormalizeTags(file.Tags)
	file.FolderID = models.RootID(file.FolderID)
	file.CreatedAt = now
	file.UpdatedAt = now
	file.Version = 1

	record := *file
	record.Path = ""
	err := r.files.Mutate(ctx, func(files []models.File) ([]models.File, error) {
		return append(files, record), nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("file created", "id", file.ID, "title", file.Title)
	return nil
}

// Update overwrites title, content, tags and folder of an existing file.
// CreatedAt is preserved, Version is incremented and UpdatedAt strictly
// increases.
func (r *FileRepository) Update(ctx context.Context, file *models.File) error {
	var updated models.File
	err := r.files.Mutate(ctx, func(files []models.File) ([]models.File, error) {
		i := indexOfFile(files, file.ID)
		if i < 0 {
			return nil, &domain.NotFoundError{ResourceType: "file", ResourceID: file.ID}
		}
		r.merge(&files[i], file)
		updated = files[i]
		return files, nil
	})
	if err != nil {
		return err
	}

	updated.Path = file.Path
	*file = updated
	return nil
}

// BatchUpdate updates every existing file and returns the ids skipped
func (r *FileRepository) BatchUpdate(ctx context.Context, updates []models.File) ([]string, error) {
	var skipped []string
	err := r.files.Mutate(ctx, func(files []models.File) ([]models.File, error) {
		skipped = skipped[:0]
		for k := range updates {
			i := indexOfFile(files, updates[k].ID)
			if i < 0 {
				skipped = append(skipped, updates[k].ID)
				continue
			}
			r.merge(&files[i], &updates[k])
		}
		return files, nil
	})
	if err != nil {
		return nil, err
	}
	if len(skipped) > 0 {
		r.logger.Debug("batch update skipped missing files", "ids", skipped)
	}
	return skipped, nil
}

// Delete removes a file; deleting a missing id is a no-op
func (r *FileRepository) Delete(ctx context.Context, id string) error {
	_, err := r.BatchDelete(ctx, []string{id})
	return err
}

// BatchDelete removes files and returns the ids that did not exist
func (r *FileRepository) BatchDelete(ctx context.Context, ids []string) ([]string, error) {
	var skipped []string
	err := r.files.Mutate(ctx, func(files []models.File) ([]models.File, error) {
		kept, missing := removeByID(files, ids, func(f models.File) string { return f.ID })
		skipped = missing
		return kept, nil
	})
	if err != nil {
		return nil, err
	}
	return skipped, nil
}

// Copy duplicates each found source into the source's own folder with a
// fresh id, fresh timestamps, version 1 and a title unique among that
// folder's files (case-insensitive).
func (r *FileRepository) Copy(ctx context.Context, ids []string) ([]models.File, []string, error) {
	var copies []models.File
	var skipped []string
	err := r.files.Mutate(ctx, func(files []models.File) ([]models.File, error) {
		copies, skipped = copies[:0], skipped[:0]
		now := r.now().UTC()
		for _, id := range ids {
			i := indexOfFile(files, id)
			if i < 0 {
				skipped = append(skipped, id)
				continue
			}
			source := files[i]
			title := disambiguate(source.Title, config.MaxFileNameLength, func(candidate string) bool {
				return titleTaken(files, source.FolderID, candidate, "")
			})
			copied := models.File{
				ID:        uuid.NewString(),
				Title:     title,
				Content:   source.Content,
				Tags:      append([]string{}, source.Tags...),
				FolderID:  source.FolderID,
				CreatedAt: now,
				UpdatedAt: now,
				Version:   1,
			}
			files = append(files, copied)
			copies = append(copies, copied)
		}
		return files, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return copies, skipped, nil
}

// Move reassigns a file's parent folder
func (r *FileRepository) Move(ctx context.Context, id string, folderID *string) (*models.File, error) {
	var moved models.File
	err := r.files.Mutate(ctx, func(files []models.File) ([]models.File, error) {
		i := indexOfFile(files, id)
		if i < 0 {
			return nil, &domain.NotFoundError{ResourceType: "file", ResourceID: id}
		}
		f := &files[i]
		f.FolderID = models.RootID(folderID)
		f.Version++
		f.UpdatedAt = nextUpdatedAt(f.UpdatedAt, r.now())
		moved = *f
		return files, nil
	})
	if err != nil {
		return nil, err
	}
	return &moved, nil
}

func (r *FileRepository) merge(current, update *models.File) {
	current.Title = update.Title
	current.Content = update.Content
	current.Tags = models.NormalizeTags(update.Tags)
	current.FolderID = models.RootID(update.FolderID)
	current.Version++
	current.UpdatedAt = nextUpdatedAt(current.UpdatedAt, r.now())
}

func indexOfFile(files []models.File, id string) int {
	for i := range files {
		if files[i].ID == id {
			return i
		}
	}
	return -1
}

// titleTaken reports whether a file in folderID other than excludeID has
// title, compared case-insensitively
func titleTaken(files []models.File, folderID *string, title, excludeID string) bool {
	for i := range files {
		if files[i].ID != excludeID && files[i].InFolder(folderID) && strings.EqualFold(files[i].Title, title) {
			return true
		}
	}
	return false
}

package notes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"notevault/internal/config"
	"notevault/internal/domain"
	notesRepo "notevault/internal/domain/repositories/notes"
	notesSvc "notevault/internal/domain/services/notes"
	"notevault/internal/service/notes/converter"
	"notevault/internal/utils"
)

type exportService struct {
	fileRepo    notesRepo.FileRepository
	folderRepo  notesRepo.FolderRepository
	fileService notesSvc.FileService
	converters  *converter.Registry
	logger      *slog.Logger
}

// NewExportService creates the zip export/import service
func NewExportService(
	fileRepo notesRepo.FileRepository,
	folderRepo notesRepo.FolderRepository,
	fileService notesSvc.FileService,
	converters *converter.Registry,
	logger *slog.Logger,
) notesSvc.ExportService {
	return &exportService{
		fileRepo:    fileRepo,
		folderRepo:  folderRepo,
		fileService: fileService,
		converters:  converters,
		logger:      logger,
	}
}

// Export writes every file to a zip archive under its folder path. Entry
// names are title slugs; clashes within a folder get a numeric suffix.
func (s *exportService) Export(ctx context.Context, w io.Writer) (*notesSvc.ExportResult, error) {
	folders, err := s.folderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	files, err := s.fileRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	folderPaths := make(map[string]string, len(folders))
	for _, f := range folders {
		folderPaths[f.ID] = f.Path
	}

	used := make(map[string]bool, len(files))
	entries := make([]utils.ArchiveEntry, 0, len(files))
	for _, f := range files {
		dir := ""
		if f.FolderID != nil {
			dir = strings.TrimPrefix(folderPaths[*f.FolderID], utils.RootPath)
		}

		base := utils.SlugFor(f.Title)
		if base == "" {
			base = "untitled"
		}
		name := path.Join(dir, base+".md")
		for n := 1; used[name]; n++ {
			name = path.Join(dir, utils.GenerateSlugWithSuffix(base, n)+".md")
		}
		used[name] = true

		data, err := utils.RenderFrontmatter(&utils.FileFrontmatter{
			ID:        f.ID,
			Title:     f.Title,
			Tags:      f.Tags,
			CreatedAt: f.CreatedAt,
			UpdatedAt: f.UpdatedAt,
		}, f.Content)
		if err != nil {
			return nil, fmt.Errorf("render %q: %w", f.Title, err)
		}
		entries = append(entries, utils.ArchiveEntry{Name: name, Data: data})
	}

	if err := utils.WriteArchive(w, entries); err != nil {
		return nil, err
	}

	s.logger.Info("files exported", "count", len(entries))
	return &notesSvc.ExportResult{Files: len(entries)}, nil
}

// Import creates a file for every entry a registered converter handles.
// The entry's directory, under targetPath, becomes its folder path
// (created as needed); frontmatter title and tags win over the entry name.
// Entries that clash with an existing title are skipped, other failures
// are recorded and the import carries on.
func (s *exportService) Import(ctx context.Context, r io.ReaderAt, size int64, targetPath string) (*notesSvc.ImportResult, error) {
	entries, err := utils.ReadArchive(r, size, config.MaxImportEntrySize)
	if err != nil {
		return nil, domain.NewValidationError("%v", err)
	}

	result := &notesSvc.ImportResult{
		Errors: []notesSvc.ImportError{},
		Files:  []notesSvc.ImportFile{},
	}

	for _, entry := range entries {
		if isIgnoredEntry(entry.Name) {
			continue
		}
		result.Summary.TotalFiles++

		conv := s.converters.Lookup(entry.Name)
		if conv == nil {
			result.Summary.Skipped++
			result.Files = append(result.Files, notesSvc.ImportFile{
				Path:   entry.Name,
				Action: "skipped",
			})
			continue
		}

		meta, body, err := utils.ParseFrontmatter(entry.Data)
		if err != nil {
			result.Summary.Failed++
			result.Errors = append(result.Errors, notesSvc.ImportError{File: entry.Name, Error: err.Error()})
			continue
		}

		content, err := conv.Convert(ctx, []byte(body))
		if err != nil {
			result.Summary.Failed++
			result.Errors = append(result.Errors, notesSvc.ImportError{File: entry.Name, Error: err.Error()})
			continue
		}

		title := strings.TrimSuffix(path.Base(entry.Name), path.Ext(entry.Name))
		var tags []string
		if meta != nil {
			if strings.TrimSpace(meta.Title) != "" {
				title = meta.Title
			}
			tags = meta.Tags
		}

		folderPath := targetPath
		if dir := path.Dir(entry.Name); dir != "." {
			folderPath = utils.JoinPath(targetPath, dir)
		}

		file, err := s.fileService.CreateFile(ctx, &notesSvc.CreateFileRequest{
			Title:      title,
			Content:    content,
			Tags:       tags,
			FolderPath: &folderPath,
		})
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				result.Summary.Skipped++
				result.Files = append(result.Files, notesSvc.ImportFile{
					Path:   entry.Name,
					Title:  title,
					Action: "skipped",
				})
				continue
			}
			result.Summary.Failed++
			result.Errors = append(result.Errors, notesSvc.ImportError{File: entry.Name, Error: err.Error()})
			continue
		}

		result.Summary.Created++
		result.Files = append(result.Files, notesSvc.ImportFile{
			ID:     file.ID,
			Path:   file.Path,
			Title:  file.Title,
			Action: "created",
		})
	}

	s.logger.Info("archive imported",
		"target_path", utils.NormalizePath(targetPath),
		"created", result.Summary.Created,
		"skipped", result.Summary.Skipped,
		"failed", result.Summary.Failed,
	)
	return result, nil
}

// isIgnoredEntry filters OS metadata and hidden files out of archives
func isIgnoredEntry(name string) bool {
	if strings.HasPrefix(name, "__MACOSX/") {
		return true
	}
	return strings.HasPrefix(path.Base(name), ".")
}

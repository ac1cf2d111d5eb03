package handler

import (
	"log/slog"
	"net/http"

	models "notevault/internal/domain/models/notes"
	notesSvc "notevault/internal/domain/services/notes"
	"notevault/internal/httputil"
)

// FileHandler handles file HTTP requests
type FileHandler struct {
	fileService notesSvc.FileService
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService notesSvc.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// createFileBody accepts either a plain create request or a single
// "folder/sub/title" path
type createFileBody struct {
	notesSvc.CreateFileRequest
	Path string `json:"path,omitempty"`
}

type renameFileBody struct {
	Title string `json:"title"`
}

type moveBody struct {
	TargetPath string `json:"target_path"`
}

type copyFilesBody struct {
	FileIDs []string `json:"file_ids"`
}

// ListFiles lists the files directly inside a folder
// GET /api/files?path=/a/b
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}

	files, err := h.fileService.ListFiles(r.Context(), path)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, files)
}

// CreateFile creates a new file
// POST /api/files
// Returns 201 if created, 409 with existing file if duplicate
func (h *FileHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	var req createFileBody
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	var (
		file *models.File
		err  error
	)
	if req.Path != "" {
		file, err = h.fileService.CreateFileWithPath(r.Context(), req.Path, req.Content, req.Tags)
	} else {
		file, err = h.fileService.CreateFile(r.Context(), &req.CreateFileRequest)
	}
	if err != nil {
		HandleCreateConflict(w, h.logger, err, func(id string) (*models.File, error) {
			return h.fileService.GetFile(r.Context(), id)
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// GetFile retrieves a file by ID
// GET /api/files/{id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	file, err := h.fileService.GetFile(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// UpdateFile changes content and/or tags
// PATCH /api/files/{id}
func (h *FileHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	var req notesSvc.UpdateFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	file, err := h.fileService.UpdateFile(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// RenameFile gives a file a new title
// POST /api/files/{id}/rename
func (h *FileHandler) RenameFile(w http.ResponseWriter, r *http.Request) {
	var req renameFileBody
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	file, err := h.fileService.RenameFile(r.Context(), r.PathValue("id"), req.Title)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// MoveFile moves a file into the folder at target_path
// POST /api/files/{id}/move
func (h *FileHandler) MoveFile(w http.ResponseWriter, r *http.Request) {
	var req moveBody
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	file, err := h.fileService.MoveFile(r.Context(), r.PathValue("id"), req.TargetPath)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// DeleteFile deletes a file
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	if err := h.fileService.DeleteFile(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CopyFiles copies files next to their sources
// POST /api/files/copy
func (h *FileHandler) CopyFiles(w http.ResponseWriter, r *http.Request) {
	var req copyFilesBody
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	result, err := h.fileService.CopyFiles(r.Context(), req.FileIDs)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

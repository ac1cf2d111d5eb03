package handler

import (
	"log/slog"
	"net/http"

	models "notevault/internal/domain/models/notes"
	notesSvc "notevault/internal/domain/services/notes"
	"notevault/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService notesSvc.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService notesSvc.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

type createFolderBody struct {
	Name       string `json:"name"`
	ParentPath string `json:"parent_path"`
}

type renameFolderBody struct {
	Name string `json:"name"`
}

// CreateFolder creates a new folder
// POST /api/folders
// Returns 201 if created, 409 with existing folder if duplicate
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderBody
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	folder, err := h.folderService.CreateFolder(r.Context(), req.Name, req.ParentPath)
	if err != nil {
		HandleCreateConflict(w, h.logger, err, func(id string) (*models.Folder, error) {
			return h.folderService.GetFolder(r.Context(), id)
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// ListFolder returns a folder's direct children
// GET /api/folders?path=/a/b
func (h *FolderHandler) ListFolder(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}

	contents, err := h.folderService.ListChildren(r.Context(), path)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contents)
}

// GetFolder retrieves a folder by ID
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	folder, err := h.folderService.GetFolder(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// RenameFolder renames a folder; descendant paths follow
// POST /api/folders/{id}/rename
func (h *FolderHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	var req renameFolderBody
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	folder, err := h.folderService.RenameFolder(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// MoveFolder moves a folder and its subtree under target_path
// POST /api/folders/{id}/move
func (h *FolderHandler) MoveFolder(w http.ResponseWriter, r *http.Request) {
	var req moveBody
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	folder, err := h.folderService.MoveFolder(r.Context(), r.PathValue("id"), req.TargetPath)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder deletes a folder
// DELETE /api/folders/{id}?delete_contents=true
// Returns 409 FOLDER_NOT_EMPTY for a non-empty folder unless delete_contents is set
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	deleteContents, err := queryBool(r, "delete_contents")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	result, err := h.folderService.DeleteFolder(r.Context(), r.PathValue("id"), deleteContents)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

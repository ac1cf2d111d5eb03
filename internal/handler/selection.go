package handler

import (
	"log/slog"
	"net/http"

	notesSvc "notevault/internal/domain/services/notes"
	"notevault/internal/httputil"
)

// SelectionHandler handles operations over a mixed file/folder selection
type SelectionHandler struct {
	opsService notesSvc.OperationsService
	logger     *slog.Logger
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(opsService notesSvc.OperationsService, logger *slog.Logger) *SelectionHandler {
	return &SelectionHandler{
		opsService: opsService,
		logger:     logger,
	}
}

// Delete deletes the selection and everything beneath selected folders
// POST /api/selection/delete
func (h *SelectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req notesSvc.SelectionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	result, err := h.opsService.DeleteSelectedItems(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// Move moves the selection under target_path. Nothing moves unless the
// whole selection validates.
// POST /api/selection/move
func (h *SelectionHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req notesSvc.MoveSelectionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	result, err := h.opsService.MoveSelectedItems(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

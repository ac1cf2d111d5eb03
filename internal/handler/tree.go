package handler

import (
	"log/slog"
	"net/http"

	notesSvc "notevault/internal/domain/services/notes"
	"notevault/internal/httputil"
)

// TreeHandler handles HTTP requests for tree operations
type TreeHandler struct {
	treeService notesSvc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService notesSvc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetTree returns the folder/file tree
// GET /api/tree?expanded=id1,id2&flat=true
//
// Query parameters:
//   - expanded: optional, comma-separated folder ids whose children are included
//   - flat: optional, if "true" returns the visible nodes in render order
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	flat, err := queryBool(r, "flat")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	expanded := queryList(r, "expanded")

	build := h.treeService.GetTree
	if flat {
		build = h.treeService.GetFlatTree
	}

	nodes, err := build(r.Context(), expanded)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, nodes)
}

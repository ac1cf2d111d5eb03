package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"notevault/internal/config"
	notesSvc "notevault/internal/domain/services/notes"
	"notevault/internal/httputil"
)

// ExportHandler handles zip export and import
type ExportHandler struct {
	exportService notesSvc.ExportService
	logger        *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService notesSvc.ExportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		logger:        logger,
	}
}

// ImportResponse represents the response for import operations
type ImportResponse struct {
	Success bool                   `json:"success"`
	Summary notesSvc.ImportSummary `json:"summary"`
	Errors  []notesSvc.ImportError `json:"errors"`
	Files   []notesSvc.ImportFile  `json:"files"`
}

// Export downloads every file as a zip archive
// GET /api/export
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	// Build the archive first so a failure can still be reported as JSON
	var buf bytes.Buffer
	result, err := h.exportService.Export(r.Context(), &buf)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	filename := fmt.Sprintf("notes-%s.zip", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Exported-Files", strconv.Itoa(result.Files))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("export write interrupted", "error", err)
	}
}

// Import creates files from an uploaded zip archive.
// POST /api/import
//
// Form fields:
//   - file: required, the zip archive
//
// Query parameters:
//   - path: optional, target folder path (empty = root)
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxImportArchiveSize+(1<<20))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > config.MaxImportArchiveSize {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("archive exceeds %d bytes", config.MaxImportArchiveSize))
		return
	}

	targetPath := r.URL.Query().Get("path")
	if targetPath == "" {
		targetPath = "/"
	}

	h.logger.Info("starting import",
		"file", header.Filename,
		"size", header.Size,
		"target_path", targetPath,
	)

	result, err := h.exportService.Import(r.Context(), file, header.Size, targetPath)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ImportResponse{
		Success: result.Summary.Failed == 0,
		Summary: result.Summary,
		Errors:  result.Errors,
		Files:   result.Files,
	})
}

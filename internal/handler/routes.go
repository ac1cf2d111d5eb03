package handler

import (
	"net/http"
)

// Handlers groups the HTTP handlers mounted by NewRouter
type Handlers struct {
	Files     *FileHandler
	Folders   *FolderHandler
	Tree      *TreeHandler
	Selection *SelectionHandler
	Export    *ExportHandler
}

// NewRouter registers every API route (Go 1.22+ enhanced patterns)
func NewRouter(h *Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", HealthCheck)

	// File routes
	mux.HandleFunc("GET /api/files", h.Files.ListFiles)
	mux.HandleFunc("POST /api/files", h.Files.CreateFile)
	mux.HandleFunc("POST /api/files/copy", h.Files.CopyFiles)
	mux.HandleFunc("GET /api/files/{id}", h.Files.GetFile)
	mux.HandleFunc("PATCH /api/files/{id}", h.Files.UpdateFile)
	mux.HandleFunc("DELETE /api/files/{id}", h.Files.DeleteFile)
	mux.HandleFunc("POST /api/files/{id}/rename", h.Files.RenameFile)
	mux.HandleFunc("POST /api/files/{id}/move", h.Files.MoveFile)

	// Folder routes
	mux.HandleFunc("GET /api/folders", h.Folders.ListFolder)
	mux.HandleFunc("POST /api/folders", h.Folders.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", h.Folders.GetFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", h.Folders.DeleteFolder)
	mux.HandleFunc("POST /api/folders/{id}/rename", h.Folders.RenameFolder)
	mux.HandleFunc("POST /api/folders/{id}/move", h.Folders.MoveFolder)

	// Tree
	mux.HandleFunc("GET /api/tree", h.Tree.GetTree)

	// Multi-selection operations
	mux.HandleFunc("POST /api/selection/delete", h.Selection.Delete)
	mux.HandleFunc("POST /api/selection/move", h.Selection.Move)

	// Export / import
	mux.HandleFunc("GET /api/export", h.Export.Export)
	mux.HandleFunc("POST /api/import", h.Export.Import)

	return mux
}

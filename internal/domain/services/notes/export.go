package notes

import (
	"context"
	"io"
)

// ExportService moves files in and out of zip archives
type ExportService interface {
	// Export writes every file as "<folder path>/<title slug>.md" with YAML
	// frontmatter
	Export(ctx context.Context, w io.Writer) (*ExportResult, error)

	// Import creates a file for every .md/.txt entry, placing it under
	// targetPath plus the entry's directory. Per-entry failures are
	// collected in the result.
	Import(ctx context.Context, r io.ReaderAt, size int64, targetPath string) (*ImportResult, error)
}

// ExportResult summarises an export
type ExportResult struct {
	Files int `json:"files"`
}

// ImportResult represents the result of a bulk import operation
type ImportResult struct {
	Summary ImportSummary `json:"summary"`
	Errors  []ImportError `json:"errors"`
	Files   []ImportFile  `json:"files"`
}

// ImportSummary contains aggregate statistics for an import operation
type ImportSummary struct {
	Created    int `json:"created"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	TotalFiles int `json:"total_files"`
}

// ImportError represents an error that occurred during import
type ImportError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// ImportFile represents a processed archive entry
type ImportFile struct {
	ID     string `json:"id"`
	Path   string `json:"path"`
	Title  string `json:"title"`
	Action string `json:"action"` // "created" or "skipped"
}

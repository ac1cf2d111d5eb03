package converter

import (
	"bytes"
	"context"

	notesSvc "notevault/internal/domain/services/notes"
)

// passthrough stores markdown and plain text as-is; both are already
// valid file content
type passthrough struct {
	name string
	exts []string
}

// NewMarkdownConverter handles .md and .markdown entries
func NewMarkdownConverter() notesSvc.ContentConverter {
	return &passthrough{name: "markdown", exts: []string{".md", ".markdown"}}
}

// NewTextConverter handles .txt and .text entries
func NewTextConverter() notesSvc.ContentConverter {
	return &passthrough{name: "plaintext", exts: []string{".txt", ".text"}}
}

// Convert normalizes CRLF line endings and strips a UTF-8 byte order mark
func (c *passthrough) Convert(ctx context.Context, input []byte) (string, error) {
	input = bytes.TrimPrefix(input, []byte("\xef\xbb\xbf"))
	return string(bytes.ReplaceAll(input, []byte("\r\n"), []byte("\n"))), nil
}

func (c *passthrough) SupportedExtensions() []string { return c.exts }

func (c *passthrough) Name() string { return c.name }

package notes

import "context"

// ContentConverter turns an imported document into markdown file content.
// Each converter handles one family of extensions.
//
// Implementations must be safe for concurrent use.
type ContentConverter interface {
	// Convert transforms input to markdown
	Convert(ctx context.Context, input []byte) (markdown string, err error)

	// SupportedExtensions lists handled extensions with the leading dot
	SupportedExtensions() []string

	// Name identifies the converter in logs
	Name() string
}

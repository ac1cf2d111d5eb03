package converter

import (
	"context"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/microcosm-cc/bluemonday"

	notesSvc "notevault/internal/domain/services/notes"
)

// htmlConverter sanitizes HTML, then converts what is left to markdown.
// Scripts, event handlers and javascript: URLs never reach the converter.
type htmlConverter struct {
	policy    *bluemonday.Policy
	converter *md.Converter
}

// NewHTMLConverter handles .html and .htm entries
func NewHTMLConverter() notesSvc.ContentConverter {
	// UGC keeps formatting, headings, lists, links, tables and code
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()

	return &htmlConverter{
		policy:    policy,
		converter: md.NewConverter("", true, nil),
	}
}

func (c *htmlConverter) Convert(ctx context.Context, input []byte) (string, error) {
	sanitized := c.policy.SanitizeBytes(input)

	markdown, err := c.converter.ConvertString(string(sanitized))
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown) + "\n", nil
}

func (c *htmlConverter) SupportedExtensions() []string { return []string{".html", ".htm"} }

func (c *htmlConverter) Name() string { return "html" }

package converter

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	notesSvc "notevault/internal/domain/services/notes"
)

// Registry routes imported entries to a converter by file extension.
//
// Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]notesSvc.ContentConverter // key: lowercase extension with dot
}

// NewRegistry creates a registry with the markdown, plain text and HTML
// converters registered
func NewRegistry() *Registry {
	r := &Registry{converters: make(map[string]notesSvc.ContentConverter)}
	r.Register(NewMarkdownConverter())
	r.Register(NewTextConverter())
	r.Register(NewHTMLConverter())
	return r
}

// Register maps every extension of c to c, replacing earlier mappings
func (r *Registry) Register(c notesSvc.ContentConverter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range c.SupportedExtensions() {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.converters[ext] = c
	}
}

// Lookup returns the converter for filename's extension, or nil
func (r *Registry) Lookup(filename string) notesSvc.ContentConverter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[strings.ToLower(path.Ext(filename))]
}

// Convert converts content with the converter registered for filename
func (r *Registry) Convert(ctx context.Context, filename string, content []byte) (string, error) {
	c := r.Lookup(filename)
	if c == nil {
		return "", fmt.Errorf("unsupported file type: %s", path.Ext(filename))
	}
	return c.Convert(ctx, content)
}

// Extensions returns the registered extensions, sorted
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.converters))
	for ext := range r.converters {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Package extract wires file-format extractors into a registry keyed
// by extension.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps file extensions to extractors.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]driven.Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]driven.Extractor)}
}

// Register adds an extractor for its declared extensions. A later
// registration for the same extension wins.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range e.Extensions() {
		r.extractors[strings.ToLower(ext)] = e
	}
}

// ForFile returns the extractor for the file's extension.
func (r *Registry) ForFile(path string) (driven.Extractor, error) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.extractors[ext]
	if !ok {
		return nil, fmt.Errorf("no extractor for %q: %w", ext, domain.ErrUnsupportedFormat)
	}
	return e, nil
}

// Extensions returns all registered extensions, unsorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	return exts
}

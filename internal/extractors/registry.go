package extractors

import (
	"context"
	"fmt"
	"sort"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
	"github.com/veldlabs/florascribe-cli/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches extraction requests to the highest-priority
// extractor registered for a document kind. When an extractor fails,
// the next one for the same kind is tried.
type Registry struct {
	byKind map[domain.DocumentKind][]driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		byKind: make(map[domain.DocumentKind][]driven.Extractor),
	}
}

// Register adds an extractor for all of its supported kinds, keeping
// each kind's list sorted by descending priority.
func (r *Registry) Register(extractor driven.Extractor) {
	for _, kind := range extractor.SupportedKinds() {
		list := append(r.byKind[kind], extractor)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.byKind[kind] = list
	}
}

// Extract dispatches to the extractors for the kind in priority order,
// returning the first successful extraction.
func (r *Registry) Extract(ctx context.Context, url string, kind domain.DocumentKind) (*driven.Extraction, error) {
	list := r.byKind[kind]
	if len(list) == 0 {
		return nil, fmt.Errorf("no extractor for kind %s: %w", kind, domain.ErrUnsupportedKind)
	}

	var lastErr error
	for _, e := range list {
		result, err := e.Extract(ctx, url)
		if err == nil {
			return result, nil
		}
		lastErr = err
		logger.Debug("Extractor failed for %s: %v", url, err)
	}
	return nil, lastErr
}

// SupportedKinds returns all kinds with at least one registered extractor.
func (r *Registry) SupportedKinds() []domain.DocumentKind {
	kinds := make([]domain.DocumentKind, 0, len(r.byKind))
	for kind := range r.byKind {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

package driven

import (
	"context"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
)

// Extraction is the output of a successful content extraction.
type Extraction struct {
	// Title is the document title, best effort.
	Title string

	// Content is the cleaned main text.
	Content string
}

// Extractor pulls clean text out of a fetched document. Each extractor
// handles specific document kinds (HTML, PDF, plain text).
type Extractor interface {
	// SupportedKinds returns the document kinds this extractor handles.
	SupportedKinds() []domain.DocumentKind

	// Priority returns the selection priority (higher = preferred).
	// Kind-specific extractors should return 50-89; fallbacks 1-9.
	Priority() int

	// Extract fetches the URL and extracts title and main content.
	// Insufficient content is reported as domain.ErrInsufficientContent,
	// which callers treat as "try the next candidate".
	Extract(ctx context.Context, url string) (*Extraction, error)
}

// ExtractorRegistry selects the appropriate extractor for a document
// kind. It maintains a priority-ordered set of extractors.
type ExtractorRegistry interface {
	// Extract dispatches to the best matching extractor for the kind.
	Extract(ctx context.Context, url string, kind domain.DocumentKind) (*Extraction, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedKinds returns all kinds that can be extracted.
	SupportedKinds() []domain.DocumentKind
}

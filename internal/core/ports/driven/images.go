package driven

import (
	"context"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
)

// ImageProvider finds illustrative images for article sections.
// Lookup failures yield an empty slice, not an error, so the assembler
// can fall back to its stable default image.
type ImageProvider interface {
	// Search returns up to limit images for the search term.
	Search(ctx context.Context, term string, limit int) ([]domain.SectionImage, error)
}

package driven

import (
	"context"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
)

// WebSearcher issues one web search query and returns candidate URLs.
// The collector runs tiered queries through it; tier failures are the
// collector's concern, not the searcher's.
//
// Implementations may include:
//   - SerpAPI (Google engine)
//   - Compatible self-hosted metasearch APIs
type WebSearcher interface {
	// Search runs a single query and returns up to limit candidates.
	// The returned candidates carry no tier priority; the caller sets it.
	Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error)

	// Ping validates the provider is reachable and the key accepted.
	Ping(ctx context.Context) error
}

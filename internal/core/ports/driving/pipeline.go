package driving

import (
	"context"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
)

// SourceCollector discovers, extracts, and ranks web sources about a
// subject. This is one of the two contracts outer layers depend on.
type SourceCollector interface {
	// CollectSources returns ranked source records for the subject.
	// An empty slice (not an error) means nothing usable was found.
	CollectSources(ctx context.Context, subject string) ([]domain.SourceRecord, error)
}

// ArticleGenerator assembles a structured article from collected
// records. It never produces an empty document: with no usable model or
// context, every section falls back to a deterministic template.
type ArticleGenerator interface {
	// GenerateArticle returns the rendered document.
	GenerateArticle(ctx context.Context, subject string, records []domain.SourceRecord) (string, error)
}

// QueryService answers a single question against an index built from
// collected records.
type QueryService interface {
	// BuildIndex embeds and indexes the records, replacing prior state.
	BuildIndex(ctx context.Context, records []domain.SourceRecord) error

	// Query retrieves context, applies the confidence gate, and either
	// generates an answer or refuses.
	Query(ctx context.Context, question string) (*domain.QueryResult, error)
}

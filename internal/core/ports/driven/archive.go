package driven

import (
	"context"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
)

// ArchiveStore persists collection artifacts for offline and debug use:
// a full collection document and a sibling bare array of source records.
type ArchiveStore interface {
	// Save writes both artifacts for the collection.
	Save(ctx context.Context, col *domain.Collection) error

	// Load reads a previously saved collection by subject.
	Load(ctx context.Context, subject string) (*domain.Collection, error)
}

package driven

import "context"

// CatalogueEntry is one subject in the research catalogue.
type CatalogueEntry struct {
	// ID is the entry's unique identifier.
	ID string

	// Title is the display name.
	Title string

	// ScientificName is the canonical botanical name, if known.
	ScientificName string

	// Family and Genus are the taxonomic placement, if known.
	Family string
	Genus  string

	// Complete is true once the subject's sources have been collected.
	Complete bool
}

// CatalogueStore tracks which subjects have been researched. Batch runs
// pull pending subjects from it and mark them complete afterwards.
type CatalogueStore interface {
	// Add inserts a new subject.
	Add(ctx context.Context, entry CatalogueEntry) error

	// Get looks an entry up by scientific name.
	Get(ctx context.Context, scientificName string) (*CatalogueEntry, error)

	// Pending returns up to limit subjects not yet completed.
	Pending(ctx context.Context, limit int) ([]CatalogueEntry, error)

	// MarkComplete flips an entry's completion flag.
	MarkComplete(ctx context.Context, scientificName string, complete bool) error

	// Stats returns total and completed entry counts.
	Stats(ctx context.Context) (total, complete int, err error)

	// Close releases the underlying database handle.
	Close() error
}

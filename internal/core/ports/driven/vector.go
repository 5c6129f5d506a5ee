package driven

import "context"

// VectorIndex provides exact nearest-neighbour search under L2 distance.
// Build fully replaces prior state; there is no incremental insert in
// this design — a new collection means a new index.
type VectorIndex interface {
	// Build replaces the index contents with the given vectors. All
	// vectors must share one dimensionality.
	Build(ctx context.Context, vectors [][]float32) error

	// Search finds the k nearest neighbours to the query vector,
	// returning hits sorted by ascending distance. Fewer than k hits are
	// returned when the index holds fewer entries.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Size returns the number of indexed vectors.
	Size() int

	// Close releases resources.
	Close() error
}

// VectorHit is one nearest-neighbour match.
type VectorHit struct {
	// Position is the vector's ordinal in the last Build call.
	Position int

	// Distance is the L2 distance to the query.
	Distance float64
}

// Package flat provides an exact in-memory nearest-neighbour index.
// Collections here are small (tens of records), so a brute-force scan
// beats an approximate structure on both accuracy and simplicity.
package flat

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index holds vectors in memory and answers exact L2 queries.
type Index struct {
	mu      sync.RWMutex
	vectors [][]float32
	dims    int
}

// New creates an empty flat index.
func New() *Index {
	return &Index{}
}

// Build replaces the index contents. All vectors must share one
// dimensionality; a mismatch rejects the whole batch.
func (idx *Index) Build(_ context.Context, vectors [][]float32) error {
	dims := 0
	for i, v := range vectors {
		if len(v) == 0 {
			return fmt.Errorf("vector %d is empty", i)
		}
		if dims == 0 {
			dims = len(v)
		}
		if len(v) != dims {
			return fmt.Errorf("vector %d has %d dimensions, want %d", i, len(v), dims)
		}
	}

	copied := make([][]float32, len(vectors))
	for i, v := range vectors {
		copied[i] = append([]float32(nil), v...)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.vectors = copied
	idx.dims = dims
	return nil
}

// Search returns the k nearest vectors by L2 distance, ascending.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.vectors) == 0 {
		return nil, nil
	}
	if len(query) != idx.dims {
		return nil, fmt.Errorf("query has %d dimensions, index has %d", len(query), idx.dims)
	}
	if k <= 0 {
		return nil, nil
	}

	hits := make([]driven.VectorHit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = driven.VectorHit{Position: i, Distance: l2(query, v)}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Position < hits[j].Position
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Size returns the number of indexed vectors.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// Close releases resources.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.vectors = nil
	idx.dims = 0
	return nil
}

func l2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

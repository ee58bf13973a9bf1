// Package flat provides a brute-force in-memory vector index.
//
// Per-video indexes hold at most a few hundred passages, so exact
// inner-product search over a flat slice beats an approximate structure
// both in simplicity and in recall.
package flat

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an in-memory vector index using exact inner product search.
// Inner product equals cosine similarity for normalized embeddings.
type Index struct {
	mu         sync.RWMutex
	dimensions int
	chunks     []domain.Chunk
}

// New creates an empty index for vectors of the given size.
func New(dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("flat: dimensions must be positive, got %d", dimensions)
	}
	return &Index{dimensions: dimensions}, nil
}

// Add appends chunks with their embeddings, preserving order.
func (ix *Index) Add(_ context.Context, chunks []domain.Chunk) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for i := range chunks {
		if len(chunks[i].Embedding) != ix.dimensions {
			return fmt.Errorf("flat: chunk %d dimension mismatch: got %d, expected %d",
				chunks[i].Position, len(chunks[i].Embedding), ix.dimensions)
		}
	}
	ix.chunks = append(ix.chunks, chunks...)
	return nil
}

// Search returns the top-k passages by inner product with the query.
func (ix *Index) Search(_ context.Context, query []float32, k int) ([]domain.PassageHit, error) {
	if len(query) != ix.dimensions {
		return nil, fmt.Errorf("flat: query dimension mismatch: got %d, expected %d",
			len(query), ix.dimensions)
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if k <= 0 || len(ix.chunks) == 0 {
		return nil, nil
	}

	hits := make([]domain.PassageHit, len(ix.chunks))
	for i := range ix.chunks {
		hits[i] = domain.PassageHit{
			Chunk: ix.chunks[i],
			Score: InnerProduct(query, ix.chunks[i].Embedding),
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Chunks returns all passages in splitter order.
func (ix *Index) Chunks() []domain.Chunk {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]domain.Chunk, len(ix.chunks))
	copy(out, ix.chunks)
	return out
}

// Dimensions returns the vector size the index was created with.
func (ix *Index) Dimensions() int {
	return ix.dimensions
}

// Size returns the number of passages in the index.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.chunks)
}

// Close drops the passage slice so the request's memory is reclaimable.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.chunks = nil
	return nil
}

// InnerProduct returns the inner product of two vectors. For normalized
// vectors this equals cosine similarity.
func InnerProduct(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i] * b[i])
	}
	return dot
}

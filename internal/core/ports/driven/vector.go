package driven

import (
	"context"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
)

// VectorIndex holds the chunks and embeddings of one video and supports
// nearest-neighbour passage search. An index is request-scoped: it is
// created at request entry (loaded or built) and released via Close at
// request exit. It is never shared across requests.
type VectorIndex interface {
	// Add appends chunks (with their embeddings) to the index,
	// preserving order.
	Add(ctx context.Context, chunks []domain.Chunk) error

	// Search returns the top-k passages by similarity to the query
	// vector, ranked best first. Fewer than k are returned only when
	// the index holds fewer than k passages.
	Search(ctx context.Context, query []float32, k int) ([]domain.PassageHit, error)

	// Chunks returns all passages in splitter order.
	Chunks() []domain.Chunk

	// Dimensions returns the vector size the index was created with.
	Dimensions() int

	// Size returns the number of passages in the index.
	Size() int

	// Close releases the index's memory.
	Close() error
}

// VectorIndexFactory creates vector indexes so that core services never
// depend on a concrete index implementation.
type VectorIndexFactory interface {
	// New creates an empty index for vectors of the given size.
	New(dimensions int) (VectorIndex, error)

	// FromRecord reconstructs an index from a persisted record.
	FromRecord(rec *domain.IndexRecord) (VectorIndex, error)
}

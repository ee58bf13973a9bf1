package flat

import (
	"context"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.VectorIndexFactory = (*Factory)(nil)

// Factory creates flat indexes for core services.
type Factory struct{}

// NewFactory returns a factory for flat vector indexes.
func NewFactory() *Factory {
	return &Factory{}
}

// New creates an empty index for vectors of the given size.
func (f *Factory) New(dimensions int) (driven.VectorIndex, error) {
	return New(dimensions)
}

// FromRecord reconstructs an index from a persisted record.
func (f *Factory) FromRecord(rec *domain.IndexRecord) (driven.VectorIndex, error) {
	ix, err := New(rec.Dimensions)
	if err != nil {
		return nil, err
	}
	if err := ix.Add(context.Background(), rec.Chunks); err != nil {
		return nil, err
	}
	return ix, nil
}

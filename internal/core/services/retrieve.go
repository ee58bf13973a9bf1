package services

import (
	"context"
	"fmt"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/logger"
)

// Retriever performs nearest-neighbour passage search against a loaded
// vector index. The query is embedded with the same service that built
// the index.
type Retriever struct {
	embedder driven.EmbeddingService
	k        int
}

// NewRetriever creates a retriever. A non-positive k falls back to TopK.
func NewRetriever(embedder driven.EmbeddingService, k int) *Retriever {
	if k <= 0 {
		k = TopK
	}
	return &Retriever{embedder: embedder, k: k}
}

// Retrieve returns up to k passages ranked by similarity to query. There
// is no minimum-similarity cutoff: when the video contains little relevant
// content, low-relevance passages surface rather than none.
func (r *Retriever) Retrieve(ctx context.Context, index driven.VectorIndex, query string) ([]domain.PassageHit, error) {
	defer logger.Stage("Retrieving")()

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w: %v", domain.ErrGenerationFailed, err)
	}

	hits, err := index.Search(ctx, vector, r.k)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	if logger.IsVerbose() && len(hits) > 0 {
		logger.Debug("retrieved %d passages, scores %.3f..%.3f",
			len(hits), hits[0].Score, hits[len(hits)-1].Score)
	}
	return hits, nil
}

package driven

import (
	"context"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
)

// Splitter divides translated transcript text into ordered, bounded-size,
// overlapping passages. Splitting is deterministic for identical input and
// identical size/overlap parameters, and never produces an empty passage.
type Splitter interface {
	// Split returns the passages of text, in order, with Position set
	// and VideoID propagated to each chunk. Embeddings are not set.
	Split(ctx context.Context, videoID, text string) ([]domain.Chunk, error)
}

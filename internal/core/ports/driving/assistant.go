package driving

import (
	"context"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
)

// AssistantService answers questions about a video and summarizes it,
// building or reusing the per-video vector index as needed.
//
// Both operations are synchronous and blocking. Failures are reported as
// typed errors from the domain taxonomy; converting them into
// human-readable messages is the driving adapter's job.
type AssistantService interface {
	// Answer resolves the video behind url, ensures its index exists,
	// retrieves and compresses passages relevant to question, and
	// generates an answer grounded in them.
	Answer(ctx context.Context, url, question string) (*domain.Answer, error)

	// Summarize resolves the video behind url, ensures its index
	// exists, retrieves the top passages for the canonical summary
	// query, and generates a summary over them.
	Summarize(ctx context.Context, url string) (*domain.Summary, error)
}

// CacheService exposes the durable index cache for inspection.
type CacheService interface {
	// List returns a summary of every cached video index.
	List(ctx context.Context) ([]domain.IndexInfo, error)

	// Clear removes the cached index for one video.
	Clear(ctx context.Context, videoID string) error
}

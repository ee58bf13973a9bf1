package driven

import (
	"context"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
)

// IndexStore is the durable vector index cache, keyed by video ID.
//
// The store is effectively append-only: one record per previously-unseen
// video, no updates, no expiry. Save must be atomic so that two requests
// racing to build the same unseen video cannot interleave partial writes;
// the loser receives domain.ErrAlreadyExists and reloads.
type IndexStore interface {
	// Exists reports whether a record exists for the video.
	Exists(ctx context.Context, videoID string) (bool, error)

	// Load retrieves the record for a video, or domain.ErrNotFound.
	Load(ctx context.Context, videoID string) (*domain.IndexRecord, error)

	// Save persists a record. It fails with domain.ErrAlreadyExists if
	// a record for the same video ID is already present.
	Save(ctx context.Context, rec *domain.IndexRecord) error

	// List returns a summary of every persisted record.
	List(ctx context.Context) ([]domain.IndexInfo, error)

	// Delete removes the record for a video, or domain.ErrNotFound.
	Delete(ctx context.Context, videoID string) error

	// Close releases resources.
	Close() error
}

package services

import (
	"context"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driving"
)

// Ensure CacheService implements the interface.
var _ driving.CacheService = (*CacheService)(nil)

// CacheService exposes the durable index store for inspection and manual
// invalidation. Cached indexes have no TTL, so clearing one is the only
// way to pick up an upstream transcript change.
type CacheService struct {
	store driven.IndexStore
}

// NewCacheService creates a cache service over the given store.
func NewCacheService(store driven.IndexStore) *CacheService {
	return &CacheService{store: store}
}

// List returns a summary of every cached video index.
func (s *CacheService) List(ctx context.Context) ([]domain.IndexInfo, error) {
	return s.store.List(ctx)
}

// Clear removes the cached index for one video.
func (s *CacheService) Clear(ctx context.Context, videoID string) error {
	return s.store.Delete(ctx, videoID)
}

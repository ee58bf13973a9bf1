// Package memory provides an in-memory index store for tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
// The mutex gives it the same create-once semantics as the durable
// backend: the second concurrent Save for one video ID loses.
type IndexStore struct {
	mu      sync.RWMutex
	records map[string]domain.IndexRecord
}

// NewIndexStore creates a new in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{records: make(map[string]domain.IndexRecord)}
}

// Exists reports whether a record exists for the video.
func (s *IndexStore) Exists(_ context.Context, videoID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[videoID]
	return ok, nil
}

// Load retrieves the record for a video, or domain.ErrNotFound.
func (s *IndexStore) Load(_ context.Context, videoID string) (*domain.IndexRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[videoID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := rec
	out.Chunks = make([]domain.Chunk, len(rec.Chunks))
	copy(out.Chunks, rec.Chunks)
	return &out, nil
}

// Save persists a record, failing with domain.ErrAlreadyExists if one is
// present for the same video ID.
func (s *IndexStore) Save(_ context.Context, rec *domain.IndexRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.VideoID]; ok {
		return domain.ErrAlreadyExists
	}
	stored := *rec
	stored.Chunks = make([]domain.Chunk, len(rec.Chunks))
	copy(stored.Chunks, rec.Chunks)
	s.records[rec.VideoID] = stored
	return nil
}

// List returns a summary of every record, ordered by video ID.
func (s *IndexStore) List(_ context.Context) ([]domain.IndexInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]domain.IndexInfo, 0, len(s.records))
	for _, rec := range s.records {
		infos = append(infos, domain.IndexInfo{
			VideoID:        rec.VideoID,
			EmbeddingModel: rec.EmbeddingModel,
			Dimensions:     rec.Dimensions,
			ChunkCount:     len(rec.Chunks),
			CreatedAt:      rec.CreatedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].VideoID < infos[j].VideoID })
	return infos, nil
}

// Delete removes the record for a video, or domain.ErrNotFound.
func (s *IndexStore) Delete(_ context.Context, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[videoID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, videoID)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *IndexStore) Close() error {
	return nil
}

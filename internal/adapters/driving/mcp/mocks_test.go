package mcp

import (
	"context"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
)

// mockAssistantService returns canned answers and summaries.
type mockAssistantService struct {
	answer  *domain.Answer
	summary *domain.Summary
	err     error
}

func (m *mockAssistantService) Answer(_ context.Context, _, _ string) (*domain.Answer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockAssistantService) Summarize(_ context.Context, _ string) (*domain.Summary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

// mockCacheService serves a fixed cache listing.
type mockCacheService struct {
	infos []domain.IndexInfo
	err   error
}

func (m *mockCacheService) List(_ context.Context) ([]domain.IndexInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.infos, nil
}

func (m *mockCacheService) Clear(_ context.Context, _ string) error {
	return m.err
}

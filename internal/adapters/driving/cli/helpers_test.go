package cli

import (
	"context"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
)

// fakeAssistant returns canned results for command tests.
type fakeAssistant struct {
	answer  *domain.Answer
	summary *domain.Summary
	err     error
}

func (f *fakeAssistant) Answer(_ context.Context, _, _ string) (*domain.Answer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func (f *fakeAssistant) Summarize(_ context.Context, _ string) (*domain.Summary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

// fakeCache returns a canned cache listing.
type fakeCache struct {
	infos   []domain.IndexInfo
	err     error
	cleared []string
}

func (f *fakeCache) List(_ context.Context) ([]domain.IndexInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.infos, nil
}

func (f *fakeCache) Clear(_ context.Context, videoID string) error {
	if f.err != nil {
		return f.err
	}
	f.cleared = append(f.cleared, videoID)
	return nil
}

// fakeTranscripts answers the existence probe.
type fakeTranscripts struct {
	exists bool
}

func (f *fakeTranscripts) Fetch(_ context.Context, videoID string, _ []string) (*domain.Transcript, error) {
	return &domain.Transcript{VideoID: videoID, Language: "en", Text: "hello"}, nil
}

func (f *fakeTranscripts) Exists(_ context.Context, _ string) bool {
	return f.exists
}

// setupTestServices injects fakes into the package-level service slots and
// returns a cleanup that restores the previous state.
func setupTestServices(assistant *fakeAssistant, cache *fakeCache) func() {
	prevAssistant := assistantService
	prevCache := cacheService
	prevTranscripts := transcriptSource

	assistantService = assistant
	cacheService = cache
	transcriptSource = nil

	return func() {
		assistantService = prevAssistant
		cacheService = prevCache
		transcriptSource = prevTranscripts
	}
}

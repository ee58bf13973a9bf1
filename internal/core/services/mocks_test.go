package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
)

// mockTranscriptSource serves a fixed transcript and counts fetches.
type mockTranscriptSource struct {
	transcript *domain.Transcript
	err        error
	fetchCalls atomic.Int64
}

func (m *mockTranscriptSource) Fetch(_ context.Context, videoID string, _ []string) (*domain.Transcript, error) {
	m.fetchCalls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	t := *m.transcript
	t.VideoID = videoID
	return &t, nil
}

func (m *mockTranscriptSource) Exists(_ context.Context, _ string) bool {
	return true
}

// mockLLM routes completion calls on the prompt shape so one mock can
// serve the translate, extract, answer and summary stages. Every call
// is recorded for later inspection.
type mockLLM struct {
	generate func(prompt string, opts driven.GenerateOptions) (string, error)

	mu      sync.Mutex
	calls   atomic.Int64
	prompts []string
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.generate != nil {
		return m.generate(prompt, opts)
	}
	switch {
	case strings.HasPrefix(prompt, "Translate"):
		return "translated transcript text. more translated text. and a final sentence.", nil
	case strings.HasPrefix(prompt, "Given the following question"):
		return "extracted relevant part", nil
	case strings.HasPrefix(prompt, "You are a helpful assistant."):
		return "the answer", nil
	case strings.HasPrefix(prompt, "You are an expert summarizer."):
		return "the summary", nil
	default:
		return "", fmt.Errorf("mockLLM: unexpected prompt: %.40s", prompt)
	}
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// hashEmbedder produces deterministic unit vectors from text content, so
// identical text always lands on the same point.
type hashEmbedder struct {
	model string
	dims  int
}

func newHashEmbedder() *hashEmbedder {
	return &hashEmbedder{model: "mock-embedder", dims: 8}
}

func (e *hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, e.dims)
	for i, b := range []byte(text) {
		v[i%e.dims] += float32(b)
	}
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		norm = 1
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v, nil
}

func (e *hashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *hashEmbedder) Dimensions() int              { return e.dims }
func (e *hashEmbedder) ModelName() string            { return e.model }
func (e *hashEmbedder) Ping(_ context.Context) error { return nil }
func (e *hashEmbedder) Close() error                 { return nil }

// sentenceSplitter is a trivial splitter that cuts on sentence ends.
type sentenceSplitter struct{}

func (sentenceSplitter) Split(_ context.Context, videoID, text string) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for _, part := range strings.SplitAfter(text, ". ") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			ID:       uuid.NewString(),
			VideoID:  videoID,
			Content:  part,
			Position: len(chunks),
		})
	}
	return chunks, nil
}

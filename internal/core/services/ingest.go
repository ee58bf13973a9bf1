package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/logger"
)

// SupportedLanguages is the ordered caption track preference list:
// English first, then the additional spoken languages the pipeline
// accepts. The transcript source returns the first track it has.
var SupportedLanguages = []string{
	"en", "hi", "ta", "kn", "ml", "te", "bn", "mr", "gu", "ur", "pa", "ne", "si", "ko", "ja", "zh-Hans",
}

// IngestService builds the durable vector index for a video on a cache
// miss: fetch transcript, translate to English, chunk, embed, persist.
type IngestService struct {
	transcripts driven.TranscriptSource
	llm         driven.LLMService
	embedder    driven.EmbeddingService
	splitter    driven.Splitter
	store       driven.IndexStore
	languages   []string
}

// NewIngestService creates an ingestion service. All collaborators are
// required.
func NewIngestService(
	transcripts driven.TranscriptSource,
	llm driven.LLMService,
	embedder driven.EmbeddingService,
	splitter driven.Splitter,
	store driven.IndexStore,
) *IngestService {
	return &IngestService{
		transcripts: transcripts,
		llm:         llm,
		embedder:    embedder,
		splitter:    splitter,
		store:       store,
		languages:   SupportedLanguages,
	}
}

// SetLanguages overrides the caption track preference list. Empty input
// keeps the current list.
func (s *IngestService) SetLanguages(languages []string) {
	if len(languages) > 0 {
		s.languages = languages
	}
}

// Ingest runs the full build for one video and persists the result. The
// stages are strictly sequential: each consumes the previous stage's full
// output. If another request persisted the same video while this build was
// running, the freshly persisted record is loaded and returned instead;
// the store is never updated in place.
func (s *IngestService) Ingest(ctx context.Context, videoID string) (*domain.IndexRecord, error) {
	logger.Section("Ingestion")
	logger.Debug("building index for video %s", videoID)

	transcript, err := s.fetch(ctx, videoID)
	if err != nil {
		return nil, err
	}

	translated, err := s.translate(ctx, transcript)
	if err != nil {
		return nil, err
	}

	chunks, err := s.chunk(ctx, videoID, translated)
	if err != nil {
		return nil, err
	}

	if err := s.embed(ctx, chunks); err != nil {
		return nil, err
	}

	rec := &domain.IndexRecord{
		VideoID:        videoID,
		EmbeddingModel: s.embedder.ModelName(),
		Dimensions:     s.embedder.Dimensions(),
		Chunks:         chunks,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.Save(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost a first-build race; the winner's record is served.
			logger.Warn("index for %s persisted concurrently, reloading", videoID)
			return s.store.Load(ctx, videoID)
		}
		return nil, fmt.Errorf("persisting index for %s: %w", videoID, err)
	}

	logger.Info("persisted index for %s: %d passages, %d dims", videoID, len(chunks), rec.Dimensions)
	return rec, nil
}

func (s *IngestService) fetch(ctx context.Context, videoID string) (*domain.Transcript, error) {
	defer logger.Stage("Fetching transcript")()

	transcript, err := s.transcripts.Fetch(ctx, videoID, s.languages)
	if err != nil {
		return nil, fmt.Errorf("fetching transcript for %s: %w", videoID, err)
	}
	logger.Debug("selected %q caption track, %d chars", transcript.Language, len(transcript.Text))
	return transcript, nil
}

// translate issues one deterministic completion call converting the whole
// transcript to English. The transcript is sent as a single unit so the
// model keeps cross-sentence context while translating.
func (s *IngestService) translate(ctx context.Context, transcript *domain.Transcript) (string, error) {
	defer logger.Stage("Translating")()

	text, err := s.llm.Generate(ctx, renderTranslate(transcript.Text), driven.GenerateOptions{
		Temperature: translateTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("translating transcript: %w: %v", domain.ErrGenerationFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("translating transcript: %w: empty completion", domain.ErrGenerationFailed)
	}
	return text, nil
}

func (s *IngestService) chunk(ctx context.Context, videoID, text string) ([]domain.Chunk, error) {
	defer logger.Stage("Chunking")()

	chunks, err := s.splitter.Split(ctx, videoID, text)
	if err != nil {
		return nil, fmt.Errorf("splitting translated text: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("splitting translated text: %w: no passages produced", domain.ErrGenerationFailed)
	}
	logger.Debug("split into %d passages", len(chunks))
	return chunks, nil
}

// embed attaches an embedding to every chunk in one batched call.
func (s *IngestService) embed(ctx context.Context, chunks []domain.Chunk) error {
	defer logger.Stage("Embedding")()

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding passages: %w: %v", domain.ErrGenerationFailed, err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedding passages: %w: got %d vectors for %d passages",
			domain.ErrGenerationFailed, len(vectors), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}
	return nil
}

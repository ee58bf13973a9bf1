package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driving"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/logger"
)

// Ensure Assistant implements the interface.
var _ driving.AssistantService = (*Assistant)(nil)

// Assistant orchestrates the answer and summary pipelines: resolve the
// video, load or build its vector index, retrieve passages, and generate.
//
// The index handle is request-scoped: it is created at request entry and
// closed on exit, so peak memory is bounded by one index per in-flight
// request. Reuse across requests happens only through the durable store.
type Assistant struct {
	store      driven.IndexStore
	factory    driven.VectorIndexFactory
	embedder   driven.EmbeddingService
	llm        driven.LLMService
	ingest     *IngestService
	retriever  *Retriever
	compressor *CompressionExtractor
}

// NewAssistant creates the assistant service.
func NewAssistant(
	store driven.IndexStore,
	factory driven.VectorIndexFactory,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	ingest *IngestService,
	retriever *Retriever,
	compressor *CompressionExtractor,
) *Assistant {
	return &Assistant{
		store:      store,
		factory:    factory,
		embedder:   embedder,
		llm:        llm,
		ingest:     ingest,
		retriever:  retriever,
		compressor: compressor,
	}
}

// Answer answers a question about the video behind url, grounded in the
// compressed retrieval context.
func (a *Assistant) Answer(ctx context.Context, url, question string) (*domain.Answer, error) {
	videoID, err := ResolveVideoID(url)
	if err != nil {
		return nil, err
	}

	index, fromCache, err := a.openIndex(ctx, videoID)
	if err != nil {
		return nil, err
	}
	defer index.Close()

	hits, err := a.retriever.Retrieve(ctx, index, question)
	if err != nil {
		return nil, err
	}

	compressed, err := a.compressor.Compress(ctx, question, hits)
	if err != nil {
		return nil, err
	}

	defer logger.Stage("Generating answer")()
	text, err := a.llm.Generate(ctx, renderAnswer(compressed, question), driven.GenerateOptions{
		Temperature: answerTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w: %v", domain.ErrGenerationFailed, err)
	}

	return &domain.Answer{
		VideoID:   videoID,
		Question:  question,
		Text:      strings.TrimSpace(text),
		FromCache: fromCache,
	}, nil
}

// Summarize produces a summary of the video behind url from the top
// retrieved passages for the canonical summary query. No compression is
// applied: the full top-K set is used verbatim, in retrieval order.
func (a *Assistant) Summarize(ctx context.Context, url string) (*domain.Summary, error) {
	videoID, err := ResolveVideoID(url)
	if err != nil {
		return nil, err
	}

	index, fromCache, err := a.openIndex(ctx, videoID)
	if err != nil {
		return nil, err
	}
	defer index.Close()

	hits, err := a.retriever.Retrieve(ctx, index, SummaryQuery)
	if err != nil {
		return nil, err
	}

	passages := make([]string, len(hits))
	for i := range hits {
		passages[i] = hits[i].Chunk.Content
	}

	defer logger.Stage("Generating summary")()
	text, err := a.llm.Generate(ctx, renderSummary(strings.Join(passages, "\n\n")), driven.GenerateOptions{
		Temperature: summaryTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generating summary: %w: %v", domain.ErrGenerationFailed, err)
	}

	return &domain.Summary{
		VideoID:   videoID,
		Text:      strings.TrimSpace(text),
		FromCache: fromCache,
	}, nil
}

// openIndex loads the persisted index for videoID, or builds and persists
// it on a miss. The returned boolean reports a cache hit. A persisted
// record built by a different embedding model is rejected rather than
// silently queried.
func (a *Assistant) openIndex(ctx context.Context, videoID string) (driven.VectorIndex, bool, error) {
	rec, err := a.store.Load(ctx, videoID)
	switch {
	case err == nil:
		logger.Info("cache hit: loading index for video %s", videoID)
		if rec.EmbeddingModel != a.embedder.ModelName() {
			return nil, false, fmt.Errorf("index for %s was built with %q, configured model is %q: %w",
				videoID, rec.EmbeddingModel, a.embedder.ModelName(), domain.ErrModelMismatch)
		}
		index, err := a.factory.FromRecord(rec)
		if err != nil {
			return nil, false, fmt.Errorf("rebuilding index for %s: %w", videoID, err)
		}
		return index, true, nil

	case errors.Is(err, domain.ErrNotFound):
		logger.Info("cache miss: creating index for video %s", videoID)
		rec, err := a.ingest.Ingest(ctx, videoID)
		if err != nil {
			return nil, false, err
		}
		index, err := a.factory.FromRecord(rec)
		if err != nil {
			return nil, false, fmt.Errorf("building index for %s: %w", videoID, err)
		}
		return index, false, nil

	default:
		return nil, false, fmt.Errorf("loading index for %s: %w", videoID, err)
	}
}

package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/logger"
)

// DefaultCompressionWorkers bounds the concurrent extraction calls.
const DefaultCompressionWorkers = 4

// CompressionExtractor narrows retrieved passages to the parts relevant
// to a question before answer generation. Each passage costs one
// completion call; the calls are independent, so they run on a bounded
// worker pool, and the kept extractions are reassembled in the original
// retrieval order.
type CompressionExtractor struct {
	llm     driven.LLMService
	workers int
}

// NewCompressionExtractor creates an extractor. A non-positive workers
// count falls back to DefaultCompressionWorkers.
func NewCompressionExtractor(llm driven.LLMService, workers int) *CompressionExtractor {
	if workers <= 0 {
		workers = DefaultCompressionWorkers
	}
	return &CompressionExtractor{llm: llm, workers: workers}
}

// Compress extracts the question-relevant parts of every hit and joins
// the non-empty extractions, in retrieval order, with a blank line.
func (c *CompressionExtractor) Compress(ctx context.Context, question string, hits []domain.PassageHit) (string, error) {
	defer logger.Stage("Compressing context")()

	if len(hits) == 0 {
		return "", nil
	}

	extracted := make([]string, len(hits))
	errs := make([]error, len(hits))

	jobs := make(chan int, len(hits))
	for i := range hits {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	workers := c.workers
	if workers > len(hits) {
		workers = len(hits)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				extracted[i], errs[i] = c.extract(ctx, question, hits[i].Chunk.Content)
			}
		}()
	}
	wg.Wait()

	kept := make([]string, 0, len(hits))
	for i := range hits {
		if errs[i] != nil {
			return "", errs[i]
		}
		if extracted[i] != "" {
			kept = append(kept, extracted[i])
		}
	}

	logger.Debug("kept %d of %d passages after compression", len(kept), len(hits))
	return strings.Join(kept, "\n\n"), nil
}

// extract issues one completion call for a single passage. An empty
// string means the passage held nothing relevant.
func (c *CompressionExtractor) extract(ctx context.Context, question, passage string) (string, error) {
	out, err := c.llm.Generate(ctx, renderExtract(question, passage), driven.GenerateOptions{
		Temperature: answerTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("extracting passage: %w: %v", domain.ErrGenerationFailed, err)
	}

	out = strings.TrimSpace(out)
	if out == "" || strings.EqualFold(out, notRelevant) {
		return "", nil
	}
	return out, nil
}

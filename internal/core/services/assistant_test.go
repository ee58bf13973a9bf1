package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/adapters/driven/index/flat"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/adapters/driven/storage/memory"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
)

const testURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

type assistantFixture struct {
	assistant   *Assistant
	store       *memory.IndexStore
	transcripts *mockTranscriptSource
	llm         *mockLLM
	embedder    *hashEmbedder
}

func newAssistantFixture() *assistantFixture {
	store := memory.NewIndexStore()
	embedder := newHashEmbedder()
	llm := &mockLLM{}
	transcripts := &mockTranscriptSource{
		transcript: &domain.Transcript{Language: "hi", Text: "original transcript"},
	}
	factory := flat.NewFactory()

	ingest := NewIngestService(transcripts, llm, embedder, sentenceSplitter{}, store)
	retriever := NewRetriever(embedder, TopK)
	compressor := NewCompressionExtractor(llm, 2)

	return &assistantFixture{
		assistant:   NewAssistant(store, factory, embedder, llm, ingest, retriever, compressor),
		store:       store,
		transcripts: transcripts,
		llm:         llm,
		embedder:    embedder,
	}
}

func TestAnswer_BuildsIndexOnMiss(t *testing.T) {
	f := newAssistantFixture()

	answer, err := f.assistant.Answer(context.Background(), testURL, "what is this about?")
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", answer.VideoID)
	assert.Equal(t, "what is this about?", answer.Question)
	assert.Equal(t, "the answer", answer.Text)
	assert.False(t, answer.FromCache)
	assert.Equal(t, int64(1), f.transcripts.fetchCalls.Load())

	// The build persisted a record keyed by the video ID.
	rec, err := f.store.Load(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "mock-embedder", rec.EmbeddingModel)
	assert.Equal(t, f.embedder.Dimensions(), rec.Dimensions)
	assert.NotEmpty(t, rec.Chunks)
	for i, chunk := range rec.Chunks {
		assert.Equal(t, i, chunk.Position)
		assert.Len(t, chunk.Embedding, f.embedder.Dimensions())
	}
}

func TestAnswer_SecondCallHitsCache(t *testing.T) {
	f := newAssistantFixture()
	ctx := context.Background()

	first, err := f.assistant.Answer(ctx, testURL, "first question")
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := f.assistant.Answer(ctx, testURL, "second question")
	require.NoError(t, err)
	assert.True(t, second.FromCache)

	// The whole build pipeline ran exactly once.
	assert.Equal(t, int64(1), f.transcripts.fetchCalls.Load())
}

func TestAnswer_InvalidURL(t *testing.T) {
	f := newAssistantFixture()

	_, err := f.assistant.Answer(context.Background(), "https://example.com/page", "question")
	assert.ErrorIs(t, err, domain.ErrInvalidURL)
	assert.Equal(t, int64(0), f.transcripts.fetchCalls.Load())
}

func TestAnswer_ModelMismatch(t *testing.T) {
	f := newAssistantFixture()
	ctx := context.Background()

	// Record persisted by a different embedding model.
	require.NoError(t, f.store.Save(ctx, &domain.IndexRecord{
		VideoID:        "dQw4w9WgXcQ",
		EmbeddingModel: "some-other-model",
		Dimensions:     4,
		Chunks:         []domain.Chunk{{ID: "c1", Position: 0, Content: "x", Embedding: []float32{1, 0, 0, 0}}},
		CreatedAt:      time.Now(),
	}))

	_, err := f.assistant.Answer(ctx, testURL, "question")
	assert.ErrorIs(t, err, domain.ErrModelMismatch)
}

func TestAnswer_TranscriptErrorPropagates(t *testing.T) {
	f := newAssistantFixture()
	f.transcripts.err = domain.ErrNoTranscript

	_, err := f.assistant.Answer(context.Background(), testURL, "question")
	assert.ErrorIs(t, err, domain.ErrNoTranscript)
}

func TestAnswer_UsesCompressedContext(t *testing.T) {
	f := newAssistantFixture()

	_, err := f.assistant.Answer(context.Background(), testURL, "question")
	require.NoError(t, err)

	// The final prompt carries the extraction output, not raw passages.
	last := f.llm.prompts[len(f.llm.prompts)-1]
	assert.Contains(t, last, "extracted relevant part")
	assert.Contains(t, last, "Question: question")
}

func TestSummarize(t *testing.T) {
	f := newAssistantFixture()

	summary, err := f.assistant.Summarize(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", summary.VideoID)
	assert.Equal(t, "the summary", summary.Text)
	assert.False(t, summary.FromCache)

	// Summarization skips compression: no extraction prompts were issued,
	// and the summary prompt carries the passages verbatim.
	for _, p := range f.llm.prompts {
		assert.NotContains(t, p, "extract only the parts")
	}
	last := f.llm.prompts[len(f.llm.prompts)-1]
	assert.Contains(t, last, "translated transcript text")
}

func TestSummarize_ThenAnswerSharesIndex(t *testing.T) {
	f := newAssistantFixture()
	ctx := context.Background()

	summary, err := f.assistant.Summarize(ctx, testURL)
	require.NoError(t, err)
	assert.False(t, summary.FromCache)

	answer, err := f.assistant.Answer(ctx, testURL, "question")
	require.NoError(t, err)
	assert.True(t, answer.FromCache)
	assert.Equal(t, int64(1), f.transcripts.fetchCalls.Load())
}

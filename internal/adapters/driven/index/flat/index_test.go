package flat

import (
	"context"
	"testing"
	"time"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
)

func chunk(pos int, embedding []float32) domain.Chunk {
	return domain.Chunk{
		ID:        "chunk-" + string(rune('a'+pos)),
		VideoID:   "AAAAAAAAAAA",
		Content:   "passage",
		Position:  pos,
		Embedding: embedding,
	}
}

func TestNew_InvalidDimensions(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Error("expected error for zero dimensions")
	}
	if _, err := New(-3); err == nil {
		t.Error("expected error for negative dimensions")
	}
}

func TestAdd_DimensionMismatch(t *testing.T) {
	ix, err := New(3)
	if err != nil {
		t.Fatal(err)
	}
	err = ix.Add(context.Background(), []domain.Chunk{chunk(0, []float32{1, 0})})
	if err == nil {
		t.Error("expected error for mismatched embedding size")
	}
	if ix.Size() != 0 {
		t.Errorf("failed Add must not grow the index, size %d", ix.Size())
	}
}

func TestSearch_Ranking(t *testing.T) {
	ix, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	err = ix.Add(ctx, []domain.Chunk{
		chunk(0, []float32{1, 0}),
		chunk(1, []float32{0, 1}),
		chunk(2, []float32{0.7, 0.7}),
	})
	if err != nil {
		t.Fatal(err)
	}

	hits, err := ix.Search(ctx, []float32{1, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Chunk.Position != 0 {
		t.Errorf("expected best hit to be chunk 0, got %d", hits[0].Chunk.Position)
	}
	if hits[1].Chunk.Position != 2 {
		t.Errorf("expected second hit to be chunk 2, got %d", hits[1].Chunk.Position)
	}
	if hits[0].Score < hits[1].Score {
		t.Error("hits not ranked by score")
	}
}

// TestSearch_KClamped verifies search returns min(k, size) hits.
func TestSearch_KClamped(t *testing.T) {
	ix, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	chunks := make([]domain.Chunk, 5)
	for i := range chunks {
		chunks[i] = chunk(i, []float32{float32(i), 1})
	}
	if err := ix.Add(ctx, chunks); err != nil {
		t.Fatal(err)
	}

	hits, err := ix.Search(ctx, []float32{1, 1}, 15)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 5 {
		t.Errorf("expected all 5 hits when k exceeds size, got %d", len(hits))
	}

	hits, err = ix.Search(ctx, []float32{1, 1}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 3 {
		t.Errorf("expected 3 hits, got %d", len(hits))
	}
}

func TestSearch_QueryDimensionMismatch(t *testing.T) {
	ix, err := New(3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ix.Search(context.Background(), []float32{1, 0}, 5); err == nil {
		t.Error("expected error for mismatched query size")
	}
}

func TestFactory_FromRecord(t *testing.T) {
	rec := &domain.IndexRecord{
		VideoID:        "AAAAAAAAAAA",
		EmbeddingModel: "test-model",
		Dimensions:     2,
		Chunks: []domain.Chunk{
			chunk(0, []float32{1, 0}),
			chunk(1, []float32{0, 1}),
		},
		CreatedAt: time.Now().UTC(),
	}

	ix, err := NewFactory().FromRecord(rec)
	if err != nil {
		t.Fatal(err)
	}
	if ix.Size() != 2 {
		t.Errorf("expected 2 passages, got %d", ix.Size())
	}
	if ix.Dimensions() != 2 {
		t.Errorf("expected dimensions 2, got %d", ix.Dimensions())
	}

	hits, err := ix.Search(context.Background(), []float32{0, 1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Chunk.Position != 1 {
		t.Errorf("unexpected hits from rebuilt index: %+v", hits)
	}
}

func TestClose_ReleasesPassages(t *testing.T) {
	ix, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	if err := ix.Add(context.Background(), []domain.Chunk{chunk(0, []float32{1, 0})}); err != nil {
		t.Fatal(err)
	}
	if err := ix.Close(); err != nil {
		t.Fatal(err)
	}
	if ix.Size() != 0 {
		t.Errorf("expected empty index after Close, size %d", ix.Size())
	}
}

func TestInnerProduct(t *testing.T) {
	if got := InnerProduct([]float32{1, 2}, []float32{3, 4}); got != 11 {
		t.Errorf("expected 11, got %v", got)
	}
	if got := InnerProduct([]float32{1}, []float32{1, 2}); got != 0 {
		t.Errorf("expected 0 for length mismatch, got %v", got)
	}
	if got := InnerProduct(nil, nil); got != 0 {
		t.Errorf("expected 0 for empty vectors, got %v", got)
	}
}

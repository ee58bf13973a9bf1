package chunker

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, p.overlap)
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		p := New(WithChunkSize(500))
		if p.chunkSize != 500 {
			t.Errorf("expected chunkSize 500, got %d", p.chunkSize)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		p := New(WithChunkSize(100), WithOverlap(150))
		if p.overlap >= p.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithChunkSize(0), WithOverlap(-1))
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", p.overlap)
		}
	})
}

func TestSplit_EmptyText(t *testing.T) {
	p := New()
	chunks, err := p.Split(context.Background(), "AAAAAAAAAAA", "   \n\n ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for blank content, got %d", len(chunks))
	}
}

func TestSplit_SmallText(t *testing.T) {
	p := New()
	chunks, err := p.Split(context.Background(), "AAAAAAAAAAA", "a short passage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "a short passage" {
		t.Errorf("content altered: %q", chunks[0].Content)
	}
	if chunks[0].VideoID != "AAAAAAAAAAA" {
		t.Errorf("video ID not propagated: %q", chunks[0].VideoID)
	}
	if chunks[0].Position != 0 {
		t.Errorf("expected position 0, got %d", chunks[0].Position)
	}
}

func TestSplit_SizeAndOrder(t *testing.T) {
	p := New(WithChunkSize(200), WithOverlap(30))
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 40)

	chunks, err := p.Split(context.Background(), "AAAAAAAAAAA", text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, c := range chunks {
		if len(c.Content) > 200 {
			t.Errorf("chunk %d exceeds size limit: %d chars", i, len(c.Content))
		}
		if strings.TrimSpace(c.Content) == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if c.Position != i {
			t.Errorf("chunk %d has position %d", i, c.Position)
		}
	}
}

// TestSplit_Coverage verifies that the chunks jointly cover the whole
// input: every character of the text appears in some chunk, in order.
func TestSplit_Coverage(t *testing.T) {
	p := New(WithChunkSize(200), WithOverlap(30))
	// Numbered sentences so every chunk occurs at exactly one position.
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&sb, "sentence %03d about subject %03d. ", i, i)
	}
	text := sb.String()

	chunks, err := p.Split(context.Background(), "AAAAAAAAAAA", text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prevEnd := 0
	searchFrom := 0
	for i, c := range chunks {
		idx := strings.Index(text[searchFrom:], c.Content)
		if idx < 0 {
			t.Fatalf("chunk %d not found in remaining text", i)
		}
		start := searchFrom + idx
		// Each chunk must start at or before the end of the previous
		// one, leaving no uncovered gap.
		if i > 0 && start > prevEnd {
			t.Errorf("gap of %d chars before chunk %d", start-prevEnd, i)
		}
		prevEnd = start + len(c.Content)
		searchFrom = start + 1
	}
	if prevEnd < len(text) && strings.TrimSpace(text[prevEnd:]) != "" {
		t.Errorf("chunks end %d chars short of input", len(text)-prevEnd)
	}
}

// TestSplit_Overlap verifies adjacent chunks share up to overlap chars.
func TestSplit_Overlap(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(30))
	// Non-repeating words so that textual overlap between chunks
	// reflects the carried overlap, not accidental periodicity.
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&sb, "word%03d ", i)
	}
	text := sb.String()

	chunks, err := p.Split(context.Background(), "AAAAAAAAAAA", text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1].Content, chunks[i].Content
		shared := 0
		for n := min(len(prev), len(cur)); n > 0; n-- {
			if strings.HasSuffix(prev, cur[:n]) {
				shared = n
				break
			}
		}
		if shared > 30 {
			t.Errorf("chunks %d/%d overlap by %d chars, want at most 30", i-1, i, shared)
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	p := New(WithChunkSize(200), WithOverlap(30))
	text := strings.Repeat("deterministic splitting of the very same input text. ", 25)

	first, err := p.Split(context.Background(), "AAAAAAAAAAA", text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Split(context.Background(), "AAAAAAAAAAA", text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Content != second[i].Content {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

// TestSplit_NoSeparators covers separator-free input: fixed-width cuts
// must keep every chunk within the size limit.
func TestSplit_NoSeparators(t *testing.T) {
	p := New(WithChunkSize(200), WithOverlap(30))
	text := strings.Repeat("x", 1000)

	chunks, err := p.Split(context.Background(), "AAAAAAAAAAA", text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected chunks for separator-free text")
	}
	for i, c := range chunks {
		if len(c.Content) > 200 {
			t.Errorf("chunk %d exceeds size limit: %d chars", i, len(c.Content))
		}
	}
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	p := New(WithChunkSize(80), WithOverlap(10))
	text := "first paragraph with some words in it.\n\nsecond paragraph with more words.\n\nthird one."

	chunks, err := p.Split(context.Background(), "AAAAAAAAAAA", text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if !strings.HasPrefix(chunks[0].Content, "first paragraph") {
		t.Errorf("unexpected first chunk: %q", chunks[0].Content)
	}
}

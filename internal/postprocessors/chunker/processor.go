// Package chunker provides a recursive character text splitter.
//
// Text is split on the coarsest boundary available (paragraph, then
// sentence, then word) before falling back to fixed-width character cuts,
// and the resulting segments are packed into chunks of at most the target
// size with a bounded overlap carried between adjacent chunks.
package chunker

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Splitter = (*Processor)(nil)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 200

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 30

// separators are tried in order, coarsest boundary first. The empty string
// means fixed-width character cuts.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Processor splits text into bounded-size overlapping chunks.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Split divides text into ordered chunks for the given video. Splitting is
// deterministic for identical input and parameters; chunk IDs are the only
// non-deterministic part of the output.
func (p *Processor) Split(_ context.Context, videoID, text string) ([]domain.Chunk, error) {
	if strings.TrimSpace(text) == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	segments := p.split(text, separators)
	contents := p.pack(segments)

	chunks := make([]domain.Chunk, 0, len(contents))
	for i, content := range contents {
		chunks = append(chunks, domain.Chunk{
			ID:       uuid.New().String(),
			VideoID:  videoID,
			Content:  content,
			Position: i,
		})
	}

	return chunks, nil
}

// split recursively divides text into segments no longer than chunkSize,
// using the coarsest separator present in the text and descending to finer
// ones for segments that are still too long. Separators stay attached to
// the preceding segment so that concatenating all segments reproduces the
// input.
func (p *Processor) split(text string, seps []string) []string {
	if len(text) <= p.chunkSize {
		return []string{text}
	}

	sep := ""
	rest := []string{}
	for i, s := range seps {
		if s == "" {
			break
		}
		if strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}

	var parts []string
	if sep == "" {
		parts = p.cut(text)
	} else {
		parts = strings.SplitAfter(text, sep)
	}

	var segments []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		if len(part) <= p.chunkSize {
			segments = append(segments, part)
			continue
		}
		segments = append(segments, p.split(part, rest)...)
	}
	return segments
}

// cut slices text into fixed-width pieces when no separator applies. The
// piece width is the overlap size so that packing can still carry overlap
// between adjacent chunks of separator-free text.
func (p *Processor) cut(text string) []string {
	width := p.overlap
	if width <= 0 {
		width = p.chunkSize
	}
	pieces := make([]string, 0, len(text)/width+1)
	for len(text) > width {
		pieces = append(pieces, text[:width])
		text = text[width:]
	}
	if text != "" {
		pieces = append(pieces, text)
	}
	return pieces
}

// pack merges segments into chunks of at most chunkSize characters,
// carrying up to overlap trailing characters of each emitted chunk into
// the next one.
func (p *Processor) pack(segments []string) []string {
	var chunks []string
	var window []string
	total := 0

	emit := func() {
		chunk := strings.Join(window, "")
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
	}

	for _, seg := range segments {
		if total+len(seg) > p.chunkSize && total > 0 {
			emit()
			// Drop leading segments until what remains fits within the
			// overlap budget and leaves room for the incoming segment.
			for total > p.overlap || (total+len(seg) > p.chunkSize && total > 0) {
				total -= len(window[0])
				window = window[1:]
			}
		}
		window = append(window, seg)
		total += len(seg)
	}
	if total > 0 {
		emit()
	}

	return chunks
}

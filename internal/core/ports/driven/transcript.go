package driven

import (
	"context"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
)

// TranscriptSource retrieves spoken-language transcripts for videos.
//
// Implementations talk to the upstream caption source directly; the core
// never sees caption formats, only flattened text.
type TranscriptSource interface {
	// Fetch retrieves the transcript for a video, requesting caption
	// tracks in the order given by languages and returning the first
	// track the source has. It fails with domain.ErrNoTranscript when
	// captions are disabled or absent for all requested languages, and
	// with domain.ErrFetchFailed on any other retrieval failure.
	Fetch(ctx context.Context, videoID string, languages []string) (*domain.Transcript, error)

	// Exists reports whether the video behind the URL is publicly
	// accessible. It is a cheap probe used by driving adapters before
	// the pipeline is invoked; it never returns an error.
	Exists(ctx context.Context, url string) bool
}

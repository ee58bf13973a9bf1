package cli

import (
	"errors"
	"fmt"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
)

// humanize converts pipeline errors into messages a user can act on.
// Unknown errors pass through unchanged.
func humanize(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		return errors.New("that doesn't look like a YouTube URL: expected something like https://www.youtube.com/watch?v=VIDEOID or https://youtu.be/VIDEOID")
	case errors.Is(err, domain.ErrVideoUnavailable):
		return errors.New("the video is unavailable: it may be private, deleted, or region-locked")
	case errors.Is(err, domain.ErrNoTranscript):
		return errors.New("the video has no usable captions in a supported language")
	case errors.Is(err, domain.ErrFetchFailed):
		return fmt.Errorf("could not reach YouTube: %w", err)
	case errors.Is(err, domain.ErrModelMismatch):
		return fmt.Errorf("%w\nrun 'ytassist cache clear <video-id>' to rebuild with the current model", err)
	case errors.Is(err, domain.ErrGenerationFailed):
		return fmt.Errorf("the language model request failed: %w", err)
	default:
		return err
	}
}

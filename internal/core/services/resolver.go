// Package services implements the core indexing and retrieval pipeline:
// video ID resolution, transcript ingestion, passage retrieval, contextual
// compression, and answer/summary generation.
package services

import (
	"regexp"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
)

// The two recognized URL shapes, tried in order: any query-parameter or
// path-segment form carrying an 11-character token, then the shortened
// youtu.be form. The capture is a prefix take: an overlong token yields
// its first 11 characters rather than no match.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
}

// ResolveVideoID extracts the canonical 11-character video identifier from
// a URL. It applies the pattern rules in order and returns the first
// captured token, or domain.ErrInvalidURL when neither rule matches.
// No network access.
func ResolveVideoID(url string) (string, error) {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}
	return "", domain.ErrInvalidURL
}

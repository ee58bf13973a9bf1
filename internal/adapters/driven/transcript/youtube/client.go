// Package youtube provides a transcript source backed by the public
// YouTube watch page. It scrapes ytInitialPlayerResponse for the caption
// track list, picks a track by language preference, and parses the
// timedtext XML. No API key is required.
package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.TranscriptSource = (*Client)(nil)

// Default configuration values.
const (
	DefaultWatchBaseURL  = "https://www.youtube.com"
	DefaultOEmbedBaseURL = "https://www.youtube.com/oembed"
	DefaultTimeout       = 30 * time.Second
	DefaultExistsTimeout = 5 * time.Second

	// watchPageLimit caps how much of the watch page is read. The player
	// response sits well within the first few megabytes.
	watchPageLimit = 6 * 1024 * 1024

	userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:132.0) Gecko/20100101 Firefox/132.0"
)

// Config holds configuration for the YouTube transcript client.
type Config struct {
	// WatchBaseURL is the base URL for watch pages (default: https://www.youtube.com).
	// Overridable for testing.
	WatchBaseURL string

	// OEmbedBaseURL is the oEmbed endpoint used by Exists (default:
	// https://www.youtube.com/oembed).
	OEmbedBaseURL string

	// Timeout is the request timeout for transcript fetches (default: 30s).
	Timeout time.Duration
}

// Client fetches transcripts by scraping the watch page.
type Client struct {
	client        *http.Client
	watchBaseURL  string
	oembedBaseURL string
}

// NewClient creates a new YouTube transcript client.
func NewClient(cfg Config) *Client {
	if cfg.WatchBaseURL == "" {
		cfg.WatchBaseURL = DefaultWatchBaseURL
	}
	if cfg.OEmbedBaseURL == "" {
		cfg.OEmbedBaseURL = DefaultOEmbedBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		watchBaseURL:  cfg.WatchBaseURL,
		oembedBaseURL: cfg.OEmbedBaseURL,
	}
}

// playerResponse is the slice of ytInitialPlayerResponse we care about.
type playerResponse struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

// captionTrack is one entry in the watch page's caption track list.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated
}

// timedText is the timedtext XML caption document.
type timedText struct {
	XMLName xml.Name       `xml:"transcript"`
	Lines   []timedTextCue `xml:"text"`
}

type timedTextCue struct {
	Text string `xml:",chardata"`
}

// Fetch retrieves the transcript for a video, trying the caption tracks
// in the order of the given language preference list. Manually uploaded
// tracks are preferred over auto-generated ones for the same language.
func (c *Client) Fetch(ctx context.Context, videoID string, languages []string) (*domain.Transcript, error) {
	tracks, err := c.listCaptionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, ok := pickTrack(tracks, languages)
	if !ok {
		return nil, fmt.Errorf("video %s has no caption track in %v: %w",
			videoID, languages, domain.ErrNoTranscript)
	}

	text, err := c.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("video %s: caption track %s is empty: %w",
			videoID, track.LanguageCode, domain.ErrNoTranscript)
	}

	return &domain.Transcript{
		VideoID:  videoID,
		Language: track.LanguageCode,
		Text:     text,
	}, nil
}

// Exists probes the oEmbed endpoint to check the video is public.
// Network failures are reported as non-existence; the caller only uses
// this as a fast pre-flight check.
func (c *Client) Exists(ctx context.Context, videoURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, DefaultExistsTimeout)
	defer cancel()

	probeURL := c.oembedBaseURL + "?format=json&url=" + url.QueryEscape(videoURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, http.NoBody)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// listCaptionTracks scrapes the watch page for the caption track list.
func (c *Client) listCaptionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	watchURL := c.watchBaseURL + "/watch?v=" + url.QueryEscape(videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create watch request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page for %s: %w: %v", videoID, domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page for %s returned status %d: %w",
			videoID, resp.StatusCode, domain.ErrFetchFailed)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, watchPageLimit))
	if err != nil {
		return nil, fmt.Errorf("read watch page for %s: %w: %v", videoID, domain.ErrFetchFailed, err)
	}

	player, err := extractPlayerResponse(body)
	if err != nil {
		return nil, fmt.Errorf("video %s: %w: %v", videoID, domain.ErrVideoUnavailable, err)
	}

	if player.PlayabilityStatus != nil && player.PlayabilityStatus.Status != "" &&
		player.PlayabilityStatus.Status != "OK" {
		return nil, fmt.Errorf("video %s is %s (%s): %w", videoID,
			player.PlayabilityStatus.Status, player.PlayabilityStatus.Reason,
			domain.ErrVideoUnavailable)
	}

	if player.Captions == nil || len(player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks) == 0 {
		return nil, fmt.Errorf("video %s has no captions: %w", videoID, domain.ErrNoTranscript)
	}

	return player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, nil
}

// fetchTimedText fetches and flattens a timedtext XML caption document.
func (c *Client) fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create timedtext request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timedtext returned status %d: %w", resp.StatusCode, domain.ErrFetchFailed)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read timedtext: %w: %v", domain.ErrFetchFailed, err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w: %v", domain.ErrFetchFailed, err)
	}

	var sb strings.Builder
	for _, cue := range tt.Lines {
		// Cue text is HTML-escaped inside the XML, sometimes twice.
		text := strings.TrimSpace(html.UnescapeString(html.UnescapeString(cue.Text)))
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// pickTrack selects a caption track: a manual track in the first matching
// preferred language wins, then an auto-generated one, in list order.
func pickTrack(tracks []captionTrack, languages []string) (captionTrack, bool) {
	for _, lang := range languages {
		for _, t := range tracks {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	return captionTrack{}, false
}

// playerResponseMarker marks the start of the player response JSON in
// the watch page HTML.
const playerResponseMarker = "ytInitialPlayerResponse = "

// extractPlayerResponse locates the ytInitialPlayerResponse object in
// the watch page and decodes it. The object is not newline-terminated,
// so the closing brace is found by brace counting with string awareness.
func extractPlayerResponse(page []byte) (*playerResponse, error) {
	idx := strings.Index(string(page), playerResponseMarker)
	if idx < 0 {
		return nil, fmt.Errorf("ytInitialPlayerResponse not found in watch page")
	}

	raw := extractJSONObject(page[idx+len(playerResponseMarker):])
	if raw == nil {
		return nil, fmt.Errorf("malformed ytInitialPlayerResponse")
	}

	var player playerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &player, nil
}

// extractJSONObject returns the first balanced JSON object at the start
// of data, or nil if none is found.
func extractJSONObject(data []byte) []byte {
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	depth := 0
	inString := false
	escaped := false
	for i, b := range data {
		if escaped {
			escaped = false
			continue
		}
		switch b {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return data[:i+1]
				}
			}
		}
	}
	return nil
}

package domain

// VideoIDLength is the length of a canonical YouTube video identifier.
const VideoIDLength = 11

// Transcript is the raw spoken-language text of one video, together with
// the caption track the transcript source actually selected from the
// requested preference list.
//
// Transcripts are ephemeral: they exist only while a video is being
// ingested and are never persisted directly.
type Transcript struct {
	// VideoID is the canonical 11-character video identifier.
	VideoID string

	// Language is the code of the caption track that was selected
	// (e.g. "en", "hi", "ja").
	Language string

	// Text is the full transcript text in the source language.
	Text string
}

// Package domain contains the core business entities for the YouTube
// assistant: videos, transcripts, passages, persisted vector indexes, and
// the typed errors the pipeline reports.
//
// This package has no dependencies outside the standard library. All other
// packages may import it; it imports nothing of theirs.
package domain

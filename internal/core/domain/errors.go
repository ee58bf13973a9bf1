package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidURL indicates no video identifier could be extracted
	// from the given URL.
	ErrInvalidURL = errors.New("invalid video URL")

	// ErrVideoUnavailable indicates the video does not exist or is not
	// publicly accessible.
	ErrVideoUnavailable = errors.New("video unavailable")

	// ErrNoTranscript indicates captions are disabled or no transcript
	// exists for any of the requested languages.
	ErrNoTranscript = errors.New("no transcript available")

	// ErrFetchFailed indicates transcript retrieval failed for a reason
	// other than the transcript being absent (network, malformed response).
	ErrFetchFailed = errors.New("transcript fetch failed")

	// ErrGenerationFailed indicates a completion or embedding service
	// call failed.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrModelMismatch indicates a persisted index was built with a
	// different embedding model than the one configured. Querying it
	// would silently return garbage, so the load is rejected.
	ErrModelMismatch = errors.New("embedding model mismatch")
)

package domain

// Answer is the result of a question against one video.
type Answer struct {
	// VideoID is the resolved video identifier.
	VideoID string

	// Question is the question as asked, unmodified.
	Question string

	// Text is the generated answer.
	Text string

	// FromCache reports whether the vector index was loaded from the
	// durable store rather than built for this request.
	FromCache bool
}

// Summary is the result of summarizing one video.
type Summary struct {
	// VideoID is the resolved video identifier.
	VideoID string

	// Text is the generated summary.
	Text string

	// FromCache reports whether the vector index was loaded from the
	// durable store rather than built for this request.
	FromCache bool
}

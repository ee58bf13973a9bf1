package domain

import "time"

// Chunk is one ordered passage of translated transcript text. Chunks are
// the unit of embedding and retrieval. They are produced once per video
// build and never mutated afterwards.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// VideoID links the chunk to its parent video.
	VideoID string

	// Content is the passage text in English.
	Content string

	// Position is the splitter-assigned ordinal within the video.
	Position int

	// Embedding is the fixed-dimension vector for the passage.
	Embedding []float32
}

// IndexRecord is the durable unit of the vector index cache: every chunk
// and embedding for one video, plus the identity of the embedding model
// that produced them. At most one record exists per VideoID; records are
// written exactly once and only ever reloaded afterwards.
type IndexRecord struct {
	// VideoID is the cache key.
	VideoID string

	// EmbeddingModel names the model that produced the embeddings.
	// Retrieval must use the same model or results are garbage.
	EmbeddingModel string

	// Dimensions is the embedding vector size.
	Dimensions int

	// Chunks holds all passages in splitter order.
	Chunks []Chunk

	// CreatedAt is when the record was first built.
	CreatedAt time.Time
}

// IndexInfo is a summary of one persisted index, used for cache inspection.
type IndexInfo struct {
	VideoID        string
	EmbeddingModel string
	Dimensions     int
	ChunkCount     int
	CreatedAt      time.Time
}

// PassageHit is a single similarity search result.
type PassageHit struct {
	// Chunk is the matched passage.
	Chunk Chunk

	// Score is the similarity score (inner product; equals cosine
	// similarity for normalized embeddings).
	Score float64
}

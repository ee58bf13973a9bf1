// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TranscriptSource: Fetches spoken-language transcripts for a video
//   - LLMService: Completion service for translation, compression
//     extraction, answering, and summarization
//   - EmbeddingService: Maps text to fixed-dimension vectors
//   - VectorIndexFactory: Creates in-memory vector indexes
//   - IndexStore: Durable per-video vector index storage
//   - Splitter: Splits translated text into overlapping passages
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

// Package huggingface provides an embedding service adapter using the
// Hugging Face Inference API feature-extraction pipeline.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api-inference.huggingface.co/models"
	DefaultModel   = "BAAI/bge-m3"
	DefaultTimeout = 120 * time.Second
)

// modelDimensions maps known embedding models to their vector sizes.
var modelDimensions = map[string]int{
	"BAAI/bge-m3":                            1024,
	"BAAI/bge-large-en-v1.5":                 1024,
	"BAAI/bge-base-en-v1.5":                  768,
	"BAAI/bge-small-en-v1.5":                 384,
	"sentence-transformers/all-MiniLM-L6-v2": 384,
	"sentence-transformers/all-mpnet-base-v2": 768,
	"intfloat/multilingual-e5-large":          1024,
}

// Config holds configuration for the Hugging Face embedding service.
type Config struct {
	// APIToken is the Hugging Face API token (required).
	APIToken string

	// BaseURL is the inference API base URL
	// (default: https://api-inference.huggingface.co/models).
	BaseURL string

	// Model is the embedding model to use (default: BAAI/bge-m3).
	Model string

	// Timeout is the request timeout (default: 120s). Cold model loads
	// on the free tier can take a while.
	Timeout time.Duration

	// Dimensions is the embedding vector size. Optional for known
	// models; required for models not in the built-in table.
	Dimensions int
}

// EmbeddingService generates embeddings using the Hugging Face API.
type EmbeddingService struct {
	client     *http.Client
	baseURL    string
	apiToken   string
	model      string
	dimensions int
}

// embedRequest is the feature-extraction request format.
type embedRequest struct {
	Inputs  []string     `json:"inputs"`
	Options embedOptions `json:"options"`
}

// embedOptions tells the API to block while a cold model loads instead
// of returning 503.
type embedOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// apiError is the error response format.
type apiError struct {
	Error string `json:"error"`
}

// NewEmbeddingService creates a new Hugging Face embedding service.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("huggingface: API token is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Dimensions == 0 {
		dims, ok := modelDimensions[cfg.Model]
		if !ok {
			return nil, fmt.Errorf("huggingface: unknown model %q, set Dimensions explicitly", cfg.Model)
		}
		cfg.Dimensions = dims
	}

	return &EmbeddingService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    cfg.BaseURL,
		apiToken:   cfg.APIToken,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one request.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := embedRequest{
		Inputs:  texts,
		Options: embedOptions{WaitForModel: true},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/"+s.model+"/pipeline/feature-extraction",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("huggingface error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("huggingface error (status %d): %s", resp.StatusCode, string(body))
	}

	var embeddings [][]float32
	if err := json.Unmarshal(body, &embeddings); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("huggingface returned %d embeddings for %d texts",
			len(embeddings), len(texts))
	}
	for i, emb := range embeddings {
		if len(emb) != s.dimensions {
			return nil, fmt.Errorf("embedding %d has %d dimensions, expected %d",
				i, len(emb), s.dimensions)
		}
	}

	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping validates the token and model by embedding a single short input.
// The feature-extraction pipeline has no cheaper health endpoint.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.Embed(ctx, "ping"); err != nil {
		return fmt.Errorf("huggingface: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

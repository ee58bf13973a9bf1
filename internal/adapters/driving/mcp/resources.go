package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for assistant resources.
const uriScheme = "ytassist://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing cached video indexes.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "cache",
		Name:        "cache",
		Description: "List of videos with a persisted vector index",
		MIMEType:    "application/json",
	}, s.handleCacheResource)
}

// handleCacheResource returns a listing of every cached video index.
func (s *Server) handleCacheResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Cache == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	infos, err := s.ports.Cache.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}

	type cacheEntry struct {
		VideoID        string `json:"video_id"`
		EmbeddingModel string `json:"embedding_model"`
		Passages       int    `json:"passages"`
		CreatedAt      string `json:"created_at"`
	}

	entries := make([]cacheEntry, len(infos))
	for i, info := range infos {
		entries[i] = cacheEntry{
			VideoID:        info.VideoID,
			EmbeddingModel: info.EmbeddingModel,
			Passages:       info.ChunkCount,
			CreatedAt:      info.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling cache listing: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

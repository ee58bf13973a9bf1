package mcp

import (
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Assistant answers questions about videos and summarizes them.
	Assistant driving.AssistantService

	// Cache exposes the persisted index cache.
	Cache driving.CacheService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistantService
	}
	// Cache is optional: without it the cache resource reads empty.
	return nil
}

// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the YouTube assistant. It lets AI assistants like Claude ask questions
// about videos and inspect the local index cache.
package mcp

import "errors"

// ErrMissingAssistantService is returned when the assistant service is not provided.
var ErrMissingAssistantService = errors.New("mcp: assistant service is required")

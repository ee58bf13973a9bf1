package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AnswerInput is the input schema for the answer tool.
type AnswerInput struct {
	URL      string `json:"url" jsonschema:"the YouTube video URL"`
	Question string `json:"question" jsonschema:"the question to answer about the video"`
}

// AnswerOutput is the output schema for the answer tool.
type AnswerOutput struct {
	VideoID   string `json:"video_id"`
	Answer    string `json:"answer"`
	FromCache bool   `json:"from_cache"`
}

// SummarizeInput is the input schema for the summarize tool.
type SummarizeInput struct {
	URL string `json:"url" jsonschema:"the YouTube video URL"`
}

// SummarizeOutput is the output schema for the summarize tool.
type SummarizeOutput struct {
	VideoID   string `json:"video_id"`
	Summary   string `json:"summary"`
	FromCache bool   `json:"from_cache"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "answer_video_question",
		Description: "Answer a question about a YouTube video using its transcript",
	}, s.handleAnswer)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarize_video",
		Description: "Summarize the content of a YouTube video",
	}, s.handleSummarize)
}

// handleAnswer handles the answer tool invocation. The first call for a
// video builds its index, so it can take noticeably longer than repeats.
func (s *Server) handleAnswer(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnswerInput,
) (*mcp.CallToolResult, AnswerOutput, error) {
	answer, err := s.ports.Assistant.Answer(ctx, input.URL, input.Question)
	if err != nil {
		return nil, AnswerOutput{}, err
	}

	return nil, AnswerOutput{
		VideoID:   answer.VideoID,
		Answer:    answer.Text,
		FromCache: answer.FromCache,
	}, nil
}

// handleSummarize handles the summarize tool invocation.
func (s *Server) handleSummarize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummarizeInput,
) (*mcp.CallToolResult, SummarizeOutput, error) {
	summary, err := s.ports.Assistant.Summarize(ctx, input.URL)
	if err != nil {
		return nil, SummarizeOutput{}, err
	}

	return nil, SummarizeOutput{
		VideoID:   summary.VideoID,
		Summary:   summary.Text,
		FromCache: summary.FromCache,
	}, nil
}

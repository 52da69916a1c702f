package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docforge/docforge/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find chunks"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ChunkID    string  `json:"chunk_id"`
	DocumentID string  `json:"document_id"`
	Ordinal    int     `json:"ordinal"`
	Score      float64 `json:"score"`
	Content    string  `json:"content"`
}

// ImportInput is the input schema for the import tool.
type ImportInput struct {
	FileURLs []string `json:"file_urls" jsonschema:"file URLs to ingest (file:// or plain paths)"`
}

// ImportOutput is the output schema for the import tool.
type ImportOutput struct {
	Accepted int `json:"accepted"`
}

// ReparseInput is the input schema for the reparse tool.
type ReparseInput struct {
	DocumentID string `json:"document_id" jsonschema:"document whose low-quality pages should be re-extracted"`
}

// ReparseOutput is the output schema for the reparse tool.
type ReparseOutput struct {
	Accepted bool `json:"accepted"`
}

// JobsOutput is the output schema for the jobs tool.
type JobsOutput struct {
	Imports  []JobOutput `json:"imports"`
	Reparses []JobOutput `json:"reparses"`
}

// JobOutput represents a single job snapshot.
type JobOutput struct {
	Key      string  `json:"key"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	Error    string  `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search ingested document chunks with hybrid keyword and semantic ranking",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "import_documents",
		Description: "Queue source files for ingestion into the library",
	}, s.handleImport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reparse_document",
		Description: "Queue a document's low-quality pages for re-extraction",
	}, s.handleReparse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_jobs",
		Description: "List import and reparse jobs with their statuses",
	}, s.handleJobs)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	var embedding []float32
	if s.ports.Embedder != nil {
		var err error
		embedding, err = s.ports.Embedder.Embed(ctx, input.Query)
		if err != nil {
			return nil, SearchOutput{}, err
		}
	}

	opts := domain.SearchOptions{Limit: limit}
	results, err := s.ports.Search.Search(ctx, input.Query, embedding, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			ChunkID:    results[i].Chunk.ID,
			DocumentID: results[i].Chunk.DocumentID,
			Ordinal:    results[i].Chunk.Ordinal,
			Score:      results[i].Score,
			Content:    results[i].Chunk.Text,
		}
	}

	return nil, output, nil
}

// handleImport handles the import tool invocation.
func (s *Server) handleImport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportInput,
) (*mcp.CallToolResult, ImportOutput, error) {
	if s.ports.Imports == nil {
		return nil, ImportOutput{}, errors.New("mcp: import queue is not configured")
	}
	if len(input.FileURLs) == 0 {
		return nil, ImportOutput{}, errors.New("mcp: file_urls must not be empty")
	}

	s.ports.Imports.Enqueue(ctx, input.FileURLs...)
	return nil, ImportOutput{Accepted: len(input.FileURLs)}, nil
}

// handleReparse handles the reparse tool invocation.
func (s *Server) handleReparse(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReparseInput,
) (*mcp.CallToolResult, ReparseOutput, error) {
	if s.ports.Reparse == nil {
		return nil, ReparseOutput{}, errors.New("mcp: reparse queue is not configured")
	}
	if input.DocumentID == "" {
		return nil, ReparseOutput{}, errors.New("mcp: document_id must not be empty")
	}

	accepted := s.ports.Reparse.Enqueue(ctx, input.DocumentID)
	return nil, ReparseOutput{Accepted: accepted}, nil
}

// handleJobs handles the jobs tool invocation.
func (s *Server) handleJobs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, JobsOutput, error) {
	var output JobsOutput
	if s.ports.Imports != nil {
		output.Imports = jobOutputs(s.ports.Imports.Jobs(ctx))
	}
	if s.ports.Reparse != nil {
		output.Reparses = jobOutputs(s.ports.Reparse.Jobs(ctx))
	}
	return nil, output, nil
}

func jobOutputs(jobs []domain.Job) []JobOutput {
	out := make([]JobOutput, len(jobs))
	for i, job := range jobs {
		out[i] = JobOutput{
			Key:      job.Key,
			Status:   string(job.Status),
			Progress: job.Progress,
			Error:    job.Error,
		}
	}
	return out
}

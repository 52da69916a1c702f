package mcp

import (
	"github.com/docforge/docforge/internal/core/ports/driven"
	"github.com/docforge/docforge/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides hybrid search capabilities.
	Search driving.SearchService

	// Imports accepts files for ingestion.
	Imports driving.ImportQueue

	// Reparse accepts documents for low-quality page re-extraction.
	Reparse driving.ReparseQueue

	// Store exposes document metadata for resources.
	Store driven.DocumentStore

	// Embedder computes query embeddings for semantic search. Optional;
	// when nil, the search tool is keyword-only.
	Embedder driven.EmbeddingService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Imports, Reparse, Store, and Embedder are optional
	return nil
}

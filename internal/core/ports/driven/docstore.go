package driven

import (
	"context"

	"github.com/docforge/docforge/internal/core/domain"
)

// DocumentStore persists chunks and document metadata.
// Writes to one store are serialised; operations on different stores or
// different documents proceed in parallel.
type DocumentStore interface {
	// UpsertChunks stores chunks, idempotent per chunk ID, last write wins.
	UpsertChunks(ctx context.Context, chunks []domain.Chunk) error

	// SearchChunks performs a case-insensitive substring match over chunk
	// text, ordered by ascending ordinal and capped at limit.
	// An empty keyword yields an empty result.
	SearchChunks(ctx context.Context, keyword string, limit int) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// GetChunks retrieves all chunks for a document, ordered by ordinal.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// UpsertDocument wholesale-replaces a document's metadata record and
	// section skeleton.
	UpsertDocument(ctx context.Context, record domain.DocumentRecord, sections []domain.Section) error

	// GetDocument retrieves a document record by ID.
	GetDocument(ctx context.Context, id string) (*domain.DocumentRecord, error)

	// RecentDocuments returns document records newest-first by import time.
	RecentDocuments(ctx context.Context, limit int) ([]domain.DocumentRecord, error)

	// Sections returns a document's heading skeleton ordered by
	// chunk start ordinal.
	Sections(ctx context.Context, documentID string) ([]domain.Section, error)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/docforge/docforge/internal/core/domain"
	"github.com/docforge/docforge/internal/core/ports/driven"
	"github.com/docforge/docforge/internal/core/ports/driving"
	"github.com/docforge/docforge/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportQueue = (*ImportService)(nil)

// ImportService is the import queue: first-time ingestion of source
// files. Every enqueued file becomes an independent job; there is no
// duplicate suppression and no cross-job ordering guarantee.
type ImportService struct {
	queue     *Queue[string]
	importer  driven.Importer
	store     driven.DocumentStore
	vector    driven.VectorIndex
	embedder  driven.EmbeddingService
	telemetry driven.Telemetry
}

// NewImportService creates the import queue service. The vector index and
// embedding service are optional; when either is nil, chunks are ingested
// without vectors and semantic search is unavailable for them.
func NewImportService(
	importer driven.Importer,
	store driven.DocumentStore,
	vector driven.VectorIndex,
	embedder driven.EmbeddingService,
	telemetry driven.Telemetry,
) *ImportService {
	s := &ImportService{
		importer:  importer,
		store:     store,
		vector:    vector,
		embedder:  embedder,
		telemetry: telemetry,
	}
	s.queue = NewQueue("import", func(fileURL string) string { return fileURL }, s.importOne, false, telemetry)
	return s
}

// Enqueue accepts one or more file URLs for import and returns
// immediately; work proceeds independently per file.
func (s *ImportService) Enqueue(ctx context.Context, fileURLs ...string) {
	for _, fileURL := range fileURLs {
		s.queue.Enqueue(ctx, fileURL)
	}
}

// Jobs returns a snapshot of all import jobs.
func (s *ImportService) Jobs(_ context.Context) []domain.Job {
	return s.queue.Jobs()
}

// Wait blocks until all accepted import jobs are terminal.
func (s *ImportService) Wait() {
	s.queue.Wait()
}

// importOne runs one import job: parse, persist chunks, index vectors,
// record document metadata.
func (s *ImportService) importOne(ctx context.Context, fileURL string) error {
	doc, err := s.importer.ImportDocument(ctx, fileURL)
	if err != nil {
		return fmt.Errorf("import %s: %w", fileURL, err)
	}

	if err := s.store.UpsertChunks(ctx, doc.Chunks); err != nil {
		return fmt.Errorf("upsert chunks: %w", err)
	}

	if s.vector != nil && s.embedder != nil {
		for _, chunk := range doc.Chunks {
			embedding, err := s.embedder.Embed(ctx, chunk.Text)
			if err != nil {
				return fmt.Errorf("embed chunk %s: %w", chunk.ID, err)
			}
			if err := s.vector.Add(ctx, chunk.ID, embedding); err != nil {
				return fmt.Errorf("add vector: %w", err)
			}
		}
	}

	record := domain.DocumentRecord{
		ID:              doc.ID,
		SourcePath:      doc.SourceURL,
		Title:           doc.Title,
		SourceType:      doc.SourceType,
		ChunkCount:      len(doc.Chunks),
		LowQualityPages: doc.LowQualityPages,
		ImportedAt:      time.Now(),
	}
	if err := s.store.UpsertDocument(ctx, record, doc.Sections); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}

	logger.Info("Imported %s: %d chunks, %d low-quality pages",
		fileURL, record.ChunkCount, len(record.LowQualityPages))
	if s.telemetry != nil {
		s.telemetry.Info("parsed %s: %d chunks, %d pages routed to fallback",
			fileURL, record.ChunkCount, doc.FallbackPageCount)
	}
	return nil
}

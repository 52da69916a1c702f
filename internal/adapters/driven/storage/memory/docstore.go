// Package memory provides in-memory implementations of the storage ports,
// used for tests and ephemeral runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/docforge/docforge/internal/core/domain"
	"github.com/docforge/docforge/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// The mutex gives each store single-writer-at-a-time semantics.
type DocumentStore struct {
	mu       sync.RWMutex
	chunks   map[string]domain.Chunk
	records  map[string]domain.DocumentRecord
	sections map[string][]domain.Section
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		chunks:   make(map[string]domain.Chunk),
		records:  make(map[string]domain.DocumentRecord),
		sections: make(map[string][]domain.Section),
	}
}

// UpsertChunks stores chunks keyed by ID, last write wins.
func (s *DocumentStore) UpsertChunks(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, chunk := range chunks {
		s.chunks[chunk.ID] = chunk
	}
	return nil
}

// SearchChunks performs a case-insensitive substring match over chunk
// text, ordered by ascending ordinal and capped at limit.
func (s *DocumentStore) SearchChunks(_ context.Context, keyword string, limit int) ([]domain.Chunk, error) {
	if keyword == "" || limit <= 0 {
		return nil, nil
	}

	needle := strings.ToLower(keyword)

	s.mu.RLock()
	var matches []domain.Chunk
	for _, chunk := range s.chunks {
		if strings.Contains(strings.ToLower(chunk.Text), needle) {
			matches = append(matches, chunk)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Ordinal != matches[j].Ordinal {
			return matches[i].Ordinal < matches[j].Ordinal
		}
		return matches[i].DocumentID < matches[j].DocumentID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// GetChunk retrieves a specific chunk by ID.
func (s *DocumentStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunk, ok := s.chunks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &chunk, nil
}

// GetChunks retrieves all chunks for a document, ordered by ordinal.
func (s *DocumentStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	var chunks []domain.Chunk
	for _, chunk := range s.chunks {
		if chunk.DocumentID == documentID {
			chunks = append(chunks, chunk)
		}
	}
	s.mu.RUnlock()

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Ordinal < chunks[j].Ordinal
	})
	return chunks, nil
}

// UpsertDocument wholesale-replaces a document's record and sections.
func (s *DocumentStore) UpsertDocument(_ context.Context, record domain.DocumentRecord, sections []domain.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	s.sections[record.ID] = append([]domain.Section(nil), sections...)
	return nil
}

// GetDocument retrieves a document record by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// RecentDocuments returns document records newest-first by import time.
func (s *DocumentStore) RecentDocuments(_ context.Context, limit int) ([]domain.DocumentRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	records := make([]domain.DocumentRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].ImportedAt.After(records[j].ImportedAt)
	})

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Sections returns a document's heading skeleton ordered by chunk start
// ordinal.
func (s *DocumentStore) Sections(_ context.Context, documentID string) ([]domain.Section, error) {
	s.mu.RLock()
	sections := append([]domain.Section(nil), s.sections[documentID]...)
	s.mu.RUnlock()

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].ChunkStartOrdinal < sections[j].ChunkStartOrdinal
	})
	return sections, nil
}

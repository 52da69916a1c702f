package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/docforge/docforge/internal/core/domain"
	"github.com/docforge/docforge/internal/core/ports/driven"
	"github.com/docforge/docforge/internal/core/ports/driving"
	"github.com/docforge/docforge/internal/logger"
)

// Ensure HybridSearchService implements the interface.
var _ driving.SearchService = (*HybridSearchService)(nil)

// DefaultSearchLimit is used when the caller does not set a limit.
const DefaultSearchLimit = 20

// HybridSearchService fuses lexical and vector rankings into one ordered
// result using weighted reciprocal-rank scores. Rank-based fusion avoids
// comparing incommensurable lexical and vector similarity scales.
type HybridSearchService struct {
	store     driven.DocumentStore
	vector    driven.VectorIndex
	telemetry driven.Telemetry
}

// NewHybridSearchService creates a hybrid search service.
// The vector index is optional; when nil, searches are keyword-only.
func NewHybridSearchService(
	store driven.DocumentStore,
	vector driven.VectorIndex,
	telemetry driven.Telemetry,
) *HybridSearchService {
	return &HybridSearchService{
		store:     store,
		vector:    vector,
		telemetry: telemetry,
	}
}

// Search fetches up to limit lexical hits and up to limit vector hits
// independently, scores the hit at zero-based rank r in each list as
// weight/(r+1), sums the contributions of chunks present in both lists,
// and returns the union sorted by descending combined score, truncated
// to limit. Ties are not contractually broken.
func (s *HybridSearchService) Search(
	ctx context.Context, keyword string, embedding []float32, opts domain.SearchOptions,
) ([]domain.RankedChunk, error) {
	if s.store == nil {
		return nil, domain.ErrSearchUnavailable
	}

	logger.Section("Hybrid Search")
	keyword = strings.TrimSpace(keyword)

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	keywordWeight, vectorWeight := opts.KeywordWeight, opts.VectorWeight
	if keywordWeight <= 0 && vectorWeight <= 0 {
		keywordWeight, vectorWeight = 1.0, 1.0
	}
	logger.Debug("Query: %q, embedding dims: %d, limit: %d, weights: %.2f/%.2f",
		keyword, len(embedding), limit, keywordWeight, vectorWeight)

	// The two lists are fetched independently and in parallel.
	var lexical, semantic []domain.Chunk
	var lexicalErr, semanticErr error

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		lexical, lexicalErr = s.keywordHits(ctx, keyword, limit)
	}()

	go func() {
		defer wg.Done()
		semantic, semanticErr = s.vectorHits(ctx, embedding, limit)
	}()

	wg.Wait()

	if lexicalErr != nil {
		return nil, fmt.Errorf("keyword search: %w", lexicalErr)
	}
	if semanticErr != nil {
		return nil, fmt.Errorf("vector search: %w", semanticErr)
	}

	results := fuse(lexical, semantic, keywordWeight, vectorWeight)
	if len(results) > limit {
		results = results[:limit]
	}

	logger.Info("Search complete: %d lexical + %d vector hits fused to %d results",
		len(lexical), len(semantic), len(results))
	if s.telemetry != nil {
		s.telemetry.Info("search completed: %d results for %q", len(results), keyword)
	}

	return results, nil
}

// keywordHits fetches lexical matches. An empty keyword yields no hits
// rather than matching everything.
func (s *HybridSearchService) keywordHits(ctx context.Context, keyword string, limit int) ([]domain.Chunk, error) {
	if keyword == "" {
		return nil, nil
	}
	return s.store.SearchChunks(ctx, keyword, limit)
}

// vectorHits fetches nearest chunks for the query embedding and hydrates
// them from the store. Chunks deleted since indexing are skipped.
func (s *HybridSearchService) vectorHits(ctx context.Context, embedding []float32, limit int) ([]domain.Chunk, error) {
	if s.vector == nil || len(embedding) == 0 {
		return nil, nil
	}

	hits, err := s.vector.Search(ctx, embedding, limit)
	if err != nil {
		return nil, err
	}

	chunks := make([]domain.Chunk, 0, len(hits))
	for _, hit := range hits {
		chunk, err := s.store.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get chunk %s: %w", hit.ChunkID, err)
		}
		chunks = append(chunks, *chunk)
	}
	return chunks, nil
}

// fuse merges two ranked lists with weighted reciprocal-rank scoring:
// the hit at zero-based rank r contributes weight * 1/(r+1).
func fuse(lexical, semantic []domain.Chunk, keywordWeight, vectorWeight float64) []domain.RankedChunk {
	scores := make(map[string]float64)
	chunks := make(map[string]domain.Chunk)

	for rank, chunk := range lexical {
		scores[chunk.ID] += keywordWeight / float64(rank+1)
		chunks[chunk.ID] = chunk
	}
	for rank, chunk := range semantic {
		scores[chunk.ID] += vectorWeight / float64(rank+1)
		chunks[chunk.ID] = chunk
	}

	results := make([]domain.RankedChunk, 0, len(chunks))
	for id, chunk := range chunks {
		results = append(results, domain.RankedChunk{Chunk: chunk, Score: scores[id]})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

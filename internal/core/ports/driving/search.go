package driving

import (
	"context"

	"github.com/docforge/docforge/internal/core/domain"
)

// SearchService provides hybrid (lexical + vector) search over ingested
// chunks.
type SearchService interface {
	// Search fuses lexical hits for keyword and vector hits for embedding
	// into one ordering of at most opts.Limit results. A nil embedding
	// skips the vector side; an empty keyword skips the lexical side.
	Search(ctx context.Context, keyword string, embedding []float32, opts domain.SearchOptions) ([]domain.RankedChunk, error)
}

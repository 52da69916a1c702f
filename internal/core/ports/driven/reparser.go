package driven

import (
	"context"

	"github.com/docforge/docforge/internal/core/domain"
)

// Reparser re-extracts previously low-confidence pages through an
// alternate extraction path (typically vision-based).
type Reparser interface {
	// Reparse re-extracts the given zero-based page indices of a document
	// and returns the subset of page indices it resolved.
	Reparse(ctx context.Context, record domain.DocumentRecord, pages []int) ([]int, error)
}

// ReparserFunc adapts a plain function to the Reparser interface.
type ReparserFunc func(ctx context.Context, record domain.DocumentRecord, pages []int) ([]int, error)

// Reparse calls f.
func (f ReparserFunc) Reparse(ctx context.Context, record domain.DocumentRecord, pages []int) ([]int, error) {
	return f(ctx, record, pages)
}

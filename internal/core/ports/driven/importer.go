package driven

import (
	"context"

	"github.com/docforge/docforge/internal/core/domain"
)

// Importer turns one source file into a parsed document.
// Used by the import queue; failures are recorded on the job.
type Importer interface {
	// ImportDocument parses the file at fileURL.
	ImportDocument(ctx context.Context, fileURL string) (*domain.ParsedDocument, error)
}

// ImporterFunc adapts a plain function to the Importer interface.
type ImporterFunc func(ctx context.Context, fileURL string) (*domain.ParsedDocument, error)

// ImportDocument calls f.
func (f ImporterFunc) ImportDocument(ctx context.Context, fileURL string) (*domain.ParsedDocument, error) {
	return f(ctx, fileURL)
}

package parsers

import (
	"context"
	"fmt"

	"github.com/docforge/docforge/internal/core/domain"
	"github.com/docforge/docforge/internal/core/ports/driven"
	"github.com/docforge/docforge/internal/logger"
)

// Ensure RescanReparser implements the interface.
var _ driven.Reparser = (*RescanReparser)(nil)

// RescanReparser re-runs extraction on a document's source file and
// reports which of the requested pages now meet the quality threshold.
// Useful after the source file has been replaced with an OCRed or
// otherwise improved version.
type RescanReparser struct {
	registry *Registry
}

// NewRescanReparser creates a reparser backed by the given registry.
func NewRescanReparser(registry *Registry) *RescanReparser {
	return &RescanReparser{registry: registry}
}

// Reparse re-extracts the document and returns the subset of the requested
// zero-based page indices that are no longer flagged low quality.
func (r *RescanReparser) Reparse(ctx context.Context, record domain.DocumentRecord, pages []int) ([]int, error) {
	doc, err := r.registry.Parse(ctx, record.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("rescan %s: %w", record.SourcePath, err)
	}

	stillLow := make(map[int]bool, len(doc.LowQualityPages))
	for _, p := range doc.LowQualityPages {
		stillLow[p] = true
	}

	resolved := make([]int, 0, len(pages))
	for _, p := range pages {
		if !stillLow[p] {
			resolved = append(resolved, p)
		}
	}

	logger.Debug("Rescan %s: %d of %d pages resolved", record.ID, len(resolved), len(pages))
	return resolved, nil
}

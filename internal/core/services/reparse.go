package services

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/docforge/docforge/internal/core/domain"
	"github.com/docforge/docforge/internal/core/ports/driven"
	"github.com/docforge/docforge/internal/core/ports/driving"
	"github.com/docforge/docforge/internal/logger"
)

// Ensure ReparseService implements the interface.
var _ driving.ReparseQueue = (*ReparseService)(nil)

// ReparseService is the low-quality reparse queue: targeted re-extraction
// of pages flagged during import. At most one job per document ID may be
// queued or running at a time.
type ReparseService struct {
	queue     *Queue[string]
	reparser  driven.Reparser
	store     driven.DocumentStore
	limiter   *rate.Limiter
	telemetry driven.Telemetry
}

// ReparseOption configures the reparse service.
type ReparseOption func(*ReparseService)

// WithReparseRate throttles invocations of the reparse capability.
// Fallback re-extraction is expensive; the default allows one call per
// second with a burst of two.
func WithReparseRate(limit rate.Limit, burst int) ReparseOption {
	return func(s *ReparseService) {
		s.limiter = rate.NewLimiter(limit, burst)
	}
}

// NewReparseService creates the reparse queue service.
func NewReparseService(
	reparser driven.Reparser,
	store driven.DocumentStore,
	telemetry driven.Telemetry,
	opts ...ReparseOption,
) *ReparseService {
	s := &ReparseService{
		reparser:  reparser,
		store:     store,
		limiter:   rate.NewLimiter(rate.Limit(1), 2),
		telemetry: telemetry,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.queue = NewQueue("reparse", func(documentID string) string { return documentID }, s.reparseOne, true, telemetry)
	return s
}

// Enqueue accepts a document for reparse. Returns false without creating
// a job when a job for the same document ID is already queued or running.
func (s *ReparseService) Enqueue(ctx context.Context, documentID string) bool {
	return s.queue.Enqueue(ctx, documentID)
}

// Jobs returns a snapshot of all reparse jobs.
func (s *ReparseService) Jobs(_ context.Context) []domain.Job {
	return s.queue.Jobs()
}

// Wait blocks until all accepted reparse jobs are terminal.
func (s *ReparseService) Wait() {
	s.queue.Wait()
}

// reparseOne runs one reparse job: invoke the reparse capability with the
// document's current low-quality pages, then persist a record whose
// low-quality set is the original minus the resolved subset. A failed
// reparse leaves stored data untouched.
func (s *ReparseService) reparseOne(ctx context.Context, documentID string) error {
	record, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document %s: %w", documentID, err)
	}

	if len(record.LowQualityPages) == 0 {
		logger.Debug("Reparse %s: no low-quality pages", documentID)
		return nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("reparse rate limit: %w", err)
	}

	resolved, err := s.reparser.Reparse(ctx, *record, record.LowQualityPages)
	if err != nil {
		return fmt.Errorf("reparse %s: %w", documentID, err)
	}

	record.LowQualityPages = subtractPages(record.LowQualityPages, resolved)

	sections, err := s.store.Sections(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get sections: %w", err)
	}
	if err := s.store.UpsertDocument(ctx, *record, sections); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}

	logger.Info("Reparsed %s: %d pages resolved, %d remaining",
		documentID, len(resolved), len(record.LowQualityPages))
	return nil
}

// subtractPages returns pages minus resolved, preserving order.
func subtractPages(pages, resolved []int) []int {
	drop := make(map[int]bool, len(resolved))
	for _, p := range resolved {
		drop[p] = true
	}

	remaining := make([]int, 0, len(pages))
	for _, p := range pages {
		if !drop[p] {
			remaining = append(remaining, p)
		}
	}
	return remaining
}

package driving

import (
	"context"

	"github.com/docforge/docforge/internal/core/domain"
)

// ReparseQueue re-extracts a document's low-quality pages asynchronously.
type ReparseQueue interface {
	// Enqueue accepts a document for reparse. Returns false without
	// creating a job when a job for the same document ID is already
	// queued or running in this queue.
	Enqueue(ctx context.Context, documentID string) bool

	// Jobs returns a snapshot of all jobs known to the queue.
	Jobs(ctx context.Context) []domain.Job
}

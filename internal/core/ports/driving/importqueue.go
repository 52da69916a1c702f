package driving

import (
	"context"

	"github.com/docforge/docforge/internal/core/domain"
)

// ImportQueue ingests source files asynchronously. Enqueue returns
// immediately; each file is processed as an independent job with no
// cross-job ordering guarantee.
type ImportQueue interface {
	// Enqueue accepts one or more file URLs for import.
	Enqueue(ctx context.Context, fileURLs ...string)

	// Jobs returns a snapshot of all jobs known to the queue.
	Jobs(ctx context.Context) []domain.Job
}

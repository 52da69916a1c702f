package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/docforge/docforge/internal/adapters/driven/storage/memory"
	"github.com/docforge/docforge/internal/core/domain"
	"github.com/docforge/docforge/internal/core/ports/driven"
)

func storeWithDocument(t *testing.T, id string, lowQualityPages []int) *memory.DocumentStore {
	t.Helper()
	store := memory.NewDocumentStore()
	record := domain.DocumentRecord{
		ID:              id,
		SourcePath:      "file:///tmp/" + id + ".pdf",
		Title:           "Scanned Report",
		SourceType:      domain.SourceTypePDF,
		ChunkCount:      3,
		LowQualityPages: lowQualityPages,
		ImportedAt:      time.Now(),
	}
	require.NoError(t, store.UpsertDocument(context.Background(), record, nil))
	return store
}

// fastRate keeps reparse tests from waiting on the limiter.
var fastRate = WithReparseRate(rate.Inf, 1)

func TestReparseResolvesPages(t *testing.T) {
	store := storeWithDocument(t, "doc-1", []int{0, 2, 5})

	reparser := driven.ReparserFunc(func(_ context.Context, _ domain.DocumentRecord, pages []int) ([]int, error) {
		assert.Equal(t, []int{0, 2, 5}, pages)
		return []int{0, 5}, nil
	})

	svc := NewReparseService(reparser, store, nil, fastRate)
	ctx := context.Background()

	require.True(t, svc.Enqueue(ctx, "doc-1"))
	svc.Wait()

	jobs := svc.Jobs(ctx)
	require.Len(t, jobs, 1)
	assert.Equal(t, domain.JobSucceeded, jobs[0].Status)

	record, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, record.LowQualityPages)
}

func TestReparseAllPagesResolved(t *testing.T) {
	store := storeWithDocument(t, "doc-1", []int{1, 3})

	reparser := driven.ReparserFunc(func(_ context.Context, _ domain.DocumentRecord, pages []int) ([]int, error) {
		return pages, nil
	})

	svc := NewReparseService(reparser, store, nil, fastRate)
	ctx := context.Background()

	svc.Enqueue(ctx, "doc-1")
	svc.Wait()

	record, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, record.LowQualityPages)
}

func TestReparseDuplicateSuppression(t *testing.T) {
	store := storeWithDocument(t, "doc-1", []int{0})
	release := make(chan struct{})

	reparser := driven.ReparserFunc(func(_ context.Context, _ domain.DocumentRecord, pages []int) ([]int, error) {
		<-release
		return pages, nil
	})

	svc := NewReparseService(reparser, store, nil, fastRate)
	ctx := context.Background()

	require.True(t, svc.Enqueue(ctx, "doc-1"))
	assert.False(t, svc.Enqueue(ctx, "doc-1"), "second enqueue for the same document must be rejected")

	close(release)
	svc.Wait()

	// After the first job finishes the document may be reparsed again.
	assert.True(t, svc.Enqueue(ctx, "doc-1"))
	svc.Wait()

	assert.Len(t, svc.Jobs(ctx), 2)
}

func TestReparseFailureLeavesRecordUntouched(t *testing.T) {
	store := storeWithDocument(t, "doc-1", []int{0, 1})

	reparser := driven.ReparserFunc(func(_ context.Context, _ domain.DocumentRecord, _ []int) ([]int, error) {
		return nil, errors.New("vlm unavailable")
	})

	svc := NewReparseService(reparser, store, nil, fastRate)
	ctx := context.Background()

	svc.Enqueue(ctx, "doc-1")
	svc.Wait()

	jobs := svc.Jobs(ctx)
	require.Len(t, jobs, 1)
	assert.Equal(t, domain.JobFailed, jobs[0].Status)
	assert.Contains(t, jobs[0].Error, "vlm unavailable")

	record, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, record.LowQualityPages)
}

func TestReparseNoLowQualityPagesIsNoOp(t *testing.T) {
	store := storeWithDocument(t, "doc-1", nil)
	called := false

	reparser := driven.ReparserFunc(func(_ context.Context, _ domain.DocumentRecord, pages []int) ([]int, error) {
		called = true
		return pages, nil
	})

	svc := NewReparseService(reparser, store, nil, fastRate)
	ctx := context.Background()

	svc.Enqueue(ctx, "doc-1")
	svc.Wait()

	assert.Equal(t, domain.JobSucceeded, svc.Jobs(ctx)[0].Status)
	assert.False(t, called, "reparser must not run when nothing is flagged")
}

func TestReparseUnknownDocumentFails(t *testing.T) {
	store := memory.NewDocumentStore()
	reparser := driven.ReparserFunc(func(_ context.Context, _ domain.DocumentRecord, pages []int) ([]int, error) {
		return pages, nil
	})

	svc := NewReparseService(reparser, store, nil, fastRate)
	ctx := context.Background()

	svc.Enqueue(ctx, "missing")
	svc.Wait()

	jobs := svc.Jobs(ctx)
	require.Len(t, jobs, 1)
	assert.Equal(t, domain.JobFailed, jobs[0].Status)
}

func TestSubtractPages(t *testing.T) {
	assert.Equal(t, []int{1, 3}, subtractPages([]int{0, 1, 2, 3}, []int{0, 2}))
	assert.Empty(t, subtractPages([]int{4, 5}, []int{4, 5}))
	assert.Equal(t, []int{7}, subtractPages([]int{7}, nil))
	assert.Equal(t, []int{2, 0}, subtractPages([]int{2, 1, 0}, []int{1}), "order is preserved")
}

package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docforge/docforge/internal/core/domain"
)

// mockTelemetry implements driven.Telemetry for testing.
type mockTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (m *mockTelemetry) record(format string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, format)
}

func (m *mockTelemetry) Info(format string, _ ...any)  { m.record(format) }
func (m *mockTelemetry) Warn(format string, _ ...any)  { m.record(format) }
func (m *mockTelemetry) Error(format string, _ ...any) { m.record(format) }

func (m *mockTelemetry) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func identity(s string) string { return s }

func TestQueueSuccess(t *testing.T) {
	q := NewQueue("test", identity, func(_ context.Context, _ string) error {
		return nil
	}, false, nil)

	accepted := q.Enqueue(context.Background(), "item-1")
	require.True(t, accepted)
	q.Wait()

	jobs := q.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "item-1", jobs[0].Key)
	assert.Equal(t, domain.JobSucceeded, jobs[0].Status)
	assert.Equal(t, 1.0, jobs[0].Progress)
	assert.Empty(t, jobs[0].Error)
	assert.False(t, jobs[0].FinishedAt.IsZero())
}

func TestQueueFailure(t *testing.T) {
	q := NewQueue("test", identity, func(_ context.Context, _ string) error {
		return errors.New("boom")
	}, false, nil)

	q.Enqueue(context.Background(), "item-1")
	q.Wait()

	jobs := q.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, domain.JobFailed, jobs[0].Status)
	assert.Equal(t, "boom", jobs[0].Error)
}

func TestQueueFailureIsolation(t *testing.T) {
	q := NewQueue("test", identity, func(_ context.Context, item string) error {
		if item == "bad" {
			return errors.New("bad item")
		}
		return nil
	}, false, nil)

	ctx := context.Background()
	q.Enqueue(ctx, "good")
	q.Enqueue(ctx, "bad")
	q.Enqueue(ctx, "also-good")
	q.Wait()

	byKey := make(map[string]domain.Job)
	for _, job := range q.Jobs() {
		byKey[job.Key] = job
	}

	assert.Equal(t, domain.JobSucceeded, byKey["good"].Status)
	assert.Equal(t, domain.JobFailed, byKey["bad"].Status)
	assert.Equal(t, domain.JobSucceeded, byKey["also-good"].Status)
}

func TestQueueDuplicateSuppression(t *testing.T) {
	release := make(chan struct{})
	q := NewQueue("test", identity, func(_ context.Context, _ string) error {
		<-release
		return nil
	}, true, nil)

	ctx := context.Background()

	require.True(t, q.Enqueue(ctx, "doc-1"))
	assert.False(t, q.Enqueue(ctx, "doc-1"), "active key must be rejected")
	assert.True(t, q.Enqueue(ctx, "doc-2"), "different key must be accepted")

	close(release)
	q.Wait()

	// A completed job no longer blocks its key.
	assert.True(t, q.Enqueue(ctx, "doc-1"))
	q.Wait()

	// Rejected enqueues create no job records.
	assert.Len(t, q.Jobs(), 3)
}

func TestQueueWithoutSuppressionAllowsDuplicates(t *testing.T) {
	q := NewQueue("test", identity, func(_ context.Context, _ string) error {
		return nil
	}, false, nil)

	ctx := context.Background()
	assert.True(t, q.Enqueue(ctx, "same"))
	assert.True(t, q.Enqueue(ctx, "same"))
	q.Wait()

	assert.Len(t, q.Jobs(), 2)
}

func TestQueueJobsSnapshotIsCopy(t *testing.T) {
	q := NewQueue("test", identity, func(_ context.Context, _ string) error {
		return nil
	}, false, nil)

	q.Enqueue(context.Background(), "item")
	q.Wait()

	jobs := q.Jobs()
	jobs[0].Status = domain.JobQueued

	assert.Equal(t, domain.JobSucceeded, q.Jobs()[0].Status)
}

func TestQueueTelemetry(t *testing.T) {
	sink := &mockTelemetry{}
	q := NewQueue("test", identity, func(_ context.Context, _ string) error {
		return nil
	}, false, sink)

	q.Enqueue(context.Background(), "item")
	q.Wait()

	// Queued and succeeded events at minimum.
	assert.GreaterOrEqual(t, sink.count(), 2)
}

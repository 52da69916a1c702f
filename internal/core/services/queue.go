// Package services contains the core application services: the job queue
// engine with its import and reparse instantiations, and hybrid search.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/docforge/docforge/internal/core/domain"
	"github.com/docforge/docforge/internal/core/ports/driven"
	"github.com/docforge/docforge/internal/logger"
)

// WorkFunc executes the work for one job.
type WorkFunc[T any] func(ctx context.Context, item T) error

// Queue is a generic concurrent job queue. Each accepted item becomes a
// job that moves queued -> running -> succeeded|failed; transitions are
// monotonic and terminal states are never left. Jobs run on independent
// goroutines with no cross-job ordering guarantee, and a running job
// never blocks the queue's ability to accept new items.
//
// The same engine backs both the import queue and the reparse queue; the
// duplicate-suppression flag is the only behavioural difference.
type Queue[T any] struct {
	name               string
	keyOf              func(T) string
	work               WorkFunc[T]
	suppressDuplicates bool
	telemetry          driven.Telemetry

	mu     sync.Mutex
	jobs   []*domain.Job
	active map[string]bool
	wg     sync.WaitGroup
}

// NewQueue creates a queue running work on each enqueued item.
// When suppressDuplicates is set, an item whose key already has a queued
// or running job is rejected.
func NewQueue[T any](
	name string,
	keyOf func(T) string,
	work WorkFunc[T],
	suppressDuplicates bool,
	telemetry driven.Telemetry,
) *Queue[T] {
	return &Queue[T]{
		name:               name,
		keyOf:              keyOf,
		work:               work,
		suppressDuplicates: suppressDuplicates,
		telemetry:          telemetry,
		active:             make(map[string]bool),
	}
}

// Enqueue accepts an item and returns immediately. The returned flag is
// false only when duplicate suppression rejected the item.
func (q *Queue[T]) Enqueue(ctx context.Context, item T) bool {
	key := q.keyOf(item)

	q.mu.Lock()
	if q.suppressDuplicates && q.active[key] {
		q.mu.Unlock()
		logger.Debug("%s queue: rejected duplicate enqueue for %s", q.name, key)
		return false
	}

	job := &domain.Job{
		Key:        key,
		Status:     domain.JobQueued,
		EnqueuedAt: time.Now(),
	}
	q.jobs = append(q.jobs, job)
	q.active[key] = true
	q.mu.Unlock()

	q.notify("%s queue: job queued for %s", q.name, key)

	q.wg.Add(1)
	// Jobs outlive the enqueue call; cancellation is not modelled.
	go q.run(context.WithoutCancel(ctx), item, job)

	return true
}

// Jobs returns a snapshot copy of all jobs known to the queue.
// Job history is process-lifetime only.
func (q *Queue[T]) Jobs() []domain.Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	snapshot := make([]domain.Job, len(q.jobs))
	for i, job := range q.jobs {
		snapshot[i] = *job
	}
	return snapshot
}

// Wait blocks until all accepted jobs have reached a terminal state.
func (q *Queue[T]) Wait() {
	q.wg.Wait()
}

// run drives one job to a terminal state. Work failures are recorded on
// the job and never propagate to other jobs or the queue itself.
func (q *Queue[T]) run(ctx context.Context, item T, job *domain.Job) {
	defer q.wg.Done()

	q.transition(job, domain.JobRunning, 0, "")

	err := q.work(ctx, item)

	if err != nil {
		q.transition(job, domain.JobFailed, 0, err.Error())
		q.notify("%s queue: job for %s failed: %v", q.name, job.Key, err)
	} else {
		q.transition(job, domain.JobSucceeded, 1.0, "")
		q.notify("%s queue: job for %s succeeded", q.name, job.Key)
	}

	q.mu.Lock()
	delete(q.active, job.Key)
	q.mu.Unlock()
}

// transition applies a monotonic status change; terminal states are never
// regressed.
func (q *Queue[T]) transition(job *domain.Job, status domain.JobStatus, progress float64, errMsg string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if job.Status.Terminal() {
		return
	}

	job.Status = status
	job.Progress = progress
	job.Error = errMsg
	if status.Terminal() {
		job.FinishedAt = time.Now()
	}
}

// notify forwards a fire-and-forget telemetry event.
func (q *Queue[T]) notify(format string, args ...any) {
	if q.telemetry != nil {
		q.telemetry.Info(format, args...)
	}
}

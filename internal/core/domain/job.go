package domain

import "time"

// JobStatus is the lifecycle state of a queued job.
// Transitions are monotonic: queued -> running -> succeeded|failed.
type JobStatus string

const (
	// JobQueued means the job is accepted but not yet started.
	JobQueued JobStatus = "queued"

	// JobRunning means the job is executing.
	JobRunning JobStatus = "running"

	// JobSucceeded is the terminal success state.
	JobSucceeded JobStatus = "succeeded"

	// JobFailed is the terminal failure state.
	JobFailed JobStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobSucceeded || s == JobFailed
}

// Job is one unit of asynchronous work tracked by a queue.
// Job history is process-lifetime only.
type Job struct {
	// Key identifies the work target (file URL or document ID).
	Key string

	// Status is the current lifecycle state.
	Status JobStatus

	// Progress is the completion fraction in [0,1].
	Progress float64

	// Error holds the failure message for failed jobs.
	Error string

	// EnqueuedAt is when the job was accepted.
	EnqueuedAt time.Time

	// FinishedAt is when the job reached a terminal state.
	FinishedAt time.Time
}

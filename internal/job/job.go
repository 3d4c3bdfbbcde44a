package job

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a background job.
type Status string

// Job lifecycle statuses.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job is a unit of background work. Implementations carry their own
// payload and know how to execute themselves.
type Job interface {
	// ID returns the job's unique identifier.
	ID() uuid.UUID

	// Type returns the job type identifier used to rebuild recovered
	// jobs from their persisted payloads.
	Type() string

	// Payload returns the job data as a JSON-encoded byte slice.
	Payload() []byte

	// Status returns the job's current lifecycle status.
	Status() Status

	// Execute runs the job logic.
	Execute(ctx context.Context) error
}

// JobStore defines the persistence interface for durable job records.
type JobStore interface {
	// SaveJob persists a new job record.
	SaveJob(ctx context.Context, j Job) error

	// UpdateJobStatus updates the status and result message of a job.
	// A missing job is treated as a no-op.
	UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status Status, message string) error

	// GetPendingJobs retrieves all jobs in the pending state, oldest first.
	GetPendingJobs(ctx context.Context) ([]Job, error)

	// GetProcessingJobs retrieves jobs in the processing state, optionally
	// restricted to those untouched for longer than olderThan. A zero
	// olderThan returns all processing jobs.
	GetProcessingJobs(ctx context.Context, olderThan time.Duration) ([]Job, error)
}

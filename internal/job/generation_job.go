package job

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/service"
)

// TypeTaskGeneration is the job type identifier for recurring task
// generation runs.
const TypeTaskGeneration = "task_generation"

// GenerationRunner is the slice of the generation service the job needs.
type GenerationRunner interface {
	// Run generates tasks for all active templates and clients of the
	// tenant in the given competence period.
	Run(ctx context.Context, tenantID uuid.UUID, competence string) (*service.GenerationOutcome, error)
}

// generationPayload is the persisted JSON payload of a generation job.
type generationPayload struct {
	TenantID   uuid.UUID `json:"tenant_id"`
	Competence string    `json:"competence"`
}

// GenerationJob runs one task generation batch for a tenant and
// competence period in the background.
type GenerationJob struct {
	id         uuid.UUID
	tenantID   uuid.UUID
	competence string
	status     Status
	runner     GenerationRunner
	logger     *slog.Logger
}

// Ensure GenerationJob implements Job
var _ Job = (*GenerationJob)(nil)

// NewGenerationJob creates a pending generation job for the tenant and
// competence period.
func NewGenerationJob(
	tenantID uuid.UUID,
	competence string,
	runner GenerationRunner,
	logger *slog.Logger,
) (*GenerationJob, error) {
	if runner == nil {
		return nil, fmt.Errorf("generation runner cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &GenerationJob{
		id:         uuid.New(),
		tenantID:   tenantID,
		competence: competence,
		status:     StatusPending,
		runner:     runner,
		logger:     logger.With(slog.String("component", "generation_job")),
	}, nil
}

// ID implements Job.ID.
func (j *GenerationJob) ID() uuid.UUID {
	return j.id
}

// Type implements Job.Type.
func (j *GenerationJob) Type() string {
	return TypeTaskGeneration
}

// Payload implements Job.Payload.
func (j *GenerationJob) Payload() []byte {
	payload, err := json.Marshal(generationPayload{
		TenantID:   j.tenantID,
		Competence: j.competence,
	})
	if err != nil {
		// Marshalling two fixed fields cannot fail; keep the interface
		// non-erroring like the rest of the Job accessors.
		j.logger.Error("failed to marshal generation payload", "error", err)
		return nil
	}
	return payload
}

// Status implements Job.Status.
func (j *GenerationJob) Status() Status {
	return j.status
}

// Execute implements Job.Execute. Individual pair failures are part of
// the outcome, not an execution error: the job only fails when the
// whole batch cannot run (e.g. malformed competence, store unreachable).
func (j *GenerationJob) Execute(ctx context.Context) error {
	log := j.logger.With(
		"tenant_id", j.tenantID,
		"competence", j.competence,
	)

	outcome, err := j.runner.Run(ctx, j.tenantID, j.competence)
	if err != nil {
		return fmt.Errorf("generation run failed: %w", err)
	}

	log.Info("generation run finished",
		"created", outcome.Created,
		"failures", len(outcome.Failures))

	return nil
}

// GenerationJobFactory rebuilds generation jobs from persisted payloads
// during runner recovery.
type GenerationJobFactory struct {
	runner GenerationRunner
	logger *slog.Logger
}

// NewGenerationJobFactory creates a new GenerationJobFactory.
func NewGenerationJobFactory(runner GenerationRunner, logger *slog.Logger) *GenerationJobFactory {
	return &GenerationJobFactory{
		runner: runner,
		logger: logger,
	}
}

// Resolve implements the runner's ResolveFn for generation jobs.
// Jobs of other types are returned unchanged.
func (f *GenerationJobFactory) Resolve(j Job) (Job, error) {
	if j.Type() != TypeTaskGeneration {
		return j, nil
	}

	var payload generationPayload
	if err := json.Unmarshal(j.Payload(), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal generation payload: %w", err)
	}

	return &GenerationJob{
		id:         j.ID(),
		tenantID:   payload.TenantID,
		competence: payload.Competence,
		status:     j.Status(),
		runner:     f.runner,
		logger:     f.logger.With(slog.String("component", "generation_job")),
	}, nil
}

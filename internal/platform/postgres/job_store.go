package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/job"
	"github.com/fiscaldesk/fiscaldesk-api/internal/platform/logger"
	"github.com/fiscaldesk/fiscaldesk-api/internal/store"
)

// PostgresJobStore implements the job.JobStore interface using PostgreSQL.
type PostgresJobStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresJobStore implements job.JobStore
var _ job.JobStore = (*PostgresJobStore)(nil)

// NewPostgresJobStore creates a new PostgresJobStore.
func NewPostgresJobStore(db store.DBTX, log *slog.Logger) *PostgresJobStore {
	if log == nil {
		log = slog.Default()
	}
	return &PostgresJobStore{
		db:     db,
		logger: log.With(slog.String("component", "job_store")),
	}
}

// SaveJob implements job.JobStore.SaveJob.
func (s *PostgresJobStore) SaveJob(ctx context.Context, j job.Job) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO jobs (id, type, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, query,
		j.ID(),
		j.Type(),
		j.Payload(),
		j.Status(),
		now,
		now,
	)
	if err != nil {
		log.Error("failed to save job",
			"job_id", j.ID(),
			"job_type", j.Type(),
			"error", err)
		return MapError(err)
	}

	return nil
}

// UpdateJobStatus implements job.JobStore.UpdateJobStatus.
func (s *PostgresJobStore) UpdateJobStatus(
	ctx context.Context,
	jobID uuid.UUID,
	status job.Status,
	message string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE jobs
		SET status = $1, message = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query,
		status,
		nullString(message),
		time.Now().UTC(),
		jobID,
	)
	if err != nil {
		log.Error("failed to update job status",
			"job_id", jobID,
			"status", status,
			"error", err)
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		// Missing job record is a no-op; the runner may race a manual cleanup.
		log.Warn("no job found to update status", "job_id", jobID)
	}

	return nil
}

// GetPendingJobs implements job.JobStore.GetPendingJobs.
func (s *PostgresJobStore) GetPendingJobs(ctx context.Context) ([]job.Job, error) {
	return s.getJobsByStatus(ctx, job.StatusPending, 0)
}

// GetProcessingJobs implements job.JobStore.GetProcessingJobs.
func (s *PostgresJobStore) GetProcessingJobs(
	ctx context.Context,
	olderThan time.Duration,
) ([]job.Job, error) {
	return s.getJobsByStatus(ctx, job.StatusProcessing, olderThan)
}

func (s *PostgresJobStore) getJobsByStatus(
	ctx context.Context,
	status job.Status,
	olderThan time.Duration,
) ([]job.Job, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, type, payload, status
		FROM jobs
		WHERE status = $1
	`
	args := []any{status}

	if olderThan > 0 {
		args = append(args, time.Now().UTC().Add(-olderThan))
		query += " AND updated_at < $2"
	}

	query += " ORDER BY created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query jobs by status", "status", status, "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var jobs []job.Job
	for rows.Next() {
		var (
			id        uuid.UUID
			jobType   string
			payload   []byte
			jobStatus job.Status
		)
		if err := rows.Scan(&id, &jobType, &payload, &jobStatus); err != nil {
			log.Error("failed to scan job row", "status", status, "error", err)
			return nil, MapError(err)
		}

		jobs = append(jobs, &recoveredJob{
			id:      id,
			jobType: jobType,
			payload: payload,
			status:  jobStatus,
		})
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating job rows", "status", status, "error", err)
		return nil, MapError(err)
	}

	return jobs, nil
}

// recoveredJob is a job loaded from the database. It carries the
// persisted payload but no execution logic; the runner's resolver
// rebuilds an executable job from it before requeueing.
type recoveredJob struct {
	id      uuid.UUID
	jobType string
	payload []byte
	status  job.Status
}

// ID implements job.Job.ID.
func (j *recoveredJob) ID() uuid.UUID {
	return j.id
}

// Type implements job.Job.Type.
func (j *recoveredJob) Type() string {
	return j.jobType
}

// Payload implements job.Job.Payload.
func (j *recoveredJob) Payload() []byte {
	return j.payload
}

// Status implements job.Job.Status.
func (j *recoveredJob) Status() job.Status {
	return j.status
}

// Execute implements job.Job.Execute.
func (j *recoveredJob) Execute(ctx context.Context) error {
	return errors.New("no execution logic attached to recovered job")
}

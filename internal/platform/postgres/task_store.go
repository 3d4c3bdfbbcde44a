package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
	"github.com/fiscaldesk/fiscaldesk-api/internal/platform/logger"
	"github.com/fiscaldesk/fiscaldesk-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface using
// PostgreSQL. The unique index on (tenant_id, client_id, template_id,
// competence) is what turns concurrent duplicate generation into a
// store.ErrTaskExists instead of a duplicate row.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresTaskStore implements store.TaskStore
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// NewPostgresTaskStore creates a new PostgresTaskStore.
func NewPostgresTaskStore(db store.DBTX, log *slog.Logger) *PostgresTaskStore {
	if log == nil {
		log = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// WithTx returns a TaskStore bound to the provided transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks
			(id, tenant_id, client_id, template_id, title, description, status,
			 competence, due_date, completed_at, assignee_id, priority, notes,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.TenantID,
		task.ClientID,
		nullUUID(task.TemplateID),
		task.Title,
		nullString(task.Description),
		task.Status,
		task.Competence,
		task.DueDate,
		task.CompletedAt,
		task.AssigneeID,
		task.Priority,
		nullString(task.Notes),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrTaskExists, err)
		}
		log.Error("failed to create task",
			"task_id", task.ID,
			"tenant_id", task.TenantID,
			"client_id", task.ClientID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *PostgresTaskStore) GetByID(
	ctx context.Context,
	tenantID, id uuid.UUID,
) (*domain.Task, error) {
	query := taskSelectColumns + `
		FROM tasks
		WHERE tenant_id = $1 AND id = $2
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, MapError(err)
	}

	return task, nil
}

// ExistsForCompetence implements store.TaskStore.ExistsForCompetence.
func (s *PostgresTaskStore) ExistsForCompetence(
	ctx context.Context,
	tenantID, clientID, templateID uuid.UUID,
	competence string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tasks
			WHERE tenant_id = $1 AND client_id = $2 AND template_id = $3 AND competence = $4
		)
	`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, tenantID, clientID, templateID, competence).
		Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}

	return exists, nil
}

// List implements store.TaskStore.List.
func (s *PostgresTaskStore) List(
	ctx context.Context,
	tenantID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := taskSelectColumns + `
		FROM tasks
		WHERE tenant_id = $1`
	args := []any{tenantID}

	if filter.Competence != "" {
		args = append(args, filter.Competence)
		query += fmt.Sprintf(" AND competence = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ClientID != uuid.Nil {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}

	query += " ORDER BY due_date ASC, created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", "tenant_id", tenantID, "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", "error", err)
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", "error", err)
		return nil, MapError(err)
	}

	return tasks, nil
}

// UpdateStatus implements store.TaskStore.UpdateStatus.
func (s *PostgresTaskStore) UpdateStatus(
	ctx context.Context,
	tenantID, id uuid.UUID,
	status domain.TaskStatus,
	completedAt *time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.Valid() {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrInvalidTaskStatus)
	}

	query := `
		UPDATE tasks
		SET status = $1, completed_at = $2, updated_at = $3
		WHERE tenant_id = $4 AND id = $5
	`

	result, err := s.db.ExecContext(ctx, query,
		status,
		completedAt,
		time.Now().UTC(),
		tenantID,
		id,
	)
	if err != nil {
		log.Error("failed to update task status",
			"task_id", id,
			"status", status,
			"error", err)
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

const taskSelectColumns = `
		SELECT id, tenant_id, client_id, template_id, title, description, status,
		       competence, due_date, completed_at, assignee_id, priority, notes,
		       created_at, updated_at`

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		templateID  uuid.NullUUID
		description sql.NullString
		completedAt sql.NullTime
		assigneeID  uuid.NullUUID
		notes       sql.NullString
	)

	err := row.Scan(
		&task.ID,
		&task.TenantID,
		&task.ClientID,
		&templateID,
		&task.Title,
		&description,
		&task.Status,
		&task.Competence,
		&task.DueDate,
		&completedAt,
		&assigneeID,
		&task.Priority,
		&notes,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.TemplateID = templateID.UUID
	task.Description = description.String
	task.Notes = notes.String
	if completedAt.Valid {
		t := completedAt.Time
		task.CompletedAt = &t
	}
	if assigneeID.Valid {
		id := assigneeID.UUID
		task.AssigneeID = &id
	}

	return &task, nil
}

// nullUUID converts uuid.Nil to SQL NULL.
func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

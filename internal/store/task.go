package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
)

// TaskFilter narrows task listings. Zero values mean "no filter".
type TaskFilter struct {
	// Competence filters by the canonical "MM/YYYY" period string.
	Competence string

	// Status filters by workflow status.
	Status domain.TaskStatus

	// ClientID filters by the client the tasks belong to.
	ClientID uuid.UUID
}

// TaskStore defines the interface for task instance persistence.
// All operations are scoped by tenant ID.
type TaskStore interface {
	// Create saves a new task instance to the store.
	// Returns ErrTaskExists when a task for the same (tenant, client,
	// template, competence) combination already exists; the unique index
	// behind this error is what makes generation safe under concurrent
	// invocations.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID within a tenant.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Task, error)

	// ExistsForCompetence reports whether a task generated from the given
	// template already exists for the client in the competence period.
	// This is the generation engine's idempotency pre-check; it is a
	// point lookup scoped by all four keys.
	ExistsForCompetence(
		ctx context.Context,
		tenantID, clientID, templateID uuid.UUID,
		competence string,
	) (bool, error)

	// List retrieves the tasks of a tenant matching the filter, ordered
	// by due date ascending.
	List(ctx context.Context, tenantID uuid.UUID, filter TaskFilter) ([]*domain.Task, error)

	// UpdateStatus transitions a task to the given status, setting or
	// clearing the completion timestamp. Returns ErrTaskNotFound if the
	// task does not exist within the tenant.
	UpdateStatus(
		ctx context.Context,
		tenantID, id uuid.UUID,
		status domain.TaskStatus,
		completedAt *time.Time,
	) error

	// WithTx returns a TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}

package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
)

// TemplateStore defines the interface for task template persistence.
// All read operations are scoped by tenant ID.
type TemplateStore interface {
	// Create saves a new task template to the store.
	// Returns validation errors if the template data is invalid.
	Create(ctx context.Context, template *domain.TaskTemplate) error

	// GetByID retrieves a template by its unique ID within a tenant.
	// Returns ErrTemplateNotFound if the template does not exist.
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.TaskTemplate, error)

	// List retrieves all templates of a tenant ordered by name.
	List(ctx context.Context, tenantID uuid.UUID) ([]*domain.TaskTemplate, error)

	// ListActive retrieves the active templates of a tenant ordered by
	// name. Task generation relies on this pre-filtering.
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]*domain.TaskTemplate, error)

	// WithTx returns a TemplateStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TemplateStore
}

package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
)

// TenantStore defines the interface for tenant persistence.
type TenantStore interface {
	// Create saves a new tenant to the store.
	// Returns ErrDuplicate if a tenant with the same tax ID exists.
	Create(ctx context.Context, tenant *domain.Tenant) error

	// GetByID retrieves a tenant by its unique ID.
	// Returns ErrTenantNotFound if the tenant does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)

	// WithTx returns a TenantStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TenantStore
}

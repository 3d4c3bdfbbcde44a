package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
)

// ClientStore defines the interface for client data persistence.
// All read operations are scoped by tenant ID.
type ClientStore interface {
	// Create saves a new client to the store.
	// Returns validation errors if the client data is invalid and
	// ErrDuplicate if a client with the same tax ID exists for the tenant.
	Create(ctx context.Context, client *domain.Client) error

	// GetByID retrieves a client by its unique ID within a tenant.
	// Returns ErrClientNotFound if the client does not exist.
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Client, error)

	// List retrieves all clients of a tenant ordered by legal name.
	List(ctx context.Context, tenantID uuid.UUID) ([]*domain.Client, error)

	// ListActive retrieves the active clients of a tenant ordered by
	// legal name. Task generation relies on this pre-filtering: the
	// engine itself never re-checks the active flag.
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]*domain.Client, error)

	// WithTx returns a ClientStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ClientStore
}

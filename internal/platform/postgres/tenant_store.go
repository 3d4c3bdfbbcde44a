package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
	"github.com/fiscaldesk/fiscaldesk-api/internal/platform/logger"
	"github.com/fiscaldesk/fiscaldesk-api/internal/store"
)

// PostgresTenantStore implements the store.TenantStore interface using PostgreSQL.
type PostgresTenantStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresTenantStore implements store.TenantStore
var _ store.TenantStore = (*PostgresTenantStore)(nil)

// NewPostgresTenantStore creates a new PostgresTenantStore.
func NewPostgresTenantStore(db store.DBTX, log *slog.Logger) *PostgresTenantStore {
	if log == nil {
		log = slog.Default()
	}
	return &PostgresTenantStore{
		db:     db,
		logger: log.With(slog.String("component", "tenant_store")),
	}
}

// WithTx returns a TenantStore bound to the provided transaction.
func (s *PostgresTenantStore) WithTx(tx *sql.Tx) store.TenantStore {
	return &PostgresTenantStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TenantStore.Create.
func (s *PostgresTenantStore) Create(ctx context.Context, tenant *domain.Tenant) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tenant.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tenants (id, name, tax_id, email, phone, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.TaxID,
		tenant.Email,
		nullString(tenant.Phone),
		tenant.Active,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create tenant", "tenant_id", tenant.ID, "error", err)
		return MapError(err)
	}

	return nil
}

// GetByID implements store.TenantStore.GetByID.
func (s *PostgresTenantStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `
		SELECT id, name, tax_id, email, phone, active, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`

	var (
		tenant domain.Tenant
		phone  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.TaxID,
		&tenant.Email,
		&phone,
		&tenant.Active,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTenantNotFound
		}
		return nil, MapError(err)
	}

	tenant.Phone = phone.String
	return &tenant, nil
}

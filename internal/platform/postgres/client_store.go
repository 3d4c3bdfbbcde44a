package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
	"github.com/fiscaldesk/fiscaldesk-api/internal/platform/logger"
	"github.com/fiscaldesk/fiscaldesk-api/internal/store"
)

// PostgresClientStore implements the store.ClientStore interface using PostgreSQL.
type PostgresClientStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresClientStore implements store.ClientStore
var _ store.ClientStore = (*PostgresClientStore)(nil)

// NewPostgresClientStore creates a new PostgresClientStore.
func NewPostgresClientStore(db store.DBTX, log *slog.Logger) *PostgresClientStore {
	if log == nil {
		log = slog.Default()
	}
	return &PostgresClientStore{
		db:     db,
		logger: log.With(slog.String("component", "client_store")),
	}
}

// WithTx returns a ClientStore bound to the provided transaction.
func (s *PostgresClientStore) WithTx(tx *sql.Tx) store.ClientStore {
	return &PostgresClientStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ClientStore.Create.
func (s *PostgresClientStore) Create(ctx context.Context, client *domain.Client) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := client.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO clients
			(id, tenant_id, entity_type, tax_id, legal_name, trade_name,
			 tax_regime, email, phone, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := s.db.ExecContext(ctx, query,
		client.ID,
		client.TenantID,
		client.Type,
		client.TaxID,
		client.LegalName,
		nullString(client.TradeName),
		nullRegime(client.TaxRegime),
		nullString(client.Email),
		nullString(client.Phone),
		client.Active,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create client",
			"client_id", client.ID,
			"tenant_id", client.TenantID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// GetByID implements store.ClientStore.GetByID.
func (s *PostgresClientStore) GetByID(
	ctx context.Context,
	tenantID, id uuid.UUID,
) (*domain.Client, error) {
	query := clientSelectColumns + `
		FROM clients
		WHERE tenant_id = $1 AND id = $2
	`

	client, err := scanClient(s.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrClientNotFound
		}
		return nil, MapError(err)
	}

	return client, nil
}

// List implements store.ClientStore.List.
func (s *PostgresClientStore) List(
	ctx context.Context,
	tenantID uuid.UUID,
) ([]*domain.Client, error) {
	query := clientSelectColumns + `
		FROM clients
		WHERE tenant_id = $1
		ORDER BY legal_name ASC
	`
	return s.queryClients(ctx, query, tenantID)
}

// ListActive implements store.ClientStore.ListActive.
func (s *PostgresClientStore) ListActive(
	ctx context.Context,
	tenantID uuid.UUID,
) ([]*domain.Client, error) {
	query := clientSelectColumns + `
		FROM clients
		WHERE tenant_id = $1 AND active = TRUE
		ORDER BY legal_name ASC
	`
	return s.queryClients(ctx, query, tenantID)
}

const clientSelectColumns = `
		SELECT id, tenant_id, entity_type, tax_id, legal_name, trade_name,
		       tax_regime, email, phone, active, created_at, updated_at`

func (s *PostgresClientStore) queryClients(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Client, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query clients", "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var clients []*domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			log.Error("failed to scan client row", "error", err)
			return nil, MapError(err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating client rows", "error", err)
		return nil, MapError(err)
	}

	return clients, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var (
		client    domain.Client
		tradeName sql.NullString
		regime    sql.NullString
		email     sql.NullString
		phone     sql.NullString
	)

	err := row.Scan(
		&client.ID,
		&client.TenantID,
		&client.Type,
		&client.TaxID,
		&client.LegalName,
		&tradeName,
		&regime,
		&email,
		&phone,
		&client.Active,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	client.TradeName = tradeName.String
	client.Email = email.String
	client.Phone = phone.String
	if regime.Valid {
		r := domain.TaxRegime(regime.String)
		client.TaxRegime = &r
	}

	return &client, nil
}

// nullString converts an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullRegime converts a nil tax regime to SQL NULL.
func nullRegime(r *domain.TaxRegime) sql.NullString {
	if r == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*r), Valid: true}
}

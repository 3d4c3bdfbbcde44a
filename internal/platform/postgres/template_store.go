package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
	"github.com/fiscaldesk/fiscaldesk-api/internal/platform/logger"
	"github.com/fiscaldesk/fiscaldesk-api/internal/store"
)

// PostgresTemplateStore implements the store.TemplateStore interface
// using PostgreSQL. The applicable tax regime set is stored as JSONB.
type PostgresTemplateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresTemplateStore implements store.TemplateStore
var _ store.TemplateStore = (*PostgresTemplateStore)(nil)

// NewPostgresTemplateStore creates a new PostgresTemplateStore.
func NewPostgresTemplateStore(db store.DBTX, log *slog.Logger) *PostgresTemplateStore {
	if log == nil {
		log = slog.Default()
	}
	return &PostgresTemplateStore{
		db:     db,
		logger: log.With(slog.String("component", "template_store")),
	}
}

// WithTx returns a TemplateStore bound to the provided transaction.
func (s *PostgresTemplateStore) WithTx(tx *sql.Tx) store.TemplateStore {
	return &PostgresTemplateStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TemplateStore.Create.
func (s *PostgresTemplateStore) Create(ctx context.Context, template *domain.TaskTemplate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := template.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	regimes := template.AppliesToRegimes
	if regimes == nil {
		regimes = []domain.TaxRegime{}
	}
	regimesJSON, err := json.Marshal(regimes)
	if err != nil {
		return fmt.Errorf("failed to marshal applicable regimes: %w", err)
	}

	query := `
		INSERT INTO task_templates
			(id, tenant_id, name, description, recurrence, due_day,
			 adjust_to_business_day, applies_to_regimes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = s.db.ExecContext(ctx, query,
		template.ID,
		template.TenantID,
		template.Name,
		nullString(template.Description),
		template.Recurrence,
		template.DueDay,
		template.AdjustToBusinessDay,
		regimesJSON,
		template.Active,
		template.CreatedAt,
		template.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create template",
			"template_id", template.ID,
			"tenant_id", template.TenantID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// GetByID implements store.TemplateStore.GetByID.
func (s *PostgresTemplateStore) GetByID(
	ctx context.Context,
	tenantID, id uuid.UUID,
) (*domain.TaskTemplate, error) {
	query := templateSelectColumns + `
		FROM task_templates
		WHERE tenant_id = $1 AND id = $2
	`

	template, err := scanTemplate(s.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrTemplateNotFound
		}
		return nil, MapError(err)
	}

	return template, nil
}

// List implements store.TemplateStore.List.
func (s *PostgresTemplateStore) List(
	ctx context.Context,
	tenantID uuid.UUID,
) ([]*domain.TaskTemplate, error) {
	query := templateSelectColumns + `
		FROM task_templates
		WHERE tenant_id = $1
		ORDER BY name ASC
	`
	return s.queryTemplates(ctx, query, tenantID)
}

// ListActive implements store.TemplateStore.ListActive.
func (s *PostgresTemplateStore) ListActive(
	ctx context.Context,
	tenantID uuid.UUID,
) ([]*domain.TaskTemplate, error) {
	query := templateSelectColumns + `
		FROM task_templates
		WHERE tenant_id = $1 AND active = TRUE
		ORDER BY name ASC
	`
	return s.queryTemplates(ctx, query, tenantID)
}

const templateSelectColumns = `
		SELECT id, tenant_id, name, description, recurrence, due_day,
		       adjust_to_business_day, applies_to_regimes, active, created_at, updated_at`

func (s *PostgresTemplateStore) queryTemplates(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.TaskTemplate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query templates", "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var templates []*domain.TaskTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			log.Error("failed to scan template row", "error", err)
			return nil, MapError(err)
		}
		templates = append(templates, template)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating template rows", "error", err)
		return nil, MapError(err)
	}

	return templates, nil
}

func scanTemplate(row rowScanner) (*domain.TaskTemplate, error) {
	var (
		template    domain.TaskTemplate
		description sql.NullString
		regimesJSON []byte
	)

	err := row.Scan(
		&template.ID,
		&template.TenantID,
		&template.Name,
		&description,
		&template.Recurrence,
		&template.DueDay,
		&template.AdjustToBusinessDay,
		&regimesJSON,
		&template.Active,
		&template.CreatedAt,
		&template.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	template.Description = description.String
	if len(regimesJSON) > 0 {
		if err := json.Unmarshal(regimesJSON, &template.AppliesToRegimes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal applicable regimes: %w", err)
		}
	}

	return &template, nil
}

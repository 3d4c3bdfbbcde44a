package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
	"github.com/fiscaldesk/fiscaldesk-api/internal/platform/logger"
	"github.com/fiscaldesk/fiscaldesk-api/internal/store"
)

// PostgresAuditLogStore implements the store.AuditLogStore interface
// using PostgreSQL.
type PostgresAuditLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresAuditLogStore implements store.AuditLogStore
var _ store.AuditLogStore = (*PostgresAuditLogStore)(nil)

// NewPostgresAuditLogStore creates a new PostgresAuditLogStore.
func NewPostgresAuditLogStore(db store.DBTX, log *slog.Logger) *PostgresAuditLogStore {
	if log == nil {
		log = slog.Default()
	}
	return &PostgresAuditLogStore{
		db:     db,
		logger: log.With(slog.String("component", "audit_store")),
	}
}

// WithTx returns an AuditLogStore bound to the provided transaction.
func (s *PostgresAuditLogStore) WithTx(tx *sql.Tx) store.AuditLogStore {
	return &PostgresAuditLogStore{
		db:     tx,
		logger: s.logger,
	}
}

// Append implements store.AuditLogStore.Append.
func (s *PostgresAuditLogStore) Append(ctx context.Context, entry *domain.AuditEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO task_audit_log
			(id, task_id, user_id, user_name, change_type, field,
			 old_value, new_value, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.TaskID,
		entry.UserID,
		entry.UserName,
		entry.ChangeType,
		nullString(entry.Field),
		nullString(entry.OldValue),
		nullString(entry.NewValue),
		entry.Description,
		entry.CreatedAt,
	)
	if err != nil {
		log.Error("failed to append audit entry",
			"task_id", entry.TaskID,
			"change_type", entry.ChangeType,
			"error", err)
		return MapError(err)
	}

	return nil
}

// ListByTask implements store.AuditLogStore.ListByTask.
func (s *PostgresAuditLogStore) ListByTask(
	ctx context.Context,
	taskID uuid.UUID,
) ([]*domain.AuditEntry, error) {
	query := `
		SELECT id, task_id, user_id, user_name, change_type, field,
		       old_value, new_value, description, created_at
		FROM task_audit_log
		WHERE task_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.AuditEntry
	for rows.Next() {
		var (
			entry    domain.AuditEntry
			userID   uuid.NullUUID
			field    sql.NullString
			oldValue sql.NullString
			newValue sql.NullString
		)
		err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&userID,
			&entry.UserName,
			&entry.ChangeType,
			&field,
			&oldValue,
			&newValue,
			&entry.Description,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}

		if userID.Valid {
			id := userID.UUID
			entry.UserID = &id
		}
		entry.Field = field.String
		entry.OldValue = oldValue.String
		entry.NewValue = newValue.String

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return entries, nil
}

// PostgresHistoryStore implements the store.HistoryStore interface
// using PostgreSQL.
type PostgresHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresHistoryStore implements store.HistoryStore
var _ store.HistoryStore = (*PostgresHistoryStore)(nil)

// NewPostgresHistoryStore creates a new PostgresHistoryStore.
func NewPostgresHistoryStore(db store.DBTX, log *slog.Logger) *PostgresHistoryStore {
	if log == nil {
		log = slog.Default()
	}
	return &PostgresHistoryStore{
		db:     db,
		logger: log.With(slog.String("component", "history_store")),
	}
}

// WithTx returns a HistoryStore bound to the provided transaction.
func (s *PostgresHistoryStore) WithTx(tx *sql.Tx) store.HistoryStore {
	return &PostgresHistoryStore{
		db:     tx,
		logger: s.logger,
	}
}

// Append implements store.HistoryStore.Append.
func (s *PostgresHistoryStore) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO task_history
			(id, task_id, user_id, from_status, to_status, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var fromStatus sql.NullString
	if entry.FromStatus != nil {
		fromStatus = sql.NullString{String: string(*entry.FromStatus), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.TaskID,
		entry.UserID,
		fromStatus,
		entry.ToStatus,
		nullString(entry.Comment),
		entry.CreatedAt,
	)
	if err != nil {
		log.Error("failed to append history entry",
			"task_id", entry.TaskID,
			"to_status", entry.ToStatus,
			"error", err)
		return MapError(err)
	}

	return nil
}

// ListByTask implements store.HistoryStore.ListByTask.
func (s *PostgresHistoryStore) ListByTask(
	ctx context.Context,
	taskID uuid.UUID,
) ([]*domain.HistoryEntry, error) {
	query := `
		SELECT id, task_id, user_id, from_status, to_status, comment, created_at
		FROM task_history
		WHERE task_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		var (
			entry      domain.HistoryEntry
			userID     uuid.NullUUID
			fromStatus sql.NullString
			comment    sql.NullString
		)
		err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&userID,
			&fromStatus,
			&entry.ToStatus,
			&comment,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}

		if userID.Valid {
			id := userID.UUID
			entry.UserID = &id
		}
		if fromStatus.Valid {
			status := domain.TaskStatus(fromStatus.String)
			entry.FromStatus = &status
		}
		entry.Comment = comment.String

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return entries, nil
}

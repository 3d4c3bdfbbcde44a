package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
)

// AuditLogStore defines the interface for the task audit trail.
// Entries are append-only; nothing ever updates or deletes them.
type AuditLogStore interface {
	// Append records one audit entry.
	Append(ctx context.Context, entry *domain.AuditEntry) error

	// ListByTask retrieves the audit entries of a task, newest first.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.AuditEntry, error)

	// WithTx returns an AuditLogStore bound to the provided transaction.
	WithTx(tx *sql.Tx) AuditLogStore
}

// HistoryStore defines the interface for task status history.
// Entries are append-only.
type HistoryStore interface {
	// Append records one status transition.
	Append(ctx context.Context, entry *domain.HistoryEntry) error

	// ListByTask retrieves the history of a task, newest first.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.HistoryEntry, error)

	// WithTx returns a HistoryStore bound to the provided transaction.
	WithTx(tx *sql.Tx) HistoryStore
}

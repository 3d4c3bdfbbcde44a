package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
	"github.com/fiscaldesk/fiscaldesk-api/internal/platform/logger"
	"github.com/fiscaldesk/fiscaldesk-api/internal/store"
)

// Actor identifies the user performing a task mutation, for the history
// and audit trail.
type Actor struct {
	UserID   uuid.UUID
	UserName string
}

// TaskService implements the task status workflow. Status transitions,
// their history entries, and their audit entries are written in a single
// transaction so the trail can never diverge from the task.
type TaskService struct {
	db           *sql.DB
	taskStore    store.TaskStore
	historyStore store.HistoryStore
	auditStore   store.AuditLogStore
	logger       *slog.Logger
}

// NewTaskService creates a new TaskService.
// All dependencies are required.
func NewTaskService(
	db *sql.DB,
	taskStore store.TaskStore,
	historyStore store.HistoryStore,
	auditStore store.AuditLogStore,
	log *slog.Logger,
) (*TaskService, error) {
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	if taskStore == nil {
		return nil, fmt.Errorf("task store cannot be nil")
	}
	if historyStore == nil {
		return nil, fmt.Errorf("history store cannot be nil")
	}
	if auditStore == nil {
		return nil, fmt.Errorf("audit store cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &TaskService{
		db:           db,
		taskStore:    taskStore,
		historyStore: historyStore,
		auditStore:   auditStore,
		logger:       log.With(slog.String("component", "task_service")),
	}, nil
}

// List retrieves the tenant's tasks matching the filter, ordered by due
// date ascending.
func (s *TaskService) List(
	ctx context.Context,
	tenantID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	return s.taskStore.List(ctx, tenantID, filter)
}

// GetByID retrieves one task of the tenant.
func (s *TaskService) GetByID(
	ctx context.Context,
	tenantID, taskID uuid.UUID,
) (*domain.Task, error) {
	return s.taskStore.GetByID(ctx, tenantID, taskID)
}

// History retrieves the status history of a task, newest first. The task
// is looked up first so callers cannot read history across tenants.
func (s *TaskService) History(
	ctx context.Context,
	tenantID, taskID uuid.UUID,
) ([]*domain.HistoryEntry, error) {
	if _, err := s.taskStore.GetByID(ctx, tenantID, taskID); err != nil {
		return nil, err
	}
	return s.historyStore.ListByTask(ctx, taskID)
}

// AuditTrail retrieves the audit entries of a task, newest first, with
// the same tenant scoping as History.
func (s *TaskService) AuditTrail(
	ctx context.Context,
	tenantID, taskID uuid.UUID,
) ([]*domain.AuditEntry, error) {
	if _, err := s.taskStore.GetByID(ctx, tenantID, taskID); err != nil {
		return nil, err
	}
	return s.auditStore.ListByTask(ctx, taskID)
}

// UpdateStatus transitions a task to the given status on behalf of the
// actor, recording the transition in the task history and audit trail.
// Completing a task stamps CompletedAt; leaving the completed status
// clears it again.
func (s *TaskService) UpdateStatus(
	ctx context.Context,
	tenantID, taskID uuid.UUID,
	newStatus domain.TaskStatus,
	comment string,
	actor Actor,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !newStatus.Valid() {
		return nil, domain.ErrInvalidTaskStatus
	}

	task, err := s.taskStore.GetByID(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}

	oldStatus := task.Status
	var completedAt *time.Time
	if newStatus == domain.TaskStatusCompleted {
		now := time.Now().UTC()
		completedAt = &now
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.taskStore.WithTx(tx).UpdateStatus(ctx, tenantID, taskID, newStatus, completedAt); err != nil {
			return err
		}

		history := domain.NewHistoryEntry(taskID, &actor.UserID, &oldStatus, newStatus, comment)
		if err := s.historyStore.WithTx(tx).Append(ctx, history); err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}

		audit := domain.NewAuditEntry(
			taskID,
			&actor.UserID,
			actor.UserName,
			changeTypeForTransition(oldStatus, newStatus),
			fmt.Sprintf("status changed from %s to %s", oldStatus, newStatus),
		)
		if err := s.auditStore.WithTx(tx).Append(ctx, audit); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error("failed to update task status",
			"task_id", taskID,
			"from", oldStatus,
			"to", newStatus,
			"error", err)
		return nil, err
	}

	task.Status = newStatus
	task.CompletedAt = completedAt
	task.UpdatedAt = time.Now().UTC()

	log.Info("task status updated",
		"task_id", taskID,
		"from", oldStatus,
		"to", newStatus,
		"user_id", actor.UserID)

	return task, nil
}

// changeTypeForTransition classifies a status transition for the audit
// trail: entering completed is a completion, leaving it is a reopening,
// anything else is a plain status change.
func changeTypeForTransition(from, to domain.TaskStatus) domain.ChangeType {
	switch {
	case to == domain.TaskStatusCompleted:
		return domain.ChangeTypeCompletion
	case from == domain.TaskStatusCompleted:
		return domain.ChangeTypeReopening
	default:
		return domain.ChangeTypeStatusChange
	}
}

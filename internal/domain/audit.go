package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChangeType classifies an audit log entry.
type ChangeType string

// Supported audit change types.
const (
	ChangeTypeCreation       ChangeType = "creation"
	ChangeTypeStatusChange   ChangeType = "status_change"
	ChangeTypeAssigneeChange ChangeType = "assignee_change"
	ChangeTypePriorityChange ChangeType = "priority_change"
	ChangeTypeDueDateChange  ChangeType = "due_date_change"
	ChangeTypeCompletion     ChangeType = "completion"
	ChangeTypeReopening      ChangeType = "reopening"
	ChangeTypeGeneral        ChangeType = "general"
)

// AuditEntry records one change made to a task, who made it, and a
// human-readable description. UserID is nil for system-generated changes
// (e.g. automatic task generation); UserName is kept denormalized so the
// trail survives user deletion.
type AuditEntry struct {
	ID         uuid.UUID  `json:"id"`
	TaskID     uuid.UUID  `json:"task_id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	UserName   string     `json:"user_name"`
	ChangeType ChangeType `json:"change_type"`
	Field      string     `json:"field,omitempty"`
	OldValue   string     `json:"old_value,omitempty"`
	NewValue   string     `json:"new_value,omitempty"`

	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAuditEntry creates an audit entry with a generated ID and timestamp.
func NewAuditEntry(
	taskID uuid.UUID,
	userID *uuid.UUID,
	userName string,
	changeType ChangeType,
	description string,
) *AuditEntry {
	return &AuditEntry{
		ID:          uuid.New(),
		TaskID:      taskID,
		UserID:      userID,
		UserName:    userName,
		ChangeType:  changeType,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// HistoryEntry records one status transition of a task, with an optional
// free-form comment from the user who made it. FromStatus is nil for the
// initial transition recorded at creation.
type HistoryEntry struct {
	ID         uuid.UUID   `json:"id"`
	TaskID     uuid.UUID   `json:"task_id"`
	UserID     *uuid.UUID  `json:"user_id,omitempty"`
	FromStatus *TaskStatus `json:"from_status,omitempty"`
	ToStatus   TaskStatus  `json:"to_status"`
	Comment    string      `json:"comment,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewHistoryEntry creates a history entry with a generated ID and timestamp.
func NewHistoryEntry(
	taskID uuid.UUID,
	userID *uuid.UUID,
	fromStatus *TaskStatus,
	toStatus TaskStatus,
	comment string,
) *HistoryEntry {
	return &HistoryEntry{
		ID:         uuid.New(),
		TaskID:     taskID,
		UserID:     userID,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}
}

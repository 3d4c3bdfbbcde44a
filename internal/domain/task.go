package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskTenantIDEmpty is returned when a task's tenant ID is empty or nil.
	ErrTaskTenantIDEmpty = errors.New("task tenant ID cannot be empty")

	// ErrTaskClientIDEmpty is returned when a task's client ID is empty or nil.
	ErrTaskClientIDEmpty = errors.New("task client ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskCompetenceEmpty is returned when a task's competence is empty.
	ErrTaskCompetenceEmpty = errors.New("task competence cannot be empty")

	// ErrTaskDueDateZero is returned when a task's due date is unset.
	ErrTaskDueDateZero = errors.New("task due date cannot be zero")
)

// TaskStatus is the workflow state of a task instance.
type TaskStatus string

// Task workflow statuses.
const (
	TaskStatusPending        TaskStatus = "pending"
	TaskStatusInProgress     TaskStatus = "in_progress"
	TaskStatusAwaitingClient TaskStatus = "awaiting_client"
	TaskStatusReview         TaskStatus = "review"
	TaskStatusCompleted      TaskStatus = "completed"
)

// Valid reports whether the status is one of the workflow states.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusAwaitingClient,
		TaskStatusReview, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// TaskPriority is the urgency classification of a task instance.
type TaskPriority string

// Task priorities.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether the priority is one of the supported values.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// Task is one concrete occurrence of an obligation for one client in one
// competence period. Generated tasks copy their title and description
// from the originating template at generation time; later template edits
// do not propagate.
type Task struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	ClientID uuid.UUID `json:"client_id"`

	// TemplateID is the originating template, or uuid.Nil for tasks
	// created manually.
	TemplateID uuid.UUID `json:"template_id,omitempty"`

	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`

	// Competence is the canonical "MM/YYYY" period string.
	Competence string `json:"competence"`

	// DueDate is a calendar date with no time component (midnight UTC).
	DueDate     time.Time    `json:"due_date"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	AssigneeID  *uuid.UUID   `json:"assignee_id,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewGeneratedTask creates the task instance for one (template, client)
// pair in one competence period: title and description are copied from
// the template, status starts as pending and priority as medium.
// Returns an error if validation fails.
func NewGeneratedTask(
	template *TaskTemplate,
	client *Client,
	competence string,
	dueDate time.Time,
) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		TenantID:    template.TenantID,
		ClientID:    client.ID,
		TemplateID:  template.ID,
		Title:       template.Name,
		Description: template.Description,
		Status:      TaskStatusPending,
		Competence:  competence,
		DueDate:     dueDate,
		Priority:    TaskPriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.TenantID == uuid.Nil {
		return ErrTaskTenantIDEmpty
	}

	if t.ClientID == uuid.Nil {
		return ErrTaskClientIDEmpty
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if !t.Status.Valid() {
		return ErrInvalidTaskStatus
	}

	if t.Competence == "" {
		return ErrTaskCompetenceEmpty
	}

	if t.DueDate.IsZero() {
		return ErrTaskDueDateZero
	}

	if !t.Priority.Valid() {
		return ErrInvalidTaskPriority
	}

	return nil
}

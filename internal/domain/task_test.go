package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewGeneratedTask(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	template := &TaskTemplate{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Name:        "DCTF filing",
		Description: "Federal tax declaration",
		Recurrence:  RecurrenceMonthly,
		DueDay:      15,
	}
	client := &Client{
		ID:        uuid.New(),
		TenantID:  tenantID,
		TaxID:     "12345678000190",
		LegalName: "Acme Ltda",
	}
	dueDate := time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC)

	task, err := NewGeneratedTask(template, client, "01/2025", dueDate)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil task ID")
	}
	if task.TenantID != tenantID {
		t.Errorf("Expected tenant ID %v, got %v", tenantID, task.TenantID)
	}
	if task.ClientID != client.ID {
		t.Errorf("Expected client ID %v, got %v", client.ID, task.ClientID)
	}
	if task.TemplateID != template.ID {
		t.Errorf("Expected template ID %v, got %v", template.ID, task.TemplateID)
	}

	// Title and description are copied from the template at generation time.
	if task.Title != template.Name {
		t.Errorf("Expected title %q, got %q", template.Name, task.Title)
	}
	if task.Description != template.Description {
		t.Errorf("Expected description %q, got %q", template.Description, task.Description)
	}

	if task.Status != TaskStatusPending {
		t.Errorf("Expected status pending, got %s", task.Status)
	}
	if task.Priority != TaskPriorityMedium {
		t.Errorf("Expected priority medium, got %s", task.Priority)
	}
	if task.Competence != "01/2025" {
		t.Errorf("Expected competence 01/2025, got %s", task.Competence)
	}
	if !task.DueDate.Equal(dueDate) {
		t.Errorf("Expected due date %v, got %v", dueDate, task.DueDate)
	}
	if task.CompletedAt != nil {
		t.Error("Expected nil CompletedAt for a new task")
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	validTask := Task{
		ID:         uuid.New(),
		TenantID:   uuid.New(),
		ClientID:   uuid.New(),
		Title:      "Payroll closing",
		Status:     TaskStatusPending,
		Competence: "03/2025",
		DueDate:    time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC),
		Priority:   TaskPriorityMedium,
	}

	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalid := validTask
	invalid.ID = uuid.Nil
	if err := invalid.Validate(); err != ErrTaskIDEmpty {
		t.Errorf("Expected ErrTaskIDEmpty, got %v", err)
	}

	invalid = validTask
	invalid.Title = ""
	if err := invalid.Validate(); err != ErrTaskTitleEmpty {
		t.Errorf("Expected ErrTaskTitleEmpty, got %v", err)
	}

	invalid = validTask
	invalid.Status = TaskStatus("archived")
	if err := invalid.Validate(); err != ErrInvalidTaskStatus {
		t.Errorf("Expected ErrInvalidTaskStatus, got %v", err)
	}

	invalid = validTask
	invalid.Competence = ""
	if err := invalid.Validate(); err != ErrTaskCompetenceEmpty {
		t.Errorf("Expected ErrTaskCompetenceEmpty, got %v", err)
	}

	invalid = validTask
	invalid.DueDate = time.Time{}
	if err := invalid.Validate(); err != ErrTaskDueDateZero {
		t.Errorf("Expected ErrTaskDueDateZero, got %v", err)
	}

	invalid = validTask
	invalid.Priority = TaskPriority("urgent")
	if err := invalid.Validate(); err != ErrInvalidTaskPriority {
		t.Errorf("Expected ErrInvalidTaskPriority, got %v", err)
	}
}

func TestTaskStatusValid(t *testing.T) {
	t.Parallel()

	valid := []TaskStatus{
		TaskStatusPending, TaskStatusInProgress, TaskStatusAwaitingClient,
		TaskStatusReview, TaskStatusCompleted,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("Expected status %s to be valid", s)
		}
	}

	if TaskStatus("done").Valid() {
		t.Error("Expected unknown status to be invalid")
	}
}

package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/api/shared"
	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
	"github.com/fiscaldesk/fiscaldesk-api/internal/domain/schedule"
	"github.com/fiscaldesk/fiscaldesk-api/internal/service"
	"github.com/fiscaldesk/fiscaldesk-api/internal/store"
)

// TaskHandler handles task listing and workflow API requests.
type TaskHandler struct {
	taskService *service.TaskService
	userStore   store.UserStore
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService *service.TaskService, userStore store.UserStore) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		userStore:   userStore,
		validator:   validator.New(),
	}
}

// List handles GET /tasks. Supports optional competence, status and
// client_id query filters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := requestScope(w, r)
	if !ok {
		return
	}

	filter := store.TaskFilter{
		Competence: r.URL.Query().Get("competence"),
	}

	if status := r.URL.Query().Get("status"); status != "" {
		taskStatus := domain.TaskStatus(status)
		if !taskStatus.Valid() {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter.Status = taskStatus
	}

	if clientParam := r.URL.Query().Get("client_id"); clientParam != "" {
		clientID, err := uuid.Parse(clientParam)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid client_id filter")
			return
		}
		filter.ClientID = clientID
	}

	tasks, err := h.taskService.List(r.Context(), tenantID, filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list tasks", err)
		return
	}

	now := time.Now().UTC()
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, TaskResponse{
			Task:         task,
			DaysUntilDue: schedule.DaysUntil(task.DueDate, now),
			Overdue:      task.Status != domain.TaskStatusCompleted && schedule.IsOverdue(task.DueDate, now),
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := requestScope(w, r)
	if !ok {
		return
	}

	taskID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(r.Context(), tenantID, taskID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateStatus handles PATCH /tasks/{id}/status.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, ok := requestScope(w, r)
	if !ok {
		return
	}

	taskID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	actor := service.Actor{UserID: userID}
	if user, err := h.userStore.GetByID(r.Context(), userID); err == nil {
		actor.UserName = user.Name
	}

	task, err := h.taskService.UpdateStatus(
		r.Context(),
		tenantID,
		taskID,
		domain.TaskStatus(req.Status),
		req.Comment,
		actor,
	)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// History handles GET /tasks/{id}/history.
func (h *TaskHandler) History(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := requestScope(w, r)
	if !ok {
		return
	}

	taskID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	history, err := h.taskService.History(r.Context(), tenantID, taskID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, history)
}

// AuditTrail handles GET /tasks/{id}/audit.
func (h *TaskHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := requestScope(w, r)
	if !ok {
		return
	}

	taskID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	entries, err := h.taskService.AuditTrail(r.Context(), tenantID, taskID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

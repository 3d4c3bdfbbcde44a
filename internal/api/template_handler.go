package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fiscaldesk/fiscaldesk-api/internal/api/shared"
	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
	"github.com/fiscaldesk/fiscaldesk-api/internal/store"
)

// TemplateHandler handles task template management API requests.
type TemplateHandler struct {
	templateStore store.TemplateStore
	validator     *validator.Validate
}

// NewTemplateHandler creates a new TemplateHandler with the given dependencies.
func NewTemplateHandler(templateStore store.TemplateStore) *TemplateHandler {
	return &TemplateHandler{
		templateStore: templateStore,
		validator:     validator.New(),
	}
}

// Create handles POST /templates.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := requestScope(w, r)
	if !ok {
		return
	}

	var req CreateTemplateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	regimes := make([]domain.TaxRegime, 0, len(req.AppliesToRegimes))
	for _, regime := range req.AppliesToRegimes {
		regimes = append(regimes, domain.TaxRegime(regime))
	}

	template, err := domain.NewTaskTemplate(
		tenantID,
		req.Name,
		req.Description,
		domain.Recurrence(req.Recurrence),
		req.DueDay,
		req.AdjustToBusinessDay,
		regimes,
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid template data")
		return
	}

	if err := h.templateStore.Create(r.Context(), template); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create template", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, template)
}

// List handles GET /templates.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := requestScope(w, r)
	if !ok {
		return
	}

	templates, err := h.templateStore.List(r.Context(), tenantID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list templates", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, templates)
}

// Get handles GET /templates/{id}.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := requestScope(w, r)
	if !ok {
		return
	}

	templateID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	template, err := h.templateStore.GetByID(r.Context(), tenantID, templateID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, template)
}

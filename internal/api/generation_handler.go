package api

import (
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/api/shared"
	"github.com/fiscaldesk/fiscaldesk-api/internal/job"
	"github.com/fiscaldesk/fiscaldesk-api/internal/service"
)

// competenceRegex enforces the canonical "MM/YYYY" shape at the HTTP
// boundary. The engine's own parser is more permissive; requests are not.
var competenceRegex = regexp.MustCompile(`^\d{2}/\d{4}$`)

// maxReportedFailures caps how many per-pair failure messages a
// synchronous generation response carries.
const maxReportedFailures = 5

// GenerationHandler handles recurring task generation API requests.
type GenerationHandler struct {
	generationService *service.GenerationService
	jobRunner         *job.Runner
	logger            *slog.Logger
	validator         *validator.Validate
}

// NewGenerationHandler creates a new GenerationHandler with the given
// dependencies.
func NewGenerationHandler(
	generationService *service.GenerationService,
	jobRunner *job.Runner,
	logger *slog.Logger,
) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		jobRunner:         jobRunner,
		logger:            logger.With(slog.String("component", "generation_handler")),
		validator:         validator.New(),
	}
}

// Generate handles POST /tasks/generate. Synchronous requests run the
// batch inline and return the outcome; async requests enqueue a
// background job and return 202 with its ID.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := requestScope(w, r)
	if !ok {
		return
	}

	var req GenerateTasksRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if !competenceRegex.MatchString(req.Competence) {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Competence must be in MM/YYYY format")
		return
	}

	if req.Async {
		h.generateAsync(w, r, tenantID, req.Competence)
		return
	}

	outcome, err := h.generationService.Run(r.Context(), tenantID, req.Competence)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	outcome.Failures = outcome.TruncateFailures(maxReportedFailures)
	shared.RespondWithJSON(w, r, http.StatusOK, outcome)
}

// generateAsync enqueues a background generation job for the tenant.
func (h *GenerationHandler) generateAsync(
	w http.ResponseWriter,
	r *http.Request,
	tenantID uuid.UUID,
	competence string,
) {
	generationJob, err := job.NewGenerationJob(tenantID, competence, h.generationService, h.logger)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create generation job", err)
		return
	}

	if err := h.jobRunner.Submit(r.Context(), generationJob); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
			"Generation queue is full, try again later", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, GenerationAcceptedResponse{
		JobID:  generationJob.ID(),
		Status: string(generationJob.Status()),
	})
}

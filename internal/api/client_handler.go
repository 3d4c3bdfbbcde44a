package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fiscaldesk/fiscaldesk-api/internal/api/shared"
	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
	"github.com/fiscaldesk/fiscaldesk-api/internal/store"
)

// ClientHandler handles client management API requests.
type ClientHandler struct {
	clientStore store.ClientStore
	validator   *validator.Validate
}

// NewClientHandler creates a new ClientHandler with the given dependencies.
func NewClientHandler(clientStore store.ClientStore) *ClientHandler {
	return &ClientHandler{
		clientStore: clientStore,
		validator:   validator.New(),
	}
}

// Create handles POST /clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := requestScope(w, r)
	if !ok {
		return
	}

	var req CreateClientRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	var regime *domain.TaxRegime
	if req.TaxRegime != nil {
		r := domain.TaxRegime(*req.TaxRegime)
		regime = &r
	}

	client, err := domain.NewClient(
		tenantID,
		domain.EntityType(req.Type),
		req.TaxID,
		req.LegalName,
		regime,
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid client data")
		return
	}
	client.TradeName = req.TradeName
	client.Email = req.Email
	client.Phone = req.Phone

	if err := h.clientStore.Create(r.Context(), client); err != nil {
		if store.IsDuplicateError(err) {
			shared.RespondWithError(w, r, http.StatusConflict, "Client already exists")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create client", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, client)
}

// List handles GET /clients.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := requestScope(w, r)
	if !ok {
		return
	}

	clients, err := h.clientStore.List(r.Context(), tenantID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list clients", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, clients)
}

// Get handles GET /clients/{id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := requestScope(w, r)
	if !ok {
		return
	}

	clientID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	client, err := h.clientStore.GetByID(r.Context(), tenantID, clientID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, client)
}

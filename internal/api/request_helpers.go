package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/api/middleware"
	"github.com/fiscaldesk/fiscaldesk-api/internal/api/shared"
)

// requestScope extracts the authenticated user and tenant IDs from the
// request context. It writes an error response and returns false when
// either is missing, which means the authentication middleware did not
// run or the token was malformed.
func requestScope(w http.ResponseWriter, r *http.Request) (userID, tenantID uuid.UUID, ok bool) {
	userID, ok = middleware.GetUserID(r)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User not found in request context")
		return uuid.Nil, uuid.Nil, false
	}

	tenantID, ok = middleware.GetTenantID(r)
	if !ok || tenantID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Tenant not found in request context")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, tenantID, true
}

// pathUUID extracts and parses a UUID path parameter. It writes a 400
// response and returns false when the parameter is missing or malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing "+paramName+" parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+paramName+" format")
		return uuid.Nil, false
	}

	return id, true
}

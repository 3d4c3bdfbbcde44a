package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscaldesk/fiscaldesk-api/internal/config"
	"github.com/fiscaldesk/fiscaldesk-api/internal/service/auth"
)

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()

	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:         "test-signing-key-that-is-long-enough",
		TokenLifetimeMins: 60,
	})
	require.NoError(t, err)
	return svc
}

// scopeRecorder captures the IDs the middleware placed in the context.
type scopeRecorder struct {
	called   bool
	userID   uuid.UUID
	tenantID uuid.UUID
	userOK   bool
	tenantOK bool
}

func (s *scopeRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.called = true
		s.userID, s.userOK = GetUserID(r)
		s.tenantID, s.tenantOK = GetTenantID(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateValidToken(t *testing.T) {
	t.Parallel()

	jwtService := newTestJWTService(t)
	userID := uuid.New()
	tenantID := uuid.New()

	token, err := jwtService.GenerateToken(context.Background(), userID, tenantID)
	require.NoError(t, err)

	recorder := &scopeRecorder{}
	middleware := NewAuthMiddleware(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	middleware.Authenticate(recorder.handler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.True(t, recorder.called)
	assert.True(t, recorder.userOK)
	assert.True(t, recorder.tenantOK)
	assert.Equal(t, userID, recorder.userID)
	assert.Equal(t, tenantID, recorder.tenantID)
}

func TestAuthenticateRejectsBadRequests(t *testing.T) {
	t.Parallel()

	jwtService := newTestJWTService(t)

	testCases := []struct {
		name       string
		authHeader string
	}{
		{
			name:       "missing header",
			authHeader: "",
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwYXNz",
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not-a-jwt",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			recorder := &scopeRecorder{}
			middleware := NewAuthMiddleware(jwtService)

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()

			middleware.Authenticate(recorder.handler()).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.False(t, recorder.called, "handler must not run for unauthorized requests")
		})
	}
}

func TestAuthenticateRejectsTokenWithoutTenant(t *testing.T) {
	t.Parallel()

	jwtService := newTestJWTService(t)

	token, err := jwtService.GenerateToken(context.Background(), uuid.New(), uuid.Nil)
	require.NoError(t, err)

	recorder := &scopeRecorder{}
	middleware := NewAuthMiddleware(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	middleware.Authenticate(recorder.handler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, recorder.called)
}

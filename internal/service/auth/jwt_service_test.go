package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/config"
)

const testSigningKey = "test-signing-key-that-is-long-enough"

// newTestService builds an hmacJWTService with a fixed clock so expiry
// behavior can be tested deterministically.
func newTestService(t *testing.T, now time.Time) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:         testSigningKey,
		TokenLifetimeMins: 60,
	})
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)
	impl.timeFunc = func() time.Time { return now }
	return impl
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{
		JWTSecret:         "short",
		TokenLifetimeMins: 60,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.August, 11, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	userID := uuid.New()
	tenantID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID, tenantID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, now.Add(60*time.Minute).Unix(), claims.ExpiresAt.Unix())
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, time.August, 11, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, issuedAt)

	token, err := svc.GenerateToken(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)

	// Past the lifetime plus the clock skew leeway.
	svc.timeFunc = func() time.Time { return issuedAt.Add(63 * time.Minute) }

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWithinClockSkew(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, time.August, 11, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, issuedAt)

	token, err := svc.GenerateToken(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)

	// Just past expiry but inside the 2 minute leeway.
	svc.timeFunc = func() time.Time { return issuedAt.Add(61 * time.Minute) }

	_, err = svc.ValidateToken(context.Background(), token)
	assert.NoError(t, err)
}

func TestValidateTokenTampered(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.August, 11, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	token, err := svc.GenerateToken(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)

	// Corrupt the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, err = svc.ValidateToken(context.Background(), tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenWrongKey(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.August, 11, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	token, err := svc.GenerateToken(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)

	other := newTestService(t, now)
	other.signingKey = []byte("a-completely-different-signing-key-0")

	_, err = other.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenMalformed(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.August, 11, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

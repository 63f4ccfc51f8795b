package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyseven/dailyseven-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func newTestJWTService(t *testing.T, now time.Time) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)
	impl.timeFunc = func() time.Time { return now }
	return impl
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	cfg.JWTSecret = "too-short"
	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, now)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, now.Add(time.Hour), claims.ExpiresAt)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, now)
	ctx := context.Background()

	token, err := svc.GenerateRefreshToken(ctx, 42)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestValidateTokenRejectsWrongType(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, now)
	ctx := context.Background()

	refresh, err := svc.GenerateRefreshToken(ctx, 42)
	require.NoError(t, err)
	access, err := svc.GenerateToken(ctx, 42)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateTokenExpiry(t *testing.T) {
	t.Parallel()

	issued := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, issued)
	ctx := context.Background()

	access, err := svc.GenerateToken(ctx, 7)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(ctx, 7)
	require.NoError(t, err)

	// Past the access lifetime plus clock skew, but well inside the
	// refresh lifetime.
	svc.timeFunc = func() time.Time { return issued.Add(time.Hour + 3*time.Minute) }

	_, err = svc.ValidateToken(ctx, access)
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = svc.ValidateRefreshToken(ctx, refresh)
	assert.NoError(t, err)

	// Past the refresh lifetime too.
	svc.timeFunc = func() time.Time { return issued.Add(8 * 24 * time.Hour) }
	_, err = svc.ValidateRefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestValidateTokenToleratesClockSkew(t *testing.T) {
	t.Parallel()

	issued := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, issued)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, 7)
	require.NoError(t, err)

	// One minute past expiry is within the two-minute leeway.
	svc.timeFunc = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
}

func TestValidateTokenRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, now)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, 42)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.ValidateToken(ctx, tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, now)
	ctx := context.Background()

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "ffffffffffffffffffffffffffffffff"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := other.GenerateToken(ctx, 42)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	v := NewBcryptVerifier()

	hash, err := v.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, v.Compare(hash, "correct horse battery staple"))
	assert.Error(t, v.Compare(hash, "wrong password"))
}

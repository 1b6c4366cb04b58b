package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)
	id := uuid.New()

	access, err := svc.GenerateAccessToken(id, "ana@example.com")
	require.NoError(t, err)
	claims, err := ParseAccessToken(svc, access)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, Issuer, claims.Issuer)

	refresh, err := svc.GenerateRefreshToken(id)
	require.NoError(t, err)
	rc, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, svc.IsRefreshToken(rc))

	_, err = ParseAccessToken(svc, refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)
	issued := time.Now()
	svc.now = func() time.Time { return issued }
	tok, err := svc.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("one", "two", time.Minute, time.Hour).GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = NewHMACService("other", "two", time.Minute, time.Hour).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = NewHMACService("one", "two", time.Minute, time.Hour).ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

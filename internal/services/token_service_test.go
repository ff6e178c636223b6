package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens() *TokenService {
	return NewTokenService("test-secret", 15*time.Minute, time.Hour, NewMemoryRevocationList(time.Hour))
}

func TestTokenIssueAndParse(t *testing.T) {
	tokens := newTestTokens()
	pair, err := tokens.Issue(&models.User{ID: 7, Username: "alice"})
	require.NoError(t, err)

	claims, err := tokens.ParseAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID)

	_, err = tokens.ParseAccess(pair.Refresh)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.EqualError(t, err, "Token has wrong type")
}

func TestTokenRejectsGarbageAndForeignSignature(t *testing.T) {
	tokens := newTestTokens()
	_, err := tokens.ParseAccess("not-a-token")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.EqualError(t, err, "Invalid token")

	other := NewTokenService("other-secret", time.Minute, time.Minute, NewMemoryRevocationList(time.Minute))
	pair, err := other.Issue(&models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)
	_, err = tokens.ParseAccess(pair.Access)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTokenExpired(t *testing.T) {
	tokens := newTestTokens()
	tokens.now = func() time.Time { return time.Now().Add(-time.Hour) }
	pair, err := tokens.Issue(&models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = tokens.ParseAccess(pair.Access)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.EqualError(t, err, "Token has expired")
}

func TestTokenRefreshAndRevoke(t *testing.T) {
	ctx := context.Background()
	tokens := newTestTokens()
	pair, err := tokens.Issue(&models.User{ID: 3, Username: "carol"})
	require.NoError(t, err)

	access, err := tokens.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	claims, err := tokens.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)

	_, err = tokens.Refresh(ctx, pair.Access)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.ErrorIs(t, tokens.Revoke(ctx, 4, pair.Refresh), ErrValidation, "someone else's token")
	require.NoError(t, tokens.Revoke(ctx, 3, pair.Refresh))

	_, err = tokens.Refresh(ctx, pair.Refresh)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.EqualError(t, err, "Token has been revoked")

	err = tokens.Revoke(ctx, 3, pair.Refresh)
	require.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Invalid refresh token.")
}

func TestMemoryRevocationListKeepsEveryRevokedToken(t *testing.T) {
	ctx := context.Background()
	revoked := NewMemoryRevocationList(time.Hour)
	until := time.Now().Add(time.Hour)

	require.NoError(t, revoked.Revoke(ctx, "first", until))
	for i := 0; i < 200_000; i++ {
		require.NoError(t, revoked.Revoke(ctx, fmt.Sprintf("jti-%d", i), until))
	}

	ok, err := revoked.IsRevoked(ctx, "first")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = revoked.IsRevoked(ctx, "never-revoked")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRevocationListExpires(t *testing.T) {
	ctx := context.Background()
	revoked := NewMemoryRevocationList(50 * time.Millisecond)
	require.NoError(t, revoked.Revoke(ctx, "short-lived", time.Now().Add(time.Hour)))

	assert.Eventually(t, func() bool {
		ok, err := revoked.IsRevoked(ctx, "short-lived")
		return err == nil && !ok
	}, time.Second, 10*time.Millisecond)
}

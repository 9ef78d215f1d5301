package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihrabhq/backend/internal/domain/identity"
	"github.com/mihrabhq/backend/internal/infrastructure/config"
)

func newTestJWTService(accessTTL, refreshTTL time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "access-secret",
		RefreshSecret:          "refresh-secret",
		AccessTokenExpiration:  accessTTL,
		RefreshTokenExpiration: refreshTTL,
		Issuer:                 "mihrab-test",
	})
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser(uuid.New(), "imam42", "Imam Example", identity.RoleMosqueAdmin, "hashed")
	require.NoError(t, err)
	user.AssignPlace(uuid.New())
	return user
}

func TestGenerateTokenPair(t *testing.T) {
	service := newTestJWTService(15*time.Minute, 7*24*time.Hour)
	user := newTestUser(t)

	pair, err := service.GenerateTokenPair(user)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestValidateAccessToken(t *testing.T) {
	service := newTestJWTService(15*time.Minute, time.Hour)
	user := newTestUser(t)

	pair, err := service.GenerateTokenPair(user)
	require.NoError(t, err)

	t.Run("round trips the identity claims", func(t *testing.T) {
		claims, err := service.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, user.TenantID.String(), claims.TenantID)
		assert.Equal(t, "imam42", claims.Username)
		assert.Equal(t, identity.RoleMosqueAdmin.String(), claims.Role)
		assert.Equal(t, user.PlaceID.String(), claims.PlaceID)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
		assert.Equal(t, "mihrab-test", claims.Issuer)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("rejects the refresh token", func(t *testing.T) {
		_, err := service.ValidateAccessToken(pair.RefreshToken)
		require.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := newTestJWTService(15*time.Minute, time.Hour)
		otherPair, err := other.GenerateTokenPair(user)
		require.NoError(t, err)

		forged := NewJWTService(config.JWTConfig{
			Secret:                "different-secret",
			RefreshSecret:         "refresh-secret",
			AccessTokenExpiration: 15 * time.Minute,
		})
		_, err = forged.ValidateAccessToken(otherPair.AccessToken)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := newTestJWTService(-time.Minute, time.Hour)
		expiredPair, err := expired.GenerateTokenPair(user)
		require.NoError(t, err)

		_, err = expired.ValidateAccessToken(expiredPair.AccessToken)
		require.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestValidateRefreshToken(t *testing.T) {
	service := newTestJWTService(15*time.Minute, time.Hour)
	user := newTestUser(t)

	pair, err := service.GenerateTokenPair(user)
	require.NoError(t, err)

	claims, err := service.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)

	_, err = service.ValidateRefreshToken(pair.AccessToken)
	require.Error(t, err)
}

func TestClaimsRemainingTTL(t *testing.T) {
	service := newTestJWTService(15*time.Minute, time.Hour)
	user := newTestUser(t)

	pair, err := service.GenerateTokenPair(user)
	require.NoError(t, err)

	claims, err := service.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	ttl := claims.RemainingTTL(time.Now())
	assert.Greater(t, ttl, 55*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	assert.LessOrEqual(t, claims.RemainingTTL(time.Now().Add(2*time.Hour)), time.Duration(0))
}

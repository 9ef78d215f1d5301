package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates an active user", func(t *testing.T) {
		user, err := NewUser(tenantID, "imam42", "Imam Example", RoleMosqueAdmin, "hashed")
		require.NoError(t, err)
		assert.Equal(t, tenantID, user.TenantID)
		assert.Equal(t, "imam42", user.Username)
		assert.Equal(t, RoleMosqueAdmin, user.Role)
		assert.True(t, user.IsActive)
		assert.Nil(t, user.PlaceID)
	})

	t.Run("fails with blank username", func(t *testing.T) {
		_, err := NewUser(tenantID, "  ", "Imam Example", RoleAdmin, "hashed")
		require.Error(t, err)
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUser(tenantID, "imam42", "Imam Example", Role("superuser"), "hashed")
		require.Error(t, err)
	})

	t.Run("fails without password hash", func(t *testing.T) {
		_, err := NewUser(tenantID, "imam42", "Imam Example", RoleAdmin, "")
		require.Error(t, err)
	})
}

func TestUserMutations(t *testing.T) {
	tenantID := uuid.New()
	user, err := NewUser(tenantID, "imam42", "Imam Example", RoleCityAdmin, "hashed")
	require.NoError(t, err)

	t.Run("assigns a home place", func(t *testing.T) {
		placeID := uuid.New()
		user.AssignPlace(placeID)
		require.NotNil(t, user.PlaceID)
		assert.Equal(t, placeID, *user.PlaceID)
	})

	t.Run("changes role within the closed set", func(t *testing.T) {
		require.NoError(t, user.ChangeRole(RoleRegionAdmin))
		assert.Equal(t, RoleRegionAdmin, user.Role)
		require.Error(t, user.ChangeRole(Role("root")))
	})

	t.Run("replaces the password hash", func(t *testing.T) {
		require.NoError(t, user.ChangePassword("rehashed"))
		assert.Equal(t, "rehashed", user.PasswordHash)
		require.Error(t, user.ChangePassword(""))
	})

	t.Run("deactivation blocks the account", func(t *testing.T) {
		user.Deactivate()
		assert.False(t, user.IsActive)
	})
}

func TestRole(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleRegionAdmin.IsValid())
	assert.True(t, RoleCityAdmin.IsValid())
	assert.True(t, RoleMosqueAdmin.IsValid())
	assert.False(t, Role("superuser").IsValid())

	assert.True(t, RoleAdmin.IsUnrestricted())
	assert.False(t, RoleRegionAdmin.IsUnrestricted())
}

func TestActorFor(t *testing.T) {
	tenantID := uuid.New()
	user, err := NewUser(tenantID, "imam42", "Imam Example", RoleMosqueAdmin, "hashed")
	require.NoError(t, err)
	placeID := uuid.New()
	user.AssignPlace(placeID)

	actor := ActorFor(user, "203.0.113.9")
	assert.Equal(t, user.ID, actor.UserID)
	assert.Equal(t, tenantID, actor.TenantID)
	assert.Equal(t, "imam42", actor.Username)
	assert.Equal(t, RoleMosqueAdmin, actor.Role)
	require.NotNil(t, actor.HomePlaceID)
	assert.Equal(t, placeID, *actor.HomePlaceID)
	assert.Equal(t, "203.0.113.9", actor.RemoteAddr)
}

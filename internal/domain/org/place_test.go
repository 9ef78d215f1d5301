package org

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlace(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates root place with valid inputs", func(t *testing.T) {
		place, err := NewPlace(tenantID, "North Region", "TAX-1", 12)
		require.NoError(t, err)
		require.NotNil(t, place)

		assert.Equal(t, tenantID, place.TenantID)
		assert.Equal(t, "North Region", place.Name)
		assert.Equal(t, "TAX-1", place.TaxID)
		assert.Equal(t, 12, place.EmployeeCount)
		assert.Nil(t, place.ParentID)
		assert.False(t, place.IsMosque)
		assert.True(t, place.IsRoot())
		assert.NotEmpty(t, place.ID)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		place, err := NewPlace(tenantID, "  North Region  ", " TAX-1 ", 0)
		require.NoError(t, err)
		assert.Equal(t, "North Region", place.Name)
		assert.Equal(t, "TAX-1", place.TaxID)
	})

	t.Run("publishes created event", func(t *testing.T) {
		place, err := NewPlace(tenantID, "North Region", "", 0)
		require.NoError(t, err)
		require.Len(t, place.GetDomainEvents(), 1)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewPlace(tenantID, "   ", "", 0)
		require.Error(t, err)
	})

	t.Run("fails with overlong name", func(t *testing.T) {
		_, err := NewPlace(tenantID, strings.Repeat("x", 201), "", 0)
		require.Error(t, err)
	})
}

func TestNewChildPlace(t *testing.T) {
	tenantID := uuid.New()
	region, err := NewPlace(tenantID, "North Region", "", 0)
	require.NoError(t, err)

	t.Run("creates child under parent", func(t *testing.T) {
		city, err := NewChildPlace(tenantID, "Springfield", "", 3, region, false)
		require.NoError(t, err)
		require.NotNil(t, city.ParentID)
		assert.Equal(t, region.ID, *city.ParentID)
		assert.False(t, city.IsMosque)
	})

	t.Run("creates mosque leaf", func(t *testing.T) {
		mosque, err := NewChildPlace(tenantID, "Central Mosque", "", 2, region, true)
		require.NoError(t, err)
		assert.True(t, mosque.IsMosque)
	})

	t.Run("fails without parent", func(t *testing.T) {
		_, err := NewChildPlace(tenantID, "Springfield", "", 0, nil, false)
		require.Error(t, err)
	})

	t.Run("fails when parent is a mosque", func(t *testing.T) {
		mosque, err := NewChildPlace(tenantID, "Central Mosque", "", 0, region, true)
		require.NoError(t, err)

		_, err = NewChildPlace(tenantID, "Annex", "", 0, mosque, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mosque cannot have child places")
	})
}

func TestPlaceUpdate(t *testing.T) {
	tenantID := uuid.New()

	t.Run("updates fields and bumps version", func(t *testing.T) {
		place, err := NewPlace(tenantID, "North Region", "", 0)
		require.NoError(t, err)
		before := place.GetVersion()

		require.NoError(t, place.Update("Greater North", "TAX-9", 20))
		assert.Equal(t, "Greater North", place.Name)
		assert.Equal(t, "TAX-9", place.TaxID)
		assert.Equal(t, 20, place.EmployeeCount)
		assert.Equal(t, before+1, place.GetVersion())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		place, err := NewPlace(tenantID, "North Region", "", 0)
		require.NoError(t, err)
		require.Error(t, place.Update("", "", 0))
	})
}

func TestPlaceReparent(t *testing.T) {
	tenantID := uuid.New()
	region, err := NewPlace(tenantID, "North Region", "", 0)
	require.NoError(t, err)
	other, err := NewPlace(tenantID, "South Region", "", 0)
	require.NoError(t, err)
	city, err := NewChildPlace(tenantID, "Springfield", "", 0, region, false)
	require.NoError(t, err)

	t.Run("moves under a new parent", func(t *testing.T) {
		require.NoError(t, city.Reparent(other))
		require.NotNil(t, city.ParentID)
		assert.Equal(t, other.ID, *city.ParentID)
	})

	t.Run("nil parent promotes to root", func(t *testing.T) {
		require.NoError(t, city.Reparent(nil))
		assert.True(t, city.IsRoot())
	})

	t.Run("rejects self as parent", func(t *testing.T) {
		require.Error(t, city.Reparent(city))
	})

	t.Run("rejects mosque parent", func(t *testing.T) {
		mosque, err := NewChildPlace(tenantID, "Central Mosque", "", 0, region, true)
		require.NoError(t, err)
		require.Error(t, city.Reparent(mosque))
	})
}

func TestPlaceTier(t *testing.T) {
	tenantID := uuid.New()
	region, err := NewPlace(tenantID, "North Region", "", 0)
	require.NoError(t, err)
	city, err := NewChildPlace(tenantID, "Springfield", "", 0, region, false)
	require.NoError(t, err)
	mosque, err := NewChildPlace(tenantID, "Central Mosque", "", 0, city, true)
	require.NoError(t, err)

	assert.Equal(t, TierRegion, region.Tier())
	assert.Equal(t, TierCity, city.Tier())
	assert.Equal(t, TierMosque, mosque.Tier())
}

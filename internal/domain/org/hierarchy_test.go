package org

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihrabhq/backend/internal/domain/shared"
)

// memoryPlaceRepository is a map-backed repository for walking tests.
type memoryPlaceRepository struct {
	places map[uuid.UUID]*Place
}

func newMemoryPlaceRepository(places ...*Place) *memoryPlaceRepository {
	repo := &memoryPlaceRepository{places: make(map[uuid.UUID]*Place)}
	for _, p := range places {
		repo.places[p.ID] = p
	}
	return repo
}

func (r *memoryPlaceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Place, error) {
	p, ok := r.places[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *memoryPlaceRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Place, error) {
	for _, p := range r.places {
		if p.TenantID == tenantID && p.Name == name {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryPlaceRepository) FindRoots(ctx context.Context, tenantID uuid.UUID) ([]Place, error) {
	var out []Place
	for _, p := range r.places {
		if p.TenantID == tenantID && p.ParentID == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memoryPlaceRepository) FindChildren(ctx context.Context, tenantID, parentID uuid.UUID) ([]Place, error) {
	var out []Place
	for _, p := range r.places {
		if p.TenantID == tenantID && p.ParentID != nil && *p.ParentID == parentID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memoryPlaceRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Place, error) {
	var out []Place
	for _, p := range r.places {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memoryPlaceRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	places, _ := r.FindAll(ctx, tenantID, filter)
	return int64(len(places)), nil
}

func (r *memoryPlaceRepository) Save(ctx context.Context, place *Place) error {
	r.places[place.ID] = place
	return nil
}

func (r *memoryPlaceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	delete(r.places, id)
	return nil
}

func buildTree(t *testing.T, tenantID uuid.UUID) (region, city, mosque *Place, repo *memoryPlaceRepository) {
	t.Helper()
	var err error
	region, err = NewPlace(tenantID, "North Region", "", 0)
	require.NoError(t, err)
	city, err = NewChildPlace(tenantID, "Springfield", "", 0, region, false)
	require.NoError(t, err)
	mosque, err = NewChildPlace(tenantID, "Central Mosque", "", 0, city, true)
	require.NoError(t, err)
	repo = newMemoryPlaceRepository(region, city, mosque)
	return region, city, mosque, repo
}

func TestAncestors(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("returns chain from parent to root", func(t *testing.T) {
		region, city, mosque, repo := buildTree(t, tenantID)

		ancestors, err := Ancestors(ctx, repo, tenantID, mosque)
		require.NoError(t, err)
		require.Len(t, ancestors, 2)
		assert.Equal(t, city.ID, ancestors[0].ID)
		assert.Equal(t, region.ID, ancestors[1].ID)
	})

	t.Run("root has no ancestors", func(t *testing.T) {
		region, _, _, repo := buildTree(t, tenantID)

		ancestors, err := Ancestors(ctx, repo, tenantID, region)
		require.NoError(t, err)
		assert.Empty(t, ancestors)
	})

	t.Run("fails on a parent cycle", func(t *testing.T) {
		region, city, _, repo := buildTree(t, tenantID)
		region.ParentID = &city.ID

		_, err := Ancestors(ctx, repo, tenantID, city)
		require.ErrorIs(t, err, shared.ErrHierarchyCycle)
	})
}

func TestBelongsTo(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	region, city, mosque, repo := buildTree(t, tenantID)

	t.Run("place belongs to itself", func(t *testing.T) {
		ok, err := BelongsTo(ctx, repo, tenantID, mosque, mosque.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("place belongs to each ancestor", func(t *testing.T) {
		ok, err := BelongsTo(ctx, repo, tenantID, mosque, city.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = BelongsTo(ctx, repo, tenantID, mosque, region.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("ancestor does not belong to descendant", func(t *testing.T) {
		ok, err := BelongsTo(ctx, repo, tenantID, region, mosque.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("sibling subtree is excluded", func(t *testing.T) {
		other, err := NewPlace(tenantID, "South Region", "", 0)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, other))

		ok, err := BelongsTo(ctx, repo, tenantID, mosque, other.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDescendantIDs(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("collects the whole subtree including the root", func(t *testing.T) {
		region, city, mosque, repo := buildTree(t, tenantID)

		ids, err := DescendantIDs(ctx, repo, tenantID, region.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{region.ID, city.ID, mosque.ID}, ids)
	})

	t.Run("leaf expands to itself", func(t *testing.T) {
		_, _, mosque, repo := buildTree(t, tenantID)

		ids, err := DescendantIDs(ctx, repo, tenantID, mosque.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{mosque.ID}, ids)
	})

	t.Run("fails when a child reappears", func(t *testing.T) {
		region, city, _, repo := buildTree(t, tenantID)
		region.ParentID = &city.ID

		_, err := DescendantIDs(ctx, repo, tenantID, region.ID)
		require.ErrorIs(t, err, shared.ErrHierarchyCycle)
	})
}

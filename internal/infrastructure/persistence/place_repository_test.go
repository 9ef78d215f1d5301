package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mihrabhq/backend/internal/domain/identity"
	"github.com/mihrabhq/backend/internal/domain/ledger"
	"github.com/mihrabhq/backend/internal/domain/org"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&org.Place{},
		&ledger.Unit{},
		&ledger.Category{},
		&ledger.Record{},
		&identity.User{},
	)
	require.NoError(t, err)

	return db
}

func seedTree(t *testing.T, repo *GormPlaceRepository, tenantID uuid.UUID) (region, city, mosque *org.Place) {
	t.Helper()
	ctx := context.Background()

	var err error
	region, err = org.NewPlace(tenantID, "North Region", "", 0)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, region))

	city, err = org.NewChildPlace(tenantID, "Springfield", "", 0, region, false)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, city))

	mosque, err = org.NewChildPlace(tenantID, "Central Mosque", "", 0, city, true)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, mosque))

	return region, city, mosque
}

func TestGormPlaceRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewGormPlaceRepository(newTestDB(t))
	tenantID := uuid.New()
	region, _, _ := seedTree(t, repo, tenantID)

	t.Run("finds an existing place", func(t *testing.T) {
		found, err := repo.FindByID(ctx, tenantID, region.ID)
		require.NoError(t, err)
		assert.Equal(t, "North Region", found.Name)
	})

	t.Run("misses places of other tenants", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New(), region.ID)
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("misses unknown ids", func(t *testing.T) {
		_, err := repo.FindByID(ctx, tenantID, uuid.New())
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormPlaceRepository_FindByName(t *testing.T) {
	ctx := context.Background()
	repo := NewGormPlaceRepository(newTestDB(t))
	tenantID := uuid.New()
	seedTree(t, repo, tenantID)

	found, err := repo.FindByName(ctx, tenantID, "Springfield")
	require.NoError(t, err)
	assert.Equal(t, "Springfield", found.Name)

	_, err = repo.FindByName(ctx, tenantID, "Atlantis")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormPlaceRepository_RootsAndChildren(t *testing.T) {
	ctx := context.Background()
	repo := NewGormPlaceRepository(newTestDB(t))
	tenantID := uuid.New()
	region, city, mosque := seedTree(t, repo, tenantID)

	south, err := org.NewPlace(tenantID, "South Region", "", 0)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, south))

	t.Run("roots are ordered by name", func(t *testing.T) {
		roots, err := repo.FindRoots(ctx, tenantID)
		require.NoError(t, err)
		require.Len(t, roots, 2)
		assert.Equal(t, region.ID, roots[0].ID)
		assert.Equal(t, south.ID, roots[1].ID)
	})

	t.Run("children of an internal node", func(t *testing.T) {
		children, err := repo.FindChildren(ctx, tenantID, region.ID)
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, city.ID, children[0].ID)
	})

	t.Run("leaves have no children", func(t *testing.T) {
		children, err := repo.FindChildren(ctx, tenantID, mosque.ID)
		require.NoError(t, err)
		assert.Empty(t, children)
	})
}

func TestGormPlaceRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewGormPlaceRepository(newTestDB(t))
	tenantID := uuid.New()
	seedTree(t, repo, tenantID)

	t.Run("search is case insensitive", func(t *testing.T) {
		filter := shared.Filter{Search: "SPRING"}
		places, err := repo.FindAll(ctx, tenantID, filter)
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "Springfield", places[0].Name)

		count, err := repo.Count(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("pagination slices the ordered listing", func(t *testing.T) {
		filter := shared.Filter{Page: 2, PageSize: 2}
		places, err := repo.FindAll(ctx, tenantID, filter)
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "Springfield", places[0].Name)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		filter := shared.Filter{Page: 9, PageSize: 50}
		places, err := repo.FindAll(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Empty(t, places)
	})
}

func TestGormPlaceRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the subtree and its records", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormPlaceRepository(db)
		recordRepo := NewGormRecordRepository(db)
		tenantID := uuid.New()
		region, city, mosque := seedTree(t, repo, tenantID)

		category, err := ledger.NewCategory(tenantID, "Food", ledger.OperationExpense)
		require.NoError(t, err)
		require.NoError(t, db.Create(category).Error)

		record, err := ledger.NewRecord(tenantID, time.Now(), category.ID, mosque.ID, decimal.NewFromInt(150), "")
		require.NoError(t, err)
		require.NoError(t, recordRepo.Save(ctx, record))

		require.NoError(t, repo.Delete(ctx, tenantID, region.ID))

		for _, id := range []uuid.UUID{region.ID, city.ID, mosque.ID} {
			_, err := repo.FindByID(ctx, tenantID, id)
			require.ErrorIs(t, err, shared.ErrNotFound)
		}
		_, err = recordRepo.FindByID(ctx, tenantID, record.ID)
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("leaves sibling subtrees alone", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormPlaceRepository(db)
		tenantID := uuid.New()
		region, city, _ := seedTree(t, repo, tenantID)

		south, err := org.NewPlace(tenantID, "South Region", "", 0)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, south))

		require.NoError(t, repo.Delete(ctx, tenantID, city.ID))

		_, err = repo.FindByID(ctx, tenantID, region.ID)
		require.NoError(t, err)
		_, err = repo.FindByID(ctx, tenantID, south.ID)
		require.NoError(t, err)
	})

	t.Run("unknown place fails", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormPlaceRepository(db)
		err := repo.Delete(ctx, uuid.New(), uuid.New())
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

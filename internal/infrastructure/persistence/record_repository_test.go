package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mihrabhq/backend/internal/domain/ledger"
	"github.com/mihrabhq/backend/internal/domain/org"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

type recordTestEnv struct {
	db       *gorm.DB
	repo     *GormRecordRepository
	tenantID uuid.UUID
	mosque   *org.Place
	food     *ledger.Category
	donation *ledger.Category
}

func newRecordTestEnv(t *testing.T) *recordTestEnv {
	t.Helper()
	db := newTestDB(t)
	tenantID := uuid.New()

	mosque, err := org.NewPlace(tenantID, "Central Mosque", "", 0)
	require.NoError(t, err)
	mosque.MarkAsMosque()
	require.NoError(t, db.Create(mosque).Error)

	food, err := ledger.NewCategory(tenantID, "Food", ledger.OperationExpense)
	require.NoError(t, err)
	require.NoError(t, db.Create(food).Error)

	donation, err := ledger.NewCategory(tenantID, "Donations", ledger.OperationIncome)
	require.NoError(t, err)
	require.NoError(t, db.Create(donation).Error)

	return &recordTestEnv{
		db:       db,
		repo:     NewGormRecordRepository(db),
		tenantID: tenantID,
		mosque:   mosque,
		food:     food,
		donation: donation,
	}
}

func (e *recordTestEnv) book(t *testing.T, day time.Time, category *ledger.Category, amount int64) *ledger.Record {
	t.Helper()
	record, err := ledger.NewRecord(e.tenantID, day, category.ID, e.mosque.ID, decimal.NewFromInt(amount), "")
	require.NoError(t, err)
	require.NoError(t, e.repo.Save(context.Background(), record))
	return record
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGormRecordRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	env := newRecordTestEnv(t)
	env.book(t, day(2024, 9, 1), env.food, 150)
	env.book(t, day(2024, 9, 3), env.donation, 500)
	env.book(t, day(2024, 9, 2), env.food, 200)

	t.Run("orders newest first", func(t *testing.T) {
		records, err := env.repo.FindAll(ctx, env.tenantID, ledger.RecordQuery{})
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, day(2024, 9, 3), records[0].Date)
		assert.Equal(t, day(2024, 9, 2), records[1].Date)
		assert.Equal(t, day(2024, 9, 1), records[2].Date)
	})

	t.Run("filters by category", func(t *testing.T) {
		query := ledger.RecordQuery{CategoryID: &env.food.ID}
		records, err := env.repo.FindAll(ctx, env.tenantID, query)
		require.NoError(t, err)
		assert.Len(t, records, 2)

		count, err := env.repo.Count(ctx, env.tenantID, query)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("filters by inclusive date range", func(t *testing.T) {
		start := day(2024, 9, 2)
		end := day(2024, 9, 3)
		records, err := env.repo.FindAll(ctx, env.tenantID, ledger.RecordQuery{Start: &start, End: &end})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("paginates", func(t *testing.T) {
		records, err := env.repo.FindAll(ctx, env.tenantID, ledger.RecordQuery{Page: 2, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, day(2024, 9, 1), records[0].Date)
	})

	t.Run("other tenants see nothing", func(t *testing.T) {
		records, err := env.repo.FindAll(ctx, uuid.New(), ledger.RecordQuery{})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestGormRecordRepository_FindEntries(t *testing.T) {
	ctx := context.Background()
	env := newRecordTestEnv(t)
	env.book(t, day(2024, 9, 2), env.donation, 500)
	env.book(t, day(2024, 9, 1), env.food, 150)

	t.Run("joins category name and type, ordered by date", func(t *testing.T) {
		entries, err := env.repo.FindEntries(ctx, env.tenantID, []uuid.UUID{env.mosque.ID}, day(2024, 9, 1), day(2024, 9, 30))
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "Food", entries[0].CategoryName)
		assert.Equal(t, ledger.OperationExpense, entries[0].OperationType)
		assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, env.mosque.ID, entries[0].PlaceID)

		assert.Equal(t, "Donations", entries[1].CategoryName)
		assert.True(t, entries[1].SignedAmount().Equal(decimal.NewFromInt(500)))
	})

	t.Run("range excludes outside records", func(t *testing.T) {
		entries, err := env.repo.FindEntries(ctx, env.tenantID, []uuid.UUID{env.mosque.ID}, day(2024, 9, 2), day(2024, 9, 2))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Donations", entries[0].CategoryName)
	})

	t.Run("no places yields no entries", func(t *testing.T) {
		entries, err := env.repo.FindEntries(ctx, env.tenantID, nil, day(2024, 9, 1), day(2024, 9, 30))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestGormRecordRepository_ProfitTotal(t *testing.T) {
	ctx := context.Background()
	env := newRecordTestEnv(t)

	t.Run("empty place sums to zero", func(t *testing.T) {
		total, err := env.repo.ProfitTotal(ctx, env.tenantID, env.mosque.ID)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("expenses are negated", func(t *testing.T) {
		env.book(t, day(2024, 9, 1), env.donation, 500)
		env.book(t, day(2024, 9, 2), env.food, 150)
		env.book(t, day(2024, 9, 3), env.food, 50)

		total, err := env.repo.ProfitTotal(ctx, env.tenantID, env.mosque.ID)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(300)), "got %s", total)
	})
}

func TestGormRecordRepository_QuantityTotals(t *testing.T) {
	ctx := context.Background()
	env := newRecordTestEnv(t)

	unit, err := ledger.NewUnit(env.tenantID, "kWh")
	require.NoError(t, err)
	require.NoError(t, env.db.Create(unit).Error)
	env.food.AttachUnit(unit.ID)
	require.NoError(t, env.db.Save(env.food).Error)

	metered := env.book(t, day(2024, 9, 1), env.food, 100)
	require.NoError(t, metered.SetQuantity(decimal.NewFromInt(40)))
	require.NoError(t, env.repo.Save(ctx, metered))

	metered2 := env.book(t, day(2024, 9, 2), env.food, 120)
	require.NoError(t, metered2.SetQuantity(decimal.NewFromInt(35)))
	require.NoError(t, env.repo.Save(ctx, metered2))

	// No quantity and no unit-bearing category, both excluded.
	env.book(t, day(2024, 9, 3), env.food, 10)
	env.book(t, day(2024, 9, 3), env.donation, 500)

	totals, err := env.repo.QuantityTotals(ctx, env.tenantID, env.mosque.ID, day(2024, 9, 1), day(2024, 9, 30))
	require.NoError(t, err)
	require.Len(t, totals, 1)

	assert.Equal(t, env.food.ID, totals[0].CategoryID)
	assert.Equal(t, "Food", totals[0].CategoryName)
	assert.Equal(t, "kWh", totals[0].UnitName)
	assert.True(t, totals[0].TotalQuantity.Equal(decimal.NewFromInt(75)), "got %s", totals[0].TotalQuantity)
}

func TestGormRecordRepository_Delete(t *testing.T) {
	ctx := context.Background()
	env := newRecordTestEnv(t)
	record := env.book(t, day(2024, 9, 1), env.food, 150)

	require.NoError(t, env.repo.Delete(ctx, env.tenantID, record.ID))
	_, err := env.repo.FindByID(ctx, env.tenantID, record.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)

	require.ErrorIs(t, env.repo.Delete(ctx, env.tenantID, record.ID), shared.ErrNotFound)
}

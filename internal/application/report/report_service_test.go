package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihrabhq/backend/internal/domain/identity"
	"github.com/mihrabhq/backend/internal/domain/ledger"
	"github.com/mihrabhq/backend/internal/domain/org"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

type fakePlaceRepository struct {
	places map[uuid.UUID]*org.Place
}

func newFakePlaceRepository(places ...*org.Place) *fakePlaceRepository {
	repo := &fakePlaceRepository{places: make(map[uuid.UUID]*org.Place)}
	for _, p := range places {
		repo.places[p.ID] = p
	}
	return repo
}

func (r *fakePlaceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*org.Place, error) {
	p, ok := r.places[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakePlaceRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*org.Place, error) {
	return nil, shared.ErrNotFound
}

func (r *fakePlaceRepository) FindRoots(ctx context.Context, tenantID uuid.UUID) ([]org.Place, error) {
	var out []org.Place
	for _, p := range r.places {
		if p.TenantID == tenantID && p.ParentID == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlaceRepository) FindChildren(ctx context.Context, tenantID, parentID uuid.UUID) ([]org.Place, error) {
	var out []org.Place
	for _, p := range r.places {
		if p.TenantID == tenantID && p.ParentID != nil && *p.ParentID == parentID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlaceRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]org.Place, error) {
	return nil, nil
}

func (r *fakePlaceRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	return 0, nil
}

func (r *fakePlaceRepository) Save(ctx context.Context, place *org.Place) error {
	r.places[place.ID] = place
	return nil
}

func (r *fakePlaceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	delete(r.places, id)
	return nil
}

// fakeRecordRepository serves canned report entries filtered by place and date.
type fakeRecordRepository struct {
	entries []ledger.ReportEntry
	profit  decimal.Decimal
	totals  []ledger.QuantityTotal
}

func (r *fakeRecordRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Record, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeRecordRepository) FindAll(ctx context.Context, tenantID uuid.UUID, query ledger.RecordQuery) ([]ledger.Record, error) {
	return nil, nil
}

func (r *fakeRecordRepository) Count(ctx context.Context, tenantID uuid.UUID, query ledger.RecordQuery) (int64, error) {
	return 0, nil
}

func (r *fakeRecordRepository) FindEntries(ctx context.Context, tenantID uuid.UUID, placeIDs []uuid.UUID, start, end time.Time) ([]ledger.ReportEntry, error) {
	wanted := make(map[uuid.UUID]struct{}, len(placeIDs))
	for _, id := range placeIDs {
		wanted[id] = struct{}{}
	}
	var out []ledger.ReportEntry
	for _, e := range r.entries {
		if _, ok := wanted[e.PlaceID]; !ok {
			continue
		}
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeRecordRepository) ProfitTotal(ctx context.Context, tenantID, placeID uuid.UUID) (decimal.Decimal, error) {
	return r.profit, nil
}

func (r *fakeRecordRepository) QuantityTotals(ctx context.Context, tenantID, placeID uuid.UUID, start, end time.Time) ([]ledger.QuantityTotal, error) {
	return r.totals, nil
}

func (r *fakeRecordRepository) Save(ctx context.Context, record *ledger.Record) error {
	return nil
}

func (r *fakeRecordRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return nil
}

type reportFixture struct {
	tenantID uuid.UUID
	region   *org.Place
	city     *org.Place
	mosque   *org.Place
	places   *fakePlaceRepository
	records  *fakeRecordRepository
	service  *ReportService
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	tenantID := uuid.New()

	region, err := org.NewPlace(tenantID, "North Region", "", 0)
	require.NoError(t, err)
	city, err := org.NewChildPlace(tenantID, "Springfield", "", 0, region, false)
	require.NoError(t, err)
	mosque, err := org.NewChildPlace(tenantID, "Central Mosque", "", 0, city, true)
	require.NoError(t, err)

	places := newFakePlaceRepository(region, city, mosque)
	records := &fakeRecordRepository{}

	return &reportFixture{
		tenantID: tenantID,
		region:   region,
		city:     city,
		mosque:   mosque,
		places:   places,
		records:  records,
		service:  NewReportService(places, records),
	}
}

func (f *reportFixture) admin() identity.Actor {
	return identity.Actor{UserID: uuid.New(), TenantID: f.tenantID, Role: identity.RoleAdmin}
}

func (f *reportFixture) mosqueAdmin() identity.Actor {
	return identity.Actor{UserID: uuid.New(), TenantID: f.tenantID, Role: identity.RoleMosqueAdmin, HomePlaceID: &f.mosque.ID}
}

func TestReportServiceFlat(t *testing.T) {
	ctx := context.Background()

	t.Run("pivots records of the requested place", func(t *testing.T) {
		f := newReportFixture(t)
		f.records.entries = []ledger.ReportEntry{
			{Date: date(2024, 9, 1), PlaceID: f.mosque.ID, CategoryName: "Food", OperationType: ledger.OperationExpense, Amount: decimal.NewFromInt(150)},
			{Date: date(2024, 9, 2), PlaceID: f.mosque.ID, CategoryName: "Food", OperationType: ledger.OperationExpense, Amount: decimal.NewFromInt(200)},
		}

		table, err := f.service.Flat(ctx, f.admin(), Query{
			PlaceID: &f.mosque.ID,
			Period:  "daily",
			Start:   "2024-09-01",
			End:     "2024-09-02",
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"2024-09-01", "2024-09-02"}, table.Periods)
		require.Len(t, table.Data, 2)
		assert.Equal(t, []any{"Food", -150.0, -200.0, -350.0}, table.Data[0])
		assert.Equal(t, []any{"Total", -150.0, -200.0, -350.0}, table.Data[1])
	})

	t.Run("mosque admin defaults to the home place", func(t *testing.T) {
		f := newReportFixture(t)
		f.records.entries = []ledger.ReportEntry{
			{Date: date(2024, 9, 1), PlaceID: f.mosque.ID, CategoryName: "Donations", OperationType: ledger.OperationIncome, Amount: decimal.NewFromInt(75)},
		}

		table, err := f.service.Flat(ctx, f.mosqueAdmin(), Query{
			Period: "daily",
			Start:  "2024-09-01",
			End:    "2024-09-01",
		})
		require.NoError(t, err)
		assert.Equal(t, []any{"Donations", 75.0, 75.0}, table.Data[0])
	})

	t.Run("admin must name a place", func(t *testing.T) {
		f := newReportFixture(t)
		_, err := f.service.Flat(ctx, f.admin(), Query{Period: "daily"})
		require.Error(t, err)
	})

	t.Run("rejects unknown period", func(t *testing.T) {
		f := newReportFixture(t)
		_, err := f.service.Flat(ctx, f.admin(), Query{PlaceID: &f.mosque.ID, Period: "yearly"})
		require.Error(t, err)
	})

	t.Run("rejects unknown place", func(t *testing.T) {
		f := newReportFixture(t)
		missing := uuid.New()
		_, err := f.service.Flat(ctx, f.admin(), Query{PlaceID: &missing, Period: "daily"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestReportServiceHierarchical(t *testing.T) {
	ctx := context.Background()

	t.Run("nests places down to leaf tables", func(t *testing.T) {
		f := newReportFixture(t)
		f.records.entries = []ledger.ReportEntry{
			{Date: date(2024, 9, 1), PlaceID: f.mosque.ID, CategoryName: "Food", OperationType: ledger.OperationExpense, Amount: decimal.NewFromInt(150)},
		}

		tree, err := f.service.Hierarchical(ctx, f.admin(), Query{
			PlaceID: &f.region.ID,
			Period:  "daily",
			Start:   "2024-09-01",
			End:     "2024-09-01",
		})
		require.NoError(t, err)

		regionNode, ok := tree["North Region"].(map[string]any)
		require.True(t, ok)
		cityNode, ok := regionNode["Springfield"].(map[string]any)
		require.True(t, ok)
		mosqueNode, ok := cityNode["Central Mosque"].(map[string]any)
		require.True(t, ok)

		table, ok := mosqueNode["data"].(Table)
		require.True(t, ok)
		assert.Equal(t, []any{"Food", -150.0, -150.0}, table.Data[0])
	})

	t.Run("leaf root carries its own table", func(t *testing.T) {
		f := newReportFixture(t)
		tree, err := f.service.Hierarchical(ctx, f.admin(), Query{
			PlaceID: &f.mosque.ID,
			Period:  "daily",
			Start:   "2024-09-01",
			End:     "2024-09-01",
		})
		require.NoError(t, err)

		mosqueNode, ok := tree["Central Mosque"].(map[string]any)
		require.True(t, ok)
		_, ok = mosqueNode["data"].(Table)
		require.True(t, ok)
	})
}

func TestReportServiceProfit(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	f.records.profit = decimal.NewFromInt(1250)

	t.Run("returns the signed total", func(t *testing.T) {
		profit, err := f.service.ProfitFor(ctx, f.admin(), &f.mosque.ID)
		require.NoError(t, err)
		assert.Equal(t, 1250.0, profit.Total)
	})

	t.Run("mosque admin omits the place", func(t *testing.T) {
		profit, err := f.service.ProfitFor(ctx, f.mosqueAdmin(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1250.0, profit.Total)
	})

	t.Run("admin without a place fails", func(t *testing.T) {
		_, err := f.service.ProfitFor(ctx, f.admin(), nil)
		require.Error(t, err)
	})
}

func TestReportServiceValue(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	categoryID := uuid.New()
	f.records.totals = []ledger.QuantityTotal{
		{CategoryID: categoryID, CategoryName: "Electricity", UnitName: "kWh", TotalQuantity: decimal.NewFromFloat(340.5)},
	}

	t.Run("maps quantity totals", func(t *testing.T) {
		rows, err := f.service.ValueFor(ctx, f.admin(), &f.mosque.ID, "2024-09-01", "2024-09-30")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, categoryID, rows[0].CategoryID)
		assert.Equal(t, "Electricity", rows[0].CategoryName)
		assert.Equal(t, "kWh", rows[0].UnitName)
		assert.Equal(t, 340.5, rows[0].TotalQuantity)
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		_, err := f.service.ValueFor(ctx, f.admin(), &f.mosque.ID, "2024-09-30", "2024-09-01")
		require.Error(t, err)
	})
}

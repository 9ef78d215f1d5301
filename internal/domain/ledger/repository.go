package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CategoryRepository defines the persistence contract for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Category, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	FindUnitBearing(ctx context.Context, tenantID uuid.UUID) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// UnitRepository defines the persistence contract for measurement units
type UnitRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Unit, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Unit, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, unit *Unit) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// RecordQuery narrows record listings
type RecordQuery struct {
	PlaceIDs   []uuid.UUID
	CategoryID *uuid.UUID
	Start      *time.Time
	End        *time.Time
	Page       int
	PageSize   int
}

// ReportEntry is the flattened projection the aggregation engine consumes:
// one row per record joined with its category.
type ReportEntry struct {
	Date          time.Time
	PlaceID       uuid.UUID
	CategoryName  string
	OperationType OperationType
	Amount        decimal.Decimal
}

// QuantityTotal is one aggregated quantity line for a unit-bearing category
type QuantityTotal struct {
	CategoryID    uuid.UUID
	CategoryName  string
	UnitName      string
	TotalQuantity decimal.Decimal
}

// SignedAmount returns the entry amount signed by its operation type
func (e ReportEntry) SignedAmount() decimal.Decimal {
	return e.OperationType.Apply(e.Amount)
}

// RecordRepository defines the persistence contract for financial records
type RecordRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Record, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, query RecordQuery) ([]Record, error)
	Count(ctx context.Context, tenantID uuid.UUID, query RecordQuery) (int64, error)
	// FindEntries returns record rows joined with category metadata for the
	// given places and inclusive date range, ordered by date.
	FindEntries(ctx context.Context, tenantID uuid.UUID, placeIDs []uuid.UUID, start, end time.Time) ([]ReportEntry, error)
	// ProfitTotal sums a place's amounts with expenses negated.
	ProfitTotal(ctx context.Context, tenantID, placeID uuid.UUID) (decimal.Decimal, error)
	// QuantityTotals sums quantities per unit-bearing category for one place
	// over an inclusive date range.
	QuantityTotals(ctx context.Context, tenantID, placeID uuid.UUID, start, end time.Time) ([]QuantityTotal, error)
	Save(ctx context.Context, record *Record) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

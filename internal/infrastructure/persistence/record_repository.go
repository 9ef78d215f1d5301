package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mihrabhq/backend/internal/domain/ledger"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// GormRecordRepository implements RecordRepository using GORM
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// FindByID finds a record by ID within a tenant
func (r *GormRecordRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Record, error) {
	var record ledger.Record
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAll finds all records matching the query, newest first
func (r *GormRecordRepository) FindAll(ctx context.Context, tenantID uuid.UUID, query ledger.RecordQuery) ([]ledger.Record, error) {
	var records []ledger.Record
	q := r.applyQuery(r.db.WithContext(ctx).Model(&ledger.Record{}).Where("tenant_id = ?", tenantID), query)

	if query.Page > 0 && query.PageSize > 0 {
		q = q.Offset((query.Page - 1) * query.PageSize).Limit(query.PageSize)
	}
	if err := q.Order("date DESC, created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Count counts records matching the query
func (r *GormRecordRepository) Count(ctx context.Context, tenantID uuid.UUID, query ledger.RecordQuery) (int64, error) {
	var count int64
	q := r.applyQuery(r.db.WithContext(ctx).Model(&ledger.Record{}).Where("tenant_id = ?", tenantID), query)

	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindEntries returns record rows joined with their category, ordered by date
func (r *GormRecordRepository) FindEntries(ctx context.Context, tenantID uuid.UUID, placeIDs []uuid.UUID, start, end time.Time) ([]ledger.ReportEntry, error) {
	if len(placeIDs) == 0 {
		return nil, nil
	}

	var entries []ledger.ReportEntry
	if err := r.db.WithContext(ctx).
		Table("records").
		Select("records.date, records.place_id, categories.name AS category_name, categories.operation_type, records.amount").
		Joins("JOIN categories ON categories.id = records.category_id").
		Where("records.tenant_id = ? AND records.place_id IN ? AND records.date >= ? AND records.date <= ?",
			tenantID, placeIDs, start, end).
		Order("records.date ASC, records.created_at ASC").
		Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ProfitTotal sums a place's amounts with expense categories negated
func (r *GormRecordRepository) ProfitTotal(ctx context.Context, tenantID, placeID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Table("records").
		Select("COALESCE(SUM(CASE WHEN categories.operation_type = ? THEN -records.amount ELSE records.amount END), 0) AS total",
			ledger.OperationExpense).
		Joins("JOIN categories ON categories.id = records.category_id").
		Where("records.tenant_id = ? AND records.place_id = ?", tenantID, placeID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// QuantityTotals sums quantities per unit-bearing category for one place
func (r *GormRecordRepository) QuantityTotals(ctx context.Context, tenantID, placeID uuid.UUID, start, end time.Time) ([]ledger.QuantityTotal, error) {
	var totals []ledger.QuantityTotal
	if err := r.db.WithContext(ctx).
		Table("records").
		Select("categories.id AS category_id, categories.name AS category_name, units.name AS unit_name, COALESCE(SUM(records.quantity), 0) AS total_quantity").
		Joins("JOIN categories ON categories.id = records.category_id").
		Joins("JOIN units ON units.id = categories.unit_id").
		Where("records.tenant_id = ? AND records.place_id = ? AND records.date >= ? AND records.date <= ?",
			tenantID, placeID, start, end).
		Where("records.quantity IS NOT NULL").
		Group("categories.id, categories.name, units.name").
		Order("categories.name ASC").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

// Save creates or updates a record
func (r *GormRecordRepository) Save(ctx context.Context, record *ledger.Record) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete deletes a record within a tenant
func (r *GormRecordRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Record{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormRecordRepository) applyQuery(q *gorm.DB, query ledger.RecordQuery) *gorm.DB {
	if len(query.PlaceIDs) > 0 {
		q = q.Where("place_id IN ?", query.PlaceIDs)
	}
	if query.CategoryID != nil {
		q = q.Where("category_id = ?", *query.CategoryID)
	}
	if query.Start != nil {
		q = q.Where("date >= ?", *query.Start)
	}
	if query.End != nil {
		q = q.Where("date <= ?", *query.End)
	}
	return q
}

var _ ledger.RecordRepository = (*GormRecordRepository)(nil)

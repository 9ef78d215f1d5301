package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mihrabhq/backend/internal/domain/ledger"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// GormUnitRepository implements UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByID finds a unit by ID within a tenant
func (r *GormUnitRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Unit, error) {
	var unit ledger.Unit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindAll finds all units matching the filter
func (r *GormUnitRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ledger.Unit, error) {
	var units []ledger.Unit
	query := r.db.WithContext(ctx).Model(&ledger.Unit{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter, "name")
	query = applyPagination(query, filter)

	if err := query.Order("name ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// Count counts units matching the filter
func (r *GormUnitRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&ledger.Unit{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter, "name")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a unit
func (r *GormUnitRepository) Save(ctx context.Context, unit *ledger.Unit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

// Delete deletes a unit within a tenant
func (r *GormUnitRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Unit{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ ledger.UnitRepository = (*GormUnitRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mihrabhq/backend/internal/domain/ledger"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by ID within a tenant
func (r *GormCategoryRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Category, error) {
	var category ledger.Category
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds all categories matching the filter
func (r *GormCategoryRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ledger.Category, error) {
	var categories []ledger.Category
	query := r.db.WithContext(ctx).Model(&ledger.Category{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter, "name")
	query = applyPagination(query, filter)

	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Count counts categories matching the filter
func (r *GormCategoryRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&ledger.Category{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter, "name")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindUnitBearing finds all categories that measure quantities
func (r *GormCategoryRepository) FindUnitBearing(ctx context.Context, tenantID uuid.UUID) ([]ledger.Category, error) {
	var categories []ledger.Category
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND unit_id IS NOT NULL", tenantID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *ledger.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete deletes a category within a tenant
func (r *GormCategoryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Category{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ ledger.CategoryRepository = (*GormCategoryRepository)(nil)

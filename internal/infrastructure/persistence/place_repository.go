package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mihrabhq/backend/internal/domain/ledger"
	"github.com/mihrabhq/backend/internal/domain/org"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// GormPlaceRepository implements PlaceRepository using GORM
type GormPlaceRepository struct {
	db *gorm.DB
}

// NewGormPlaceRepository creates a new GormPlaceRepository
func NewGormPlaceRepository(db *gorm.DB) *GormPlaceRepository {
	return &GormPlaceRepository{db: db}
}

// FindByID finds a place by ID within a tenant
func (r *GormPlaceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*org.Place, error) {
	var place org.Place
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&place).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &place, nil
}

// FindByName finds a place by exact name within a tenant
func (r *GormPlaceRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*org.Place, error) {
	var place org.Place
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		First(&place).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &place, nil
}

// FindRoots finds all places without a parent
func (r *GormPlaceRepository) FindRoots(ctx context.Context, tenantID uuid.UUID) ([]org.Place, error) {
	var places []org.Place
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND parent_id IS NULL", tenantID).
		Order("name ASC").
		Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

// FindChildren finds all direct children of a place
func (r *GormPlaceRepository) FindChildren(ctx context.Context, tenantID, parentID uuid.UUID) ([]org.Place, error) {
	var places []org.Place
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND parent_id = ?", tenantID, parentID).
		Order("name ASC").
		Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

// FindAll finds all places matching the filter
func (r *GormPlaceRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]org.Place, error) {
	var places []org.Place
	query := r.db.WithContext(ctx).Model(&org.Place{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter, "name")
	query = applyPagination(query, filter)

	if err := query.Order("name ASC").Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

// Count counts places matching the filter
func (r *GormPlaceRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&org.Place{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter, "name")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a place
func (r *GormPlaceRepository) Save(ctx context.Context, place *org.Place) error {
	return r.db.WithContext(ctx).Save(place).Error
}

// Delete removes the place, its entire subtree and all records attached to
// any place in the subtree, in one transaction.
func (r *GormPlaceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := subtreeIDs(tx, tenantID, id)
		if err != nil {
			return err
		}

		if err := tx.Delete(&ledger.Record{}, "tenant_id = ? AND place_id IN ?", tenantID, ids).Error; err != nil {
			return err
		}

		result := tx.Delete(&org.Place{}, "tenant_id = ? AND id IN ?", tenantID, ids)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// subtreeIDs collects the place and all its descendants, level by level.
func subtreeIDs(tx *gorm.DB, tenantID, rootID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{rootID}
	frontier := []uuid.UUID{rootID}

	for depth := 0; len(frontier) > 0; depth++ {
		if depth > org.MaxHierarchyDepth {
			return nil, shared.ErrHierarchyCycle
		}
		var children []uuid.UUID
		if err := tx.Model(&org.Place{}).
			Where("tenant_id = ? AND parent_id IN ?", tenantID, frontier).
			Pluck("id", &children).Error; err != nil {
			return nil, err
		}
		ids = append(ids, children...)
		frontier = children
	}
	return ids, nil
}

var _ org.PlaceRepository = (*GormPlaceRepository)(nil)

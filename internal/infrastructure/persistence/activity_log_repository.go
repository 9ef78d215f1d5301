package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mihrabhq/backend/internal/domain/audit"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// GormActivityLogRepository implements ActivityLogRepository using GORM
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// FindAll finds activity log entries, newest first
func (r *GormActivityLogRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]audit.ActivityLog, error) {
	var logs []audit.ActivityLog
	query := r.db.WithContext(ctx).Model(&audit.ActivityLog{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter, "username")
	query = applyPagination(query, filter)

	if err := query.Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Count counts activity log entries matching the filter
func (r *GormActivityLogRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&audit.ActivityLog{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter, "username")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save appends one activity log entry
func (r *GormActivityLogRepository) Save(ctx context.Context, log *audit.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

var _ audit.ActivityLogRepository = (*GormActivityLogRepository)(nil)

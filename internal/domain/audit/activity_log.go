package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// Action names the kind of mutation an activity log entry records
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionImport Action = "import"
	ActionLogin  Action = "login"
)

// ActivityLog is one append-only audit entry. Entries are written after the
// mutation commits and are never updated.
type ActivityLog struct {
	shared.TenantAggregateRoot
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Username    string    `gorm:"type:varchar(100);not null"`
	Action      Action    `gorm:"type:varchar(20);not null"`
	ObjectType  string    `gorm:"type:varchar(50);not null;index"`
	ObjectID    uuid.UUID `gorm:"type:uuid;not null"`
	Description string    `gorm:"type:text"`
	IPAddress   string    `gorm:"type:varchar(64)"`
}

// TableName returns the table name for GORM
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// Entry is the payload handed to the Recorder by application services
type Entry struct {
	TenantID    uuid.UUID
	UserID      uuid.UUID
	Username    string
	Action      Action
	ObjectType  string
	ObjectID    uuid.UUID
	Description string
	IPAddress   string
}

// Recorder is the fire-and-forget audit sink. Implementations must never
// block or fail the primary operation.
type Recorder interface {
	Record(entry Entry)
}

// ActivityLogRepository defines the persistence contract for audit entries
type ActivityLogRepository interface {
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ActivityLog, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, log *ActivityLog) error
}

// NewActivityLog materializes an entry as a persistable aggregate
func NewActivityLog(entry Entry) *ActivityLog {
	return &ActivityLog{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(entry.TenantID),
		UserID:              entry.UserID,
		Username:            entry.Username,
		Action:              entry.Action,
		ObjectType:          entry.ObjectType,
		ObjectID:            entry.ObjectID,
		Description:         entry.Description,
		IPAddress:           entry.IPAddress,
	}
}

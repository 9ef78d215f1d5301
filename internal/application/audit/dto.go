package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/mihrabhq/backend/internal/domain/audit"
)

// ListActivityLogsRequest filters the activity log listing.
type ListActivityLogsRequest struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ActivityLogResponse is the serialized form of one audit entry.
type ActivityLogResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	Action      string    `json:"action"`
	ObjectType  string    `json:"object_type"`
	ObjectID    uuid.UUID `json:"object_id"`
	Description string    `json:"description"`
	IPAddress   string    `json:"ip_address"`
	CreatedAt   time.Time `json:"created_at"`
}

func toActivityLogResponse(log *audit.ActivityLog) *ActivityLogResponse {
	return &ActivityLogResponse{
		ID:          log.ID,
		UserID:      log.UserID,
		Username:    log.Username,
		Action:      string(log.Action),
		ObjectType:  log.ObjectType,
		ObjectID:    log.ObjectID,
		Description: log.Description,
		IPAddress:   log.IPAddress,
		CreatedAt:   log.CreatedAt,
	}
}

package audit

import (
	"context"
	"fmt"

	"github.com/mihrabhq/backend/internal/domain/audit"
	"github.com/mihrabhq/backend/internal/domain/identity"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ActivityService exposes the audit trail to administrators.
type ActivityService struct {
	logRepo audit.ActivityLogRepository
}

// NewActivityService creates a new activity log query service
func NewActivityService(logRepo audit.ActivityLogRepository) *ActivityService {
	return &ActivityService{logRepo: logRepo}
}

// List returns a page of activity log entries, newest first
func (s *ActivityService) List(ctx context.Context, actor identity.Actor, req ListActivityLogsRequest) (*shared.Paginated[ActivityLogResponse], error) {
	if !actor.Role.IsUnrestricted() {
		return nil, shared.ErrPermissionDenied
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := shared.Filter{
		Search:   req.Search,
		Page:     page,
		PageSize: pageSize,
	}
	total, err := s.logRepo.Count(ctx, actor.TenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("count activity logs: %w", err)
	}
	logs, err := s.logRepo.FindAll(ctx, actor.TenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}

	items := make([]ActivityLogResponse, 0, len(logs))
	for i := range logs {
		items = append(items, *toActivityLogResponse(&logs[i]))
	}
	return &shared.Paginated[ActivityLogResponse]{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

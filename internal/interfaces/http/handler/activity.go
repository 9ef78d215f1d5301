package handler

import (
	"github.com/gin-gonic/gin"

	auditapp "github.com/mihrabhq/backend/internal/application/audit"
)

// ActivityHandler handles activity log endpoints
type ActivityHandler struct {
	BaseHandler
	activityService *auditapp.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *auditapp.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// List returns a page of activity log entries
func (h *ActivityHandler) List(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req auditapp.ListActivityLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err, "Invalid query parameters")
		return
	}

	result, err := h.activityService.List(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, result)
}

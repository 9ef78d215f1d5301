package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mihrabhq/backend/internal/application/report"
)

// ReportHandler handles aggregation report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *report.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *report.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Records returns the flat pivot report for one place
func (h *ReportHandler) Records(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	query, ok := h.reportQuery(c)
	if !ok {
		return
	}

	result, err := h.reportService.Flat(c.Request.Context(), actor, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Hierarchy returns the nested report over a place's subtree
func (h *ReportHandler) Hierarchy(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	query, ok := h.reportQuery(c)
	if !ok {
		return
	}

	result, err := h.reportService.Hierarchical(c.Request.Context(), actor, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Profit returns the all-time profit total for one place
func (h *ReportHandler) Profit(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	placeID, ok := parseOptionalUUID(c, "place_id")
	if !ok {
		return
	}

	result, err := h.reportService.ProfitFor(c.Request.Context(), actor, placeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Value returns quantity totals per unit-bearing category for one place
func (h *ReportHandler) Value(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	placeID, ok := parseOptionalUUID(c, "place_id")
	if !ok {
		return
	}

	result, err := h.reportService.ValueFor(c.Request.Context(), actor, placeID, c.Query("start"), c.Query("end"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *ReportHandler) reportQuery(c *gin.Context) (report.Query, bool) {
	placeID, ok := parseOptionalUUID(c, "place_id")
	if !ok {
		return report.Query{}, false
	}
	return report.Query{
		PlaceID: placeID,
		Period:  c.Query("period"),
		Start:   c.Query("start"),
		End:     c.Query("end"),
	}, true
}


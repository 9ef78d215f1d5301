package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/mihrabhq/backend/internal/application/ledger"
)

// UnitHandler handles measurement unit endpoints
type UnitHandler struct {
	BaseHandler
	unitService *ledgerapp.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService *ledgerapp.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// Create creates a new unit
func (h *UnitHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req ledgerapp.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	result, err := h.unitService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Update modifies an existing unit
func (h *UnitHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ledgerapp.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	result, err := h.unitService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a unit
func (h *UnitHandler) Delete(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.unitService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Get returns one unit
func (h *UnitHandler) Get(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.unitService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns a page of units
func (h *UnitHandler) List(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	result, err := h.unitService.List(c.Request.Context(), actor, listFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, result)
}

package handler

import (
	"github.com/gin-gonic/gin"

	orgapp "github.com/mihrabhq/backend/internal/application/org"
)

// PlaceHandler handles place endpoints
type PlaceHandler struct {
	BaseHandler
	placeService  *orgapp.PlaceService
	importService *orgapp.PlaceImportService
}

// NewPlaceHandler creates a new PlaceHandler
func NewPlaceHandler(placeService *orgapp.PlaceService, importService *orgapp.PlaceImportService) *PlaceHandler {
	return &PlaceHandler{
		placeService:  placeService,
		importService: importService,
	}
}

// Create creates a new place
func (h *PlaceHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req orgapp.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	result, err := h.placeService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Update modifies an existing place
func (h *PlaceHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req orgapp.UpdatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}

	result, err := h.placeService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a place and its subtree
func (h *PlaceHandler) Delete(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.placeService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Get returns one place
func (h *PlaceHandler) Get(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.placeService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns a page of places
func (h *PlaceHandler) List(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req orgapp.ListPlacesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err, "Invalid query parameters")
		return
	}

	result, err := h.placeService.List(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, result)
}

// Hierarchy returns the next hierarchy level visible to the caller
func (h *PlaceHandler) Hierarchy(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	placeID, ok := parseOptionalUUID(c, "place_id")
	if !ok {
		return
	}

	result, err := h.placeService.Hierarchy(c.Request.Context(), actor, placeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Import loads places from an uploaded CSV file
func (h *PlaceHandler) Import(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file upload is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read the uploaded file")
		return
	}
	defer file.Close()

	result, err := h.importService.Import(c.Request.Context(), actor, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

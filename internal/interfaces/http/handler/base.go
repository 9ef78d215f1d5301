package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mihrabhq/backend/internal/domain/identity"
	"github.com/mihrabhq/backend/internal/domain/shared"
	"github.com/mihrabhq/backend/internal/interfaces/http/dto"
	"github.com/mihrabhq/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response with the standard envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Page sends a 200 response in the paginated list shape
func Page[T any](c *gin.Context, result *shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPage(c.Request.URL, result))
}

// BadRequest sends a 400 validation error response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeValidation, message))
}

// BindError sends a 400 for a failed request binding. Validator errors are
// flattened into per-field messages; anything else, such as malformed JSON,
// falls back to the given message.
func (h *BaseHandler) BindError(c *gin.Context, err error, fallback string) {
	message := middleware.BindingErrorMessage(err)
	if message == "" {
		message = fallback
	}
	h.BadRequest(c, message)
}

// HandleError maps a service error to its HTTP response
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code),
			dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred"))
}

// getActor returns the authenticated actor, aborting with 401 when absent
func getActor(c *gin.Context) (identity.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
		return identity.Actor{}, false
	}
	return actor, true
}

// parseID parses the :id path parameter as a UUID
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeValidation, "Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// listFilter builds a normalized filter from standard list query parameters
func listFilter(c *gin.Context) shared.Filter {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	if pageSize < 1 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}
	return shared.Filter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}
}

// parseOptionalUUID parses a query parameter as a UUID when present
func parseOptionalUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	id, err := uuid.Parse(value)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeValidation, "Invalid "+name))
		return nil, false
	}
	return &id, true
}

package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// CreateRecordRequest represents a request to create a financial record
type CreateRecordRequest struct {
	Date        string           `json:"date" binding:"required"`
	CategoryID  uuid.UUID        `json:"category_id" binding:"required"`
	PlaceID     *uuid.UUID       `json:"place_id"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Description string           `json:"description" binding:"max=2000"`
}

// UpdateRecordRequest represents a request to update a financial record
type UpdateRecordRequest struct {
	Date        string           `json:"date" binding:"required"`
	CategoryID  uuid.UUID        `json:"category_id" binding:"required"`
	PlaceID     *uuid.UUID       `json:"place_id"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Description string           `json:"description" binding:"max=2000"`
}

// ListRecordsRequest narrows a record listing
type ListRecordsRequest struct {
	PlaceID    *uuid.UUID `form:"place_id"`
	CategoryID *uuid.UUID `form:"category_id"`
	Start      string     `form:"start"`
	End        string     `form:"end"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// RecordResponse represents a record in API responses
type RecordResponse struct {
	ID          uuid.UUID        `json:"id"`
	Date        string           `json:"date"`
	CategoryID  uuid.UUID        `json:"category_id"`
	PlaceID     uuid.UUID        `json:"place_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	Description string           `json:"description,omitempty"`
	CreatedBy   *uuid.UUID       `json:"created_by,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func toRecordResponse(record *ledger.Record) *RecordResponse {
	return &RecordResponse{
		ID:          record.ID,
		Date:        record.Date.Format("2006-01-02"),
		CategoryID:  record.CategoryID,
		PlaceID:     record.PlaceID,
		Amount:      record.Amount,
		Quantity:    record.Quantity,
		Description: record.Description,
		CreatedBy:   record.CreatedBy,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=100"`
	OperationType string           `json:"operation_type" binding:"required"`
	UnitID        *uuid.UUID       `json:"unit_id"`
	Percentage    *decimal.Decimal `json:"percentage"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=100"`
	OperationType string           `json:"operation_type" binding:"required"`
	UnitID        *uuid.UUID       `json:"unit_id"`
	Percentage    *decimal.Decimal `json:"percentage"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	OperationType string           `json:"operation_type"`
	UnitID        *uuid.UUID       `json:"unit_id,omitempty"`
	Percentage    *decimal.Decimal `json:"percentage,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func toCategoryResponse(category *ledger.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:            category.ID,
		Name:          category.Name,
		OperationType: category.OperationType.String(),
		UnitID:        category.UnitID,
		Percentage:    category.Percentage,
		CreatedAt:     category.CreatedAt,
		UpdatedAt:     category.UpdatedAt,
	}
}

// CreateUnitRequest represents a request to create a measurement unit
type CreateUnitRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// UpdateUnitRequest represents a request to rename a measurement unit
type UpdateUnitRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// UnitResponse represents a measurement unit in API responses
type UnitResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUnitResponse(unit *ledger.Unit) *UnitResponse {
	return &UnitResponse{
		ID:        unit.ID,
		Name:      unit.Name,
		CreatedAt: unit.CreatedAt,
		UpdatedAt: unit.UpdatedAt,
	}
}

package org

import (
	"time"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/org"
)

// CreatePlaceRequest represents a request to create a place
type CreatePlaceRequest struct {
	Name          string     `json:"name" binding:"required,min=1,max=200"`
	TaxID         string     `json:"tax_id" binding:"max=50"`
	ParentID      *uuid.UUID `json:"parent_id"`
	IsMosque      bool       `json:"is_mosque"`
	EmployeeCount int        `json:"employee_count" binding:"min=0"`
}

// UpdatePlaceRequest represents a request to update a place
type UpdatePlaceRequest struct {
	Name          string     `json:"name" binding:"required,min=1,max=200"`
	TaxID         string     `json:"tax_id" binding:"max=50"`
	ParentID      *uuid.UUID `json:"parent_id"`
	EmployeeCount int        `json:"employee_count" binding:"min=0"`
}

// ListPlacesRequest narrows a place listing
type ListPlacesRequest struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// PlaceResponse represents a place in API responses
type PlaceResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	TaxID         string     `json:"tax_id,omitempty"`
	ParentID      *uuid.UUID `json:"parent_id,omitempty"`
	IsMosque      bool       `json:"is_mosque"`
	EmployeeCount int        `json:"employee_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toPlaceResponse(place *org.Place) *PlaceResponse {
	return &PlaceResponse{
		ID:            place.ID,
		Name:          place.Name,
		TaxID:         place.TaxID,
		ParentID:      place.ParentID,
		IsMosque:      place.IsMosque,
		EmployeeCount: place.EmployeeCount,
		CreatedAt:     place.CreatedAt,
		UpdatedAt:     place.UpdatedAt,
	}
}

// ImportSummary reports the outcome of a bulk place import
type ImportSummary struct {
	TotalRows    int      `json:"total_rows"`
	ImportedRows int      `json:"imported_rows"`
	SkippedRows  int      `json:"skipped_rows"`
	Errors       []string `json:"errors,omitempty"`
}

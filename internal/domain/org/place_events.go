package org

import (
	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// PlaceCreatedEvent is raised when a new place is created
type PlaceCreatedEvent struct {
	shared.BaseDomainEvent
	PlaceID  uuid.UUID  `json:"place_id"`
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
	IsMosque bool       `json:"is_mosque"`
}

// EventType returns the event type name
func (e *PlaceCreatedEvent) EventType() string {
	return "PlaceCreated"
}

// NewPlaceCreatedEvent creates a new PlaceCreatedEvent
func NewPlaceCreatedEvent(place *Place) *PlaceCreatedEvent {
	return &PlaceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PlaceCreated", "Place", place.ID, place.TenantID),
		PlaceID:         place.ID,
		Name:            place.Name,
		ParentID:        place.ParentID,
		IsMosque:        place.IsMosque,
	}
}

// PlaceUpdatedEvent is raised when a place is updated or moved
type PlaceUpdatedEvent struct {
	shared.BaseDomainEvent
	PlaceID  uuid.UUID  `json:"place_id"`
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// EventType returns the event type name
func (e *PlaceUpdatedEvent) EventType() string {
	return "PlaceUpdated"
}

// NewPlaceUpdatedEvent creates a new PlaceUpdatedEvent
func NewPlaceUpdatedEvent(place *Place) *PlaceUpdatedEvent {
	return &PlaceUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PlaceUpdated", "Place", place.ID, place.TenantID),
		PlaceID:         place.ID,
		Name:            place.Name,
		ParentID:        place.ParentID,
	}
}

// PlaceDeletedEvent is raised when a place is deleted with its subtree
type PlaceDeletedEvent struct {
	shared.BaseDomainEvent
	PlaceID uuid.UUID `json:"place_id"`
	Name    string    `json:"name"`
}

// EventType returns the event type name
func (e *PlaceDeletedEvent) EventType() string {
	return "PlaceDeleted"
}

// NewPlaceDeletedEvent creates a new PlaceDeletedEvent
func NewPlaceDeletedEvent(place *Place) *PlaceDeletedEvent {
	return &PlaceDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PlaceDeleted", "Place", place.ID, place.TenantID),
		PlaceID:         place.ID,
		Name:            place.Name,
	}
}

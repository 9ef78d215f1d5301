package org

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/audit"
	"github.com/mihrabhq/backend/internal/domain/identity"
	"github.com/mihrabhq/backend/internal/domain/org"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// PlaceService handles place hierarchy operations
type PlaceService struct {
	placeRepo org.PlaceRepository
	auditor   audit.Recorder
}

// NewPlaceService creates a new PlaceService
func NewPlaceService(placeRepo org.PlaceRepository, auditor audit.Recorder) *PlaceService {
	return &PlaceService{
		placeRepo: placeRepo,
		auditor:   auditor,
	}
}

// Create creates a new place. Only admins may grow the hierarchy.
func (s *PlaceService) Create(ctx context.Context, actor identity.Actor, req CreatePlaceRequest) (*PlaceResponse, error) {
	if !actor.Role.IsUnrestricted() {
		return nil, shared.ErrPermissionDenied
	}

	var place *org.Place

	if req.ParentID != nil {
		parent, err := s.find(ctx, actor.TenantID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		child, err := org.NewChildPlace(actor.TenantID, req.Name, req.TaxID, req.EmployeeCount, parent, req.IsMosque)
		if err != nil {
			return nil, err
		}
		place = child
	} else {
		root, err := org.NewPlace(actor.TenantID, req.Name, req.TaxID, req.EmployeeCount)
		if err != nil {
			return nil, err
		}
		if req.IsMosque {
			root.MarkAsMosque()
		}
		place = root
	}

	if err := s.placeRepo.Save(ctx, place); err != nil {
		return nil, err
	}

	s.audit(actor, audit.ActionCreate, place.ID, fmt.Sprintf("Created place %q", place.Name))

	return toPlaceResponse(place), nil
}

// Update updates a place and optionally moves it under a new parent
func (s *PlaceService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdatePlaceRequest) (*PlaceResponse, error) {
	if !actor.Role.IsUnrestricted() {
		return nil, shared.ErrPermissionDenied
	}

	place, err := s.find(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if err := place.Update(req.Name, req.TaxID, req.EmployeeCount); err != nil {
		return nil, err
	}

	if err := s.reparent(ctx, actor.TenantID, place, req.ParentID); err != nil {
		return nil, err
	}

	if err := s.placeRepo.Save(ctx, place); err != nil {
		return nil, err
	}

	s.audit(actor, audit.ActionUpdate, place.ID, fmt.Sprintf("Updated place %q", place.Name))

	return toPlaceResponse(place), nil
}

// Delete removes a place together with its subtree and their records
func (s *PlaceService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if !actor.Role.IsUnrestricted() {
		return shared.ErrPermissionDenied
	}

	place, err := s.find(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}

	if err := s.placeRepo.Delete(ctx, actor.TenantID, place.ID); err != nil {
		return err
	}

	s.audit(actor, audit.ActionDelete, place.ID, fmt.Sprintf("Deleted place %q with its subtree", place.Name))

	return nil
}

// Get returns one place
func (s *PlaceService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*PlaceResponse, error) {
	place, err := s.find(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	return toPlaceResponse(place), nil
}

// List returns places matching an optional name search, paginated. A page
// beyond the last one degrades to an empty result, not an error.
func (s *PlaceService) List(ctx context.Context, actor identity.Actor, req ListPlacesRequest) (*shared.Paginated[PlaceResponse], error) {
	filter := shared.DefaultFilter()
	filter.Search = req.Search
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if filter.PageSize > 200 {
		filter.PageSize = 200
	}

	total, err := s.placeRepo.Count(ctx, actor.TenantID, filter)
	if err != nil {
		return nil, err
	}

	places, err := s.placeRepo.FindAll(ctx, actor.TenantID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PlaceResponse, 0, len(places))
	for i := range places {
		items = append(items, *toPlaceResponse(&places[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Hierarchy resolves the role-dispatched hierarchy listing: the children of
// the requested place when the actor's scope reaches it, or the role's
// default listing root when no place is requested.
func (s *PlaceService) Hierarchy(ctx context.Context, actor identity.Actor, requestedID *uuid.UUID) ([]PlaceResponse, error) {
	var requested *org.Place
	if requestedID != nil {
		place, err := s.find(ctx, actor.TenantID, *requestedID)
		if err != nil {
			return nil, err
		}
		requested = place
	}

	scope := identity.ScopeFor(actor, s.placeRepo)
	places, err := scope.ListChildren(ctx, requested)
	if err != nil {
		return nil, err
	}

	items := make([]PlaceResponse, 0, len(places))
	for i := range places {
		items = append(items, *toPlaceResponse(&places[i]))
	}
	return items, nil
}

// reparent applies a parent change, refusing moves that would place the node
// under its own subtree.
func (s *PlaceService) reparent(ctx context.Context, tenantID uuid.UUID, place *org.Place, newParentID *uuid.UUID) error {
	current := place.ParentID
	switch {
	case newParentID == nil && current == nil:
		return nil
	case newParentID != nil && current != nil && *newParentID == *current:
		return nil
	}

	if newParentID == nil {
		return place.Reparent(nil)
	}

	descendants, err := org.DescendantIDs(ctx, s.placeRepo, tenantID, place.ID)
	if err != nil {
		return err
	}
	for _, id := range descendants {
		if id == *newParentID {
			return shared.NewDomainError("VALIDATION_ERROR", "Cannot move a place under its own subtree")
		}
	}

	parent, err := s.find(ctx, tenantID, *newParentID)
	if err != nil {
		return err
	}
	return place.Reparent(parent)
}

func (s *PlaceService) find(ctx context.Context, tenantID, id uuid.UUID) (*org.Place, error) {
	place, err := s.placeRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Place not found")
		}
		return nil, err
	}
	return place, nil
}

func (s *PlaceService) audit(actor identity.Actor, action audit.Action, objectID uuid.UUID, description string) {
	s.auditor.Record(audit.Entry{
		TenantID:    actor.TenantID,
		UserID:      actor.UserID,
		Username:    actor.Username,
		Action:      action,
		ObjectType:  "Place",
		ObjectID:    objectID,
		Description: description,
		IPAddress:   actor.RemoteAddr,
	})
}

package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/org"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// Scope is the capability a role grants over the place hierarchy. One
// implementation exists per role; all of them apply the same membership rule:
// a place is in scope iff the actor's home place is the place itself or one of
// its ancestors.
type Scope interface {
	// CanAccess reports whether the place lies inside the actor's subtree.
	CanAccess(ctx context.Context, place *org.Place) (bool, error)
	// ListChildren resolves the hierarchy listing for an optional requested
	// place. A nil requested place means the role's default listing root.
	ListChildren(ctx context.Context, requested *org.Place) ([]org.Place, error)
	// RecordPlace validates and possibly coerces the target place of a record
	// write, returning the place the record must be booked against.
	RecordPlace(ctx context.Context, requested *org.Place) (*org.Place, error)
	// RecordFilter validates the place filter of a record listing.
	RecordFilter(ctx context.Context, requested *org.Place) (*org.Place, error)
}

// ScopeFor returns the scope capability for the actor's role. A role outside
// the closed set yields a scope that exposes nothing and denies every write.
func ScopeFor(actor Actor, places org.PlaceRepository) Scope {
	switch actor.Role {
	case RoleAdmin:
		return &adminScope{tenantID: actor.TenantID, places: places}
	case RoleRegionAdmin, RoleCityAdmin:
		return &subtreeScope{tenantID: actor.TenantID, homeID: actor.HomePlaceID, places: places}
	case RoleMosqueAdmin:
		return &leafScope{tenantID: actor.TenantID, homeID: actor.HomePlaceID, places: places}
	default:
		return emptyScope{}
	}
}

var (
	errPlaceRequired      = shared.NewDomainError("VALIDATION_ERROR", "Place is required")
	errPlaceFilterMissing = shared.NewDomainError("VALIDATION_ERROR", "Place filter is required")
	errPlaceOutsideArea   = shared.NewDomainError("VALIDATION_ERROR", "Place does not belong to your area")
	errRecordNeedsMosque  = shared.NewDomainError("VALIDATION_ERROR", "Records must target a mosque")
	errHomePlaceMissing   = shared.NewDomainError("VALIDATION_ERROR", "User has no home place assigned")
	errLeafListing        = shared.NewDomainError("NOT_SUPPORTED", "Hierarchy listing is not available for this role")
)

// adminScope may reach every place in the tenant and is never denied.
type adminScope struct {
	tenantID uuid.UUID
	places   org.PlaceRepository
}

func (s *adminScope) CanAccess(ctx context.Context, place *org.Place) (bool, error) {
	return true, nil
}

func (s *adminScope) ListChildren(ctx context.Context, requested *org.Place) ([]org.Place, error) {
	if requested == nil {
		return s.places.FindRoots(ctx, s.tenantID)
	}
	return s.places.FindChildren(ctx, s.tenantID, requested.ID)
}

func (s *adminScope) RecordPlace(ctx context.Context, requested *org.Place) (*org.Place, error) {
	if requested == nil {
		return nil, errPlaceRequired
	}
	if !requested.IsMosque {
		return nil, errRecordNeedsMosque
	}
	return requested, nil
}

func (s *adminScope) RecordFilter(ctx context.Context, requested *org.Place) (*org.Place, error) {
	if requested == nil {
		return nil, errPlaceFilterMissing
	}
	return requested, nil
}

// subtreeScope covers region and city admins: everything under the home place.
type subtreeScope struct {
	tenantID uuid.UUID
	homeID   *uuid.UUID
	places   org.PlaceRepository
}

func (s *subtreeScope) CanAccess(ctx context.Context, place *org.Place) (bool, error) {
	if s.homeID == nil {
		return false, nil
	}
	return org.BelongsTo(ctx, s.places, s.tenantID, place, *s.homeID)
}

func (s *subtreeScope) ListChildren(ctx context.Context, requested *org.Place) ([]org.Place, error) {
	if s.homeID == nil {
		return nil, errHomePlaceMissing
	}
	if requested == nil {
		return s.places.FindChildren(ctx, s.tenantID, *s.homeID)
	}
	if requested.IsMosque {
		return nil, errLeafListing
	}
	ok, err := org.BelongsTo(ctx, s.places, s.tenantID, requested, *s.homeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrPermissionDenied
	}
	return s.places.FindChildren(ctx, s.tenantID, requested.ID)
}

func (s *subtreeScope) RecordPlace(ctx context.Context, requested *org.Place) (*org.Place, error) {
	if s.homeID == nil {
		return nil, errHomePlaceMissing
	}
	if requested == nil {
		return nil, errPlaceRequired
	}
	if !requested.IsMosque {
		return nil, errRecordNeedsMosque
	}
	ok, err := org.BelongsTo(ctx, s.places, s.tenantID, requested, *s.homeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrPermissionDenied
	}
	return requested, nil
}

func (s *subtreeScope) RecordFilter(ctx context.Context, requested *org.Place) (*org.Place, error) {
	if s.homeID == nil {
		return nil, errHomePlaceMissing
	}
	if requested == nil {
		return nil, errPlaceFilterMissing
	}
	ok, err := org.BelongsTo(ctx, s.places, s.tenantID, requested, *s.homeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errPlaceOutsideArea
	}
	return requested, nil
}

// leafScope covers mosque admins: only their own home place, with record
// writes coerced to it regardless of the submitted place.
type leafScope struct {
	tenantID uuid.UUID
	homeID   *uuid.UUID
	places   org.PlaceRepository
}

func (s *leafScope) CanAccess(ctx context.Context, place *org.Place) (bool, error) {
	return s.homeID != nil && place.ID == *s.homeID, nil
}

func (s *leafScope) ListChildren(ctx context.Context, requested *org.Place) ([]org.Place, error) {
	return nil, errLeafListing
}

func (s *leafScope) RecordPlace(ctx context.Context, requested *org.Place) (*org.Place, error) {
	if s.homeID == nil {
		return nil, errHomePlaceMissing
	}
	return s.places.FindByID(ctx, s.tenantID, *s.homeID)
}

func (s *leafScope) RecordFilter(ctx context.Context, requested *org.Place) (*org.Place, error) {
	if s.homeID == nil {
		return nil, errHomePlaceMissing
	}
	if requested == nil || requested.ID == *s.homeID {
		return s.places.FindByID(ctx, s.tenantID, *s.homeID)
	}
	return nil, errPlaceOutsideArea
}

// emptyScope is the fail-closed scope of an unrecognized role: it lists
// nothing and denies every record operation.
type emptyScope struct{}

func (emptyScope) CanAccess(ctx context.Context, place *org.Place) (bool, error) {
	return false, nil
}

func (emptyScope) ListChildren(ctx context.Context, requested *org.Place) ([]org.Place, error) {
	return []org.Place{}, nil
}

func (emptyScope) RecordPlace(ctx context.Context, requested *org.Place) (*org.Place, error) {
	return nil, shared.ErrPermissionDenied
}

func (emptyScope) RecordFilter(ctx context.Context, requested *org.Place) (*org.Place, error) {
	return nil, shared.ErrPermissionDenied
}

package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/audit"
	"github.com/mihrabhq/backend/internal/domain/identity"
	"github.com/mihrabhq/backend/internal/domain/ledger"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// UnitService handles measurement unit operations
type UnitService struct {
	unitRepo ledger.UnitRepository
	auditor  audit.Recorder
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo ledger.UnitRepository, auditor audit.Recorder) *UnitService {
	return &UnitService{
		unitRepo: unitRepo,
		auditor:  auditor,
	}
}

// Create creates a new measurement unit
func (s *UnitService) Create(ctx context.Context, actor identity.Actor, req CreateUnitRequest) (*UnitResponse, error) {
	unit, err := ledger.NewUnit(actor.TenantID, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	s.audit(actor, audit.ActionCreate, unit.ID, fmt.Sprintf("Created unit %q", unit.Name))

	return toUnitResponse(unit), nil
}

// Update renames a measurement unit
func (s *UnitService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateUnitRequest) (*UnitResponse, error) {
	unit, err := s.find(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if err := unit.Update(req.Name); err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	s.audit(actor, audit.ActionUpdate, unit.ID, fmt.Sprintf("Updated unit %q", unit.Name))

	return toUnitResponse(unit), nil
}

// Delete removes a measurement unit
func (s *UnitService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	unit, err := s.find(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}

	if err := s.unitRepo.Delete(ctx, actor.TenantID, unit.ID); err != nil {
		return err
	}

	s.audit(actor, audit.ActionDelete, unit.ID, fmt.Sprintf("Deleted unit %q", unit.Name))

	return nil
}

// Get returns one measurement unit
func (s *UnitService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*UnitResponse, error) {
	unit, err := s.find(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// List returns measurement units with pagination
func (s *UnitService) List(ctx context.Context, actor identity.Actor, filter shared.Filter) (*shared.Paginated[UnitResponse], error) {
	total, err := s.unitRepo.Count(ctx, actor.TenantID, filter)
	if err != nil {
		return nil, err
	}

	units, err := s.unitRepo.FindAll(ctx, actor.TenantID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]UnitResponse, 0, len(units))
	for i := range units {
		items = append(items, *toUnitResponse(&units[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (s *UnitService) find(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Unit, error) {
	unit, err := s.unitRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Unit not found")
		}
		return nil, err
	}
	return unit, nil
}

func (s *UnitService) audit(actor identity.Actor, action audit.Action, objectID uuid.UUID, description string) {
	s.auditor.Record(audit.Entry{
		TenantID:    actor.TenantID,
		UserID:      actor.UserID,
		Username:    actor.Username,
		Action:      action,
		ObjectType:  "Unit",
		ObjectID:    objectID,
		Description: description,
		IPAddress:   actor.RemoteAddr,
	})
}

package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/audit"
	"github.com/mihrabhq/backend/internal/domain/identity"
	"github.com/mihrabhq/backend/internal/domain/ledger"
	"github.com/mihrabhq/backend/internal/domain/org"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// RecordService validates and books financial records. Place scoping is
// delegated to the actor's role scope; every mutation is reported to the
// audit recorder after the write commits.
type RecordService struct {
	recordRepo   ledger.RecordRepository
	categoryRepo ledger.CategoryRepository
	placeRepo    org.PlaceRepository
	auditor      audit.Recorder
}

// NewRecordService creates a new RecordService
func NewRecordService(
	recordRepo ledger.RecordRepository,
	categoryRepo ledger.CategoryRepository,
	placeRepo org.PlaceRepository,
	auditor audit.Recorder,
) *RecordService {
	return &RecordService{
		recordRepo:   recordRepo,
		categoryRepo: categoryRepo,
		placeRepo:    placeRepo,
		auditor:      auditor,
	}
}

// Create books a new record after validating the target place against the
// actor's scope. Mosque admins are always booked against their home place,
// whatever place the request names.
func (s *RecordService) Create(ctx context.Context, actor identity.Actor, req CreateRecordRequest) (*RecordResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	category, err := s.findCategory(ctx, actor.TenantID, req.CategoryID)
	if err != nil {
		return nil, err
	}

	place, err := s.resolveTargetPlace(ctx, actor, req.PlaceID)
	if err != nil {
		return nil, err
	}

	record, err := ledger.NewRecord(actor.TenantID, date, category.ID, place.ID, req.Amount, req.Description)
	if err != nil {
		return nil, err
	}
	record.SetCreatedBy(actor.UserID)

	if req.Quantity != nil {
		if err := record.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.audit(actor, audit.ActionCreate, record.ID, fmt.Sprintf("Created record of %s for category %q at place %q", req.Amount.String(), category.Name, place.Name))

	return toRecordResponse(record), nil
}

// Update rewrites an existing record under the same place scoping rules
func (s *RecordService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateRecordRequest) (*RecordResponse, error) {
	record, err := s.findRecord(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	category, err := s.findCategory(ctx, actor.TenantID, req.CategoryID)
	if err != nil {
		return nil, err
	}

	place, err := s.resolveTargetPlace(ctx, actor, req.PlaceID)
	if err != nil {
		return nil, err
	}

	if err := record.Update(date, category.ID, place.ID, req.Amount, req.Description); err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		if err := record.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	} else {
		record.ClearQuantity()
	}

	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.audit(actor, audit.ActionUpdate, record.ID, fmt.Sprintf("Updated record for category %q at place %q", category.Name, place.Name))

	return toRecordResponse(record), nil
}

// Delete removes a record the actor's scope can reach
func (s *RecordService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	record, err := s.findRecord(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}

	if err := s.checkRecordAccess(ctx, actor, record); err != nil {
		return err
	}

	if err := s.recordRepo.Delete(ctx, actor.TenantID, record.ID); err != nil {
		return err
	}

	s.audit(actor, audit.ActionDelete, record.ID, "Deleted record")

	return nil
}

// Get returns one record if its place lies inside the actor's scope
func (s *RecordService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*RecordResponse, error) {
	record, err := s.findRecord(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkRecordAccess(ctx, actor, record); err != nil {
		return nil, err
	}

	return toRecordResponse(record), nil
}

// List returns records for one place filter. All roles except mosque admins
// must name the place explicitly; mosque admins default to their home place.
// A page beyond the last one degrades to an empty result, not an error.
func (s *RecordService) List(ctx context.Context, actor identity.Actor, req ListRecordsRequest) (*shared.Paginated[RecordResponse], error) {
	var requested *org.Place
	if req.PlaceID != nil {
		place, err := s.findPlace(ctx, actor.TenantID, *req.PlaceID)
		if err != nil {
			return nil, err
		}
		requested = place
	}

	scope := identity.ScopeFor(actor, s.placeRepo)
	place, err := scope.RecordFilter(ctx, requested)
	if err != nil {
		return nil, err
	}

	query := ledger.RecordQuery{
		PlaceIDs:   []uuid.UUID{place.ID},
		CategoryID: req.CategoryID,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = 50
	}
	if query.PageSize > 200 {
		query.PageSize = 200
	}
	if req.Start != "" {
		start, err := parseDate(req.Start)
		if err != nil {
			return nil, err
		}
		query.Start = &start
	}
	if req.End != "" {
		end, err := parseDate(req.End)
		if err != nil {
			return nil, err
		}
		query.End = &end
	}

	total, err := s.recordRepo.Count(ctx, actor.TenantID, query)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.FindAll(ctx, actor.TenantID, query)
	if err != nil {
		return nil, err
	}

	items := make([]RecordResponse, 0, len(records))
	for i := range records {
		items = append(items, *toRecordResponse(&records[i]))
	}

	result := shared.NewPaginated(items, total, query.Page, query.PageSize)
	return &result, nil
}

func (s *RecordService) resolveTargetPlace(ctx context.Context, actor identity.Actor, placeID *uuid.UUID) (*org.Place, error) {
	var requested *org.Place
	if placeID != nil {
		place, err := s.findPlace(ctx, actor.TenantID, *placeID)
		if err != nil {
			return nil, err
		}
		requested = place
	}

	scope := identity.ScopeFor(actor, s.placeRepo)
	return scope.RecordPlace(ctx, requested)
}

func (s *RecordService) checkRecordAccess(ctx context.Context, actor identity.Actor, record *ledger.Record) error {
	place, err := s.findPlace(ctx, actor.TenantID, record.PlaceID)
	if err != nil {
		return err
	}

	scope := identity.ScopeFor(actor, s.placeRepo)
	ok, err := scope.CanAccess(ctx, place)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrPermissionDenied
	}
	return nil
}

func (s *RecordService) findRecord(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Record, error) {
	record, err := s.recordRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Record not found")
		}
		return nil, err
	}
	return record, nil
}

func (s *RecordService) findCategory(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
		}
		return nil, err
	}
	return category, nil
}

func (s *RecordService) findPlace(ctx context.Context, tenantID, id uuid.UUID) (*org.Place, error) {
	place, err := s.placeRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Place not found")
		}
		return nil, err
	}
	return place, nil
}

func (s *RecordService) audit(actor identity.Actor, action audit.Action, objectID uuid.UUID, description string) {
	s.auditor.Record(audit.Entry{
		TenantID:    actor.TenantID,
		UserID:      actor.UserID,
		Username:    actor.Username,
		Action:      action,
		ObjectType:  "Record",
		ObjectID:    objectID,
		Description: description,
		IPAddress:   actor.RemoteAddr,
	})
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, shared.NewDomainError("VALIDATION_ERROR", "Invalid date, expected YYYY-MM-DD")
	}
	return date, nil
}

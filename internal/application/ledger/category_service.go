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
	"github.com/shopspring/decimal"
)

// CategoryService handles accounting category operations
type CategoryService struct {
	categoryRepo ledger.CategoryRepository
	unitRepo     ledger.UnitRepository
	auditor      audit.Recorder
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo ledger.CategoryRepository, unitRepo ledger.UnitRepository, auditor audit.Recorder) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		auditor:      auditor,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, actor identity.Actor, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := ledger.NewCategory(actor.TenantID, req.Name, ledger.OperationType(req.OperationType))
	if err != nil {
		return nil, err
	}

	if err := s.applyOptional(ctx, actor.TenantID, category, req.UnitID, req.Percentage); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.audit(actor, audit.ActionCreate, category.ID, fmt.Sprintf("Created category %q", category.Name))

	return toCategoryResponse(category), nil
}

// Update updates an existing category
func (s *CategoryService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.find(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if err := category.Update(req.Name, ledger.OperationType(req.OperationType)); err != nil {
		return nil, err
	}

	if req.UnitID == nil {
		category.DetachUnit()
	}
	if err := s.applyOptional(ctx, actor.TenantID, category, req.UnitID, req.Percentage); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.audit(actor, audit.ActionUpdate, category.ID, fmt.Sprintf("Updated category %q", category.Name))

	return toCategoryResponse(category), nil
}

// Delete removes a category
func (s *CategoryService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	category, err := s.find(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, actor.TenantID, category.ID); err != nil {
		return err
	}

	s.audit(actor, audit.ActionDelete, category.ID, fmt.Sprintf("Deleted category %q", category.Name))

	return nil
}

// Get returns one category
func (s *CategoryService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.find(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List returns categories with pagination
func (s *CategoryService) List(ctx context.Context, actor identity.Actor, filter shared.Filter) (*shared.Paginated[CategoryResponse], error) {
	total, err := s.categoryRepo.Count(ctx, actor.TenantID, filter)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.FindAll(ctx, actor.TenantID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, *toCategoryResponse(&categories[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (s *CategoryService) applyOptional(ctx context.Context, tenantID uuid.UUID, category *ledger.Category, unitID *uuid.UUID, percentage *decimal.Decimal) error {
	if unitID != nil {
		unit, err := s.unitRepo.FindByID(ctx, tenantID, *unitID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", "Unit not found")
			}
			return err
		}
		category.AttachUnit(unit.ID)
	}
	if percentage != nil {
		if err := category.SetPercentage(*percentage); err != nil {
			return err
		}
	}
	return nil
}

func (s *CategoryService) find(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) audit(actor identity.Actor, action audit.Action, objectID uuid.UUID, description string) {
	s.auditor.Record(audit.Entry{
		TenantID:    actor.TenantID,
		UserID:      actor.UserID,
		Username:    actor.Username,
		Action:      action,
		ObjectType:  "Category",
		ObjectID:    objectID,
		Description: description,
		IPAddress:   actor.RemoteAddr,
	})
}

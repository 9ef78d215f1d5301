package report

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/identity"
	"github.com/mihrabhq/backend/internal/domain/ledger"
	"github.com/mihrabhq/backend/internal/domain/org"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// ReportService builds the role-scoped reporting aggregations
type ReportService struct {
	placeRepo  org.PlaceRepository
	recordRepo ledger.RecordRepository
}

// NewReportService creates a new ReportService
func NewReportService(placeRepo org.PlaceRepository, recordRepo ledger.RecordRepository) *ReportService {
	return &ReportService{
		placeRepo:  placeRepo,
		recordRepo: recordRepo,
	}
}

// Flat builds the pivot table report for a single place
func (s *ReportService) Flat(ctx context.Context, actor identity.Actor, query Query) (*Table, error) {
	period, err := ParsePeriod(query.Period)
	if err != nil {
		return nil, err
	}
	dateRange, err := ParseDateRange(query.Start, query.End)
	if err != nil {
		return nil, err
	}
	place, err := s.resolvePlace(ctx, actor, query.PlaceID)
	if err != nil {
		return nil, err
	}

	entries, err := s.recordRepo.FindEntries(ctx, actor.TenantID, []uuid.UUID{place.ID}, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, err
	}

	table := buildTable(entries, period, period.Labels(dateRange.Start, dateRange.End))
	return &table, nil
}

// Hierarchical builds the nested report over the subtree rooted at the
// requested place. Internal places map child names to subtrees, places without
// children carry their own flat table under a "data" key.
func (s *ReportService) Hierarchical(ctx context.Context, actor identity.Actor, query Query) (Tree, error) {
	period, err := ParsePeriod(query.Period)
	if err != nil {
		return nil, err
	}
	dateRange, err := ParseDateRange(query.Start, query.End)
	if err != nil {
		return nil, err
	}
	root, err := s.resolvePlace(ctx, actor, query.PlaceID)
	if err != nil {
		return nil, err
	}

	placeIDs, err := org.DescendantIDs(ctx, s.placeRepo, actor.TenantID, root.ID)
	if err != nil {
		return nil, err
	}
	entries, err := s.recordRepo.FindEntries(ctx, actor.TenantID, placeIDs, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, err
	}

	entriesByPlace := make(map[uuid.UUID][]ledger.ReportEntry)
	for _, entry := range entries {
		entriesByPlace[entry.PlaceID] = append(entriesByPlace[entry.PlaceID], entry)
	}

	labels := period.Labels(dateRange.Start, dateRange.End)
	subtree, err := s.buildSubtree(ctx, actor.TenantID, root, entriesByPlace, period, labels, 0)
	if err != nil {
		return nil, err
	}

	return Tree{root.Name: subtree}, nil
}

func (s *ReportService) buildSubtree(ctx context.Context, tenantID uuid.UUID, place *org.Place, entriesByPlace map[uuid.UUID][]ledger.ReportEntry, period Period, labels []string, depth int) (map[string]any, error) {
	if depth >= org.MaxHierarchyDepth {
		return nil, shared.ErrHierarchyCycle
	}

	node := make(map[string]any)
	children, err := s.placeRepo.FindChildren(ctx, tenantID, place.ID)
	if err != nil {
		return nil, err
	}

	if len(children) == 0 {
		node["data"] = buildTable(entriesByPlace[place.ID], period, labels)
		return node, nil
	}

	for i := range children {
		child := children[i]
		subtree, err := s.buildSubtree(ctx, tenantID, &child, entriesByPlace, period, labels, depth+1)
		if err != nil {
			return nil, err
		}
		node[child.Name] = subtree
	}

	return node, nil
}

// ProfitFor sums a place's amounts with expenses negated
func (s *ReportService) ProfitFor(ctx context.Context, actor identity.Actor, placeID *uuid.UUID) (*Profit, error) {
	place, err := s.resolvePlace(ctx, actor, placeID)
	if err != nil {
		return nil, err
	}

	total, err := s.recordRepo.ProfitTotal(ctx, actor.TenantID, place.ID)
	if err != nil {
		return nil, err
	}

	return &Profit{Total: toFloat64(total)}, nil
}

// ValueFor sums quantities per unit-bearing category at a place over a range
func (s *ReportService) ValueFor(ctx context.Context, actor identity.Actor, placeID *uuid.UUID, start, end string) ([]ValueRow, error) {
	dateRange, err := ParseDateRange(start, end)
	if err != nil {
		return nil, err
	}
	place, err := s.resolvePlace(ctx, actor, placeID)
	if err != nil {
		return nil, err
	}

	totals, err := s.recordRepo.QuantityTotals(ctx, actor.TenantID, place.ID, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, err
	}

	rows := make([]ValueRow, 0, len(totals))
	for _, total := range totals {
		rows = append(rows, ValueRow{
			CategoryID:    total.CategoryID,
			CategoryName:  total.CategoryName,
			UnitName:      total.UnitName,
			TotalQuantity: toFloat64(total.TotalQuantity),
		})
	}

	return rows, nil
}

// resolvePlace loads the requested place and checks it against the actor's
// scope. Mosque admins fall back to their home place when no place is given.
func (s *ReportService) resolvePlace(ctx context.Context, actor identity.Actor, placeID *uuid.UUID) (*org.Place, error) {
	var requested *org.Place
	if placeID != nil {
		place, err := s.placeRepo.FindByID(ctx, actor.TenantID, *placeID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Place not found")
			}
			return nil, err
		}
		requested = place
	}

	scope := identity.ScopeFor(actor, s.placeRepo)
	return scope.RecordFilter(ctx, requested)
}

package org

import (
	"context"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// Ancestors returns the ancestor chain of the given place, ordered from the
// immediate parent up to the root. The walk is bounded by MaxHierarchyDepth and
// returns shared.ErrHierarchyCycle when the parent chain does not terminate.
func Ancestors(ctx context.Context, repo PlaceRepository, tenantID uuid.UUID, place *Place) ([]Place, error) {
	ancestors := make([]Place, 0)
	seen := map[uuid.UUID]struct{}{place.ID: {}}

	current := place
	for depth := 0; current.ParentID != nil; depth++ {
		if depth >= MaxHierarchyDepth {
			return nil, shared.ErrHierarchyCycle
		}
		parent, err := repo.FindByID(ctx, tenantID, *current.ParentID)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[parent.ID]; ok {
			return nil, shared.ErrHierarchyCycle
		}
		seen[parent.ID] = struct{}{}
		ancestors = append(ancestors, *parent)
		current = parent
	}

	return ancestors, nil
}

// BelongsTo reports whether home equals the candidate place or appears in its
// ancestor chain. This is the canonical scope membership test.
func BelongsTo(ctx context.Context, repo PlaceRepository, tenantID uuid.UUID, candidate *Place, homeID uuid.UUID) (bool, error) {
	if candidate.ID == homeID {
		return true, nil
	}
	ancestors, err := Ancestors(ctx, repo, tenantID, candidate)
	if err != nil {
		return false, err
	}
	for i := range ancestors {
		if ancestors[i].ID == homeID {
			return true, nil
		}
	}
	return false, nil
}

// DescendantIDs expands a place to the IDs of its whole subtree, itself
// included, via a bounded breadth-first walk over FindChildren.
func DescendantIDs(ctx context.Context, repo PlaceRepository, tenantID, rootID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{rootID}
	seen := map[uuid.UUID]struct{}{rootID: {}}

	frontier := []uuid.UUID{rootID}
	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= MaxHierarchyDepth {
			return nil, shared.ErrHierarchyCycle
		}
		next := make([]uuid.UUID, 0)
		for _, id := range frontier {
			children, err := repo.FindChildren(ctx, tenantID, id)
			if err != nil {
				return nil, err
			}
			for i := range children {
				childID := children[i].ID
				if _, ok := seen[childID]; ok {
					return nil, shared.ErrHierarchyCycle
				}
				seen[childID] = struct{}{}
				ids = append(ids, childID)
				next = append(next, childID)
			}
		}
		frontier = next
	}

	return ids, nil
}

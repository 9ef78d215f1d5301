package org

import (
	"context"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// PlaceRepository defines the persistence contract for places
type PlaceRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Place, error)
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Place, error)
	FindRoots(ctx context.Context, tenantID uuid.UUID) ([]Place, error)
	FindChildren(ctx context.Context, tenantID, parentID uuid.UUID) ([]Place, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Place, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, place *Place) error
	// Delete removes the place and its entire subtree together with their records.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

package org

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// MaxHierarchyDepth bounds every ancestor/descendant walk over the place tree.
// A walk that exceeds it indicates a corrupted parent chain and fails with
// shared.ErrHierarchyCycle instead of looping.
const MaxHierarchyDepth = 64

// Tier is the depth classification of a place in the hierarchy
type Tier string

const (
	TierRegion Tier = "region" // root, no parent
	TierCity   Tier = "city"   // internal node
	TierMosque Tier = "mosque" // leaf entity carrying records
)

// Place represents one node of the organizational hierarchy.
// Places form a forest: each place has at most one parent and roots have none.
type Place struct {
	shared.TenantAggregateRoot
	Name          string     `gorm:"type:varchar(200);not null;index"`
	TaxID         string     `gorm:"type:varchar(50)"`
	ParentID      *uuid.UUID `gorm:"type:uuid;index"`
	IsMosque      bool       `gorm:"not null;default:false"`
	EmployeeCount int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Place) TableName() string {
	return "places"
}

// NewPlace creates a new root place
func NewPlace(tenantID uuid.UUID, name, taxID string, employeeCount int) (*Place, error) {
	if err := validatePlaceName(name); err != nil {
		return nil, err
	}

	place := &Place{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		TaxID:               strings.TrimSpace(taxID),
		EmployeeCount:       employeeCount,
	}

	place.AddDomainEvent(NewPlaceCreatedEvent(place))

	return place, nil
}

// NewChildPlace creates a new place under a parent
func NewChildPlace(tenantID uuid.UUID, name, taxID string, employeeCount int, parent *Place, isMosque bool) (*Place, error) {
	if parent == nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Parent place is required")
	}
	if parent.IsMosque {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "A mosque cannot have child places")
	}
	if err := validatePlaceName(name); err != nil {
		return nil, err
	}

	place := &Place{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		TaxID:               strings.TrimSpace(taxID),
		ParentID:            &parent.ID,
		IsMosque:            isMosque,
		EmployeeCount:       employeeCount,
	}

	place.AddDomainEvent(NewPlaceCreatedEvent(place))

	return place, nil
}

// Update updates the place's basic information
func (p *Place) Update(name, taxID string, employeeCount int) error {
	if err := validatePlaceName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.TaxID = strings.TrimSpace(taxID)
	p.EmployeeCount = employeeCount
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPlaceUpdatedEvent(p))

	return nil
}

// Reparent moves the place under a new parent. A nil parent makes it a root.
// Cycle safety is the caller's concern: the service verifies via the repository
// that the new parent is not a descendant of this place before saving.
func (p *Place) Reparent(parent *Place) error {
	if parent == nil {
		p.ParentID = nil
	} else {
		if parent.ID == p.ID {
			return shared.NewDomainError("VALIDATION_ERROR", "Place cannot be its own parent")
		}
		if parent.IsMosque {
			return shared.NewDomainError("VALIDATION_ERROR", "A mosque cannot have child places")
		}
		p.ParentID = &parent.ID
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPlaceUpdatedEvent(p))

	return nil
}

// IsRoot reports whether the place has no parent
func (p *Place) IsRoot() bool {
	return p.ParentID == nil
}

// MarkAsMosque flags the place as a leaf entity that carries records
func (p *Place) MarkAsMosque() {
	p.IsMosque = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Tier classifies the place from its position in the tree
func (p *Place) Tier() Tier {
	switch {
	case p.IsMosque:
		return TierMosque
	case p.ParentID == nil:
		return TierRegion
	default:
		return TierCity
	}
}

func validatePlaceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Place name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Place name cannot exceed 200 characters")
	}
	return nil
}

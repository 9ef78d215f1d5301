package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// Unit represents a measurement unit referenced by categories
type Unit struct {
	shared.TenantAggregateRoot
	Name string `gorm:"type:varchar(50);not null"`
}

// TableName returns the table name for GORM
func (Unit) TableName() string {
	return "units"
}

// NewUnit creates a new measurement unit
func NewUnit(tenantID uuid.UUID, name string) (*Unit, error) {
	if err := validateUnitName(name); err != nil {
		return nil, err
	}

	return &Unit{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
	}, nil
}

// Update renames the unit
func (u *Unit) Update(name string) error {
	if err := validateUnitName(name); err != nil {
		return err
	}

	u.Name = strings.TrimSpace(name)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

func validateUnitName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Unit name is required")
	}
	if len(name) > 50 {
		return shared.NewDomainError("VALIDATION_ERROR", "Unit name cannot exceed 50 characters")
	}
	return nil
}

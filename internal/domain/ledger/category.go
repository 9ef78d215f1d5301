package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OperationType determines the aggregation sign of a category's records
type OperationType string

const (
	OperationIncome  OperationType = "income"
	OperationExpense OperationType = "expense"
)

// IsValid checks if the operation type is valid
func (t OperationType) IsValid() bool {
	return t == OperationIncome || t == OperationExpense
}

// String returns the string representation
func (t OperationType) String() string {
	return string(t)
}

// Apply signs an amount for reporting: income contributes positively,
// expense negatively.
func (t OperationType) Apply(amount decimal.Decimal) decimal.Decimal {
	if t == OperationExpense {
		return amount.Neg()
	}
	return amount
}

// Category represents an accounting category records are booked under
type Category struct {
	shared.TenantAggregateRoot
	Name          string           `gorm:"type:varchar(100);not null"`
	OperationType OperationType    `gorm:"type:varchar(20);not null"`
	UnitID        *uuid.UUID       `gorm:"type:uuid;index"`
	Percentage    *decimal.Decimal `gorm:"type:decimal(5,2)"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(tenantID uuid.UUID, name string, operationType OperationType) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if !operationType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Operation type must be income or expense")
	}

	return &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		OperationType:       operationType,
	}, nil
}

// Update updates the category's basic information
func (c *Category) Update(name string, operationType OperationType) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	if !operationType.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Operation type must be income or expense")
	}

	c.Name = strings.TrimSpace(name)
	c.OperationType = operationType
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// AttachUnit links the category to a measurement unit for quantity reporting
func (c *Category) AttachUnit(unitID uuid.UUID) {
	c.UnitID = &unitID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// DetachUnit removes the measurement unit link
func (c *Category) DetachUnit() {
	c.UnitID = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetPercentage sets the optional percentage attached to the category
func (c *Category) SetPercentage(percentage decimal.Decimal) error {
	if percentage.IsNegative() || percentage.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("VALIDATION_ERROR", "Percentage must be between 0 and 100")
	}
	c.Percentage = &percentage
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// HasUnit reports whether the category carries a measurement unit
func (c *Category) HasUnit() bool {
	return c.UnitID != nil
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Category name is required")
	}
	if len(name) > 100 {
		return shared.NewDomainError("VALIDATION_ERROR", "Category name cannot exceed 100 characters")
	}
	return nil
}

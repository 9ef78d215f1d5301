package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Record represents one financial transaction booked against a place
type Record struct {
	shared.TenantAggregateRoot
	Date        time.Time        `gorm:"type:date;not null;index"`
	CategoryID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	PlaceID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal  `gorm:"type:decimal(20,2);not null"`
	Quantity    *decimal.Decimal `gorm:"type:decimal(20,3)"`
	Description string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Record) TableName() string {
	return "records"
}

// NewRecord creates a new financial record
func NewRecord(tenantID uuid.UUID, date time.Time, categoryID, placeID uuid.UUID, amount decimal.Decimal, description string) (*Record, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Category is required")
	}
	if placeID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Place is required")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Date is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Amount cannot be negative")
	}

	record := &Record{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Date:                truncateToDate(date),
		CategoryID:          categoryID,
		PlaceID:             placeID,
		Amount:              amount,
		Description:         strings.TrimSpace(description),
	}

	record.AddDomainEvent(NewRecordCreatedEvent(record))

	return record, nil
}

// Update replaces the record's booked values
func (r *Record) Update(date time.Time, categoryID, placeID uuid.UUID, amount decimal.Decimal, description string) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Category is required")
	}
	if placeID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Place is required")
	}
	if date.IsZero() {
		return shared.NewDomainError("VALIDATION_ERROR", "Date is required")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Amount cannot be negative")
	}

	r.Date = truncateToDate(date)
	r.CategoryID = categoryID
	r.PlaceID = placeID
	r.Amount = amount
	r.Description = strings.TrimSpace(description)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRecordUpdatedEvent(r))

	return nil
}

// SetQuantity attaches a measured quantity for unit-bearing categories
func (r *Record) SetQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Quantity cannot be negative")
	}
	r.Quantity = &quantity
	return nil
}

// ClearQuantity removes the measured quantity
func (r *Record) ClearQuantity() {
	r.Quantity = nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

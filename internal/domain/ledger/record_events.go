package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RecordCreatedEvent is raised when a new financial record is created
type RecordCreatedEvent struct {
	shared.BaseDomainEvent
	RecordID   uuid.UUID       `json:"record_id"`
	CategoryID uuid.UUID       `json:"category_id"`
	PlaceID    uuid.UUID       `json:"place_id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}

// EventType returns the event type name
func (e *RecordCreatedEvent) EventType() string {
	return "RecordCreated"
}

// NewRecordCreatedEvent creates a new RecordCreatedEvent
func NewRecordCreatedEvent(record *Record) *RecordCreatedEvent {
	return &RecordCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("RecordCreated", "Record", record.ID, record.TenantID),
		RecordID:        record.ID,
		CategoryID:      record.CategoryID,
		PlaceID:         record.PlaceID,
		Amount:          record.Amount,
		Date:            record.Date,
	}
}

// RecordUpdatedEvent is raised when a financial record is updated
type RecordUpdatedEvent struct {
	shared.BaseDomainEvent
	RecordID   uuid.UUID       `json:"record_id"`
	CategoryID uuid.UUID       `json:"category_id"`
	PlaceID    uuid.UUID       `json:"place_id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}

// EventType returns the event type name
func (e *RecordUpdatedEvent) EventType() string {
	return "RecordUpdated"
}

// NewRecordUpdatedEvent creates a new RecordUpdatedEvent
func NewRecordUpdatedEvent(record *Record) *RecordUpdatedEvent {
	return &RecordUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("RecordUpdated", "Record", record.ID, record.TenantID),
		RecordID:        record.ID,
		CategoryID:      record.CategoryID,
		PlaceID:         record.PlaceID,
		Amount:          record.Amount,
		Date:            record.Date,
	}
}

// RecordDeletedEvent is raised when a financial record is deleted
type RecordDeletedEvent struct {
	shared.BaseDomainEvent
	RecordID uuid.UUID `json:"record_id"`
	PlaceID  uuid.UUID `json:"place_id"`
}

// EventType returns the event type name
func (e *RecordDeletedEvent) EventType() string {
	return "RecordDeleted"
}

// NewRecordDeletedEvent creates a new RecordDeletedEvent
func NewRecordDeletedEvent(record *Record) *RecordDeletedEvent {
	return &RecordDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("RecordDeleted", "Record", record.ID, record.TenantID),
		RecordID:        record.ID,
		PlaceID:         record.PlaceID,
	}
}

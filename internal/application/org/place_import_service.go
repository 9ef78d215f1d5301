package org

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/audit"
	"github.com/mihrabhq/backend/internal/domain/identity"
	"github.com/mihrabhq/backend/internal/domain/org"
	"github.com/mihrabhq/backend/internal/domain/shared"
	csvimport "github.com/mihrabhq/backend/internal/infrastructure/import"
)

// Expected CSV headers for the place import
const (
	importHeaderName          = "name"
	importHeaderTaxID         = "tax_id"
	importHeaderParent        = "parent_name"
	importHeaderIsMosque      = "is_mosque"
	importHeaderEmployeeCount = "employee_count"
)

// PlaceImportService bulk-creates places from a CSV file. Rows reference
// their parent by name, so parents must appear before their children in the
// file or already exist.
type PlaceImportService struct {
	placeRepo org.PlaceRepository
	auditor   audit.Recorder
}

// NewPlaceImportService creates a new PlaceImportService
func NewPlaceImportService(placeRepo org.PlaceRepository, auditor audit.Recorder) *PlaceImportService {
	return &PlaceImportService{
		placeRepo: placeRepo,
		auditor:   auditor,
	}
}

// Import reads the CSV stream and creates one place per row. Only admins may
// import. Row failures are collected per line and do not abort the rest of
// the file.
func (s *PlaceImportService) Import(ctx context.Context, actor identity.Actor, file io.Reader) (*ImportSummary, error) {
	if !actor.Role.IsUnrestricted() {
		return nil, shared.ErrPermissionDenied
	}

	parser, err := csvimport.NewCSVParser(file)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}
	if !parser.HasHeader(importHeaderName) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Import file must carry a 'name' column")
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}

	summary := &ImportSummary{TotalRows: len(rows)}

	for _, row := range rows {
		if err := s.importRow(ctx, actor, row); err != nil {
			summary.SkippedRows++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %s", row.LineNumber, err.Error()))
			continue
		}
		summary.ImportedRows++
	}

	s.auditor.Record(audit.Entry{
		TenantID:    actor.TenantID,
		UserID:      actor.UserID,
		Username:    actor.Username,
		Action:      audit.ActionImport,
		ObjectType:  "Place",
		ObjectID:    uuid.Nil,
		Description: fmt.Sprintf("Imported %d of %d places", summary.ImportedRows, summary.TotalRows),
		IPAddress:   actor.RemoteAddr,
	})

	return summary, nil
}

func (s *PlaceImportService) importRow(ctx context.Context, actor identity.Actor, row *csvimport.Row) error {
	name := row.Get(importHeaderName)
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Name is required")
	}

	employeeCount := 0
	if raw := row.Get(importHeaderEmployeeCount); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return shared.NewDomainError("VALIDATION_ERROR", "Invalid employee count")
		}
		employeeCount = parsed
	}

	isMosque := false
	if raw := row.Get(importHeaderIsMosque); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return shared.NewDomainError("VALIDATION_ERROR", "Invalid is_mosque flag")
		}
		isMosque = parsed
	}

	var place *org.Place
	if parentName := row.Get(importHeaderParent); parentName != "" {
		parent, err := s.placeRepo.FindByName(ctx, actor.TenantID, parentName)
		if err != nil {
			return shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Parent place %q not found", parentName))
		}
		place, err = org.NewChildPlace(actor.TenantID, name, row.Get(importHeaderTaxID), employeeCount, parent, isMosque)
		if err != nil {
			return err
		}
	} else {
		root, err := org.NewPlace(actor.TenantID, name, row.Get(importHeaderTaxID), employeeCount)
		if err != nil {
			return err
		}
		if isMosque {
			root.MarkAsMosque()
		}
		place = root
	}

	return s.placeRepo.Save(ctx, place)
}

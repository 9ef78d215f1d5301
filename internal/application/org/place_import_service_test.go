package org

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihrabhq/backend/internal/domain/audit"
	"github.com/mihrabhq/backend/internal/domain/identity"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

func TestPlaceImport(t *testing.T) {
	ctx := context.Background()

	newService := func(t *testing.T) (*PlaceImportService, *memoryPlaceRepository, *captureRecorder, identity.Actor) {
		t.Helper()
		repo := newMemoryPlaceRepository()
		auditor := &captureRecorder{}
		actor := identity.Actor{UserID: uuid.New(), TenantID: uuid.New(), Username: "admin", Role: identity.RoleAdmin}
		return NewPlaceImportService(repo, auditor), repo, auditor, actor
	}

	t.Run("imports a valid file with parent references", func(t *testing.T) {
		service, repo, auditor, actor := newService(t)
		file := strings.NewReader(
			"name,tax_id,parent_name,is_mosque,employee_count\n" +
				"North Region,TX-1,,false,0\n" +
				"Springfield,,North Region,false,3\n" +
				"Central Mosque,,Springfield,true,2\n")

		summary, err := service.Import(ctx, actor, file)
		require.NoError(t, err)

		assert.Equal(t, 3, summary.TotalRows)
		assert.Equal(t, 3, summary.ImportedRows)
		assert.Equal(t, 0, summary.SkippedRows)
		assert.Empty(t, summary.Errors)

		mosque, err := repo.FindByName(ctx, actor.TenantID, "Central Mosque")
		require.NoError(t, err)
		assert.True(t, mosque.IsMosque)
		assert.Equal(t, 2, mosque.EmployeeCount)

		require.Len(t, auditor.entries, 1)
		assert.Equal(t, audit.ActionImport, auditor.entries[0].Action)
	})

	t.Run("bad rows are skipped with line errors", func(t *testing.T) {
		service, repo, _, actor := newService(t)
		file := strings.NewReader(
			"name,parent_name,employee_count\n" +
				"North Region,,0\n" +
				",,0\n" +
				"Springfield,Atlantis,1\n" +
				"Shelbyville,North Region,not-a-number\n")

		summary, err := service.Import(ctx, actor, file)
		require.NoError(t, err)

		assert.Equal(t, 4, summary.TotalRows)
		assert.Equal(t, 1, summary.ImportedRows)
		assert.Equal(t, 3, summary.SkippedRows)
		require.Len(t, summary.Errors, 3)
		assert.Contains(t, summary.Errors[0], "Name is required")
		assert.Contains(t, summary.Errors[1], "Atlantis")
		assert.Contains(t, summary.Errors[2], "employee count")

		_, err = repo.FindByName(ctx, actor.TenantID, "North Region")
		require.NoError(t, err)
	})

	t.Run("rejects a file without a name column", func(t *testing.T) {
		service, _, _, actor := newService(t)
		file := strings.NewReader("title,parent\nfoo,\n")

		_, err := service.Import(ctx, actor, file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "'name' column")
	})

	t.Run("only admins may import", func(t *testing.T) {
		service, _, _, actor := newService(t)
		actor.Role = identity.RoleRegionAdmin

		_, err := service.Import(ctx, actor, strings.NewReader("name\nfoo\n"))
		require.ErrorIs(t, err, shared.ErrPermissionDenied)
	})
}

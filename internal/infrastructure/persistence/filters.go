package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mihrabhq/backend/internal/domain/shared"
)

// applySearch adds a case-insensitive substring match on the given column.
func applySearch(query *gorm.DB, filter shared.Filter, column string) *gorm.DB {
	if filter.Search == "" {
		return query
	}
	pattern := "%" + filter.Search + "%"
	return query.Where(fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", column), pattern)
}

// applyPagination adds offset/limit from the filter.
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

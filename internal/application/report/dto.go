package report

import (
	"github.com/google/uuid"
)

// Query carries the raw report parameters from the HTTP layer
type Query struct {
	PlaceID *uuid.UUID
	Period  string
	Start   string
	End     string
}

// Table is the flat pivot report payload: one row per category in order of
// first appearance, each row `[name, value per period..., row total]`, closed
// by a "Total" row summing every column.
type Table struct {
	Periods []string `json:"periods"`
	Data    [][]any  `json:"data"`
}

// Tree is the hierarchical report payload: internal places map child names to
// subtrees, leaf places carry a "data" key holding a Table.
type Tree map[string]any

// Profit is the single-number profit payload
type Profit struct {
	Total float64 `json:"total"`
}

// ValueRow is one line of the quantity report for a unit-bearing category
type ValueRow struct {
	CategoryID    uuid.UUID `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	UnitName      string    `json:"unit_name"`
	TotalQuantity float64   `json:"total_quantity"`
}

package report

import (
	"github.com/mihrabhq/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// totalRowLabel closes every pivot table
const totalRowLabel = "Total"

// buildTable pivots report entries into the flat table shape. Categories keep
// the order of their first appearance; every label column is present even when
// no entry falls into it.
func buildTable(entries []ledger.ReportEntry, period Period, labels []string) Table {
	sums := make(map[string]map[string]decimal.Decimal)
	order := make([]string, 0)

	for _, entry := range entries {
		label := period.Label(entry.Date)
		byLabel, ok := sums[entry.CategoryName]
		if !ok {
			byLabel = make(map[string]decimal.Decimal)
			sums[entry.CategoryName] = byLabel
			order = append(order, entry.CategoryName)
		}
		byLabel[label] = byLabel[label].Add(entry.SignedAmount())
	}

	data := make([][]any, 0, len(order)+1)
	columnTotals := make(map[string]decimal.Decimal, len(labels))

	for _, category := range order {
		row := make([]any, 0, len(labels)+2)
		row = append(row, category)
		rowTotal := decimal.Zero
		for _, label := range labels {
			amount := sums[category][label]
			row = append(row, toFloat64(amount))
			rowTotal = rowTotal.Add(amount)
			columnTotals[label] = columnTotals[label].Add(amount)
		}
		row = append(row, toFloat64(rowTotal))
		data = append(data, row)
	}

	totalRow := make([]any, 0, len(labels)+2)
	totalRow = append(totalRow, totalRowLabel)
	grandTotal := decimal.Zero
	for _, label := range labels {
		columnSum := columnTotals[label]
		totalRow = append(totalRow, toFloat64(columnSum))
		grandTotal = grandTotal.Add(columnSum)
	}
	totalRow = append(totalRow, toFloat64(grandTotal))
	data = append(data, totalRow)

	return Table{Periods: labels, Data: data}
}

func toFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

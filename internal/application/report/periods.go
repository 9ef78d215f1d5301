package report

import (
	"fmt"
	"time"

	"github.com/mihrabhq/backend/internal/domain/shared"
)

// Period is the bucketing granularity of a report
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod validates a period token from the request path
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return Period(s), nil
	}
	return "", shared.NewDomainError("VALIDATION_ERROR", "Invalid period. Choose from 'daily', 'weekly' or 'monthly'")
}

// Label formats the bucket label a date falls into.
// Daily: 2006-01-02, weekly: year plus zero-padded Monday-first week number
// (days before the year's first Monday are week 00), monthly: 2006-01.
func (p Period) Label(t time.Time) string {
	switch p {
	case PeriodWeekly:
		// Monday-based weekday, Mon=0 .. Sun=6
		monday := (int(t.Weekday()) + 6) % 7
		week := (t.YearDay() - 1 + 7 - monday) / 7
		return fmt.Sprintf("%d-%02d", t.Year(), week)
	case PeriodMonthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// Labels generates the ordered period labels spanning [start, end] inclusive.
// Daily steps one day, weekly steps seven days labelling each step date,
// monthly steps one calendar month. Every label is emitted even when no
// record falls into it.
func (p Period) Labels(start, end time.Time) []string {
	labels := make([]string, 0)
	current := start

	switch p {
	case PeriodWeekly:
		for !current.After(end) {
			labels = append(labels, p.Label(current))
			current = current.AddDate(0, 0, 7)
		}
	case PeriodMonthly:
		for !current.After(end) {
			labels = append(labels, p.Label(current))
			current = time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, current.Location()).AddDate(0, 1, 0)
		}
	default:
		for !current.After(end) {
			labels = append(labels, p.Label(current))
			current = current.AddDate(0, 0, 1)
		}
	}

	return labels
}

// DateRange is an inclusive report window
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses optional YYYY-MM-DD bounds, defaulting start to the
// first day of the current month and end to today.
func ParseDateRange(start, end string) (DateRange, error) {
	now := time.Now().UTC()

	startDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if start != "" {
		parsed, err := time.Parse("2006-01-02", start)
		if err != nil {
			return DateRange{}, shared.NewDomainError("VALIDATION_ERROR", "Invalid start date, expected YYYY-MM-DD")
		}
		startDate = parsed
	}

	endDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if end != "" {
		parsed, err := time.Parse("2006-01-02", end)
		if err != nil {
			return DateRange{}, shared.NewDomainError("VALIDATION_ERROR", "Invalid end date, expected YYYY-MM-DD")
		}
		endDate = parsed
	}

	if startDate.After(endDate) {
		return DateRange{}, shared.NewDomainError("VALIDATION_ERROR", "Start date must not be after end date")
	}

	return DateRange{Start: startDate, End: endDate}, nil
}

package payroll

import (
	"time"
)

// =============================================================================
// CALENDAR DATES - normalized string form, month scoping by prefix
// =============================================================================
//
// All stored dates use the "YYYY-MM-DD" form and months are matched on the
// "YYYY-MM" prefix. This is a lexical filter, not a range query, so every
// write path must normalize through ParseDate first.

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// ParseDate validates and normalizes a calendar date string.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", &ValidationError{Field: "date", Message: "invalid date, use YYYY-MM-DD"}
	}
	return t.Format(DateLayout), nil
}

// ParseMonth validates a "YYYY-MM" month string.
func ParseMonth(s string) (string, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return "", &ValidationError{Field: "month", Message: "invalid month, use YYYY-MM"}
	}
	return t.Format(MonthLayout), nil
}

// MonthOf returns the "YYYY-MM" prefix of a normalized date.
func MonthOf(date string) string {
	if len(date) < len(MonthLayout) {
		return date
	}
	return date[:len(MonthLayout)]
}

// Today returns the current calendar date in the normalized form.
func Today() string { return time.Now().Format(DateLayout) }

// CurrentMonth returns the current "YYYY-MM" month.
func CurrentMonth() string { return MonthOf(Today()) }

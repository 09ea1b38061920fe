package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of a reconciliation date.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight. A full RFC 3339
// timestamp is accepted and truncated to its own calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, s)
	}

	return NormalizeDate(t), nil
}

// NormalizeDate keeps the wall-clock calendar date of t and rebuilds it at UTC
// midnight, so a local date never drifts into the adjacent day or month.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Period is a calendar month.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the calendar month of a date.
func PeriodOf(t time.Time) Period {
	y, m, _ := t.Date()
	return Period{Year: y, Month: m}
}

// Prev returns the month before p.
func (p Period) Prev() Period {
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Start returns the first day of the month at UTC midnight.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// String formats the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Label formats the period as "January 2006".
func (p Period) Label() string {
	return p.Start().Format("January 2006")
}

// ReconciliationMonthLabel names the month a statement is prepared for: the
// month before the reconciliation date's month.
func ReconciliationMonthLabel(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return PeriodOf(date).Prev().Label()
}

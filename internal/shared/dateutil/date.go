// Package dateutil provides calendar-date helpers. Subscription dates are
// date-only values: stored and compared as UTC midnight, transported as
// YYYY-MM-DD strings.
package dateutil

import (
	"fmt"
	"time"
)

// Layout is the wire format for all subscription dates.
const Layout = "2006-01-02"

// Today returns the current date as UTC midnight.
func Today() time.Time {
	return Truncate(time.Now().UTC())
}

// Truncate drops the time-of-day portion, keeping a UTC midnight value.
func Truncate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Parse parses a YYYY-MM-DD string into a UTC midnight value.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Format renders a date as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// DaysUntil returns the whole number of days from `from` to `to`. Negative
// when `to` is in the past.
func DaysUntil(from, to time.Time) int {
	return int(Truncate(to).Sub(Truncate(from)).Hours() / 24)
}

// InYearMonth reports whether t falls within the given calendar year and month.
func InYearMonth(t time.Time, year int, month time.Month) bool {
	t = t.UTC()
	return t.Year() == year && t.Month() == month
}

package valueobjects

import (
	"errors"
	"fmt"
	"time"
)

// Periodicity is a billing cadence tag with a fixed day-offset advancement rule.
type Periodicity string

const (
	PeriodicityDaily     Periodicity = "daily"
	PeriodicityWeekly    Periodicity = "weekly"
	PeriodicityMonthly   Periodicity = "monthly"
	PeriodicityQuarterly Periodicity = "quarterly"
	PeriodicityYearly    Periodicity = "yearly"
)

// offsets is the single source of the advancement rule. Monthly, quarterly
// and yearly are intentionally additive day counts, not calendar stepping:
// a monthly payment on Jan 1 lands on Jan 31. Kept for compatibility with
// existing stored schedules.
var offsets = map[Periodicity]int{
	PeriodicityDaily:     1,
	PeriodicityWeekly:    7,
	PeriodicityMonthly:   30,
	PeriodicityQuarterly: 90,
	PeriodicityYearly:    365,
}

var ValidPeriodicities = map[Periodicity]bool{
	PeriodicityDaily:     true,
	PeriodicityWeekly:    true,
	PeriodicityMonthly:   true,
	PeriodicityQuarterly: true,
	PeriodicityYearly:    true,
}

// AllPeriodicities lists the recognized tags in cadence order, for error
// messages and API documentation.
var AllPeriodicities = []Periodicity{
	PeriodicityDaily,
	PeriodicityWeekly,
	PeriodicityMonthly,
	PeriodicityQuarterly,
	PeriodicityYearly,
}

var ErrInvalidPeriodicity = errors.New("invalid periodicity")

// ParsePeriodicity validates a raw tag against the closed set.
func ParsePeriodicity(value string) (Periodicity, error) {
	p := Periodicity(value)
	if !ValidPeriodicities[p] {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriodicity, value)
	}
	return p, nil
}

func (p Periodicity) String() string {
	return string(p)
}

// Days returns the fixed advancement offset in days.
func (p Periodicity) Days() int {
	return offsets[p]
}

// NextDate advances a payment date by the fixed offset for this cadence.
func (p Periodicity) NextDate(from time.Time) time.Time {
	return from.AddDate(0, 0, offsets[p])
}

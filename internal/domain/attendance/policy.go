package attendance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Policy is the configured organization attendance policy. The timezone
// fixes every calendar-day boundary: date keys, lateness deadlines and
// aggregation windows all derive from it, never from UTC.
type Policy struct {
	ExpectedStart time.Duration // offset from local midnight, e.g. 9h for 09:00
	LateThreshold time.Duration
	HalfDayHours  decimal.Decimal
	Location      *time.Location
}

// NewPolicy builds a Policy from its configured representation.
// expectedStart is "HH:MM" in the organization timezone.
func NewPolicy(expectedStart string, lateThresholdMinutes int, halfDayHours float64, timezone string) (Policy, error) {
	start, err := time.Parse("15:04", expectedStart)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid expected start time %q: %w", expectedStart, err)
	}
	if lateThresholdMinutes < 0 {
		return Policy{}, fmt.Errorf("late threshold must not be negative, got %d", lateThresholdMinutes)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	return Policy{
		ExpectedStart: time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute,
		LateThreshold: time.Duration(lateThresholdMinutes) * time.Minute,
		HalfDayHours:  decimal.NewFromFloat(halfDayHours),
		Location:      loc,
	}, nil
}

// DateKey returns the calendar date of t at local midnight in the
// organization timezone. A late-night check-in lands on the local day,
// not the UTC one.
func (p Policy) DateKey(t time.Time) time.Time {
	local := t.In(p.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.Location)
}

// DayOf returns local midnight for t's calendar date, ignoring t's own
// location. Stored date keys decode as UTC midnight; this maps them
// back onto the organization day without shifting the date.
func (p Policy) DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, p.Location)
}

// StartDeadline is the last on-time check-in instant for the day
// containing t.
func (p Policy) StartDeadline(t time.Time) time.Time {
	return p.DateKey(t).Add(p.ExpectedStart + p.LateThreshold)
}

// EndOfDay is the first instant of the next local day after t.
func (p Policy) EndOfDay(t time.Time) time.Time {
	return p.DateKey(t).AddDate(0, 0, 1)
}

// IsHalfDay reports whether worked hours fall below the half-day threshold.
func (p Policy) IsHalfDay(hours decimal.Decimal) bool {
	return hours.LessThan(p.HalfDayHours)
}

// Classify maps a check-in instant to its status under the policy:
// on or before the start deadline is present, anything after is late.
// Absent and half-day are never produced here; absence is derived at
// query time and half-day is decided at checkout.
func Classify(checkIn time.Time, p Policy) Status {
	if checkIn.After(p.StartDeadline(checkIn)) {
		return StatusLate
	}
	return StatusPresent
}

package valueobjects

import (
	"errors"
	"time"
)

// DateRange is a value object representing an itinerary's travel window.
// Dates are calendar days; the end date is inclusive.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange creates a DateRange, validating that end is not before start
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, errors.New("start and end dates are required")
	}
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return DateRange{}, errors.New("end date cannot be before start date")
	}
	return DateRange{start: start, end: end}, nil
}

// Start returns the first day of the range
func (r DateRange) Start() time.Time {
	return r.start
}

// End returns the last day of the range (inclusive)
func (r DateRange) End() time.Time {
	return r.end
}

// Days returns the number of calendar days covered by the range
func (r DateRange) Days() int {
	return int(r.end.Sub(r.start).Hours()/24) + 1
}

// Contains reports whether the given day falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	d := truncateToDay(t)
	return !d.Before(r.start) && !d.After(r.end)
}

// IsZero checks if the DateRange is the zero value
func (r DateRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

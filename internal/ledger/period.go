package ledger

import (
	"fmt"
	"time"
)

// Period is a calendar month. Month uses time.Month numbering, so January
// is 1; no zero-based month crosses this package's API.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod validates year and month.
func NewPeriod(year int, month time.Month) (Period, error) {
	if month < time.January || month > time.December {
		return Period{}, fmt.Errorf("month %d out of range 1-12", month)
	}
	if year < 1 {
		return Period{}, fmt.Errorf("year %d out of range", year)
	}
	return Period{Year: year, Month: month}, nil
}

// Contains reports whether t falls in the period on the calendar of loc.
// A nil loc means UTC.
func (p Period) Contains(t time.Time, loc *time.Location) bool {
	t = t.In(orUTC(loc))
	return t.Year() == p.Year && t.Month() == p.Month
}

// Bounds returns the half-open interval [start, end) of the period in loc.
// A nil loc means UTC.
func (p Period) Bounds(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, orUTC(loc))
	return start, start.AddDate(0, 1, 0)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

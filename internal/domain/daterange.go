package domain

import "time"

// DateRange is an inclusive [StartDate, EndDate] span of calendar days.
// Time-of-day components are ignored; only the date parts are significant.
type DateRange struct {
	StartDate time.Time
	EndDate   time.Time
}

// IsValid returns true if both dates are set and StartDate is not after EndDate.
// A single-day range (StartDate == EndDate) is valid.
func (r DateRange) IsValid() bool {
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return false
	}
	return !dateOnly(r.StartDate).After(dateOnly(r.EndDate))
}

// Overlaps returns true if the two inclusive date ranges share at least one day.
// Two ranges [s1,e1] and [s2,e2] overlap iff s1 <= e2 and e1 >= s2.
func (r DateRange) Overlaps(other DateRange) bool {
	return !dateOnly(r.StartDate).After(dateOnly(other.EndDate)) &&
		!dateOnly(r.EndDate).Before(dateOnly(other.StartDate))
}

// ContainsDate returns true if the given date falls inside the range.
func (r DateRange) ContainsDate(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(dateOnly(r.StartDate)) && !d.After(dateOnly(r.EndDate))
}

// Days returns the number of calendar days covered by the range, inclusive.
// A single-day range counts as 1.
func (r DateRange) Days() int {
	start := dateOnly(r.StartDate)
	end := dateOnly(r.EndDate)
	return int(end.Sub(start).Hours()/24) + 1
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

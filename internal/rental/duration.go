package rental

import "time"

// DefaultRentalDays is charged when a booking has no end date.
const DefaultRentalDays = 4

const day = 24 * time.Hour

// Date returns the calendar date of t, read in t's own location, as
// midnight UTC.  Subtracting two such values always yields whole days.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Days resolves the number of rental days for a booking.  An open-ended
// booking (end == nil) counts DefaultRentalDays.  Otherwise it is the number
// of calendar days from start to end; anything below one day is rejected
// with ErrInvalidDuration.
func Days(start time.Time, end *time.Time) (int, error) {
	if end == nil {
		return DefaultRentalDays, nil
	}
	days := int(Date(*end).Sub(Date(start)) / day)
	if days < 1 {
		return 0, &Error{Kind: KindInvalidDuration, Op: "duration"}
	}
	return days, nil
}

// Today is the calendar date of now in loc.  A nil loc means time.Local.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return Date(now.In(loc))
}

package leave

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// CalculateDays returns the inclusive calendar-day count between start and
// end: ceil((end-start)/1 day) + 1.
func CalculateDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return int(math.Ceil(float64(end.Sub(start))/float64(day))) + 1, nil
}

// Covers reports whether the request spans the calendar date of at.
func (r Request) Covers(at time.Time) bool {
	d := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(r.StartDate.Year(), r.StartDate.Month(), r.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(r.EndDate.Year(), r.EndDate.Month(), r.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(start) && !d.After(end)
}

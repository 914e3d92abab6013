package attendance

import (
	"fmt"
	"strconv"
	"strings"

	"dayflow/internal/apperrors"
)

// TimeOfDay is a wall-clock time in minutes since midnight.
type TimeOfDay int

const minutesPerDay = 24 * 60

// ParseTimeOfDay accepts "HH:MM" (or "H:MM") between 00:00 and 23:59.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	hh, mm, ok := strings.Cut(raw, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 || !digits(hh) || !digits(mm) {
		return 0, apperrors.Newf(ErrInvalidTime, "invalid time %q: expected HH:MM", raw)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, apperrors.Newf(ErrInvalidTime, "invalid time %q: hour must be 00-23", raw)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, apperrors.Newf(ErrInvalidTime, "invalid time %q: minute must be 00-59", raw)
	}
	return TimeOfDay(hour*60 + minute), nil
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// OvernightPolicy defines how a check-out earlier than the check-in is read.
type OvernightPolicy string

const (
	// OvernightReject refuses the pair.
	OvernightReject OvernightPolicy = "reject"
	// OvernightNextDay treats the check-out as falling on the following day.
	OvernightNextDay OvernightPolicy = "next_day"
	// OvernightNegative keeps the raw difference, which is negative.
	OvernightNegative OvernightPolicy = "negative"
)

func ParseOvernightPolicy(raw string) (OvernightPolicy, bool) {
	p := OvernightPolicy(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case OvernightReject, OvernightNextDay, OvernightNegative:
		return p, true
	}
	return "", false
}

// WorkHours is (checkOut - checkIn) in hours under the given policy.
func WorkHours(checkIn, checkOut TimeOfDay, policy OvernightPolicy) (float64, error) {
	diff := checkOut.Minutes() - checkIn.Minutes()
	if diff < 0 {
		switch policy {
		case OvernightNextDay:
			diff += minutesPerDay
		case OvernightNegative:
		default:
			return 0, ErrOvernightShift
		}
	}
	return float64(diff) / 60, nil
}

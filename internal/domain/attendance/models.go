package attendance

import (
	"strings"
	"time"

	"dayflow/internal/apperrors"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
	StatusLeave   Status = "leave"
)

func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave:
		return s, true
	}
	return "", false
}

type Record struct {
	ID           string
	EmployeeID   string
	EmployeeCode string
	EmployeeName string
	Date         time.Time
	CheckIn      *string
	CheckOut     *string
	Status       Status
	WorkHours    *float64
}

type Filter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
}

type UpsertInput struct {
	// EmployeeCode targets another employee; honoured for privileged actors only.
	EmployeeCode string
	Date         time.Time
	CheckIn      *string
	CheckOut     *string
	Status       string
}

// UpdateInput holds the fields to merge; nil means unchanged.
type UpdateInput struct {
	Date     *time.Time
	CheckIn  *string
	CheckOut *string
	Status   *string
}

var (
	ErrInvalidTime      = apperrors.New(apperrors.ErrValidation, "invalid time of day")
	ErrOvernightShift   = apperrors.New(apperrors.ErrValidation, "check-out must not be earlier than check-in")
	ErrInvalidStatus    = apperrors.New(apperrors.ErrValidation, "status must be one of present, absent, half_day, leave")
	ErrDateRequired     = apperrors.New(apperrors.ErrValidation, "date is required")
	ErrRecordNotFound   = apperrors.New(apperrors.ErrNotFound, "attendance record not found")
	ErrEmployeeNotFound = apperrors.New(apperrors.ErrNotFound, "employee not found")
	ErrForbidden        = apperrors.New(apperrors.ErrForbidden, "not allowed to access this attendance data")
	ErrDuplicateDay     = apperrors.New(apperrors.ErrDuplicate, "attendance already recorded for this employee and date")
)

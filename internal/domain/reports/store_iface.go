package reports

import (
	"context"
	"time"

	"dayflow/internal/domain/attendance"
	"dayflow/internal/domain/auth"
)

type StoreAPI interface {
	CountEmployees(ctx context.Context) (int, error)
	CountPresent(ctx context.Context, day time.Time) (int, error)
	CountOnLeave(ctx context.Context, day time.Time) (int, error)
	CountPendingLeave(ctx context.Context) (int, error)
}

// AttendanceLister is the slice of the attendance service the export needs.
type AttendanceLister interface {
	List(ctx context.Context, actor auth.Actor, employeeCode string, from, to *time.Time) ([]attendance.Record, error)
}

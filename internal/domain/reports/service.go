package reports

import (
	"context"
	"time"

	"dayflow/internal/apperrors"
	"dayflow/internal/domain/auth"
)

var ErrForbidden = apperrors.New(apperrors.ErrForbidden, "insufficient permissions")

type Stats struct {
	TotalEmployees   int
	PresentToday     int
	OnLeave          int
	PendingApprovals int
}

type Service struct {
	store      StoreAPI
	attendance AttendanceLister
}

func NewService(store StoreAPI, attendance AttendanceLister) *Service {
	return &Service{store: store, attendance: attendance}
}

// Stats summarises the given day. Employees see a headcount of one and no
// pending approvals; the attendance and leave counts are organisation-wide.
func (s *Service) Stats(ctx context.Context, actor auth.Actor, today time.Time) (Stats, error) {
	if !auth.Can(actor, auth.ActionReportsRead, auth.Target{}) {
		return Stats{}, ErrForbidden
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	privileged := actor.Privileged()

	var stats Stats
	var err error
	if privileged {
		if stats.TotalEmployees, err = s.store.CountEmployees(ctx); err != nil {
			return Stats{}, err
		}
		if stats.PendingApprovals, err = s.store.CountPendingLeave(ctx); err != nil {
			return Stats{}, err
		}
	} else {
		stats.TotalEmployees = 1
	}
	if stats.PresentToday, err = s.store.CountPresent(ctx, day); err != nil {
		return Stats{}, err
	}
	if stats.OnLeave, err = s.store.CountOnLeave(ctx, day); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// AttendanceWorkbook exports attendance between from and to as an XLSX file.
func (s *Service) AttendanceWorkbook(ctx context.Context, actor auth.Actor, employeeCode string, from, to *time.Time) ([]byte, error) {
	if !auth.Can(actor, auth.ActionReportsExport, auth.Target{}) {
		return nil, ErrForbidden
	}
	records, err := s.attendance.List(ctx, actor, employeeCode, from, to)
	if err != nil {
		return nil, err
	}
	return ExportAttendanceXLSX(records)
}

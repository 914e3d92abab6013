package attendance

import (
	"context"
	"strings"
	"time"

	"dayflow/internal/domain/auth"
)

type Service struct {
	store     StoreAPI
	overnight OvernightPolicy
}

func NewService(store StoreAPI, overnight OvernightPolicy) *Service {
	if _, ok := ParseOvernightPolicy(string(overnight)); !ok {
		overnight = OvernightReject
	}
	return &Service{store: store, overnight: overnight}
}

// derive validates the optional times and computes work hours when both are present.
func (s *Service) derive(checkIn, checkOut *string) (*string, *string, *float64, error) {
	in, err := normalize(checkIn)
	if err != nil {
		return nil, nil, nil, err
	}
	out, err := normalize(checkOut)
	if err != nil {
		return nil, nil, nil, err
	}
	if in == nil || out == nil {
		return in, out, nil, nil
	}
	inTOD, _ := ParseTimeOfDay(*in)
	outTOD, _ := ParseTimeOfDay(*out)
	hours, err := WorkHours(inTOD, outTOD, s.overnight)
	if err != nil {
		return nil, nil, nil, err
	}
	return in, out, &hours, nil
}

// normalize turns "" into nil and rewrites valid times in canonical HH:MM form.
func normalize(raw *string) (*string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	tod, err := ParseTimeOfDay(*raw)
	if err != nil {
		return nil, err
	}
	canonical := tod.String()
	return &canonical, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Upsert records a day for the actor, or for EmployeeCode when the actor is
// privileged. Status is stored as given without cross-checking the times.
func (s *Service) Upsert(ctx context.Context, actor auth.Actor, in UpsertInput) (Record, error) {
	status, ok := ParseStatus(in.Status)
	if !ok {
		return Record{}, ErrInvalidStatus
	}
	if in.Date.IsZero() {
		return Record{}, ErrDateRequired
	}
	checkIn, checkOut, hours, err := s.derive(in.CheckIn, in.CheckOut)
	if err != nil {
		return Record{}, err
	}

	employeeID := actor.UserID
	if code := strings.TrimSpace(in.EmployeeCode); code != "" && actor.Privileged() {
		employeeID, err = s.store.EmployeeIDByCode(ctx, code)
		if err != nil {
			return Record{}, err
		}
	}
	if !auth.Can(actor, auth.ActionAttendanceWrite, auth.Target{OwnerID: employeeID}) {
		return Record{}, ErrForbidden
	}

	id, err := s.store.Upsert(ctx, Record{
		EmployeeID: employeeID,
		Date:       dateOnly(in.Date),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     status,
		WorkHours:  hours,
	})
	if err != nil {
		return Record{}, err
	}
	return s.store.Get(ctx, id)
}

// Update merges the given fields into an existing record. Work hours are
// recomputed only when both times are present after the merge.
func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, in UpdateInput) (Record, error) {
	if !auth.Can(actor, auth.ActionAttendanceManage, auth.Target{}) {
		return Record{}, ErrForbidden
	}
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}

	if in.Date != nil && !in.Date.IsZero() {
		rec.Date = dateOnly(*in.Date)
	}
	if in.Status != nil {
		status, ok := ParseStatus(*in.Status)
		if !ok {
			return Record{}, ErrInvalidStatus
		}
		rec.Status = status
	}
	checkIn, checkOut := rec.CheckIn, rec.CheckOut
	if in.CheckIn != nil {
		checkIn = in.CheckIn
	}
	if in.CheckOut != nil {
		checkOut = in.CheckOut
	}
	mergedIn, mergedOut, hours, err := s.derive(checkIn, checkOut)
	if err != nil {
		return Record{}, err
	}
	rec.CheckIn, rec.CheckOut = mergedIn, mergedOut
	if hours != nil {
		rec.WorkHours = hours
	}

	if err := s.store.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) (Record, error) {
	if !auth.Can(actor, auth.ActionAttendanceManage, auth.Target{}) {
		return Record{}, ErrForbidden
	}
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	return rec, s.store.Delete(ctx, id)
}

// List returns records newest first, scoped to the actor unless they may read everyone's.
func (s *Service) List(ctx context.Context, actor auth.Actor, employeeCode string, from, to *time.Time) ([]Record, error) {
	filter := Filter{From: from, To: to}
	switch {
	case !auth.Can(actor, auth.ActionAttendanceRead, auth.Target{}):
		filter.EmployeeID = actor.UserID
	case strings.TrimSpace(employeeCode) != "":
		id, err := s.store.EmployeeIDByCode(ctx, strings.TrimSpace(employeeCode))
		if err != nil {
			return nil, err
		}
		filter.EmployeeID = id
	}
	return s.list(ctx, filter)
}

// ListForEmployee returns one employee's records; employees may only read their own.
func (s *Service) ListForEmployee(ctx context.Context, actor auth.Actor, employeeCode string, from, to *time.Time) ([]Record, error) {
	id, err := s.store.EmployeeIDByCode(ctx, strings.TrimSpace(employeeCode))
	if err != nil {
		return nil, err
	}
	if !auth.Can(actor, auth.ActionAttendanceRead, auth.Target{OwnerID: id}) {
		return nil, ErrForbidden
	}
	return s.list(ctx, Filter{EmployeeID: id, From: from, To: to})
}

func (s *Service) list(ctx context.Context, filter Filter) ([]Record, error) {
	out, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Record{}
	}
	return out, nil
}
